package catalog

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Catalogs bundles every immutable content table the campaign consumes.
// Loaded once at startup and passed to the aggregate at construction;
// nothing in here is mutated afterwards.
type Catalogs struct {
	Items      ItemCatalog
	Traits     TraitCatalog
	Chassis    ChassisCatalog
	Factions   FactionCatalog
	Encounters EncounterCatalog
}

// Item categories. Stackability is derived from the category: only
// consumables and cargo merge by definition id.
const (
	CategoryEquipment  = "EQUIPMENT"
	CategoryModule     = "MODULE"
	CategoryConsumable = "CONSUMABLE"
	CategoryCargo      = "CARGO"
)

type ItemCatalog struct {
	Defs   map[string]ItemDef
	Digest string
}

type ItemDef struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Volume   int            `json:"volume"`
	Value    int            `json:"value"`
	// Slot is set for EQUIPMENT ("WEAPON","ARMOR","GADGET"); empty otherwise.
	Slot string `json:"slot,omitempty"`
	// ModuleSlot is set for MODULE ("ENGINE","WEAPON","UTILITY"); empty otherwise.
	ModuleSlot string         `json:"module_slot,omitempty"`
	StatMods   map[string]int `json:"stat_mods,omitempty"`
}

// Stackable reports whether instances of this definition merge into one stack.
func (d ItemDef) Stackable() bool {
	return d.Category == CategoryConsumable || d.Category == CategoryCargo
}

type TraitCatalog struct {
	Defs   map[string]TraitDef
	Digest string
}

type TraitDef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Permanent traits (injuries among them) cannot be removed by effects.
	Permanent bool           `json:"permanent,omitempty"`
	StatMods  map[string]int `json:"stat_mods,omitempty"`
}

type ChassisCatalog struct {
	Defs   map[string]ChassisDef
	Digest string
}

type ChassisDef struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	MaxHull  int            `json:"max_hull"`
	Cargo    int            `json:"cargo"`
	Slots    map[string]int `json:"slots"` // module slot type -> max installed
}

type FactionCatalog struct {
	Defs   map[string]FactionDef
	Digest string
}

type FactionDef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EncounterCatalog struct {
	ByID   map[string]EncounterTemplate
	Digest string
}

// EncounterTemplate is immutable narrative content. The engine only ever
// consumes the effects attached to a chosen option; node text and option
// conditions belong to the presentation/progression layers.
type EncounterTemplate struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title,omitempty"`
	StartNode string                 `json:"start_node"`
	Nodes     map[string]NodeDef     `json:"nodes"`
}

type NodeDef struct {
	ID      string      `json:"id"`
	Text    string      `json:"text,omitempty"`
	Options []OptionDef `json:"options,omitempty"`
}

type OptionDef struct {
	ID      string      `json:"id"`
	Text    string      `json:"text,omitempty"`
	Effects []EffectDef `json:"effects,omitempty"`
}

// EffectDef is the wire form of one atomic encounter effect. The campaign
// package maps Type onto its closed effect enum at queue time.
type EffectDef struct {
	Type   string `json:"type"`
	Target string `json:"target,omitempty"`
	Amount int    `json:"amount,omitempty"`
	Param  string `json:"param,omitempty"`
	Flag   bool   `json:"flag,omitempty"`
}

// Load reads every catalog file under configDir. If a matching schema exists
// under configDir/schemas, the raw JSON is validated against it before
// decoding.
func Load(configDir string) (*Catalogs, error) {
	var c Catalogs

	if err := loadItems(configDir, &c.Items); err != nil {
		return nil, err
	}
	if err := loadTraits(configDir, &c.Traits); err != nil {
		return nil, err
	}
	if err := loadChassis(configDir, &c.Chassis); err != nil {
		return nil, err
	}
	if err := loadFactions(configDir, &c.Factions); err != nil {
		return nil, err
	}
	if err := loadEncounters(configDir, &c.Encounters); err != nil {
		return nil, err
	}
	return &c, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func loadItems(dir string, out *ItemCatalog) error {
	raw, err := readValidated(dir, "items.json")
	if err != nil {
		return err
	}
	var defs []ItemDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("items.json: %w", err)
	}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("items.json: empty id")
		}
		switch d.Category {
		case CategoryEquipment, CategoryModule, CategoryConsumable, CategoryCargo:
		default:
			return fmt.Errorf("items.json: %s: unknown category %q", d.ID, d.Category)
		}
		if d.Volume < 0 {
			return fmt.Errorf("items.json: %s: negative volume", d.ID)
		}
	}
	*out = MakeItems(defs)
	out.Digest = sha256Hex(raw)
	return nil
}

func loadTraits(dir string, out *TraitCatalog) error {
	raw, err := readValidated(dir, "traits.json")
	if err != nil {
		return err
	}
	var defs []TraitDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("traits.json: %w", err)
	}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("traits.json: empty id")
		}
	}
	*out = MakeTraits(defs)
	out.Digest = sha256Hex(raw)
	return nil
}

func loadChassis(dir string, out *ChassisCatalog) error {
	raw, err := readValidated(dir, "chassis.json")
	if err != nil {
		return err
	}
	var defs []ChassisDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("chassis.json: %w", err)
	}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("chassis.json: empty id")
		}
		if d.MaxHull <= 0 {
			return fmt.Errorf("chassis.json: %s: max_hull must be positive", d.ID)
		}
	}
	*out = MakeChassis(defs)
	out.Digest = sha256Hex(raw)
	return nil
}

func loadFactions(dir string, out *FactionCatalog) error {
	raw, err := readValidated(dir, "factions.json")
	if err != nil {
		return err
	}
	var defs []FactionDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("factions.json: %w", err)
	}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("factions.json: empty id")
		}
	}
	*out = MakeFactions(defs)
	out.Digest = sha256Hex(raw)
	return nil
}

func loadEncounters(dir string, out *EncounterCatalog) error {
	encDir := filepath.Join(dir, "encounters")
	out.ByID = map[string]EncounterTemplate{}

	entries, err := os.ReadDir(encDir)
	if err != nil {
		if os.IsNotExist(err) {
			out.Digest = sha256Hex(nil)
			return nil
		}
		return err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".json") {
			files = append(files, filepath.Join(encDir, e.Name()))
		}
	}
	sort.Strings(files)

	schema := schemaFor(dir, "encounter.schema.json")

	var concat bytes.Buffer
	for _, p := range files {
		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		concat.Write(b)
		concat.WriteByte('\n')

		if schema != nil {
			var v any
			if err := json.Unmarshal(b, &v); err != nil {
				return fmt.Errorf("encounter %s: %w", filepath.Base(p), err)
			}
			if err := schema.Validate(v); err != nil {
				return fmt.Errorf("encounter %s: %w", filepath.Base(p), err)
			}
		}

		var tmpl EncounterTemplate
		if err := json.Unmarshal(b, &tmpl); err != nil {
			return fmt.Errorf("encounter %s: %w", filepath.Base(p), err)
		}
		if tmpl.ID == "" {
			return fmt.Errorf("encounter %s: missing id", filepath.Base(p))
		}
		if _, ok := tmpl.Nodes[tmpl.StartNode]; !ok {
			return fmt.Errorf("encounter %s: start_node %q not in nodes", filepath.Base(p), tmpl.StartNode)
		}
		out.ByID[tmpl.ID] = tmpl
	}
	out.Digest = sha256Hex(concat.Bytes())
	return nil
}

// MakeItems builds an item catalog from definitions. Exported so tests can
// construct small catalogs without touching the filesystem.
func MakeItems(defs []ItemDef) ItemCatalog {
	out := ItemCatalog{Defs: map[string]ItemDef{}}
	for _, d := range defs {
		out.Defs[d.ID] = d
	}
	return out
}

func MakeTraits(defs []TraitDef) TraitCatalog {
	out := TraitCatalog{Defs: map[string]TraitDef{}}
	for _, d := range defs {
		out.Defs[d.ID] = d
	}
	return out
}

func MakeChassis(defs []ChassisDef) ChassisCatalog {
	out := ChassisCatalog{Defs: map[string]ChassisDef{}}
	for _, d := range defs {
		out.Defs[d.ID] = d
	}
	return out
}

func MakeFactions(defs []FactionDef) FactionCatalog {
	out := FactionCatalog{Defs: map[string]FactionDef{}}
	for _, d := range defs {
		out.Defs[d.ID] = d
	}
	return out
}

func MakeEncounters(tmpls []EncounterTemplate) EncounterCatalog {
	out := EncounterCatalog{ByID: map[string]EncounterTemplate{}}
	for _, t := range tmpls {
		out.ByID[t.ID] = t
	}
	return out
}
