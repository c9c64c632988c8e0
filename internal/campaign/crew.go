package campaign

// Stat is one of the six crew aptitudes.
type Stat string

const (
	StatAim    Stat = "aim"
	StatGrit   Stat = "grit"
	StatReflex Stat = "reflex"
	StatTech   Stat = "tech"
	StatSavvy  Stat = "savvy"
	StatWill   Stat = "will"
)

// AllStats is the canonical iteration order for stat maps.
var AllStats = []Stat{StatAim, StatGrit, StatReflex, StatTech, StatSavvy, StatWill}

// Slot is one of the three crew equipment slots.
type Slot string

const (
	SlotWeapon Slot = "WEAPON"
	SlotArmor  Slot = "ARMOR"
	SlotGadget Slot = "GADGET"
)

var AllSlots = []Slot{SlotWeapon, SlotArmor, SlotGadget}

// DefaultInjury is used when an injury effect does not name a specific tag.
const DefaultInjury = "wounded"

// CrewMember is one roster entry. All mutation goes through Campaign methods
// so every change publishes an event.
type CrewMember struct {
	ID   int
	Name string
	Role string

	Base  map[Stat]int
	XP    int
	Level int

	Traits   []string
	Injuries []string

	Alive bool

	// Equipment maps a slot to an inventory item instance id.
	// Absent key means the slot is empty.
	Equipment map[Slot]int
}

func (cm *CrewMember) hasTrait(id string) bool {
	for _, t := range cm.Traits {
		if t == id {
			return true
		}
	}
	return false
}

func (cm *CrewMember) removeTrait(id string) {
	out := cm.Traits[:0]
	for _, t := range cm.Traits {
		if t != id {
			out = append(out, t)
		}
	}
	cm.Traits = out
}

// EquippedIn returns the slot holding the given item instance, if any.
func (cm *CrewMember) EquippedIn(itemID int) (Slot, bool) {
	for _, s := range AllSlots {
		if cm.Equipment[s] == itemID {
			return s, true
		}
	}
	return "", false
}

// EffectiveStat is base + trait modifiers + equipped-item modifiers, floored
// at zero. Unknown trait or item ids contribute nothing.
func (c *Campaign) EffectiveStat(crewID int, stat Stat) int {
	cm := c.Crew(crewID)
	if cm == nil {
		return 0
	}
	v := cm.Base[stat]
	for _, tid := range cm.Traits {
		if def, ok := c.cats.Traits.Defs[tid]; ok {
			v += def.StatMods[string(stat)]
		}
	}
	for _, tid := range cm.Injuries {
		if def, ok := c.cats.Traits.Defs[tid]; ok {
			v += def.StatMods[string(stat)]
		}
	}
	for _, s := range AllSlots {
		itemID, ok := cm.Equipment[s]
		if !ok {
			continue
		}
		it := c.ItemByID(itemID)
		if it == nil {
			continue
		}
		if def, ok := c.cats.Items.Defs[it.DefID]; ok {
			v += def.StatMods[string(stat)]
		}
	}
	if v < 0 {
		return 0
	}
	return v
}
