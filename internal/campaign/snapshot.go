package campaign

import (
	"fmt"
	"sort"

	"starhold.gg/internal/catalog"
)

// Snapshot is the complete serializable state of a campaign. It references
// catalog content by id only; Restore re-derives every lookup against the
// catalogs it is given, so content updates between save and load surface as
// restore errors instead of dangling pointers.
//
// Slices are emitted in stable order (crew and items by id, flags sorted) so
// two snapshots of identical state encode byte-identically.
type Snapshot struct {
	Day int `json:"day"`

	Resources        map[Resource]int `json:"resources"`
	LifetimeEarnings int              `json:"lifetime_earnings"`

	Crew       []CrewSnapshot `json:"crew"`
	NextCrewID int            `json:"next_crew_id"`

	Items      []ItemSnapshot `json:"items"`
	NextItemID int            `json:"next_item_id"`

	Ship         ShipSnapshot `json:"ship"`
	NextModuleID int          `json:"next_module_id"`

	CurrentJob *JobSnapshot  `json:"current_job,omitempty"`
	Offers     []JobSnapshot `json:"offers,omitempty"`
	NextJobID  int           `json:"next_job_id"`

	Flags      []string       `json:"flags,omitempty"`
	Reputation map[string]int `json:"reputation,omitempty"`

	Encounter *EncounterSnapshot `json:"encounter,omitempty"`

	Stats StatsSnapshot `json:"stats"`

	RNGSeed  int64  `json:"rng_seed"`
	RNGDraws uint64 `json:"rng_draws"`
}

type CrewSnapshot struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Role      string       `json:"role,omitempty"`
	Base      map[Stat]int `json:"base"`
	XP        int          `json:"xp"`
	Level     int          `json:"level"`
	Traits    []string     `json:"traits,omitempty"`
	Injuries  []string     `json:"injuries,omitempty"`
	Alive     bool         `json:"alive"`
	Equipment map[Slot]int `json:"equipment,omitempty"`
}

type ItemSnapshot struct {
	ID    int    `json:"id"`
	DefID string `json:"def_id"`
	Qty   int    `json:"qty"`
}

type ShipSnapshot struct {
	ChassisID string           `json:"chassis_id"`
	Name      string           `json:"name"`
	Hull      int              `json:"hull"`
	MaxHull   int              `json:"max_hull"`
	Modules   []ModuleSnapshot `json:"modules,omitempty"`
}

type ModuleSnapshot struct {
	ID    int    `json:"id"`
	DefID string `json:"def_id"`
	Slot  string `json:"slot"`
}

type JobSnapshot struct {
	ID              int            `json:"id"`
	OriginID        string         `json:"origin_id,omitempty"`
	TargetID        string         `json:"target_id,omitempty"`
	EmployerID      string         `json:"employer_id,omitempty"`
	TargetFactionID string         `json:"target_faction_id,omitempty"`
	RewardCredits   int            `json:"reward_credits,omitempty"`
	RewardResources map[string]int `json:"reward_resources,omitempty"`
	RewardItems     map[string]int `json:"reward_items,omitempty"`
	RepSuccess      map[string]int `json:"rep_success,omitempty"`
	RepFailure      map[string]int `json:"rep_failure,omitempty"`
	DeadlineDays    int            `json:"deadline_days,omitempty"`
	Deadline        int            `json:"deadline,omitempty"`
}

type EncounterSnapshot struct {
	TemplateID string            `json:"template_id"`
	Node       string            `json:"node"`
	Params     map[string]string `json:"params,omitempty"`
	Pending    []EffectSnapshot  `json:"pending,omitempty"`
}

type EffectSnapshot struct {
	Kind   EffectKind `json:"kind"`
	Target string     `json:"target,omitempty"`
	Amount int        `json:"amount,omitempty"`
	Param  string     `json:"param,omitempty"`
	Flag   bool       `json:"flag,omitempty"`
}

type StatsSnapshot struct {
	MissionsCompleted int `json:"missions_completed"`
	MissionsFailed    int `json:"missions_failed"`
	LifetimeEarnings  int `json:"lifetime_earnings"`
	LifetimeDeaths    int `json:"lifetime_deaths"`
}

// Snapshot exports the campaign's full state. The result shares no memory
// with the live campaign.
func (c *Campaign) Snapshot() *Snapshot {
	s := &Snapshot{
		Day:              c.day,
		Resources:        map[Resource]int{},
		LifetimeEarnings: c.lifetimeEarnings,
		NextCrewID:       c.nextCrewID,
		NextItemID:       c.nextItemID,
		NextModuleID:     c.nextModuleID,
		NextJobID:        c.nextJobID,
		Reputation:       map[string]int{},
		Stats: StatsSnapshot{
			MissionsCompleted: c.stats.MissionsCompleted,
			MissionsFailed:    c.stats.MissionsFailed,
			LifetimeEarnings:  c.stats.LifetimeEarnings,
			LifetimeDeaths:    c.stats.LifetimeDeaths,
		},
		RNGSeed:  c.rng.Seed(),
		RNGDraws: c.rng.Draws(),
	}
	for _, r := range AllResources {
		s.Resources[r] = c.resources[r]
	}

	for _, cm := range c.roster {
		cs := CrewSnapshot{
			ID:       cm.ID,
			Name:     cm.Name,
			Role:     cm.Role,
			Base:     map[Stat]int{},
			XP:       cm.XP,
			Level:    cm.Level,
			Traits:   append([]string(nil), cm.Traits...),
			Injuries: append([]string(nil), cm.Injuries...),
			Alive:    cm.Alive,
		}
		for _, st := range AllStats {
			cs.Base[st] = cm.Base[st]
		}
		if len(cm.Equipment) > 0 {
			cs.Equipment = map[Slot]int{}
			for _, sl := range AllSlots {
				if id, ok := cm.Equipment[sl]; ok {
					cs.Equipment[sl] = id
				}
			}
		}
		s.Crew = append(s.Crew, cs)
	}

	for _, it := range c.items {
		s.Items = append(s.Items, ItemSnapshot{ID: it.ID, DefID: it.DefID, Qty: it.Qty})
	}

	s.Ship = ShipSnapshot{
		ChassisID: c.ship.ChassisID,
		Name:      c.ship.Name,
		Hull:      c.ship.Hull,
		MaxHull:   c.ship.MaxHull,
	}
	for _, m := range c.ship.Modules {
		s.Ship.Modules = append(s.Ship.Modules, ModuleSnapshot{ID: m.ID, DefID: m.DefID, Slot: m.Slot})
	}

	if c.currentJob != nil {
		js := snapshotJob(c.currentJob)
		s.CurrentJob = &js
	}
	for _, j := range c.offers {
		s.Offers = append(s.Offers, snapshotJob(j))
	}

	for id := range c.flags {
		s.Flags = append(s.Flags, id)
	}
	sort.Strings(s.Flags)

	for id, v := range c.reputation {
		s.Reputation[id] = v
	}

	if c.encounter != nil {
		es := &EncounterSnapshot{
			TemplateID: c.encounter.TemplateID,
			Node:       c.encounter.Node,
		}
		if len(c.encounter.Params) > 0 {
			es.Params = map[string]string{}
			for k, v := range c.encounter.Params {
				es.Params[k] = v
			}
		}
		for _, e := range c.encounter.Pending {
			es.Pending = append(es.Pending, EffectSnapshot{
				Kind: e.Kind, Target: e.Target, Amount: e.Amount, Param: e.Param, Flag: e.Flag,
			})
		}
		s.Encounter = es
	}
	return s
}

func snapshotJob(j *Job) JobSnapshot {
	js := JobSnapshot{
		ID:              j.ID,
		OriginID:        j.OriginID,
		TargetID:        j.TargetID,
		EmployerID:      j.EmployerID,
		TargetFactionID: j.TargetFactionID,
		RewardCredits:   j.Reward.Credits,
		DeadlineDays:    j.DeadlineDays,
		Deadline:        j.Deadline,
	}
	if len(j.Reward.Resources) > 0 {
		js.RewardResources = map[string]int{}
		for r, v := range j.Reward.Resources {
			js.RewardResources[string(r)] = v
		}
	}
	js.RewardItems = copyIntMap(j.Reward.Items)
	js.RepSuccess = copyIntMap(j.RepSuccess)
	js.RepFailure = copyIntMap(j.RepFailure)
	return js
}

func copyIntMap(m map[string]int) map[string]int {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Restore rebuilds a campaign from a snapshot against the given catalogs.
// Every catalog reference in the snapshot is re-resolved; ids the catalogs no
// longer carry fail the restore rather than producing a half-valid campaign.
func Restore(cfg Config, cats *catalog.Catalogs, jobs JobSource, s *Snapshot) (*Campaign, error) {
	cfg.applyDefaults()
	if cats == nil {
		return nil, fmt.Errorf("campaign: nil catalogs")
	}
	if s == nil {
		return nil, fmt.Errorf("campaign: nil snapshot")
	}
	if _, ok := cats.Chassis.Defs[s.Ship.ChassisID]; !ok {
		return nil, fmt.Errorf("campaign: snapshot references unknown chassis %q", s.Ship.ChassisID)
	}

	c := &Campaign{
		cfg:              cfg,
		cats:             cats,
		rng:              RestoreRNG(s.RNGSeed, s.RNGDraws),
		bus:              NewBus(),
		day:              s.Day,
		resources:        map[Resource]int{},
		lifetimeEarnings: s.LifetimeEarnings,
		nextCrewID:       s.NextCrewID,
		nextItemID:       s.NextItemID,
		nextModuleID:     s.NextModuleID,
		nextJobID:        s.NextJobID,
		jobSource:        jobs,
		flags:            map[string]bool{},
		reputation:       map[string]int{},
		stats: Stats{
			MissionsCompleted: s.Stats.MissionsCompleted,
			MissionsFailed:    s.Stats.MissionsFailed,
			LifetimeEarnings:  s.Stats.LifetimeEarnings,
			LifetimeDeaths:    s.Stats.LifetimeDeaths,
		},
	}
	for _, r := range AllResources {
		c.resources[r] = 0
	}
	for r, v := range s.Resources {
		if !KnownResource(r) {
			return nil, fmt.Errorf("campaign: snapshot carries unknown resource %q", r)
		}
		if v < 0 {
			return nil, fmt.Errorf("campaign: snapshot resource %s is negative", r)
		}
		c.resources[r] = v
	}

	for _, cs := range s.Crew {
		cm := &CrewMember{
			ID:        cs.ID,
			Name:      cs.Name,
			Role:      cs.Role,
			Base:      map[Stat]int{},
			XP:        cs.XP,
			Level:     cs.Level,
			Traits:    append([]string(nil), cs.Traits...),
			Injuries:  append([]string(nil), cs.Injuries...),
			Alive:     cs.Alive,
			Equipment: map[Slot]int{},
		}
		if cm.Level < 1 {
			cm.Level = 1
		}
		for _, st := range AllStats {
			cm.Base[st] = cs.Base[st]
		}
		for sl, id := range cs.Equipment {
			cm.Equipment[sl] = id
		}
		for _, tid := range cm.Traits {
			if _, ok := cats.Traits.Defs[tid]; !ok {
				return nil, fmt.Errorf("campaign: crew %d references unknown trait %q", cm.ID, tid)
			}
		}
		c.roster = append(c.roster, cm)
	}

	for _, is := range s.Items {
		if _, ok := cats.Items.Defs[is.DefID]; !ok {
			return nil, fmt.Errorf("campaign: item %d references unknown definition %q", is.ID, is.DefID)
		}
		c.items = append(c.items, &Item{ID: is.ID, DefID: is.DefID, Qty: is.Qty})
	}

	// Equipment slots must point at live instances.
	for _, cm := range c.roster {
		for sl, id := range cm.Equipment {
			if c.ItemByID(id) == nil {
				return nil, fmt.Errorf("campaign: crew %d slot %s references missing item %d", cm.ID, sl, id)
			}
		}
	}

	c.ship = ShipRecord{
		ChassisID: s.Ship.ChassisID,
		Name:      s.Ship.Name,
		Hull:      s.Ship.Hull,
		MaxHull:   s.Ship.MaxHull,
	}
	for _, m := range s.Ship.Modules {
		if _, ok := cats.Items.Defs[m.DefID]; !ok {
			return nil, fmt.Errorf("campaign: module %d references unknown definition %q", m.ID, m.DefID)
		}
		c.ship.Modules = append(c.ship.Modules, ShipModule{ID: m.ID, DefID: m.DefID, Slot: m.Slot})
	}

	if s.CurrentJob != nil {
		c.currentJob = restoreJob(*s.CurrentJob)
	}
	for _, js := range s.Offers {
		c.offers = append(c.offers, restoreJob(js))
	}

	for _, id := range s.Flags {
		if id != "" {
			c.flags[id] = true
		}
	}
	for id, v := range s.Reputation {
		if _, ok := cats.Factions.Defs[id]; !ok {
			return nil, fmt.Errorf("campaign: snapshot references unknown faction %q", id)
		}
		c.reputation[id] = clampRep(v)
	}

	if s.Encounter != nil {
		if _, ok := cats.Encounters.ByID[s.Encounter.TemplateID]; !ok {
			return nil, fmt.Errorf("campaign: snapshot references unknown encounter %q", s.Encounter.TemplateID)
		}
		inst := &EncounterInstance{
			TemplateID: s.Encounter.TemplateID,
			Node:       s.Encounter.Node,
			Params:     map[string]string{},
		}
		for k, v := range s.Encounter.Params {
			inst.Params[k] = v
		}
		for _, e := range s.Encounter.Pending {
			inst.Pending = append(inst.Pending, Effect{
				Kind: e.Kind, Target: e.Target, Amount: e.Amount, Param: e.Param, Flag: e.Flag,
			})
		}
		c.encounter = inst
	}
	return c, nil
}

func restoreJob(js JobSnapshot) *Job {
	j := &Job{
		ID:              js.ID,
		OriginID:        js.OriginID,
		TargetID:        js.TargetID,
		EmployerID:      js.EmployerID,
		TargetFactionID: js.TargetFactionID,
		Reward: Reward{
			Credits: js.RewardCredits,
			Items:   copyIntMap(js.RewardItems),
		},
		RepSuccess:   copyIntMap(js.RepSuccess),
		RepFailure:   copyIntMap(js.RepFailure),
		DeadlineDays: js.DeadlineDays,
		Deadline:     js.Deadline,
	}
	if len(js.RewardResources) > 0 {
		j.Reward.Resources = map[Resource]int{}
		for r, v := range js.RewardResources {
			j.Reward.Resources[Resource(r)] = v
		}
	}
	return j
}
