package campaign

// EventKind identifies the type of a domain event.
type EventKind string

// Ledger and inventory events.
const (
	KindResourceChanged EventKind = "resource.changed"
	KindItemAdded       EventKind = "item.added"
	KindItemRemoved     EventKind = "item.removed"
	KindItemEquipped    EventKind = "item.equipped"
	KindItemUnequipped  EventKind = "item.unequipped"
)

// Ship events.
const (
	KindHullChanged     EventKind = "ship.hull_changed"
	KindModuleInstalled EventKind = "ship.module_installed"
	KindModuleRemoved   EventKind = "ship.module_removed"
)

// Crew events.
const (
	KindCrewHired        EventKind = "crew.hired"
	KindCrewFired        EventKind = "crew.fired"
	KindCrewDied         EventKind = "crew.died"
	KindCrewBuried       EventKind = "crew.buried"
	KindCrewInjured      EventKind = "crew.injured"
	KindCrewXPGained     EventKind = "crew.xp_gained"
	KindCrewLeveledUp    EventKind = "crew.leveled_up"
	KindCrewTraitChanged EventKind = "crew.trait_changed"
	KindCrewRecruited    EventKind = "crew.recruited"
)

// Campaign-wide events.
const (
	KindReputationChanged EventKind = "faction.reputation_changed"
	KindFlagChanged       EventKind = "flag.changed"
	KindJobAccepted       EventKind = "job.accepted"
	KindJobCompleted      EventKind = "job.completed"
	KindLootAcquired      EventKind = "mission.loot_acquired"
	KindEncounterApplied  EventKind = "encounter.outcome_applied"
	KindDayAdvanced       EventKind = "clock.day_advanced"
)

// Event is one observable state change. Every mutation through the public
// API publishes exactly one event per change; each event carries enough data
// for a subscriber to render a log line without querying the aggregate.
type Event interface {
	EventKind() EventKind
}

type ResourceChanged struct {
	Resource Resource `json:"resource"`
	Old      int      `json:"old"`
	New      int      `json:"new"`
	Delta    int      `json:"delta"`
	Reason   string   `json:"reason,omitempty"`
}

type ItemAdded struct {
	ItemID int    `json:"item_id"`
	DefID  string `json:"def_id"`
	Qty    int    `json:"qty"`
	Total  int    `json:"total"` // quantity on the stack after the add
}

type ItemRemoved struct {
	ItemID int    `json:"item_id"`
	DefID  string `json:"def_id"`
	Qty    int    `json:"qty"`
}

type ItemEquipped struct {
	CrewID int    `json:"crew_id"`
	ItemID int    `json:"item_id"`
	DefID  string `json:"def_id"`
	Slot   Slot   `json:"slot"`
}

type ItemUnequipped struct {
	CrewID int    `json:"crew_id"`
	ItemID int    `json:"item_id"`
	DefID  string `json:"def_id"`
	Slot   Slot   `json:"slot"`
}

type HullChanged struct {
	Old   int    `json:"old"`
	New   int    `json:"new"`
	Max   int    `json:"max"`
	Cause string `json:"cause,omitempty"`
}

type ModuleInstalled struct {
	ModuleID int    `json:"module_id"`
	DefID    string `json:"def_id"`
	Slot     string `json:"slot"`
}

type ModuleRemoved struct {
	ModuleID int    `json:"module_id"`
	DefID    string `json:"def_id"`
	Slot     string `json:"slot"`
	ItemID   int    `json:"item_id"` // inventory instance the module became
}

type CrewHired struct {
	CrewID int    `json:"crew_id"`
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
}

type CrewFired struct {
	CrewID int    `json:"crew_id"`
	Name   string `json:"name"`
}

type CrewDied struct {
	CrewID int    `json:"crew_id"`
	Name   string `json:"name"`
	MIA    bool   `json:"mia,omitempty"`
}

type CrewBuried struct {
	CrewID int    `json:"crew_id"`
	Name   string `json:"name"`
}

type CrewInjured struct {
	CrewID int    `json:"crew_id"`
	Name   string `json:"name"`
	Injury string `json:"injury"`
}

type CrewXPGained struct {
	CrewID int `json:"crew_id"`
	Amount int `json:"amount"`
	Total  int `json:"total"`
}

type CrewLeveledUp struct {
	CrewID int `json:"crew_id"`
	Level  int `json:"level"`
}

type CrewTraitChanged struct {
	CrewID  int    `json:"crew_id"`
	TraitID string `json:"trait_id"`
	Added   bool   `json:"added"`
}

type CrewRecruited struct {
	CrewID int    `json:"crew_id"`
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
}

type ReputationChanged struct {
	FactionID string `json:"faction_id"`
	Old       int    `json:"old"`
	New       int    `json:"new"`
}

type FlagChanged struct {
	FlagID string `json:"flag_id"`
	Value  bool   `json:"value"`
}

type JobAccepted struct {
	JobID    int    `json:"job_id"`
	Employer string `json:"employer"`
	Deadline int    `json:"deadline"` // absolute day
}

type JobCompleted struct {
	JobID   int  `json:"job_id"`
	Success bool `json:"success"`
}

type LootAcquired struct {
	ItemID int    `json:"item_id"`
	DefID  string `json:"def_id"`
	Qty    int    `json:"qty"`
}

type EncounterApplied struct {
	TemplateID string `json:"template_id"`
	Applied    int    `json:"applied"`
	Total      int    `json:"total"`
}

type DayAdvanced struct {
	Days int `json:"days"`
	Day  int `json:"day"` // current day after the advance
}

func (ResourceChanged) EventKind() EventKind   { return KindResourceChanged }
func (ItemAdded) EventKind() EventKind         { return KindItemAdded }
func (ItemRemoved) EventKind() EventKind       { return KindItemRemoved }
func (ItemEquipped) EventKind() EventKind      { return KindItemEquipped }
func (ItemUnequipped) EventKind() EventKind    { return KindItemUnequipped }
func (HullChanged) EventKind() EventKind       { return KindHullChanged }
func (ModuleInstalled) EventKind() EventKind   { return KindModuleInstalled }
func (ModuleRemoved) EventKind() EventKind     { return KindModuleRemoved }
func (CrewHired) EventKind() EventKind         { return KindCrewHired }
func (CrewFired) EventKind() EventKind         { return KindCrewFired }
func (CrewDied) EventKind() EventKind          { return KindCrewDied }
func (CrewBuried) EventKind() EventKind        { return KindCrewBuried }
func (CrewInjured) EventKind() EventKind       { return KindCrewInjured }
func (CrewXPGained) EventKind() EventKind      { return KindCrewXPGained }
func (CrewLeveledUp) EventKind() EventKind     { return KindCrewLeveledUp }
func (CrewTraitChanged) EventKind() EventKind  { return KindCrewTraitChanged }
func (CrewRecruited) EventKind() EventKind     { return KindCrewRecruited }
func (ReputationChanged) EventKind() EventKind { return KindReputationChanged }
func (FlagChanged) EventKind() EventKind       { return KindFlagChanged }
func (JobAccepted) EventKind() EventKind       { return KindJobAccepted }
func (JobCompleted) EventKind() EventKind      { return KindJobCompleted }
func (LootAcquired) EventKind() EventKind      { return KindLootAcquired }
func (EncounterApplied) EventKind() EventKind  { return KindEncounterApplied }
func (DayAdvanced) EventKind() EventKind       { return KindDayAdvanced }

// Subscriber receives events inline during the mutating call. Handlers must
// not call back into the aggregate's mutation API.
type Subscriber func(Event)

// Bus is a synchronous fan-out. Publishing never blocks or fails the
// mutation that triggered it. Events published while a dispatch is already
// in flight (a subscriber indirectly caused another publish) are queued and
// delivered after the current event finishes, so subscribers always observe
// events one at a time and in order.
type Bus struct {
	subs        []Subscriber
	dispatching bool
	queue       []Event
}

func NewBus() *Bus { return &Bus{} }

func (b *Bus) Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}
	b.subs = append(b.subs, fn)
}

func (b *Bus) Publish(e Event) {
	if b == nil || e == nil {
		return
	}
	if b.dispatching {
		b.queue = append(b.queue, e)
		return
	}
	b.dispatching = true
	b.deliver(e)
	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		b.deliver(next)
	}
	b.dispatching = false
}

func (b *Bus) deliver(e Event) {
	for _, fn := range b.subs {
		fn(e)
	}
}
