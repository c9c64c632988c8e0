package campaign

import (
	"fmt"

	"starhold.gg/internal/catalog"
)

// Campaign is the aggregate root for one playthrough. It owns every piece of
// mutable campaign state; all mutation goes through its public methods, and
// every observable change publishes exactly one domain event.
//
// The aggregate is single-threaded: methods run to completion, there are no
// suspension points, and it must be owned by exactly one session goroutine.
type Campaign struct {
	cfg  Config
	cats *catalog.Catalogs
	rng  *RNG
	bus  *Bus

	day int

	resources        map[Resource]int
	lifetimeEarnings int

	roster     []*CrewMember
	nextCrewID int

	items      []*Item
	nextItemID int

	ship         ShipRecord
	nextModuleID int

	currentJob *Job
	offers     []*Job
	nextJobID  int
	jobSource  JobSource

	flags      map[string]bool
	reputation map[string]int

	encounter *EncounterInstance

	stats Stats
}

// Stats are lifetime campaign counters.
type Stats struct {
	MissionsCompleted int
	MissionsFailed    int
	LifetimeEarnings  int
	LifetimeDeaths    int
}

// JobSource produces job offers when the board runs empty. Implemented by
// the procedural generator outside this package; a nil source leaves the
// board empty.
type JobSource interface {
	Offers(n int, rng *RNG) []*Job
}

// New creates a fresh campaign: seeds the RNG, hires the starting roster,
// builds the starting ship and inventory, and fills the job board.
func New(cfg Config, cats *catalog.Catalogs, jobs JobSource) (*Campaign, error) {
	cfg.applyDefaults()
	if cats == nil {
		return nil, fmt.Errorf("campaign: nil catalogs")
	}
	chassis, ok := cats.Chassis.Defs[cfg.ChassisID]
	if !ok {
		return nil, fmt.Errorf("campaign: unknown chassis %q", cfg.ChassisID)
	}

	c := &Campaign{
		cfg:        cfg,
		cats:       cats,
		rng:        NewRNG(cfg.Seed),
		bus:        NewBus(),
		resources:  map[Resource]int{},
		flags:      map[string]bool{},
		reputation: map[string]int{},
		jobSource:  jobs,
	}
	for _, r := range AllResources {
		c.resources[r] = 0
	}
	for r, v := range cfg.StartingResources {
		if v > 0 {
			c.resources[r] = v
		}
	}
	c.lifetimeEarnings = c.resources[ResourceCredits]
	c.stats.LifetimeEarnings = c.lifetimeEarnings

	c.ship = ShipRecord{
		ChassisID: chassis.ID,
		Name:      cfg.ShipName,
		Hull:      chassis.MaxHull,
		MaxHull:   chassis.MaxHull,
	}

	for _, sc := range cfg.StartingCrew {
		c.addCrew(sc.Name, sc.Role)
	}
	for _, defID := range sortedKeys(cfg.StartingItems) {
		c.AddItem(defID, cfg.StartingItems[defID])
	}
	c.refreshOffers()
	return c, nil
}

// Bus exposes the event bus for subscribers (UI, journal, observers).
func (c *Campaign) Bus() *Bus { return c.bus }

// Catalogs exposes the immutable content catalogs the campaign was built with.
func (c *Campaign) Catalogs() *catalog.Catalogs { return c.cats }

// RNG exposes the campaign's deterministic random stream. Collaborators that
// generate content (job details, trait rolls) draw from this stream so
// identical seeds replay identically.
func (c *Campaign) RNG() *RNG { return c.rng }

// Day is the campaign clock in absolute days since campaign start.
func (c *Campaign) Day() int { return c.day }

// AdvanceClock moves the campaign clock forward. Non-positive input is a
// silent no-op.
func (c *Campaign) AdvanceClock(days int) {
	if days <= 0 {
		return
	}
	c.day += days
	c.bus.Publish(DayAdvanced{Days: days, Day: c.day})
}

// CampaignStats returns the lifetime counters.
func (c *Campaign) CampaignStats() Stats { return c.stats }

// GameOver reports whether the campaign has ended: no living crew remains.
func (c *Campaign) GameOver() bool {
	return len(c.livingCrew()) == 0
}

func (c *Campaign) publish(e Event) { c.bus.Publish(e) }
