package campaign

// Config carries campaign tuning. Zero values are filled by applyDefaults so
// callers (and tests) can set only what they care about.
type Config struct {
	Seed int64

	// ChassisID selects the starting ship from the chassis catalog.
	ChassisID string
	ShipName  string

	// StatCap bounds every base stat.
	StatCap int
	// XPPerLevel scales the level curve: a crew member levels up after
	// Level*XPPerLevel experience at that level.
	XPPerLevel int

	StartingResources map[Resource]int
	// StartingCrew lists name/role pairs hired by the new-campaign factory.
	StartingCrew []StarterCrew
	// StartingItems maps item definition id to quantity.
	StartingItems map[string]int

	// OfferCount is how many job offers the board is refilled to.
	OfferCount int
	// FallbackReward is the flat credit payout for a victory with no
	// accepted job.
	FallbackReward int
}

type StarterCrew struct {
	Name string
	Role string
}

func (c *Config) applyDefaults() {
	if c.ChassisID == "" {
		c.ChassisID = "vagrant"
	}
	if c.ShipName == "" {
		c.ShipName = "Unnamed Ship"
	}
	if c.StatCap <= 0 {
		c.StatCap = 10
	}
	if c.XPPerLevel <= 0 {
		c.XPPerLevel = 100
	}
	if c.StartingResources == nil {
		c.StartingResources = map[Resource]int{
			ResourceCredits: 500,
			ResourceFuel:    20,
			ResourceParts:   10,
			ResourceMeds:    5,
			ResourceAmmo:    40,
		}
	}
	if c.StartingCrew == nil {
		c.StartingCrew = []StarterCrew{
			{Name: "Vex", Role: "soldier"},
			{Name: "Moira", Role: "medic"},
			{Name: "Tally", Role: "engineer"},
			{Name: "Crane", Role: "scout"},
		}
	}
	if c.OfferCount <= 0 {
		c.OfferCount = 3
	}
	if c.FallbackReward <= 0 {
		c.FallbackReward = 100
	}
}
