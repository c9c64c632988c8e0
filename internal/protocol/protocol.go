package protocol

import (
	"starhold.gg/internal/campaign"
)

// Version gates the observer handshake; bump on breaking frame changes.
const Version = "campaign-observer/1"

// Message types.
const (
	TypeSubscribe = "SUBSCRIBE"
	TypeState     = "STATE"
	TypeEvent     = "EVENT"
)

// SubscribeMsg is the first frame an observer must send on the websocket.
type SubscribeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
}

// StateMsg carries a full summary, sent once after subscribe.
type StateMsg struct {
	Type    string  `json:"type"`
	Summary Summary `json:"summary"`
}

// EventMsg carries one domain event as it is published.
type EventMsg struct {
	Type  string             `json:"type"`
	Day   int                `json:"day"`
	Kind  campaign.EventKind `json:"kind"`
	Event campaign.Event     `json:"event"`
}

// Summary is the read-model of a campaign for menus and observers.
type Summary struct {
	Day       int            `json:"day"`
	GameOver  bool           `json:"game_over"`
	Resources map[string]int `json:"resources"`

	Crew []CrewSummary `json:"crew"`
	Ship ShipSummary   `json:"ship"`

	CargoUsed     int `json:"cargo_used"`
	CargoCapacity int `json:"cargo_capacity"`

	CurrentJob *JobSummary `json:"current_job,omitempty"`
	Offers     int         `json:"offers"`

	Reputation map[string]int `json:"reputation,omitempty"`
	Encounter  string         `json:"encounter,omitempty"`

	MissionsCompleted int `json:"missions_completed"`
	MissionsFailed    int `json:"missions_failed"`
	LifetimeEarnings  int `json:"lifetime_earnings"`
	LifetimeDeaths    int `json:"lifetime_deaths"`
}

type CrewSummary struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Role     string   `json:"role,omitempty"`
	Level    int      `json:"level"`
	XP       int      `json:"xp"`
	Alive    bool     `json:"alive"`
	Injuries []string `json:"injuries,omitempty"`
}

type ShipSummary struct {
	Name     string `json:"name"`
	Chassis  string `json:"chassis"`
	Hull     int    `json:"hull"`
	MaxHull  int    `json:"max_hull"`
	Critical bool   `json:"critical"`
	Modules  int    `json:"modules"`
}

type JobSummary struct {
	ID       int    `json:"id"`
	Employer string `json:"employer,omitempty"`
	Reward   int    `json:"reward_credits"`
	Deadline int    `json:"deadline,omitempty"`
}

// Summarize builds the read-model from a live campaign. Must run on the
// session goroutine that owns the campaign.
func Summarize(c *campaign.Campaign) Summary {
	stats := c.CampaignStats()
	s := Summary{
		Day:               c.Day(),
		GameOver:          c.GameOver(),
		Resources:         map[string]int{},
		CargoUsed:         c.UsedVolume(),
		CargoCapacity:     c.CargoCapacity(),
		Offers:            len(c.Offers()),
		MissionsCompleted: stats.MissionsCompleted,
		MissionsFailed:    stats.MissionsFailed,
		LifetimeEarnings:  stats.LifetimeEarnings,
		LifetimeDeaths:    stats.LifetimeDeaths,
	}
	for _, r := range campaign.AllResources {
		s.Resources[string(r)] = c.Amount(r)
	}
	for _, cm := range c.Roster() {
		s.Crew = append(s.Crew, CrewSummary{
			ID:       cm.ID,
			Name:     cm.Name,
			Role:     cm.Role,
			Level:    cm.Level,
			XP:       cm.XP,
			Alive:    cm.Alive,
			Injuries: append([]string(nil), cm.Injuries...),
		})
	}
	ship := c.Ship()
	s.Ship = ShipSummary{
		Name:     ship.Name,
		Chassis:  ship.ChassisID,
		Hull:     ship.Hull,
		MaxHull:  ship.MaxHull,
		Critical: ship.IsCritical(),
		Modules:  len(ship.Modules),
	}
	if job := c.CurrentJob(); job != nil {
		s.CurrentJob = &JobSummary{
			ID:       job.ID,
			Employer: job.EmployerID,
			Reward:   job.Reward.Credits,
			Deadline: job.Deadline,
		}
	}
	if len(c.Catalogs().Factions.Defs) > 0 {
		s.Reputation = map[string]int{}
		for id := range c.Catalogs().Factions.Defs {
			s.Reputation[id] = c.Reputation(id)
		}
	}
	if enc := c.ActiveEncounter(); enc != nil {
		s.Encounter = enc.TemplateID
	}
	return s
}
