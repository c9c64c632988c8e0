package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"starhold.gg/internal/campaign"
)

// Tuning is the outermost loading layer for campaign configuration. The
// aggregate itself only ever sees a plain campaign.Config; YAML stops here.
type Tuning struct {
	Seed int64 `yaml:"seed"`

	ChassisID string `yaml:"chassis_id"`
	ShipName  string `yaml:"ship_name"`

	StatCap    int `yaml:"stat_cap"`
	XPPerLevel int `yaml:"xp_per_level"`

	StartingResources map[string]int `yaml:"starting_resources"`
	StartingCrew      []StarterCrew  `yaml:"starting_crew"`
	StartingItems     map[string]int `yaml:"starting_items"`

	OfferCount     int `yaml:"offer_count"`
	FallbackReward int `yaml:"fallback_reward"`
}

type StarterCrew struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	for k := range t.StartingResources {
		if !campaign.KnownResource(campaign.Resource(k)) {
			return t, fmt.Errorf("tuning.yaml: unknown resource %q", k)
		}
	}
	return t, nil
}

// Config maps the tuning file onto the campaign config. Zero values fall
// through to campaign defaults.
func (t Tuning) Config() campaign.Config {
	cfg := campaign.Config{
		Seed:           t.Seed,
		ChassisID:      t.ChassisID,
		ShipName:       t.ShipName,
		StatCap:        t.StatCap,
		XPPerLevel:     t.XPPerLevel,
		StartingItems:  t.StartingItems,
		OfferCount:     t.OfferCount,
		FallbackReward: t.FallbackReward,
	}
	if len(t.StartingResources) > 0 {
		cfg.StartingResources = map[campaign.Resource]int{}
		for k, v := range t.StartingResources {
			cfg.StartingResources[campaign.Resource(k)] = v
		}
	}
	for _, sc := range t.StartingCrew {
		cfg.StartingCrew = append(cfg.StartingCrew, campaign.StarterCrew{Name: sc.Name, Role: sc.Role})
	}
	return cfg
}
