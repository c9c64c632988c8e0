package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"starhold.gg/internal/campaign"
)

const sampleYAML = `
seed: 1234
chassis_id: vagrant
ship_name: Longshot
stat_cap: 8
xp_per_level: 120
starting_resources:
  CREDITS: 450
  FUEL: 15
starting_crew:
  - name: Vex
    role: soldier
  - name: Moira
    role: medic
starting_items:
  rifle: 1
  medkit: 3
offer_count: 4
fallback_reward: 80
`

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tn, err := Load(writeTuning(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tn.Seed != 1234 || tn.ChassisID != "vagrant" || tn.StatCap != 8 {
		t.Fatalf("tuning = %+v", tn)
	}

	cfg := tn.Config()
	if cfg.XPPerLevel != 120 || cfg.OfferCount != 4 || cfg.FallbackReward != 80 {
		t.Fatalf("config = %+v", cfg)
	}
	if cfg.StartingResources[campaign.ResourceCredits] != 450 {
		t.Fatalf("starting credits = %d", cfg.StartingResources[campaign.ResourceCredits])
	}
	if len(cfg.StartingCrew) != 2 || cfg.StartingCrew[1].Role != "medic" {
		t.Fatalf("starting crew = %+v", cfg.StartingCrew)
	}
	if cfg.StartingItems["medkit"] != 3 {
		t.Fatalf("starting items = %+v", cfg.StartingItems)
	}
}

func TestLoadRejectsUnknownResource(t *testing.T) {
	_, err := Load(writeTuning(t, "starting_resources:\n  PLUTONIUM: 5\n"))
	if err == nil {
		t.Fatal("Load accepted unknown resource")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	if _, err := Load(writeTuning(t, ":\n  - ]")); err == nil {
		t.Fatal("Load accepted malformed yaml")
	}
}
