package campaign

import "testing"

func acceptTestJob(t *testing.T, c *Campaign) *Job {
	t.Helper()
	c.AddOffer(&Job{
		EmployerID:      "syndicate",
		TargetFactionID: "coalition",
		Reward: Reward{
			Credits:   300,
			Resources: map[Resource]int{ResourceFuel: 5},
			Items:     map[string]int{"medkit": 2},
		},
		RepSuccess: map[string]int{"syndicate": 10, "coalition": -5},
		RepFailure: map[string]int{"syndicate": -10},
	})
	j := c.Offers()[len(c.Offers())-1]
	if !c.AcceptJob(j.ID) {
		t.Fatalf("AcceptJob failed")
	}
	return j
}

func TestVictoryAppliesJobReward(t *testing.T) {
	c := newTestCampaign(t)
	acceptTestJob(t, c)

	c.ApplyMissionOutput(MissionOutput{Outcome: OutcomeVictory})

	if got := c.Amount(ResourceCredits); got != 800 {
		t.Fatalf("credits = %d, want 800", got)
	}
	if got := c.Amount(ResourceFuel); got != 25 {
		t.Fatalf("fuel = %d, want 25", got)
	}
	if got := c.CountByDef("medkit"); got != 2 {
		t.Fatalf("medkits = %d, want 2", got)
	}
	if got := c.Reputation("syndicate"); got != 60 {
		t.Fatalf("syndicate rep = %d, want 60", got)
	}
	if got := c.Reputation("coalition"); got != 45 {
		t.Fatalf("coalition rep = %d, want 45", got)
	}
	if c.CurrentJob() != nil {
		t.Fatal("job still active after victory")
	}
	if got := c.CampaignStats().MissionsCompleted; got != 1 {
		t.Fatalf("missions completed = %d, want 1", got)
	}
}

func TestVictoryWithoutJobPaysFallback(t *testing.T) {
	cfg := testConfig(42)
	cfg.FallbackReward = 75
	c, err := New(cfg, testCatalogs(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.ApplyMissionOutput(MissionOutput{Outcome: OutcomeVictory})
	if got := c.Amount(ResourceCredits); got != 575 {
		t.Fatalf("credits = %d, want 575", got)
	}
}

func TestDefeatAppliesFullPenalty(t *testing.T) {
	c := newTestCampaign(t)
	acceptTestJob(t, c)

	c.ApplyMissionOutput(MissionOutput{Outcome: OutcomeDefeat})

	if got := c.Amount(ResourceCredits); got != 500 {
		t.Fatalf("credits = %d, want 500 (no reward on defeat)", got)
	}
	if got := c.Reputation("syndicate"); got != 40 {
		t.Fatalf("syndicate rep = %d, want 40", got)
	}
	if c.CurrentJob() != nil {
		t.Fatal("job still active after defeat")
	}
	if got := c.CampaignStats().MissionsFailed; got != 1 {
		t.Fatalf("missions failed = %d, want 1", got)
	}
}

func TestRetreatHalvesPenalty(t *testing.T) {
	c := newTestCampaign(t)
	acceptTestJob(t, c)

	c.ApplyMissionOutput(MissionOutput{Outcome: OutcomeRetreat})
	if got := c.Reputation("syndicate"); got != 45 {
		t.Fatalf("syndicate rep = %d, want 45 (half penalty)", got)
	}
	if got := c.CampaignStats().MissionsFailed; got != 1 {
		t.Fatalf("missions failed = %d, want 1", got)
	}
}

func TestCrewResultsApplied(t *testing.T) {
	c := newTestCampaign(t)
	dead, hurt := c.Roster()[0], c.Roster()[1]

	c.ApplyMissionOutput(MissionOutput{
		Outcome: OutcomeVictory,
		Crew: []CrewResult{
			{CrewID: dead.ID, Status: CrewStatusMIA},
			{CrewID: hurt.ID, Status: CrewStatusOK, Injuries: []string{"burned"}, XP: 120},
			{CrewID: 999, Status: CrewStatusOK, XP: 50}, // unknown, skipped
		},
	})

	if dead.Alive {
		t.Fatal("MIA member still alive")
	}
	if len(hurt.Injuries) != 1 || hurt.Injuries[0] != "burned" {
		t.Fatalf("injuries = %v", hurt.Injuries)
	}
	if hurt.Level != 2 || hurt.XP != 20 {
		t.Fatalf("level/xp = %d/%d, want 2/20", hurt.Level, hurt.XP)
	}
	if got := c.CampaignStats().LifetimeDeaths; got != 1 {
		t.Fatalf("lifetime deaths = %d, want 1", got)
	}
}

func TestAmmoSpendSummedAcrossCrew(t *testing.T) {
	c := newTestCampaign(t)
	a, b := c.Roster()[0], c.Roster()[1]

	c.ApplyMissionOutput(MissionOutput{
		Outcome: OutcomeVictory,
		Crew: []CrewResult{
			{CrewID: a.ID, Status: CrewStatusOK, AmmoUsed: 12},
			{CrewID: b.ID, Status: CrewStatusOK, AmmoUsed: 8},
		},
	})
	if got := c.Amount(ResourceAmmo); got != 20 {
		t.Fatalf("ammo = %d, want 20", got)
	}
}

func TestAmmoSpendDrainsWhenShort(t *testing.T) {
	c := newTestCampaign(t)
	a := c.Roster()[0]

	c.ApplyMissionOutput(MissionOutput{
		Outcome: OutcomeDefeat,
		Crew:    []CrewResult{{CrewID: a.ID, Status: CrewStatusOK, AmmoUsed: 90}},
	})
	if got := c.Amount(ResourceAmmo); got != 0 {
		t.Fatalf("ammo = %d, want 0 (drained, never negative)", got)
	}
}

func TestLootApplied(t *testing.T) {
	c := newTestCampaign(t)
	rec := record(c)

	c.ApplyMissionOutput(MissionOutput{
		Outcome: OutcomeVictory,
		Loot: []Loot{
			{Kind: LootCredits, Amount: 50},
			{Kind: LootResource, Resource: ResourceParts, Amount: 4},
			{Kind: LootItem, DefID: "ore", Qty: 2},
			{Kind: LootItem, DefID: "phantom", Qty: 1}, // unknown def, dropped
		},
	})

	if got := c.Amount(ResourceCredits); got != 650 {
		t.Fatalf("credits = %d, want 650 (50 loot + 100 fallback)", got)
	}
	if got := c.Amount(ResourceParts); got != 14 {
		t.Fatalf("parts = %d, want 14", got)
	}
	if got := c.CountByDef("ore"); got != 2 {
		t.Fatalf("ore = %d, want 2", got)
	}

	loots := 0
	for _, e := range rec.events {
		if e.EventKind() == KindLootAcquired {
			loots++
		}
	}
	if loots != 1 {
		t.Fatalf("loot events = %d, want 1 (only placed item loot)", loots)
	}
}
