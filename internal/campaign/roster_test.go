package campaign

import "testing"

func TestHireCrew(t *testing.T) {
	c := newTestCampaign(t)
	rec := record(c)

	cm := c.HireCrew("Juno", "pilot")
	if cm == nil {
		t.Fatal("HireCrew failed")
	}
	if cm.ID != 3 {
		t.Fatalf("crew id = %d, want 3", cm.ID)
	}
	if c.HireCrew("", "pilot") != nil {
		t.Fatal("HireCrew accepted empty name")
	}
	if len(rec.events) != 1 {
		t.Fatalf("events = %d, want 1", len(rec.events))
	}
	ev := rec.events[0].(CrewHired)
	if ev.CrewID != cm.ID || ev.Name != "Juno" {
		t.Fatalf("CrewHired = %+v", ev)
	}
}

func TestFireCrewNeverRemovesLastLiving(t *testing.T) {
	c := newTestCampaign(t)
	first, second := c.Roster()[0], c.Roster()[1]

	if !c.FireCrew(second.ID) {
		t.Fatal("FireCrew refused a valid firing")
	}
	if c.FireCrew(first.ID) {
		t.Fatal("FireCrew removed the last living member")
	}
	if len(c.Roster()) != 1 {
		t.Fatalf("roster size = %d, want 1", len(c.Roster()))
	}
}

func TestFireCrewReleasesEquipmentToHold(t *testing.T) {
	c := newTestCampaign(t)
	crew := c.Roster()[0]
	rifle := c.AddItem("rifle", 1)
	c.EquipItem(crew.ID, rifle.ID)

	if !c.FireCrew(crew.ID) {
		t.Fatal("FireCrew failed")
	}
	if c.ItemByID(rifle.ID) == nil {
		t.Fatal("fired crew's rifle vanished from the hold")
	}
}

func TestBuryCrewRequiresDead(t *testing.T) {
	c := newTestCampaign(t)
	cm := c.Roster()[0]

	if c.BuryCrew(cm.ID) {
		t.Fatal("BuryCrew accepted a living member")
	}
	c.markDead(cm, false)
	if c.FireCrew(cm.ID) {
		t.Fatal("FireCrew accepted a dead member")
	}
	if !c.BuryCrew(cm.ID) {
		t.Fatal("BuryCrew refused a dead member")
	}
	if c.Crew(cm.ID) != nil {
		t.Fatal("buried member still on roster")
	}
}

func TestMarkDeadCountsOnce(t *testing.T) {
	c := newTestCampaign(t)
	cm := c.Roster()[0]

	c.markDead(cm, false)
	c.markDead(cm, false)
	if got := c.CampaignStats().LifetimeDeaths; got != 1 {
		t.Fatalf("lifetime deaths = %d, want 1", got)
	}
}

func TestGrantXPLevelUp(t *testing.T) {
	c := newTestCampaign(t)
	cm := c.Roster()[0]
	rec := record(c)

	// Level 1 needs 100, level 2 needs 200; 350 XP crosses both.
	if !c.GrantXP(cm.ID, 350) {
		t.Fatal("GrantXP failed")
	}
	if cm.Level != 3 {
		t.Fatalf("level = %d, want 3", cm.Level)
	}
	if cm.XP != 50 {
		t.Fatalf("residual xp = %d, want 50", cm.XP)
	}

	levelUps := 0
	for _, e := range rec.events {
		if e.EventKind() == KindCrewLeveledUp {
			levelUps++
		}
	}
	if levelUps != 2 {
		t.Fatalf("level-up events = %d, want 2", levelUps)
	}
}

func TestGrantXPNonPositiveIsNoOp(t *testing.T) {
	c := newTestCampaign(t)
	cm := c.Roster()[0]
	rec := record(c)

	if !c.GrantXP(cm.ID, 0) || !c.GrantXP(cm.ID, -10) {
		t.Fatal("non-positive grant reported failure")
	}
	if cm.XP != 0 || len(rec.events) != 0 {
		t.Fatalf("non-positive grant mutated state: xp=%d events=%d", cm.XP, len(rec.events))
	}
}

func TestTraits(t *testing.T) {
	c := newTestCampaign(t)
	cm := c.Roster()[0]

	if !c.AddTrait(cm.ID, "brave") {
		t.Fatal("AddTrait failed")
	}
	if c.AddTrait(cm.ID, "brave") {
		t.Fatal("AddTrait accepted a duplicate")
	}
	if c.AddTrait(cm.ID, "phantom") {
		t.Fatal("AddTrait accepted unknown trait")
	}
	if !c.RemoveTrait(cm.ID, "brave") {
		t.Fatal("RemoveTrait failed")
	}
	if c.RemoveTrait(cm.ID, "brave") {
		t.Fatal("RemoveTrait succeeded on absent trait")
	}
}

func TestPermanentTraitsCannotBeRemoved(t *testing.T) {
	c := newTestCampaign(t)
	cm := c.Roster()[0]

	if !c.AddTrait(cm.ID, "wounded") {
		t.Fatal("AddTrait failed for permanent trait")
	}
	if c.RemoveTrait(cm.ID, "wounded") {
		t.Fatal("RemoveTrait removed a permanent trait")
	}
}

func TestAddInjuryDefaultsTag(t *testing.T) {
	c := newTestCampaign(t)
	cm := c.Roster()[0]

	if !c.AddInjury(cm.ID, "") {
		t.Fatal("AddInjury failed")
	}
	if len(cm.Injuries) != 1 || cm.Injuries[0] != DefaultInjury {
		t.Fatalf("injuries = %v, want [%s]", cm.Injuries, DefaultInjury)
	}
}

func TestEffectiveStat(t *testing.T) {
	c := newTestCampaign(t)
	cm := c.Roster()[0]
	cm.Base[StatAim] = 4

	rifle := c.AddItem("rifle", 1)
	c.EquipItem(cm.ID, rifle.ID)
	if got := c.EffectiveStat(cm.ID, StatAim); got != 6 {
		t.Fatalf("aim with rifle = %d, want 6", got)
	}

	c.AddInjury(cm.ID, "burned")
	if got := c.EffectiveStat(cm.ID, StatAim); got != 4 {
		t.Fatalf("aim with rifle and burn = %d, want 4", got)
	}
}

func TestEffectiveStatFloorsAtZero(t *testing.T) {
	c := newTestCampaign(t)
	cm := c.Roster()[0]
	cm.Base[StatAim] = 1

	c.AddInjury(cm.ID, "burned")
	if got := c.EffectiveStat(cm.ID, StatAim); got != 0 {
		t.Fatalf("aim = %d, want floor at 0", got)
	}
}
