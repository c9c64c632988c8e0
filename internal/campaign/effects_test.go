package campaign

import "testing"

func TestApplyEncounterOutcomeFailSoft(t *testing.T) {
	c := newTestCampaign(t)
	inst := c.StartEncounter("derelict")
	inst.Queue(
		Effect{Kind: EffectResource, Target: "CREDITS", Amount: 100},
		Effect{Kind: EffectKind("EXPLODE")}, // unknown, must not abort the rest
		Effect{Kind: EffectFlagSet, Target: "met_hermit", Flag: true},
	)

	applied := c.ApplyEncounterOutcome(inst)
	if applied != 2 {
		t.Fatalf("applied = %d, want 2", applied)
	}
	if got := c.Amount(ResourceCredits); got != 600 {
		t.Fatalf("credits = %d, want 600", got)
	}
	if !c.Flag("met_hermit") {
		t.Fatal("flag effect after the failing one was skipped")
	}
	if c.ActiveEncounter() != nil {
		t.Fatal("active encounter not cleared after resolution")
	}
}

func TestApplyEncounterOutcomeEmpty(t *testing.T) {
	c := newTestCampaign(t)
	if c.ApplyEncounterOutcome(nil) != 0 {
		t.Fatal("nil instance applied effects")
	}
	inst := c.StartEncounter("derelict")
	if c.ApplyEncounterOutcome(inst) != 0 {
		t.Fatal("empty pending list applied effects")
	}
}

func TestResourceEffectDrainsToZero(t *testing.T) {
	c := newTestCampaign(t)
	inst := c.StartEncounter("derelict")
	inst.Queue(Effect{Kind: EffectResource, Target: "FUEL", Amount: -50})

	// Fuel is 20; losing 50 empties the tank and still counts as applied.
	if applied := c.ApplyEncounterOutcome(inst); applied != 1 {
		t.Fatalf("applied = %d, want 1", applied)
	}
	if got := c.Amount(ResourceFuel); got != 0 {
		t.Fatalf("fuel = %d, want 0", got)
	}
}

func TestResourceEffectUnknownKindFails(t *testing.T) {
	c := newTestCampaign(t)
	inst := c.StartEncounter("derelict")
	inst.Queue(Effect{Kind: EffectResource, Target: "PLUTONIUM", Amount: 10})
	if applied := c.ApplyEncounterOutcome(inst); applied != 0 {
		t.Fatalf("applied = %d, want 0", applied)
	}
}

func TestCrewEffectsPreferLastCheckCrew(t *testing.T) {
	c := newTestCampaign(t)
	target := c.Roster()[1]
	inst := c.StartEncounter("derelict")
	inst.SetParam(ParamLastCheckCrew, "2")
	inst.Queue(Effect{Kind: EffectCrewInjury, Param: "burned"})

	if applied := c.ApplyEncounterOutcome(inst); applied != 1 {
		t.Fatalf("applied = %d, want 1", applied)
	}
	if len(target.Injuries) != 1 || target.Injuries[0] != "burned" {
		t.Fatalf("injuries on crew 2 = %v", target.Injuries)
	}
	if got := c.Roster()[0].Injuries; len(got) != 0 {
		t.Fatalf("wrong crew injured: %v", got)
	}
}

func TestCrewEffectsFallBackToRandomLiving(t *testing.T) {
	c := newTestCampaign(t)
	c.markDead(c.Roster()[1], false)
	inst := c.StartEncounter("derelict")
	inst.SetParam(ParamLastCheckCrew, "2") // dead, must not be targeted
	inst.Queue(Effect{Kind: EffectCrewXP, Amount: 25})

	if applied := c.ApplyEncounterOutcome(inst); applied != 1 {
		t.Fatalf("applied = %d, want 1", applied)
	}
	if got := c.Roster()[0].XP; got != 25 {
		t.Fatalf("xp on sole living member = %d, want 25", got)
	}
}

func TestCrewEffectsFailWithNoLivingCrew(t *testing.T) {
	c := newTestCampaign(t)
	for _, cm := range c.Roster() {
		c.markDead(cm, false)
	}
	inst := c.StartEncounter("derelict")
	inst.Queue(Effect{Kind: EffectCrewInjury, Param: "burned"})
	if applied := c.ApplyEncounterOutcome(inst); applied != 0 {
		t.Fatalf("applied = %d, want 0", applied)
	}
}

func TestRecruitEffect(t *testing.T) {
	c := newTestCampaign(t)
	inst := c.StartEncounter("derelict")
	inst.Queue(
		Effect{Kind: EffectCrewRecruit, Param: "Sable", Target: "pilot"},
		Effect{Kind: EffectCrewRecruit}, // nameless, fails
	)
	if applied := c.ApplyEncounterOutcome(inst); applied != 1 {
		t.Fatalf("applied = %d, want 1", applied)
	}
	if len(c.Roster()) != 3 {
		t.Fatalf("roster size = %d, want 3", len(c.Roster()))
	}
	recruit := c.Roster()[2]
	if recruit.Name != "Sable" || recruit.Role != "pilot" {
		t.Fatalf("recruit = %+v", recruit)
	}
}

func TestShipTimeFlagAndCargoEffects(t *testing.T) {
	c := newTestCampaign(t)
	c.AddItem("ore", 2)
	inst := c.StartEncounter("derelict")
	inst.Queue(
		Effect{Kind: EffectShipDamage, Amount: 5},
		Effect{Kind: EffectTimeDelay, Amount: 2},
		Effect{Kind: EffectFactionRep, Target: "syndicate", Amount: -10},
		Effect{Kind: EffectCargoAdd, Target: "medkit", Amount: 3},
		Effect{Kind: EffectCargoRemove, Target: "ore", Amount: 1},
	)
	if applied := c.ApplyEncounterOutcome(inst); applied != 5 {
		t.Fatalf("applied = %d, want 5", applied)
	}
	if c.Ship().Hull != 35 {
		t.Fatalf("hull = %d, want 35", c.Ship().Hull)
	}
	if c.Day() != 2 {
		t.Fatalf("day = %d, want 2", c.Day())
	}
	if got := c.Reputation("syndicate"); got != 40 {
		t.Fatalf("syndicate rep = %d, want 40", got)
	}
	if got := c.CountByDef("medkit"); got != 3 {
		t.Fatalf("medkits = %d, want 3", got)
	}
	if got := c.CountByDef("ore"); got != 1 {
		t.Fatalf("ore = %d, want 1", got)
	}
}

func TestFlowTagsCountAsApplied(t *testing.T) {
	c := newTestCampaign(t)
	inst := c.StartEncounter("derelict")
	inst.Queue(
		Effect{Kind: EffectGoToNode, Target: "hold"},
		Effect{Kind: EffectEndEncounter},
		Effect{Kind: EffectStartMission, Target: "ambush"},
	)
	if applied := c.ApplyEncounterOutcome(inst); applied != 3 {
		t.Fatalf("applied = %d, want 3", applied)
	}
}

func TestStartEncounter(t *testing.T) {
	c := newTestCampaign(t)

	if c.StartEncounter("phantom") != nil {
		t.Fatal("StartEncounter accepted unknown template")
	}
	inst := c.StartEncounter("derelict")
	if inst == nil {
		t.Fatal("StartEncounter failed")
	}
	if inst.Node != "entry" {
		t.Fatalf("start node = %s, want entry", inst.Node)
	}
	if c.StartEncounter("derelict") != nil {
		t.Fatal("StartEncounter allowed a second active encounter")
	}
}

func TestEffectsFromDefs(t *testing.T) {
	defs := testCatalogs().Encounters.ByID["derelict"].Nodes["entry"].Options[0].Effects
	effects := EffectsFromDefs(defs)
	if len(effects) != 2 {
		t.Fatalf("effects = %d, want 2", len(effects))
	}
	if effects[0].Kind != EffectResource || effects[0].Target != "FUEL" || effects[0].Amount != -10 {
		t.Fatalf("effects[0] = %+v", effects[0])
	}
	if effects[1].Kind != EffectGoToNode {
		t.Fatalf("effects[1] = %+v", effects[1])
	}
}

func TestEncounterSummaryEvent(t *testing.T) {
	c := newTestCampaign(t)
	inst := c.StartEncounter("derelict")
	inst.Queue(
		Effect{Kind: EffectResource, Target: "CREDITS", Amount: 10},
		Effect{Kind: EffectKind("EXPLODE")},
	)
	rec := record(c)
	c.ApplyEncounterOutcome(inst)

	var summary *EncounterApplied
	for _, e := range rec.events {
		if ev, ok := e.(EncounterApplied); ok {
			summary = &ev
		}
	}
	if summary == nil {
		t.Fatal("no summary event published")
	}
	if summary.TemplateID != "derelict" || summary.Applied != 1 || summary.Total != 2 {
		t.Fatalf("summary = %+v", summary)
	}
}
