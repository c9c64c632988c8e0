package campaign

import "testing"

func TestSpendAndAdd(t *testing.T) {
	c := newTestCampaign(t)
	rec := record(c)

	if !c.Spend(ResourceCredits, 200, "shipyard") {
		t.Fatal("Spend refused an affordable cost")
	}
	if got := c.Amount(ResourceCredits); got != 300 {
		t.Fatalf("credits = %d, want 300", got)
	}
	c.Add(ResourceCredits, 200, "refund")
	if got := c.Amount(ResourceCredits); got != 500 {
		t.Fatalf("credits after restore = %d, want 500", got)
	}

	if len(rec.events) != 2 {
		t.Fatalf("events = %d, want 2", len(rec.events))
	}
	spent := rec.events[0].(ResourceChanged)
	if spent.Old != 500 || spent.New != 300 || spent.Delta != -200 || spent.Reason != "shipyard" {
		t.Fatalf("spend event = %+v", spent)
	}
	added := rec.events[1].(ResourceChanged)
	if added.Old != 300 || added.New != 500 || added.Delta != 200 {
		t.Fatalf("add event = %+v", added)
	}
}

func TestSpendRefusesInsufficientBalance(t *testing.T) {
	c := newTestCampaign(t)
	rec := record(c)

	if c.Spend(ResourceFuel, 21, "jump") {
		t.Fatal("Spend succeeded past the balance")
	}
	if got := c.Amount(ResourceFuel); got != 20 {
		t.Fatalf("fuel = %d, want 20 untouched", got)
	}
	if len(rec.events) != 0 {
		t.Fatalf("refused spend published %d events", len(rec.events))
	}
}

func TestSpendRejectsUnknownAndNonPositive(t *testing.T) {
	c := newTestCampaign(t)

	if c.Spend(Resource("PLUTONIUM"), 1, "x") {
		t.Fatal("Spend accepted unknown resource")
	}
	if c.Spend(ResourceCredits, 0, "x") || c.Spend(ResourceCredits, -10, "x") {
		t.Fatal("Spend accepted non-positive amount")
	}
}

func TestCanAfford(t *testing.T) {
	c := newTestCampaign(t)

	if !c.CanAfford(ResourceCredits, 500) {
		t.Fatal("CanAfford refused exact balance")
	}
	if c.CanAfford(ResourceCredits, 501) {
		t.Fatal("CanAfford allowed past balance")
	}
	if c.CanAfford(ResourceCredits, 0) {
		t.Fatal("CanAfford allowed zero")
	}
	if c.CanAfford(Resource("PLUTONIUM"), 1) {
		t.Fatal("CanAfford allowed unknown resource")
	}
}

func TestLifetimeEarningsTrackCreditsOnly(t *testing.T) {
	c := newTestCampaign(t)

	start := c.CampaignStats().LifetimeEarnings
	if start != 500 {
		t.Fatalf("initial lifetime earnings = %d, want 500", start)
	}
	c.Add(ResourceCredits, 100, "job")
	c.Add(ResourceFuel, 100, "salvage")
	c.Spend(ResourceCredits, 600, "splurge")
	if got := c.CampaignStats().LifetimeEarnings; got != 600 {
		t.Fatalf("lifetime earnings = %d, want 600 (spends never reduce it)", got)
	}
}

func TestDrainStopsAtZero(t *testing.T) {
	c := newTestCampaign(t)

	taken := c.drain(ResourceFuel, 50, "storm")
	if taken != 20 {
		t.Fatalf("drain removed %d, want 20", taken)
	}
	if got := c.Amount(ResourceFuel); got != 0 {
		t.Fatalf("fuel = %d, want 0", got)
	}
	if c.drain(ResourceFuel, 5, "storm") != 0 {
		t.Fatal("drain on empty balance removed something")
	}
}
