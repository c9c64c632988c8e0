package campaign

// Outcome is the overall result of a tactical mission.
type Outcome string

const (
	OutcomeVictory Outcome = "VICTORY"
	OutcomeDefeat  Outcome = "DEFEAT"
	OutcomeRetreat Outcome = "RETREAT"
	OutcomeAbort   Outcome = "ABORT"
)

// CrewStatus is a crew member's state at mission end. MIA currently has the
// same campaign effect as DEAD; the enum keeps them distinct so a rescue
// mechanic can treat MIA differently later.
type CrewStatus string

const (
	CrewStatusOK   CrewStatus = "OK"
	CrewStatusDead CrewStatus = "DEAD"
	CrewStatusMIA  CrewStatus = "MIA"
)

// CrewResult is one member's per-mission outcome from the tactical runner.
type CrewResult struct {
	CrewID   int
	Status   CrewStatus
	Injuries []string
	XP       int
	AmmoUsed int
}

// LootKind selects the loot payload.
type LootKind string

const (
	LootCredits  LootKind = "CREDITS"
	LootResource LootKind = "RESOURCE"
	LootItem     LootKind = "ITEM"
)

// Loot is one dropped reward from the tactical runner.
type Loot struct {
	Kind     LootKind
	Amount   int
	Resource Resource // for LootResource
	DefID    string   // for LootItem
	Qty      int      // for LootItem
}

// MissionOutput is the complete result of a finished tactical mission.
type MissionOutput struct {
	Outcome Outcome
	Crew    []CrewResult
	Loot    []Loot
}

// ApplyMissionOutput settles a finished mission against the campaign: crew
// deaths, injuries and experience, ammo expenditure, loot, and the accepted
// job's reward or penalty. Unknown crew ids and unplaceable loot are skipped
// rather than fatal; the worst case is a reward that did not fit.
func (c *Campaign) ApplyMissionOutput(out MissionOutput) {
	ammo := 0
	for _, cr := range out.Crew {
		ammo += cr.AmmoUsed
		cm := c.Crew(cr.CrewID)
		if cm == nil {
			continue
		}
		switch cr.Status {
		case CrewStatusDead, CrewStatusMIA:
			c.markDead(cm, cr.Status == CrewStatusMIA)
			continue
		}
		for _, injury := range cr.Injuries {
			c.AddInjury(cm.ID, injury)
		}
		if cr.XP > 0 {
			c.GrantXP(cm.ID, cr.XP)
		}
	}

	if ammo > 0 {
		if !c.Spend(ResourceAmmo, ammo, "mission") {
			// The rounds were fired either way; empty the reserve.
			c.drain(ResourceAmmo, ammo, "mission")
		}
	}

	for _, l := range out.Loot {
		switch l.Kind {
		case LootCredits:
			c.Add(ResourceCredits, l.Amount, "loot")
		case LootResource:
			c.Add(l.Resource, l.Amount, "loot")
		case LootItem:
			qty := l.Qty
			if qty <= 0 {
				qty = 1
			}
			if it := c.AddItem(l.DefID, qty); it != nil {
				c.publish(LootAcquired{ItemID: it.ID, DefID: it.DefID, Qty: qty})
			}
		}
	}

	switch out.Outcome {
	case OutcomeVictory:
		c.stats.MissionsCompleted++
		if job := c.currentJob; job != nil {
			c.applyReward(job.Reward)
			c.applyRepDeltas(job.RepSuccess, 1)
			c.clearJob(true)
		} else {
			c.Add(ResourceCredits, c.cfg.FallbackReward, "mission_reward")
		}
	case OutcomeRetreat:
		c.stats.MissionsFailed++
		if job := c.currentJob; job != nil {
			c.applyRepDeltas(job.RepFailure, 2)
			c.clearJob(false)
		}
	case OutcomeDefeat, OutcomeAbort:
		c.stats.MissionsFailed++
		if job := c.currentJob; job != nil {
			c.applyRepDeltas(job.RepFailure, 1)
			c.clearJob(false)
		}
	}
}

func (c *Campaign) applyReward(r Reward) {
	if r.Credits > 0 {
		c.Add(ResourceCredits, r.Credits, "job_reward")
	}
	for _, res := range AllResources {
		if amt := r.Resources[res]; amt > 0 {
			c.Add(res, amt, "job_reward")
		}
	}
	for _, defID := range sortedKeys(r.Items) {
		c.AddItem(defID, r.Items[defID])
	}
}

// applyRepDeltas applies each faction delta divided by div (div=2 halves a
// failure penalty on retreat).
func (c *Campaign) applyRepDeltas(deltas map[string]int, div int) {
	for _, faction := range sortedKeys(deltas) {
		d := deltas[faction] / div
		if d != 0 {
			c.AdjustReputation(faction, d)
		}
	}
}
