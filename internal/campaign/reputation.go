package campaign

const (
	repMin     = 0
	repMax     = 100
	repNeutral = 50
)

func clampRep(v int) int {
	if v < repMin {
		return repMin
	}
	if v > repMax {
		return repMax
	}
	return v
}

// Reputation returns standing with a faction, 0..100 with 50 neutral.
// Factions never interacted with sit at neutral.
func (c *Campaign) Reputation(factionID string) int {
	if v, ok := c.reputation[factionID]; ok {
		return v
	}
	return repNeutral
}

// AdjustReputation applies a delta, clamped into [0,100]. Fails on empty or
// uncataloged faction ids. Publishes only when the stored value changes.
func (c *Campaign) AdjustReputation(factionID string, delta int) bool {
	if factionID == "" {
		return false
	}
	if _, ok := c.cats.Factions.Defs[factionID]; !ok {
		return false
	}
	old := c.Reputation(factionID)
	next := clampRep(old + delta)
	if next == old {
		return true
	}
	c.reputation[factionID] = next
	c.publish(ReputationChanged{FactionID: factionID, Old: old, New: next})
	return true
}
