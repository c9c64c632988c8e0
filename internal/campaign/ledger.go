package campaign

// Resource is one of the five ledger counters.
type Resource string

const (
	ResourceCredits Resource = "CREDITS"
	ResourceFuel    Resource = "FUEL"
	ResourceParts   Resource = "PARTS"
	ResourceMeds    Resource = "MEDS"
	ResourceAmmo    Resource = "AMMO"
)

// AllResources is the canonical iteration order for the ledger.
var AllResources = []Resource{ResourceCredits, ResourceFuel, ResourceParts, ResourceMeds, ResourceAmmo}

// KnownResource reports whether r is one of the five ledger kinds.
func KnownResource(r Resource) bool {
	for _, k := range AllResources {
		if k == r {
			return true
		}
	}
	return false
}

// Amount returns the current balance of a resource. Unknown kinds are 0.
func (c *Campaign) Amount(r Resource) int { return c.resources[r] }

// CanAfford reports whether a spend of the given amount would succeed.
// Callers presenting irreversible UI actions check this first; Spend refuses
// rather than clamps.
func (c *Campaign) CanAfford(r Resource, amount int) bool {
	return KnownResource(r) && amount > 0 && c.resources[r] >= amount
}

// Spend decrements a resource. It fails (no mutation) on unknown kinds,
// non-positive amounts, or insufficient balance; no kind ever goes negative.
func (c *Campaign) Spend(r Resource, amount int, reason string) bool {
	if !KnownResource(r) || amount <= 0 || c.resources[r] < amount {
		return false
	}
	old := c.resources[r]
	c.resources[r] = old - amount
	c.publish(ResourceChanged{Resource: r, Old: old, New: old - amount, Delta: -amount, Reason: reason})
	return true
}

// Add increments a resource. Unknown kinds and non-positive amounts are
// silent no-ops. Credits additionally accrue the lifetime-earnings counter.
func (c *Campaign) Add(r Resource, amount int, reason string) {
	if !KnownResource(r) || amount <= 0 {
		return
	}
	old := c.resources[r]
	c.resources[r] = old + amount
	if r == ResourceCredits {
		c.lifetimeEarnings += amount
		c.stats.LifetimeEarnings = c.lifetimeEarnings
	}
	c.publish(ResourceChanged{Resource: r, Old: old, New: old + amount, Delta: amount, Reason: reason})
}

// drain spends up to amount, down to zero. Used by the encounter effect
// engine, where "lose fuel" must not be ignored just because the player has
// less than the nominal cost. Deliberately looser than Spend; see Spend for
// the strict contract. Returns the quantity actually removed.
func (c *Campaign) drain(r Resource, amount int, reason string) int {
	if !KnownResource(r) || amount <= 0 {
		return 0
	}
	old := c.resources[r]
	take := amount
	if take > old {
		take = old
	}
	if take == 0 {
		return 0
	}
	c.resources[r] = old - take
	c.publish(ResourceChanged{Resource: r, Old: old, New: old - take, Delta: -take, Reason: reason})
	return take
}
