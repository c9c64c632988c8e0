package campaign

// Roster returns the full crew list in hire order, dead members included.
// Read-only.
func (c *Campaign) Roster() []*CrewMember { return c.roster }

// Crew returns the member with the given id, or nil.
func (c *Campaign) Crew(id int) *CrewMember {
	for _, cm := range c.roster {
		if cm.ID == id {
			return cm
		}
	}
	return nil
}

func (c *Campaign) livingCrew() []*CrewMember {
	out := make([]*CrewMember, 0, len(c.roster))
	for _, cm := range c.roster {
		if cm.Alive {
			out = append(out, cm)
		}
	}
	return out
}

// addCrew creates a member with rolled base stats and appends it to the
// roster. Shared by hiring, the new-campaign factory, and the recruitment
// effect; callers publish their own event.
func (c *Campaign) addCrew(name, role string) *CrewMember {
	c.nextCrewID++
	cm := &CrewMember{
		ID:        c.nextCrewID,
		Name:      name,
		Role:      role,
		Base:      map[Stat]int{},
		Level:     1,
		Alive:     true,
		Equipment: map[Slot]int{},
	}
	for _, s := range AllStats {
		v := 2 + c.rng.NextInt(3)
		if v > c.cfg.StatCap {
			v = c.cfg.StatCap
		}
		cm.Base[s] = v
	}
	c.roster = append(c.roster, cm)
	return cm
}

// HireCrew adds a new living member and publishes a hired event. Empty names
// are refused.
func (c *Campaign) HireCrew(name, role string) *CrewMember {
	if name == "" {
		return nil
	}
	cm := c.addCrew(name, role)
	c.publish(CrewHired{CrewID: cm.ID, Name: cm.Name, Role: cm.Role})
	return cm
}

// FireCrew removes a living member from the roster. It fails on unknown ids,
// dead members (bury those instead), and on the last living member — a
// campaign must keep at least one deployable crew. Equipment is unequipped
// first; the items stay in the hold.
func (c *Campaign) FireCrew(id int) bool {
	cm := c.Crew(id)
	if cm == nil || !cm.Alive {
		return false
	}
	if len(c.livingCrew()) <= 1 {
		return false
	}
	c.releaseEquipment(cm)
	c.deleteCrew(id)
	c.publish(CrewFired{CrewID: cm.ID, Name: cm.Name})
	return true
}

// BuryCrew removes a dead member from the roster.
func (c *Campaign) BuryCrew(id int) bool {
	cm := c.Crew(id)
	if cm == nil || cm.Alive {
		return false
	}
	c.releaseEquipment(cm)
	c.deleteCrew(id)
	c.publish(CrewBuried{CrewID: cm.ID, Name: cm.Name})
	return true
}

// markDead flags a member dead and bumps the lifetime death counter. MIA is
// recorded on the event but currently has the same effect as death; kept as
// a distinct signal so a rescue mechanic can hook it later.
func (c *Campaign) markDead(cm *CrewMember, mia bool) {
	if !cm.Alive {
		return
	}
	cm.Alive = false
	c.stats.LifetimeDeaths++
	c.publish(CrewDied{CrewID: cm.ID, Name: cm.Name, MIA: mia})
}

// AddInjury appends an injury tag and publishes an injured event. Injuries
// reference the trait catalog for stat modifiers, are always permanent, and
// never fail once the member exists and lives.
func (c *Campaign) AddInjury(id int, injury string) bool {
	cm := c.Crew(id)
	if cm == nil || !cm.Alive {
		return false
	}
	if injury == "" {
		injury = DefaultInjury
	}
	cm.Injuries = append(cm.Injuries, injury)
	c.publish(CrewInjured{CrewID: cm.ID, Name: cm.Name, Injury: injury})
	return true
}

// GrantXP awards experience and applies the level-up rule: a member levels
// after Level*XPPerLevel experience at the current level, possibly several
// times per grant. Non-positive amounts are silent no-ops.
func (c *Campaign) GrantXP(id int, amount int) bool {
	cm := c.Crew(id)
	if cm == nil || !cm.Alive {
		return false
	}
	if amount <= 0 {
		return true
	}
	cm.XP += amount
	c.publish(CrewXPGained{CrewID: cm.ID, Amount: amount, Total: cm.XP})
	for cm.XP >= cm.Level*c.cfg.XPPerLevel {
		cm.XP -= cm.Level * c.cfg.XPPerLevel
		cm.Level++
		c.publish(CrewLeveledUp{CrewID: cm.ID, Level: cm.Level})
	}
	return true
}

// AddTrait attaches a catalog trait. Fails on unknown trait ids, dead or
// unknown members, or when already present.
func (c *Campaign) AddTrait(id int, traitID string) bool {
	cm := c.Crew(id)
	if cm == nil || !cm.Alive {
		return false
	}
	if _, ok := c.cats.Traits.Defs[traitID]; !ok {
		return false
	}
	if cm.hasTrait(traitID) {
		return false
	}
	cm.Traits = append(cm.Traits, traitID)
	c.publish(CrewTraitChanged{CrewID: cm.ID, TraitID: traitID, Added: true})
	return true
}

// RemoveTrait detaches a trait. Fails when not present or when the catalog
// marks the trait permanent (injuries are permanent and thus irremovable).
func (c *Campaign) RemoveTrait(id int, traitID string) bool {
	cm := c.Crew(id)
	if cm == nil {
		return false
	}
	if !cm.hasTrait(traitID) {
		return false
	}
	if def, ok := c.cats.Traits.Defs[traitID]; ok && def.Permanent {
		return false
	}
	cm.removeTrait(traitID)
	c.publish(CrewTraitChanged{CrewID: cm.ID, TraitID: traitID, Added: false})
	return true
}

func (c *Campaign) releaseEquipment(cm *CrewMember) {
	for _, s := range AllSlots {
		itemID, ok := cm.Equipment[s]
		if !ok {
			continue
		}
		it := c.ItemByID(itemID)
		defID := ""
		if it != nil {
			defID = it.DefID
		}
		delete(cm.Equipment, s)
		c.publish(ItemUnequipped{CrewID: cm.ID, ItemID: itemID, DefID: defID, Slot: s})
	}
}

func (c *Campaign) deleteCrew(id int) {
	out := c.roster[:0]
	for _, cm := range c.roster {
		if cm.ID != id {
			out = append(out, cm)
		}
	}
	c.roster = out
}
