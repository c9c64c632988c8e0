package campaign

// EffectKind tags one atomic encounter effect. The set is closed: content
// may only reference these tags, and the engine dispatches exhaustively over
// them. Flow tags are present in effect streams but interpreted by the
// encounter-progression and mission-launch collaborators, never here.
type EffectKind string

const (
	EffectResource    EffectKind = "RESOURCE"
	EffectCrewInjury  EffectKind = "CREW_INJURY"
	EffectCrewXP      EffectKind = "CREW_XP"
	EffectCrewTrait   EffectKind = "CREW_TRAIT"
	EffectCrewRecruit EffectKind = "CREW_RECRUIT"
	EffectShipDamage  EffectKind = "SHIP_DAMAGE"
	EffectFactionRep  EffectKind = "FACTION_REP"
	EffectFlagSet     EffectKind = "FLAG_SET"
	EffectTimeDelay   EffectKind = "TIME_DELAY"
	EffectCargoAdd    EffectKind = "CARGO_ADD"
	EffectCargoRemove EffectKind = "CARGO_REMOVE"

	// Flow tags: structurally part of the stream, handled elsewhere.
	EffectGoToNode     EffectKind = "GO_TO_NODE"
	EffectEndEncounter EffectKind = "END_ENCOUNTER"
	EffectStartMission EffectKind = "START_MISSION"
)

// Effect is one atomic instruction against campaign state. Field meaning
// depends on the kind: Target is a resource kind, faction id, flag id, item
// definition id, node id, or crew role; Amount is a delta, XP grant, damage,
// or day count; Param is an injury tag, trait id, or recruit name; Flag
// selects add vs. remove for trait effects.
type Effect struct {
	Kind   EffectKind
	Target string
	Amount int
	Param  string
	Flag   bool
}

// ApplyEncounterOutcome applies an instance's pending effects to the
// campaign, each independently and in order. A failing effect never aborts
// the rest of the list: narrative consequences are best-effort inputs to the
// ledger, not a transaction. Returns the number of effects applied, publishes
// one summary event, and — when this instance is the active encounter —
// clears the active reference and discards the pending list.
func (c *Campaign) ApplyEncounterOutcome(inst *EncounterInstance) int {
	if inst == nil || len(inst.Pending) == 0 {
		return 0
	}
	total := len(inst.Pending)
	applied := 0
	for _, e := range inst.Pending {
		if c.applyEffect(inst, e) {
			applied++
		}
	}
	inst.Pending = nil
	c.publish(EncounterApplied{TemplateID: inst.TemplateID, Applied: applied, Total: total})
	if c.encounter == inst {
		c.encounter = nil
	}
	return applied
}

// applyEffect interprets one effect. Returns whether it counted as applied.
// Unknown definition/trait/faction ids are the effect's own failure, never a
// crash; zero and negative amounts on additive effects are successful no-ops.
func (c *Campaign) applyEffect(inst *EncounterInstance, e Effect) bool {
	switch e.Kind {
	case EffectResource:
		r := Resource(e.Target)
		if !KnownResource(r) {
			return false
		}
		switch {
		case e.Amount > 0:
			c.Add(r, e.Amount, "encounter")
		case e.Amount < 0:
			// Drain to zero and still count as applied: "lose fuel" must
			// not be ignored just because less than the nominal cost is
			// left. Spend's strict refusal is for player-initiated costs.
			c.drain(r, -e.Amount, "encounter")
		}
		return true

	case EffectCrewInjury:
		cm := c.targetCrewForEffect(inst)
		if cm == nil {
			return false
		}
		return c.AddInjury(cm.ID, e.Param)

	case EffectCrewXP:
		if e.Amount <= 0 {
			return true
		}
		cm := c.targetCrewForEffect(inst)
		if cm == nil {
			return false
		}
		return c.GrantXP(cm.ID, e.Amount)

	case EffectCrewTrait:
		cm := c.targetCrewForEffect(inst)
		if cm == nil {
			return false
		}
		if e.Flag {
			return c.AddTrait(cm.ID, e.Param)
		}
		return c.RemoveTrait(cm.ID, e.Param)

	case EffectCrewRecruit:
		if e.Param == "" {
			return false
		}
		role := e.Target
		if role == "" {
			role = "soldier"
		}
		cm := c.addCrew(e.Param, role)
		c.publish(CrewRecruited{CrewID: cm.ID, Name: cm.Name, Role: cm.Role})
		return true

	case EffectShipDamage:
		if e.Amount <= 0 {
			return true
		}
		c.DamageShip(e.Amount, "encounter")
		return true

	case EffectFactionRep:
		if e.Target == "" {
			return false
		}
		return c.AdjustReputation(e.Target, e.Amount)

	case EffectFlagSet:
		if e.Target == "" {
			return false
		}
		return c.SetFlag(e.Target, e.Flag)

	case EffectTimeDelay:
		if e.Amount <= 0 {
			return true
		}
		c.AdvanceClock(e.Amount)
		return true

	case EffectCargoAdd:
		if e.Target == "" {
			return false
		}
		qty := e.Amount
		if qty <= 0 {
			qty = 1
		}
		return c.AddItem(e.Target, qty) != nil

	case EffectCargoRemove:
		if e.Target == "" {
			return false
		}
		qty := e.Amount
		if qty <= 0 {
			qty = 1
		}
		return c.RemoveByDef(e.Target, qty)

	case EffectGoToNode, EffectEndEncounter, EffectStartMission:
		// Flow control is the progression/mission collaborators' job; the
		// effect is well-formed, so it counts as applied here.
		return true
	}
	return false
}

// targetCrewForEffect resolves which member a crew effect hits: the one that
// performed the last skill check when still alive, otherwise a uniform pick
// among the living from the campaign's deterministic stream.
func (c *Campaign) targetCrewForEffect(inst *EncounterInstance) *CrewMember {
	if inst != nil {
		if id, ok := parseCrewID(inst.Param(ParamLastCheckCrew)); ok {
			if cm := c.Crew(id); cm != nil && cm.Alive {
				return cm
			}
		}
	}
	living := c.livingCrew()
	if len(living) == 0 {
		return nil
	}
	return living[c.rng.NextInt(len(living))]
}

func parseCrewID(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, false
		}
		n = n*10 + int(ch-'0')
	}
	return n, true
}
