package campaign

import "starhold.gg/internal/catalog"

// ParamLastCheckCrew names the resolved parameter recording which crew
// member performed the most recent skill check in an encounter. Crew-targeted
// effects prefer this member when picking a target.
const ParamLastCheckCrew = "last_check_crew_id"

// EncounterInstance is the runtime state of one active narrative encounter:
// a pointer into its immutable template, resolved parameters, and the
// effects queued by option selection but not yet applied to the campaign.
// The progression layer advances nodes and queues effects; the campaign
// applies the whole pending list at resolution and discards the instance.
type EncounterInstance struct {
	TemplateID string
	Node       string
	Params     map[string]string
	Pending    []Effect
}

// SetParam records a resolved parameter on the instance.
func (inst *EncounterInstance) SetParam(key, value string) {
	if inst == nil || key == "" {
		return
	}
	if inst.Params == nil {
		inst.Params = map[string]string{}
	}
	inst.Params[key] = value
}

// Param reads a resolved parameter.
func (inst *EncounterInstance) Param(key string) string {
	if inst == nil {
		return ""
	}
	return inst.Params[key]
}

// Advance moves the current-node pointer. Validity of the node id against
// the template is the progression layer's concern.
func (inst *EncounterInstance) Advance(node string) {
	if inst == nil {
		return
	}
	inst.Node = node
}

// Queue appends effects to the pending list.
func (inst *EncounterInstance) Queue(effects ...Effect) {
	if inst == nil {
		return
	}
	inst.Pending = append(inst.Pending, effects...)
}

// ActiveEncounter returns the in-progress encounter, or nil.
func (c *Campaign) ActiveEncounter() *EncounterInstance { return c.encounter }

// StartEncounter begins an encounter from a cataloged template. Fails when
// the template is unknown or another encounter is already active.
func (c *Campaign) StartEncounter(templateID string) *EncounterInstance {
	if c.encounter != nil {
		return nil
	}
	tmpl, ok := c.cats.Encounters.ByID[templateID]
	if !ok {
		return nil
	}
	c.encounter = &EncounterInstance{
		TemplateID: tmpl.ID,
		Node:       tmpl.StartNode,
		Params:     map[string]string{},
	}
	return c.encounter
}

// EffectsFromDefs converts catalog effect definitions (the wire form used in
// encounter content) into engine effects. Unknown type strings map to an
// invalid effect that the engine counts as not applied.
func EffectsFromDefs(defs []catalog.EffectDef) []Effect {
	out := make([]Effect, 0, len(defs))
	for _, d := range defs {
		out = append(out, Effect{
			Kind:   EffectKind(d.Type),
			Target: d.Target,
			Amount: d.Amount,
			Param:  d.Param,
			Flag:   d.Flag,
		})
	}
	return out
}
