package campaign

import "starhold.gg/internal/catalog"

// EquipItem places an inventory item into the matching slot of a living crew
// member. Fails when the crew is unknown or dead, the item is unknown, the
// item is not equipment, or its definition declares no slot. Whatever held
// the slot before is unequipped first — one item per slot, always.
func (c *Campaign) EquipItem(crewID, itemID int) bool {
	cm := c.Crew(crewID)
	if cm == nil || !cm.Alive {
		return false
	}
	it := c.ItemByID(itemID)
	if it == nil {
		return false
	}
	def, ok := c.cats.Items.Defs[it.DefID]
	if !ok || def.Category != catalog.CategoryEquipment {
		return false
	}
	slot, ok := parseSlot(def.Slot)
	if !ok {
		return false
	}

	if prevID, held := cm.Equipment[slot]; held {
		if prevID == itemID {
			return false
		}
		prev := c.ItemByID(prevID)
		prevDef := ""
		if prev != nil {
			prevDef = prev.DefID
		}
		delete(cm.Equipment, slot)
		c.publish(ItemUnequipped{CrewID: cm.ID, ItemID: prevID, DefID: prevDef, Slot: slot})
	}

	cm.Equipment[slot] = itemID
	c.publish(ItemEquipped{CrewID: cm.ID, ItemID: itemID, DefID: it.DefID, Slot: slot})
	return true
}

// UnequipItem clears a slot. Fails when the crew is unknown or the slot is
// already empty. The item stays in the hold.
func (c *Campaign) UnequipItem(crewID int, slot Slot) bool {
	cm := c.Crew(crewID)
	if cm == nil {
		return false
	}
	itemID, held := cm.Equipment[slot]
	if !held {
		return false
	}
	it := c.ItemByID(itemID)
	defID := ""
	if it != nil {
		defID = it.DefID
	}
	delete(cm.Equipment, slot)
	c.publish(ItemUnequipped{CrewID: cm.ID, ItemID: itemID, DefID: defID, Slot: slot})
	return true
}

func parseSlot(s string) (Slot, bool) {
	switch Slot(s) {
	case SlotWeapon, SlotArmor, SlotGadget:
		return Slot(s), true
	}
	return "", false
}
