package campaign

import "starhold.gg/internal/catalog"

// Item is a mutable instance living in the cargo hold, referencing an
// immutable catalog definition. Stackable categories (consumable, cargo)
// keep one instance per definition; equipment and modules never merge.
type Item struct {
	ID    int
	DefID string
	Qty   int
}

// ItemByID returns the instance with the given id, or nil.
func (c *Campaign) ItemByID(id int) *Item {
	for _, it := range c.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Items returns the cargo hold in stable id order. Read-only.
func (c *Campaign) Items() []*Item { return c.items }

// CargoCapacity is the ship's cargo volume from its chassis definition.
func (c *Campaign) CargoCapacity() int {
	def, ok := c.cats.Chassis.Defs[c.ship.ChassisID]
	if !ok {
		return 0
	}
	return def.Cargo
}

// UsedVolume is the sum of definition volume times quantity over all items.
func (c *Campaign) UsedVolume() int {
	total := 0
	for _, it := range c.items {
		total += c.defVolume(it.DefID) * it.Qty
	}
	return total
}

// defVolume is the per-unit cargo volume for a definition. Modules occupy
// ship slots, not cargo space, so they are always volume zero; this keeps
// RemoveModule infallible on capacity.
func (c *Campaign) defVolume(defID string) int {
	def, ok := c.cats.Items.Defs[defID]
	if !ok {
		return 0
	}
	if def.Category == catalog.CategoryModule {
		return 0
	}
	return def.Volume
}

// AddItem adds qty units of a definition to the hold. It fails (returns nil)
// on unknown definitions, non-positive quantities, or when the added volume
// would exceed cargo capacity. Stackable categories merge into an existing
// stack; otherwise a fresh instance is created per call.
func (c *Campaign) AddItem(defID string, qty int) *Item {
	def, ok := c.cats.Items.Defs[defID]
	if !ok || qty <= 0 {
		return nil
	}
	if c.UsedVolume()+c.defVolume(defID)*qty > c.CargoCapacity() {
		return nil
	}

	if def.Stackable() {
		for _, it := range c.items {
			if it.DefID == defID {
				it.Qty += qty
				c.publish(ItemAdded{ItemID: it.ID, DefID: defID, Qty: qty, Total: it.Qty})
				return it
			}
		}
	}

	c.nextItemID++
	it := &Item{ID: c.nextItemID, DefID: defID, Qty: qty}
	c.items = append(c.items, it)
	c.publish(ItemAdded{ItemID: it.ID, DefID: defID, Qty: qty, Total: it.Qty})
	return it
}

// RemoveItem deletes an instance outright. Any crew member holding it in an
// equipment slot is unequipped first — that ordering is an invariant, not an
// optimization: equipment slots must never reference a missing instance.
func (c *Campaign) RemoveItem(itemID int) bool {
	it := c.ItemByID(itemID)
	if it == nil {
		return false
	}
	c.unequipEverywhere(itemID)
	c.deleteItem(itemID)
	c.publish(ItemRemoved{ItemID: it.ID, DefID: it.DefID, Qty: it.Qty})
	return true
}

// RemoveByDef removes qty units of a definition across its instances, in
// stable id order. Fails without mutation if the hold has fewer than qty.
func (c *Campaign) RemoveByDef(defID string, qty int) bool {
	if qty <= 0 {
		return false
	}
	total := 0
	for _, it := range c.items {
		if it.DefID == defID {
			total += it.Qty
		}
	}
	if total < qty {
		return false
	}

	// Snapshot the matching instances before consuming: deleteItem compacts
	// c.items in place, which would skip elements under a live range.
	matches := make([]*Item, 0, len(c.items))
	for _, it := range c.items {
		if it.DefID == defID {
			matches = append(matches, it)
		}
	}

	remaining := qty
	for _, it := range matches {
		if remaining == 0 {
			break
		}
		take := it.Qty
		if take > remaining {
			take = remaining
		}
		remaining -= take
		it.Qty -= take
		if it.Qty == 0 {
			c.unequipEverywhere(it.ID)
			c.deleteItem(it.ID)
		}
		c.publish(ItemRemoved{ItemID: it.ID, DefID: defID, Qty: take})
	}
	return true
}

// CountByDef sums quantity over all instances of a definition.
func (c *Campaign) CountByDef(defID string) int {
	total := 0
	for _, it := range c.items {
		if it.DefID == defID {
			total += it.Qty
		}
	}
	return total
}

func (c *Campaign) deleteItem(itemID int) {
	out := c.items[:0]
	for _, it := range c.items {
		if it.ID != itemID {
			out = append(out, it)
		}
	}
	c.items = out
}

func (c *Campaign) unequipEverywhere(itemID int) {
	for _, cm := range c.roster {
		if slot, ok := cm.EquippedIn(itemID); ok {
			it := c.ItemByID(itemID)
			defID := ""
			if it != nil {
				defID = it.DefID
			}
			delete(cm.Equipment, slot)
			c.publish(ItemUnequipped{CrewID: cm.ID, ItemID: itemID, DefID: defID, Slot: slot})
		}
	}
}
