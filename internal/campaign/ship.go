package campaign

import "starhold.gg/internal/catalog"

// ShipRecord is the crew's ship: hull integrity plus installed modules,
// constrained by the chassis definition's per-slot-type capacities.
type ShipRecord struct {
	ChassisID string
	Name      string
	Hull      int
	MaxHull   int
	Modules   []ShipModule
}

// ShipModule is one installed module, bound to a slot type.
type ShipModule struct {
	ID    int
	DefID string
	Slot  string
}

// IsCritical reports hull at or below a quarter of maximum.
func (s *ShipRecord) IsCritical() bool { return s.Hull*4 <= s.MaxHull }

// IsDestroyed reports hull at or below zero.
func (s *ShipRecord) IsDestroyed() bool { return s.Hull <= 0 }

// Ship returns the ship record. Read-only; mutate through Campaign methods.
func (c *Campaign) Ship() *ShipRecord { return &c.ship }

func (s *ShipRecord) slotCount(slot string) int {
	n := 0
	for _, m := range s.Modules {
		if m.Slot == slot {
			n++
		}
	}
	return n
}

// InstallModule moves a module item out of the hold and into a ship slot.
// Fails when the item is not module-category, its slot type is not declared
// by the chassis, or that slot type is full.
func (c *Campaign) InstallModule(itemID int) bool {
	it := c.ItemByID(itemID)
	if it == nil {
		return false
	}
	def, ok := c.cats.Items.Defs[it.DefID]
	if !ok || def.Category != catalog.CategoryModule || def.ModuleSlot == "" {
		return false
	}
	chassis, ok := c.cats.Chassis.Defs[c.ship.ChassisID]
	if !ok {
		return false
	}
	max, ok := chassis.Slots[def.ModuleSlot]
	if !ok {
		return false
	}
	if c.ship.slotCount(def.ModuleSlot) >= max {
		return false
	}

	c.deleteItem(itemID)
	c.publish(ItemRemoved{ItemID: it.ID, DefID: it.DefID, Qty: it.Qty})

	c.nextModuleID++
	m := ShipModule{ID: c.nextModuleID, DefID: it.DefID, Slot: def.ModuleSlot}
	c.ship.Modules = append(c.ship.Modules, m)
	c.publish(ModuleInstalled{ModuleID: m.ID, DefID: m.DefID, Slot: m.Slot})
	return true
}

// RemoveModule uninstalls a module and returns it to the hold as a fresh
// item instance. Modules carry zero cargo volume, so the return cannot fail
// on capacity; returns nil only for unknown module ids.
func (c *Campaign) RemoveModule(moduleID int) *Item {
	idx := -1
	for i, m := range c.ship.Modules {
		if m.ID == moduleID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	m := c.ship.Modules[idx]
	c.ship.Modules = append(c.ship.Modules[:idx], c.ship.Modules[idx+1:]...)

	it := c.AddItem(m.DefID, 1)
	itemID := 0
	if it != nil {
		itemID = it.ID
	}
	c.publish(ModuleRemoved{ModuleID: m.ID, DefID: m.DefID, Slot: m.Slot, ItemID: itemID})
	return it
}

// DamageShip lowers hull, floored at zero. Non-positive input is ignored.
func (c *Campaign) DamageShip(n int, cause string) {
	if n <= 0 {
		return
	}
	old := c.ship.Hull
	hull := old - n
	if hull < 0 {
		hull = 0
	}
	if hull == old {
		return
	}
	c.ship.Hull = hull
	c.publish(HullChanged{Old: old, New: hull, Max: c.ship.MaxHull, Cause: cause})
}

// RepairShip raises hull, capped at maximum. Non-positive input is ignored.
func (c *Campaign) RepairShip(n int) {
	if n <= 0 {
		return
	}
	old := c.ship.Hull
	hull := old + n
	if hull > c.ship.MaxHull {
		hull = c.ship.MaxHull
	}
	if hull == old {
		return
	}
	c.ship.Hull = hull
	c.publish(HullChanged{Old: old, New: hull, Max: c.ship.MaxHull, Cause: "repair"})
}
