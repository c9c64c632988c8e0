package campaign

import "testing"

func TestEquipItem(t *testing.T) {
	c := newTestCampaign(t)
	cm := c.Roster()[0]
	rifle := c.AddItem("rifle", 1)

	if !c.EquipItem(cm.ID, rifle.ID) {
		t.Fatal("EquipItem failed")
	}
	if cm.Equipment[SlotWeapon] != rifle.ID {
		t.Fatalf("weapon slot = %d, want %d", cm.Equipment[SlotWeapon], rifle.ID)
	}
}

func TestEquipReplacementEventOrder(t *testing.T) {
	c := newTestCampaign(t)
	cm := c.Roster()[0]
	rifle := c.AddItem("rifle", 1)
	pistol := c.AddItem("pistol", 1)
	c.EquipItem(cm.ID, rifle.ID)

	rec := record(c)
	if !c.EquipItem(cm.ID, pistol.ID) {
		t.Fatal("EquipItem failed to replace")
	}
	kinds := rec.kinds()
	if len(kinds) != 2 || kinds[0] != KindItemUnequipped || kinds[1] != KindItemEquipped {
		t.Fatalf("event order = %v, want [unequipped equipped]", kinds)
	}
	if cm.Equipment[SlotWeapon] != pistol.ID {
		t.Fatal("weapon slot does not hold the replacement")
	}
	if c.ItemByID(rifle.ID) == nil {
		t.Fatal("replaced rifle left the hold")
	}
}

func TestEquipRejections(t *testing.T) {
	c := newTestCampaign(t)
	cm := c.Roster()[0]
	rifle := c.AddItem("rifle", 1)
	medkit := c.AddItem("medkit", 1)

	if c.EquipItem(99, rifle.ID) {
		t.Fatal("EquipItem accepted unknown crew")
	}
	if c.EquipItem(cm.ID, 99) {
		t.Fatal("EquipItem accepted unknown item")
	}
	if c.EquipItem(cm.ID, medkit.ID) {
		t.Fatal("EquipItem accepted a consumable")
	}

	c.EquipItem(cm.ID, rifle.ID)
	if c.EquipItem(cm.ID, rifle.ID) {
		t.Fatal("EquipItem re-equipped the same item")
	}

	c.markDead(cm, false)
	vest := c.AddItem("vest", 1)
	if c.EquipItem(cm.ID, vest.ID) {
		t.Fatal("EquipItem accepted a dead member")
	}
}

func TestUnequipItem(t *testing.T) {
	c := newTestCampaign(t)
	cm := c.Roster()[0]
	rifle := c.AddItem("rifle", 1)
	c.EquipItem(cm.ID, rifle.ID)

	if !c.UnequipItem(cm.ID, SlotWeapon) {
		t.Fatal("UnequipItem failed")
	}
	if c.UnequipItem(cm.ID, SlotWeapon) {
		t.Fatal("UnequipItem succeeded on empty slot")
	}
	if c.ItemByID(rifle.ID) == nil {
		t.Fatal("unequipped item left the hold")
	}
}
