package game

import (
	"fmt"

	"github.com/emberhold-games/emberhold/internal/mathutil"
)

// Inventory holds counted items up to a mass capacity in grams. The item
// map never holds zero counts: taking the last of an item removes its
// entry entirely.
type Inventory struct {
	assets       *AssetTable
	items        map[ItemID]int
	usedCapacity mathutil.BoundedFloat
}

// NewInventory builds an empty inventory with the given capacity in
// grams. Negative capacity is a programmer error and panics.
func NewInventory(assets *AssetTable, capacity float64) *Inventory {
	used, err := mathutil.NewZeroMin(0, capacity)
	if err != nil {
		panic(fmt.Sprintf("inventory capacity: %v", err))
	}
	return &Inventory{
		assets:       assets,
		items:        make(map[ItemID]int),
		usedCapacity: used,
	}
}

// UsedCapacity returns the gauge of used mass against capacity.
func (inv *Inventory) UsedCapacity() mathutil.BoundedFloat {
	return inv.usedCapacity
}

// SetMaxCapacity changes the inventory's capacity. Shrinking below the
// mass already held fails, so the gauge never disagrees with the items.
func (inv *Inventory) SetMaxCapacity(value float64) error {
	if value < inv.usedCapacity.Current() {
		return fmt.Errorf("capacity %vg is below the %vg already held", value, inv.usedCapacity.Current())
	}
	updated, err := inv.usedCapacity.WithMax(value)
	if err != nil {
		return err
	}
	inv.usedCapacity = updated
	return nil
}

// Count returns how many of an item the inventory holds.
func (inv *Inventory) Count(item ItemID) int {
	return inv.items[item]
}

// Items lists the inventory's contents in asset table order, which keeps
// reports stable between calls.
func (inv *Inventory) Items() []ItemCount {
	var out []ItemCount
	for _, spec := range inv.assets.AllItems() {
		if count, ok := inv.items[spec.ID]; ok {
			out = append(out, ItemCount{Item: spec.ID, Count: count})
		}
	}
	return out
}

// Insert adds count of an item. The insertion is refused outright when
// its mass could never fit the inventory, and refused against the space
// actually left otherwise. Nothing is partially inserted.
func (inv *Inventory) Insert(item ItemID, count int) error {
	spec, ok := inv.assets.Item(item)
	if !ok {
		return fmt.Errorf("insert: unknown item %q", item)
	}
	mass := spec.MassGrams * float64(count)

	if inv.usedCapacity.Max() < mass {
		return &NoCapacityError{
			Item:     item,
			Count:    count,
			Mass:     mass,
			Capacity: inv.usedCapacity.Max(),
		}
	}
	if inv.usedCapacity.Remaining() < mass {
		return &NoAvailableCapacityError{
			Item:     item,
			Count:    count,
			Mass:     mass,
			Used:     inv.usedCapacity.Current(),
			Capacity: inv.usedCapacity.Max(),
		}
	}

	inv.usedCapacity = inv.usedCapacity.Add(mass)
	inv.items[item] += count
	return nil
}

// TakeOne removes a single item.
func (inv *Inventory) TakeOne(item ItemID) error {
	return inv.TakeAmount(item, 1)
}

// TakeAmount removes count of an item, or nothing at all: an item the
// inventory has no record of reports NotFoundError, and too few of it
// reports NotEnoughError.
func (inv *Inventory) TakeAmount(item ItemID, count int) error {
	have, ok := inv.items[item]
	if !ok {
		return &NotFoundError{Item: item}
	}
	if have < count {
		return &NotEnoughError{Item: item, Want: count, Have: have}
	}

	inv.usedCapacity = inv.usedCapacity.Sub(inv.assets.ItemMass(item) * float64(count))
	if have == count {
		delete(inv.items, item)
	} else {
		inv.items[item] = have - count
	}
	return nil
}

// TakeAll removes every one of an item and returns how many there were.
func (inv *Inventory) TakeAll(item ItemID) (int, error) {
	have, ok := inv.items[item]
	if !ok {
		return 0, &NotFoundError{Item: item}
	}

	inv.usedCapacity = inv.usedCapacity.Sub(inv.assets.ItemMass(item) * float64(have))
	delete(inv.items, item)
	return have, nil
}

// Contains reports whether the inventory holds at least amount of item.
func (inv *Inventory) Contains(item ItemID, amount int) bool {
	return inv.items[item] >= amount
}

// Shortfall compares the inventory against a wanted list and returns how
// short it is of each wanted item, in the list's order. A nil result
// means everything is there.
func (inv *Inventory) Shortfall(wanted []ItemCount) []ItemCount {
	var missing []ItemCount
	for _, w := range wanted {
		if have := inv.items[w.Item]; have < w.Count {
			missing = append(missing, ItemCount{Item: w.Item, Count: w.Count - have})
		}
	}
	return missing
}

// TakeAllOrNothing removes every item on the wanted list, or none of
// them: any shortfall reports a ShortfallError and leaves the inventory
// untouched.
func (inv *Inventory) TakeAllOrNothing(wanted []ItemCount) error {
	if missing := inv.Shortfall(wanted); missing != nil {
		return &ShortfallError{Missing: missing}
	}
	for _, w := range wanted {
		if err := inv.TakeAmount(w.Item, w.Count); err != nil {
			panic(fmt.Sprintf("take after shortfall check: %v", err))
		}
	}
	return nil
}
