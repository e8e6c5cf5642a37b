package game

import "fmt"

// BurnState is the lifecycle stage of an item on a fire.
type BurnState int

const (
	// StateFresh marks an item still heating toward ignition.
	StateFresh BurnState = iota
	// StateBurning marks an item that is alight and spending energy.
	StateBurning
	// StateSpent marks an exhausted item, discarded at the end of its tick.
	StateSpent
)

func (s BurnState) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateBurning:
		return "burning"
	case StateSpent:
		return "spent"
	}
	return fmt.Sprintf("BurnState(%d)", int(s))
}

// BurningItem is a single item on a fire: the fuel data captured when it
// was added, the energy it has left, and its progress toward ignition.
//
// Activation progress only exists while the item is Fresh. Ignition clears
// it, and a burning item knocked back to Fresh restarts from zero.
type BurningItem struct {
	item               ItemID
	fuel               FuelParameters
	remainingEnergy    float64
	activationProgress float64
	state              BurnState
}

// NewBurningItem builds a Fresh item with its full burn energy ahead of it.
// Items without fuel data cannot go on a fire.
func NewBurningItem(assets *AssetTable, item ItemID) (BurningItem, error) {
	fuel, ok := assets.FuelParameters(item)
	if !ok {
		return BurningItem{}, &NotFlammableError{Item: item}
	}
	return BurningItem{
		item:            item,
		fuel:            fuel,
		remainingEnergy: fuel.BurnEnergy,
		state:           StateFresh,
	}, nil
}

// NewEmber builds an item that is already Burning with the given fraction
// of its burn energy left. Fires use it to seed their starting embers.
func NewEmber(assets *AssetTable, item ItemID, remainingFraction float64) (BurningItem, error) {
	fuel, ok := assets.FuelParameters(item)
	if !ok {
		return BurningItem{}, &NotFlammableError{Item: item}
	}
	return BurningItem{
		item:            item,
		fuel:            fuel,
		remainingEnergy: fuel.BurnEnergy * remainingFraction,
		state:           StateBurning,
	}, nil
}

// Item returns the asset id of the burning item.
func (b *BurningItem) Item() ItemID { return b.item }

// Fuel returns the combustion data captured when the item was added.
func (b *BurningItem) Fuel() FuelParameters { return b.fuel }

// State returns the item's lifecycle stage.
func (b *BurningItem) State() BurnState { return b.state }

// RemainingEnergy returns how much burn energy the item has left.
func (b *BurningItem) RemainingEnergy() float64 { return b.remainingEnergy }

// activationThreshold is the progress at which a Fresh item ignites.
func (b *BurningItem) activationThreshold() float64 {
	return b.fuel.BurnEnergy * b.fuel.ActivationCoefficient
}

// ActivationPercentage reports how close a Fresh item is to ignition, as a
// fraction of its activation threshold. Progress does not exist in any
// other state, so calling this on a non-Fresh item is a bug and panics.
func (b *BurningItem) ActivationPercentage() float64 {
	if b.state != StateFresh {
		panic(fmt.Sprintf("activation percentage of %s item %q", b.state, b.item))
	}
	return b.activationProgress / b.activationThreshold()
}
