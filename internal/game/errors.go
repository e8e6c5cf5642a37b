package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBurntOut reports a tick against a fire with nothing left on it. The
// fire itself is unchanged; the caller decides whether that ends the game.
var ErrBurntOut = errors.New("fire has burnt out")

// NotFlammableError reports an attempt to burn an item with no fuel data.
type NotFlammableError struct {
	Item ItemID
}

func (e *NotFlammableError) Error() string {
	return fmt.Sprintf("item %q is not flammable", e.Item)
}

// NoRecipeError reports a craft request for an item no recipe produces.
type NoRecipeError struct {
	Product ItemID
}

func (e *NoRecipeError) Error() string {
	return fmt.Sprintf("no recipe produces %q", e.Product)
}

// MissingIngredientsError reports a craft whose candidate recipes all
// failed for want of ingredients. Missing holds the shortfall of the last
// recipe tried.
type MissingIngredientsError struct {
	Product ItemID
	Missing []ItemCount
}

func (e *MissingIngredientsError) Error() string {
	return fmt.Sprintf("missing ingredients for %q: %s", e.Product, formatItemCounts(e.Missing))
}

// NotFoundError reports an inventory operation on an item it holds none of.
type NotFoundError struct {
	Item ItemID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %q not in inventory", e.Item)
}

// NotEnoughError reports an inventory take that exceeds the held count.
// Nothing was removed.
type NotEnoughError struct {
	Item ItemID
	Want int
	Have int
}

func (e *NotEnoughError) Error() string {
	return fmt.Sprintf("want %d of %q, have %d", e.Want, e.Item, e.Have)
}

// NoCapacityError reports an insertion whose mass exceeds the inventory's
// total capacity, so it could never fit even into an empty inventory.
type NoCapacityError struct {
	Item     ItemID
	Count    int
	Mass     float64
	Capacity float64
}

func (e *NoCapacityError) Error() string {
	return fmt.Sprintf("%dx %q weighs %vg, more than the inventory holds (%vg)", e.Count, e.Item, e.Mass, e.Capacity)
}

// NoAvailableCapacityError reports an insertion that would fit an empty
// inventory but not the space this one has left.
type NoAvailableCapacityError struct {
	Item     ItemID
	Count    int
	Mass     float64
	Used     float64
	Capacity float64
}

func (e *NoAvailableCapacityError) Error() string {
	return fmt.Sprintf("%dx %q weighs %vg, only %vg of %vg free", e.Count, e.Item, e.Mass, e.Capacity-e.Used, e.Capacity)
}

// ShortfallError reports an all-or-nothing take that found items short.
// Missing lists only the items actually short, with the amounts short.
// Nothing was removed.
type ShortfallError struct {
	Missing []ItemCount
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("short of: %s", formatItemCounts(e.Missing))
}

func formatItemCounts(items []ItemCount) string {
	parts := make([]string, 0, len(items))
	for _, ic := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", ic.Count, ic.Item))
	}
	return strings.Join(parts, ", ")
}
