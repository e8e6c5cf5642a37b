package game

import (
	"errors"
	"fmt"

	"github.com/emberhold-games/emberhold/internal/mathutil"
)

// Player is the survivor at the fire: a name, hit points, a core body
// temperature, and a pack of items.
type Player struct {
	assets          *AssetTable
	name            string
	hitPoints       mathutil.BoundedFloat
	bodyTemperature float64
	inventory       *Inventory
}

// NewPlayer builds a player from the table's starting conditions, with
// the starting kit already in their pack. The table validated the kit
// against the pack's capacity at load time.
func NewPlayer(assets *AssetTable, name string) *Player {
	defaults := assets.PlayerDefaults()
	hitPoints, err := mathutil.NewZeroMin(defaults.MaxHitPoints, defaults.MaxHitPoints)
	if err != nil {
		panic(fmt.Sprintf("player hit points: %v", err))
	}

	player := &Player{
		assets:          assets,
		name:            name,
		hitPoints:       hitPoints,
		bodyTemperature: defaults.BodyTemperature,
		inventory:       NewInventory(assets, defaults.InventoryCapacity),
	}
	for _, ic := range defaults.StartingKit {
		if err := player.inventory.Insert(ic.Item, ic.Count); err != nil {
			panic(fmt.Sprintf("starting kit: %v", err))
		}
	}
	return player
}

// Name returns the player's name.
func (p *Player) Name() string { return p.name }

// HitPoints returns the player's health gauge.
func (p *Player) HitPoints() mathutil.BoundedFloat { return p.hitPoints }

// Damage lowers the player's hit points, stopping at zero.
func (p *Player) Damage(amount float64) { p.hitPoints = p.hitPoints.Sub(amount) }

// Heal raises the player's hit points, stopping at their maximum.
func (p *Player) Heal(amount float64) { p.hitPoints = p.hitPoints.Add(amount) }

// IsAlive reports whether the player has any hit points left.
func (p *Player) IsAlive() bool { return p.hitPoints.Current() > 0 }

// BodyTemperature returns the player's core temperature in kelvin.
func (p *Player) BodyTemperature() float64 { return p.bodyTemperature }

// SetBodyTemperature changes the player's core temperature.
func (p *Player) SetBodyTemperature(value float64) { p.bodyTemperature = value }

// Inventory returns the player's pack.
func (p *Player) Inventory() *Inventory { return p.inventory }

// Craft starts crafting the given item. Recipes producing it are tried in
// definition order and the first one the pack can pay for wins; its
// ingredients leave the pack immediately. With no recipe at all the error
// is NoRecipeError, and when every candidate comes up short it is
// MissingIngredientsError carrying the shortfall of the last recipe tried.
func (p *Player) Craft(product ItemID) (*InProgressCraft, error) {
	recipes := p.assets.RecipesFor(product)
	if len(recipes) == 0 {
		return nil, &NoRecipeError{Product: product}
	}

	var lastMissing []ItemCount
	for _, recipe := range recipes {
		err := p.inventory.TakeAllOrNothing(recipe.Ingredients)
		if err == nil {
			return newInProgressCraft(recipe), nil
		}
		var shortfall *ShortfallError
		if !errors.As(err, &shortfall) {
			return nil, err
		}
		lastMissing = shortfall.Missing
	}
	return nil, &MissingIngredientsError{Product: product, Missing: lastMissing}
}
