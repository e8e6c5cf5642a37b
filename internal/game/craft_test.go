package game

import (
	"errors"
	"testing"
)

// newCraftFixture starts a bundle craft over a fire that cannot die
// within the craft's hundred or so ticks.
func newCraftFixture(t *testing.T) (*Fire, *Player, *InProgressCraft) {
	t.Helper()

	assets := DefaultAssets()
	fire := NewFire(assets)
	fire.SetWeightOfAmbient(0)
	player := NewPlayer(assets, "Tester")

	craft, err := player.Craft(ItemSmallBundle)
	if err != nil {
		t.Fatalf("craft small bundle: %v", err)
	}
	return fire, player, craft
}

func TestCraftConsumesIngredientsUpFront(t *testing.T) {
	_, player, craft := newCraftFixture(t)

	if got := player.Inventory().Count(ItemSmallStick); got != 9 {
		t.Fatalf("expected 9 small sticks left after starting the craft, got %d", got)
	}
	if craft.TimeRemaining() != 100 {
		t.Fatalf("expected full recipe time remaining, got %v", craft.TimeRemaining())
	}
	if craft.RecipeTime() != 100 {
		t.Fatalf("expected recipe time 100, got %v", craft.RecipeTime())
	}
}

func TestCraftCompleteTicksFullRecipeTime(t *testing.T) {
	fire, _, craft := newCraftFixture(t)

	items, err := craft.Complete(fire)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if fire.TimeAlive() != 100 {
		t.Fatalf("expected completion to tick the fire through 100 time, got %v", fire.TimeAlive())
	}
	if len(items) != 1 || items[0].Item != ItemSmallBundle || items[0].Count != 1 {
		t.Fatalf("expected one small bundle, got %v", items)
	}
}

func TestCraftProgressPartialThenReady(t *testing.T) {
	fire, _, craft := newCraftFixture(t)

	result, err := craft.Progress(fire, 50)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if result.State != CraftPending {
		t.Fatalf("expected craft to still be pending at half time")
	}
	if craft.TimeRemaining() != 50 {
		t.Fatalf("expected 50 time remaining, got %v", craft.TimeRemaining())
	}
	if fire.TimeAlive() != 50 {
		t.Fatalf("expected fire to advance 50 time, got %v", fire.TimeAlive())
	}

	result, err = craft.Progress(fire, 50)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if result.State != CraftReady {
		t.Fatalf("expected craft to be ready at full time")
	}
	if len(result.Items) != 1 || result.Items[0].Item != ItemSmallBundle {
		t.Fatalf("expected small bundle products, got %v", result.Items)
	}
	if fire.TimeAlive() != 100 {
		t.Fatalf("expected fire at 100 time, got %v", fire.TimeAlive())
	}
}

func TestCraftProgressTakesOnlyWhatItNeeds(t *testing.T) {
	fire, _, craft := newCraftFixture(t)

	if _, err := craft.Progress(fire, 90); err != nil {
		t.Fatalf("progress: %v", err)
	}
	// 10 left; a 50 budget must only spend the 10.
	result, err := craft.Progress(fire, 50)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if result.State != CraftReady {
		t.Fatalf("expected craft to finish")
	}
	if fire.TimeAlive() != 100 {
		t.Fatalf("expected the final poll to spend only the remaining 10 time, fire at %v", fire.TimeAlive())
	}
}

func TestCraftCancelUnwindsAtQuadrupleSpeed(t *testing.T) {
	fire, _, craft := newCraftFixture(t)

	if _, err := craft.Progress(fire, 50); err != nil {
		t.Fatalf("progress: %v", err)
	}
	if craft.UncraftTime() != 12.5 {
		t.Fatalf("expected uncraft time 12.5 after 50 progress, got %v", craft.UncraftTime())
	}

	items, err := craft.Cancel(fire)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	// 12.5 time rounds up to 13 whole ticks.
	if fire.TimeAlive() != 63 {
		t.Fatalf("expected fire at 63 time after cancel, got %v", fire.TimeAlive())
	}
	if len(items) != 1 || items[0].Item != ItemSmallStick || items[0].Count != 3 {
		t.Fatalf("expected the three small sticks back, got %v", items)
	}
}

func TestCraftProgressCancelPartialUnwind(t *testing.T) {
	fire, _, craft := newCraftFixture(t)

	if _, err := craft.Progress(fire, 50); err != nil {
		t.Fatalf("progress: %v", err)
	}

	result, err := craft.ProgressCancel(fire, 10)
	if err != nil {
		t.Fatalf("progress cancel: %v", err)
	}
	if result.State != CraftPending {
		t.Fatalf("expected partial unwind to stay pending")
	}
	// Ten time unwinding puts forty back on the clock.
	if craft.TimeRemaining() != 90 {
		t.Fatalf("expected 90 time remaining after partial unwind, got %v", craft.TimeRemaining())
	}
	if fire.TimeAlive() != 60 {
		t.Fatalf("expected fire at 60 time, got %v", fire.TimeAlive())
	}

	items, err := craft.Cancel(fire)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if fire.TimeAlive() != 63 {
		t.Fatalf("expected fire at 63 time after finishing the unwind, got %v", fire.TimeAlive())
	}
	if len(items) != 1 || items[0].Item != ItemSmallStick || items[0].Count != 3 {
		t.Fatalf("expected ingredients back, got %v", items)
	}
}

func TestCraftNoRecipe(t *testing.T) {
	player := NewPlayer(DefaultAssets(), "Tester")

	_, err := player.Craft(ItemTwig)
	var noRecipe *NoRecipeError
	if !errors.As(err, &noRecipe) {
		t.Fatalf("expected NoRecipeError, got %v", err)
	}
	if noRecipe.Product != ItemTwig {
		t.Fatalf("expected error to name the twig, got %q", noRecipe.Product)
	}
}

func TestCraftMissingIngredients(t *testing.T) {
	player := NewPlayer(DefaultAssets(), "Tester")
	if _, err := player.Inventory().TakeAll(ItemSmallStick); err != nil {
		t.Fatalf("empty small sticks: %v", err)
	}

	_, err := player.Craft(ItemSmallBundle)
	var missing *MissingIngredientsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingIngredientsError, got %v", err)
	}
	if len(missing.Missing) != 1 || missing.Missing[0].Item != ItemSmallStick || missing.Missing[0].Count != 3 {
		t.Fatalf("expected a shortfall of three small sticks, got %v", missing.Missing)
	}
	// A failed craft must not have taken anything.
	if got := player.Inventory().Count(ItemTwig); got != 10 {
		t.Fatalf("expected twigs untouched by the failed craft, got %d", got)
	}
}

func TestCraftAbortsWhenFireBurnsOut(t *testing.T) {
	assets := DefaultAssets()
	fire := NewFire(assets)
	fire.items = fire.items[:1]
	fire.items[0].remainingEnergy = 0.5
	player := NewPlayer(assets, "Tester")

	craft, err := player.Craft(ItemSmallBundle)
	if err != nil {
		t.Fatalf("craft: %v", err)
	}

	if _, err := craft.Complete(fire); !errors.Is(err, ErrBurntOut) {
		t.Fatalf("expected the craft to abort with ErrBurntOut, got %v", err)
	}
}
