package game

// uncraftMultiplier is how many times faster undoing a craft runs than the
// craft itself.
const uncraftMultiplier = 4.0

// CraftState says whether a polled craft finished or needs more time.
type CraftState int

const (
	// CraftPending means the craft needs more time. Poll again.
	CraftPending CraftState = iota
	// CraftReady means the craft finished and its items are available.
	CraftReady
)

// CraftResult is the outcome of polling a craft. Items is populated only
// when State is CraftReady: the recipe's products if the craft ran
// forward, or its ingredients if it was cancelled.
type CraftResult struct {
	State CraftState
	Items []ItemCount
}

// InProgressCraft is a craft that has consumed its ingredients and is
// waiting out its recipe time. Crafting and the fire share one clock, so
// every operation ticks the fire for the time it spends.
//
// A craft that has returned its items is exhausted. Using it again is a
// caller bug and panics.
type InProgressCraft struct {
	ingredients []ItemCount
	products    []ItemCount
	recipeTime  float64

	timeRemaining float64
	done          bool
}

// newInProgressCraft starts a craft for the given recipe. The caller has
// already removed the ingredients from wherever they came from.
func newInProgressCraft(recipe Recipe) *InProgressCraft {
	return &InProgressCraft{
		ingredients:   copyItemCounts(recipe.Ingredients),
		products:      copyItemCounts(recipe.Products),
		recipeTime:    recipe.CraftTime,
		timeRemaining: recipe.CraftTime,
	}
}

// TimeRemaining returns how much craft time is left.
func (c *InProgressCraft) TimeRemaining() float64 { return c.timeRemaining }

// RecipeTime returns the full craft time of the recipe.
func (c *InProgressCraft) RecipeTime() float64 { return c.recipeTime }

// UncraftTime returns how long cancelling the craft would take from here.
// Undoing runs four times faster than crafting, so a craft abandoned early
// unwinds almost instantly.
func (c *InProgressCraft) UncraftTime() float64 {
	return (c.recipeTime - c.timeRemaining) / uncraftMultiplier
}

// Products returns the items the craft will yield when it completes.
func (c *InProgressCraft) Products() []ItemCount {
	return copyItemCounts(c.products)
}

// Ingredients returns the items the craft consumed to start.
func (c *InProgressCraft) Ingredients() []ItemCount {
	return copyItemCounts(c.ingredients)
}

// Complete waits out the rest of the craft, ticking the fire for the full
// remaining time, and returns the products. The fire burning out aborts
// the craft and its items are lost with it.
func (c *InProgressCraft) Complete(fire *Fire) ([]ItemCount, error) {
	c.mustBeActive()
	if err := fire.TickTime(c.timeRemaining); err != nil {
		return nil, err
	}
	c.done = true
	return copyItemCounts(c.products), nil
}

// Progress spends up to maxTime on the craft. It takes only the time the
// craft still needs, never the full budget, so the caller keeps whatever
// is left of its turn.
func (c *InProgressCraft) Progress(fire *Fire, maxTime float64) (CraftResult, error) {
	c.mustBeActive()
	if maxTime >= c.timeRemaining {
		if err := fire.TickTime(c.timeRemaining); err != nil {
			return CraftResult{}, err
		}
		c.done = true
		return CraftResult{State: CraftReady, Items: copyItemCounts(c.products)}, nil
	}

	if err := fire.TickTime(maxTime); err != nil {
		return CraftResult{}, err
	}
	c.timeRemaining -= maxTime
	return CraftResult{State: CraftPending}, nil
}

// Cancel unwinds the craft completely, ticking the fire for the uncraft
// time, and returns the ingredients.
func (c *InProgressCraft) Cancel(fire *Fire) ([]ItemCount, error) {
	c.mustBeActive()
	if err := fire.TickTime(c.UncraftTime()); err != nil {
		return nil, err
	}
	c.done = true
	return copyItemCounts(c.ingredients), nil
}

// ProgressCancel spends up to maxTime unwinding the craft. Every unit of
// time spent unwinding adds four units back onto the craft's remaining
// time, mirroring how much faster undoing runs.
func (c *InProgressCraft) ProgressCancel(fire *Fire, maxTime float64) (CraftResult, error) {
	c.mustBeActive()
	timeLeft := c.UncraftTime()

	if maxTime >= timeLeft {
		if err := fire.TickTime(timeLeft); err != nil {
			return CraftResult{}, err
		}
		c.done = true
		return CraftResult{State: CraftReady, Items: copyItemCounts(c.ingredients)}, nil
	}

	if err := fire.TickTime(maxTime); err != nil {
		return CraftResult{}, err
	}
	c.timeRemaining += maxTime * uncraftMultiplier
	return CraftResult{State: CraftPending}, nil
}

func (c *InProgressCraft) mustBeActive() {
	if c.done {
		panic("craft already returned its items")
	}
}

func copyItemCounts(items []ItemCount) []ItemCount {
	out := make([]ItemCount, len(items))
	copy(out, items)
	return out
}
