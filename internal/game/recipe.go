package game

// Recipe converts a set of ingredients into a set of products over a span
// of game time.
type Recipe struct {
	Ingredients []ItemCount `yaml:"ingredients" json:"ingredients"`
	Products    []ItemCount `yaml:"products" json:"products"`
	CraftTime   float64     `yaml:"craft_time" json:"craft_time"`
}

// Produces reports whether the recipe yields the given item.
func (r Recipe) Produces(item ItemID) bool {
	for _, p := range r.Products {
		if p.Item == item {
			return true
		}
	}
	return false
}

// RecipeSet is an immutable collection of recipes, ordered as defined.
type RecipeSet struct {
	recipes []Recipe
}

// NewRecipeSet builds a recipe set. The slice is not copied; callers hand
// over ownership.
func NewRecipeSet(recipes []Recipe) RecipeSet {
	return RecipeSet{recipes: recipes}
}

// All returns every recipe in definition order.
func (s RecipeSet) All() []Recipe {
	out := make([]Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// For returns the recipes producing the given item, in definition order.
func (s RecipeSet) For(product ItemID) []Recipe {
	var out []Recipe
	for _, r := range s.recipes {
		if r.Produces(product) {
			out = append(out, r)
		}
	}
	return out
}
