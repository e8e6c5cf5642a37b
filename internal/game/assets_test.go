package game

import (
	"strings"
	"testing"
)

func TestDefaultAssetsLoad(t *testing.T) {
	assets := DefaultAssets()

	if got := len(assets.AllItems()); got != 10 {
		t.Fatalf("expected 10 built-in items, got %d", got)
	}
	if got := len(assets.Recipes().All()); got != 2 {
		t.Fatalf("expected 2 built-in recipes, got %d", got)
	}

	fire := assets.FireDefaults()
	if fire.Temperature != 873.15 {
		t.Fatalf("expected starting fire at 873.15K, got %v", fire.Temperature)
	}
	if fire.Embers.Item != ItemMediumStick || fire.Embers.Count != 3 {
		t.Fatalf("expected three medium stick embers, got %+v", fire.Embers)
	}

	player := assets.PlayerDefaults()
	if player.MaxHitPoints != 100 {
		t.Fatalf("expected 100 max hit points, got %v", player.MaxHitPoints)
	}
	if player.InventoryCapacity != 10000 {
		t.Fatalf("expected 10000g capacity, got %v", player.InventoryCapacity)
	}
	if len(player.StartingKit) == 0 {
		t.Fatalf("expected a starting kit")
	}
}

func TestAssetLookups(t *testing.T) {
	assets := DefaultAssets()

	spec, ok := assets.Item(ItemTwig)
	if !ok {
		t.Fatalf("expected twig to exist")
	}
	if spec.MassGrams != 25 {
		t.Fatalf("expected twig mass 25g, got %v", spec.MassGrams)
	}
	if !spec.Flammable() {
		t.Fatalf("expected twig to be flammable")
	}

	if _, ok := assets.FuelParameters(ItemRiverStone); ok {
		t.Fatalf("expected river stone to have no fuel data")
	}
	if got := assets.ItemMass(ItemID("granite")); got != 0 {
		t.Fatalf("expected unknown item mass 0, got %v", got)
	}
	if got := assets.DisplayName(ItemLeaves); got != "dry leaf handful" {
		t.Fatalf("expected leaves display name, got %q", got)
	}
}

func TestItemByNameMatchesIDsAndDisplayNames(t *testing.T) {
	assets := DefaultAssets()

	cases := []struct {
		query string
		want  ItemID
	}{
		{"small stick", ItemSmallStick},
		{"SMALL_STICK", ItemSmallStick},
		{"dry leaf handful", ItemLeaves},
		{"leaves", ItemLeaves},
		{"small bundle", ItemSmallBundle},
		{"small stick bundle", ItemSmallBundle},
	}
	for _, tc := range cases {
		spec, ok := assets.ItemByName(tc.query)
		if !ok {
			t.Fatalf("expected %q to resolve", tc.query)
		}
		if spec.ID != tc.want {
			t.Fatalf("expected %q to resolve to %s, got %s", tc.query, tc.want, spec.ID)
		}
	}

	if _, ok := assets.ItemByName("granite"); ok {
		t.Fatalf("expected unknown name to miss")
	}
}

func TestRecipesForProduct(t *testing.T) {
	assets := DefaultAssets()

	recipes := assets.RecipesFor(ItemSmallBundle)
	if len(recipes) != 1 {
		t.Fatalf("expected one recipe for the small bundle, got %d", len(recipes))
	}
	recipe := recipes[0]
	if recipe.CraftTime != 100 {
		t.Fatalf("expected craft time 100, got %v", recipe.CraftTime)
	}
	if len(recipe.Ingredients) != 1 || recipe.Ingredients[0].Item != ItemSmallStick || recipe.Ingredients[0].Count != 3 {
		t.Fatalf("expected three small sticks in, got %v", recipe.Ingredients)
	}

	if got := assets.RecipesFor(ItemTwig); got != nil {
		t.Fatalf("expected no recipes for the twig, got %v", got)
	}
}

func TestLoadAssetsRejectsUnknownFields(t *testing.T) {
	_, err := LoadAssets(strings.NewReader("fire:\n  temprature: 900\n"))
	if err == nil {
		t.Fatalf("expected a misspelled field to fail decoding")
	}
	if !strings.Contains(err.Error(), "decode assets") {
		t.Fatalf("expected a decode error, got %v", err)
	}
}

func TestLoadAssetsValidates(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "duplicate item id",
			yaml: `
items:
  - { id: twig, name: twig, mass_grams: 10 }
  - { id: twig, name: twig, mass_grams: 10 }
`,
			want: "duplicate item id",
		},
		{
			name: "zero mass",
			yaml: `
items:
  - { id: twig, name: twig, mass_grams: 0 }
`,
			want: "mass must be positive",
		},
		{
			name: "recipe with unknown ingredient",
			yaml: `
items:
  - { id: twig, name: twig, mass_grams: 10 }
recipes:
  - ingredients: [{ item: bark, count: 1 }]
    products: [{ item: twig, count: 1 }]
    craft_time: 10
`,
			want: "unknown item",
		},
		{
			name: "non-flammable embers",
			yaml: `
items:
  - { id: stone, name: stone, mass_grams: 10 }
fire:
  temperature: 900
  ambient_temperature: 295
  tick_resolution: 1
  weight_of_ambient: 100
  embers: { item: stone, count: 1, remaining_fraction: 0.5 }
`,
			want: "not flammable",
		},
	}

	for _, tc := range cases {
		_, err := LoadAssets(strings.NewReader(tc.yaml))
		if err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error mentioning %q, got %v", tc.name, tc.want, err)
		}
	}
}
