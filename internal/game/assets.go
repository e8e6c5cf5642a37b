package game

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed assets.yaml
var defaultAssetsYAML []byte

// EmberSeed describes the already-burning fuel a new fire starts with.
type EmberSeed struct {
	Item              ItemID  `yaml:"item" json:"item"`
	Count             int     `yaml:"count" json:"count"`
	RemainingFraction float64 `yaml:"remaining_fraction" json:"remaining_fraction"`
}

// FireDefaults seeds a newly built fire.
type FireDefaults struct {
	Temperature        float64   `yaml:"temperature" json:"temperature"`
	AmbientTemperature float64   `yaml:"ambient_temperature" json:"ambient_temperature"`
	TickResolution     float64   `yaml:"tick_resolution" json:"tick_resolution"`
	WeightOfAmbient    float64   `yaml:"weight_of_ambient" json:"weight_of_ambient"`
	FreshFuelRadiates  bool      `yaml:"fresh_fuel_radiates" json:"fresh_fuel_radiates"`
	Embers             EmberSeed `yaml:"embers" json:"embers"`
}

// PlayerDefaults seeds a newly built player.
type PlayerDefaults struct {
	MaxHitPoints      float64     `yaml:"max_hit_points" json:"max_hit_points"`
	BodyTemperature   float64     `yaml:"body_temperature" json:"body_temperature"`
	InventoryCapacity float64     `yaml:"inventory_capacity" json:"inventory_capacity"`
	StartingKit       []ItemCount `yaml:"starting_kit" json:"starting_kit"`
}

// AssetFile is the on-disk shape of an asset table. It exists so docsgen
// can reflect a schema over exactly what LoadAssets accepts.
type AssetFile struct {
	Fire    FireDefaults   `yaml:"fire" json:"fire"`
	Player  PlayerDefaults `yaml:"player" json:"player"`
	Items   []ItemSpec     `yaml:"items" json:"items"`
	Recipes []Recipe       `yaml:"recipes" json:"recipes"`
}

// AssetTable is a validated, indexed asset file. It is immutable after
// construction and safe to share between goroutines.
type AssetTable struct {
	fire      FireDefaults
	player    PlayerDefaults
	items     []ItemSpec
	index     map[ItemID]int
	nameIndex map[string]ItemID
	recipes   RecipeSet
}

// LoadAssets decodes and validates an asset table. Unknown document fields
// are errors so typos in hand-edited files surface instead of vanishing.
func LoadAssets(r io.Reader) (*AssetTable, error) {
	var file AssetFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode assets: %w", err)
	}
	return buildAssets(file)
}

// LoadAssetsFile reads an asset table from disk.
func LoadAssetsFile(path string) (*AssetTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open assets: %w", err)
	}
	defer f.Close()
	table, err := LoadAssets(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

var (
	defaultAssetsOnce sync.Once
	defaultAssets     *AssetTable
)

// DefaultAssets returns the asset table compiled into the binary. It
// panics if the embedded data fails validation, which can only happen by
// editing assets.yaml without rebuilding the checks around it.
func DefaultAssets() *AssetTable {
	defaultAssetsOnce.Do(func() {
		table, err := LoadAssets(bytes.NewReader(defaultAssetsYAML))
		if err != nil {
			panic(fmt.Sprintf("embedded asset table: %v", err))
		}
		defaultAssets = table
	})
	return defaultAssets
}

func buildAssets(file AssetFile) (*AssetTable, error) {
	if len(file.Items) == 0 {
		return nil, fmt.Errorf("assets: no items defined")
	}

	table := &AssetTable{
		fire:      file.Fire,
		player:    file.Player,
		items:     file.Items,
		index:     make(map[ItemID]int, len(file.Items)),
		nameIndex: make(map[string]ItemID, len(file.Items)*2),
	}
	for i, spec := range file.Items {
		if spec.ID == "" {
			return nil, fmt.Errorf("assets: item %d has no id", i)
		}
		if _, dup := table.index[spec.ID]; dup {
			return nil, fmt.Errorf("assets: duplicate item id %q", spec.ID)
		}
		if spec.Name == "" {
			return nil, fmt.Errorf("assets: item %q has no name", spec.ID)
		}
		if spec.MassGrams <= 0 {
			return nil, fmt.Errorf("assets: item %q mass must be positive, got %v", spec.ID, spec.MassGrams)
		}
		if fuel := spec.Fuel; fuel != nil {
			if fuel.BurnEnergy <= 0 {
				return nil, fmt.Errorf("assets: item %q burn energy must be positive, got %v", spec.ID, fuel.BurnEnergy)
			}
			if fuel.BurnTemperature <= 0 {
				return nil, fmt.Errorf("assets: item %q burn temperature must be positive, got %v", spec.ID, fuel.BurnTemperature)
			}
			if fuel.ActivationCoefficient <= 0 {
				return nil, fmt.Errorf("assets: item %q activation coefficient must be positive, got %v", spec.ID, fuel.ActivationCoefficient)
			}
			if fuel.MinActivationTemperature < 0 {
				return nil, fmt.Errorf("assets: item %q minimum activation temperature must not be negative, got %v", spec.ID, fuel.MinActivationTemperature)
			}
		}
		table.index[spec.ID] = i
		table.nameIndex[foldItemName(string(spec.ID))] = spec.ID
		table.nameIndex[foldItemName(spec.Name)] = spec.ID
	}

	for i, recipe := range file.Recipes {
		if err := table.checkRecipe(recipe); err != nil {
			return nil, fmt.Errorf("assets: recipe %d: %w", i, err)
		}
	}
	table.recipes = NewRecipeSet(file.Recipes)

	if err := table.checkFireDefaults(file.Fire); err != nil {
		return nil, fmt.Errorf("assets: fire: %w", err)
	}
	if err := table.checkPlayerDefaults(file.Player); err != nil {
		return nil, fmt.Errorf("assets: player: %w", err)
	}
	return table, nil
}

func (t *AssetTable) checkRecipe(recipe Recipe) error {
	if len(recipe.Ingredients) == 0 {
		return fmt.Errorf("no ingredients")
	}
	if len(recipe.Products) == 0 {
		return fmt.Errorf("no products")
	}
	if recipe.CraftTime <= 0 {
		return fmt.Errorf("craft time must be positive, got %v", recipe.CraftTime)
	}
	check := func(ic ItemCount) error {
		if _, ok := t.index[ic.Item]; !ok {
			return fmt.Errorf("unknown item %q", ic.Item)
		}
		if ic.Count <= 0 {
			return fmt.Errorf("count for %q must be positive, got %d", ic.Item, ic.Count)
		}
		return nil
	}
	for _, ic := range recipe.Ingredients {
		if err := check(ic); err != nil {
			return err
		}
	}
	for _, ic := range recipe.Products {
		if err := check(ic); err != nil {
			return err
		}
	}
	return nil
}

func (t *AssetTable) checkFireDefaults(fire FireDefaults) error {
	if fire.TickResolution <= 0 {
		return fmt.Errorf("tick resolution must be positive, got %v", fire.TickResolution)
	}
	if fire.WeightOfAmbient < 0 {
		return fmt.Errorf("weight of ambient must not be negative, got %v", fire.WeightOfAmbient)
	}
	if fire.Embers.Count < 0 {
		return fmt.Errorf("ember count must not be negative, got %d", fire.Embers.Count)
	}
	if fire.Embers.Count > 0 {
		spec, ok := t.Item(fire.Embers.Item)
		if !ok {
			return fmt.Errorf("unknown ember item %q", fire.Embers.Item)
		}
		if !spec.Flammable() {
			return fmt.Errorf("ember item %q is not flammable", fire.Embers.Item)
		}
		if f := fire.Embers.RemainingFraction; f <= 0 || f > 1 {
			return fmt.Errorf("ember remaining fraction must be in (0, 1], got %v", f)
		}
	}
	return nil
}

func (t *AssetTable) checkPlayerDefaults(player PlayerDefaults) error {
	if player.MaxHitPoints <= 0 {
		return fmt.Errorf("max hit points must be positive, got %v", player.MaxHitPoints)
	}
	if player.InventoryCapacity <= 0 {
		return fmt.Errorf("inventory capacity must be positive, got %v", player.InventoryCapacity)
	}
	var kitMass float64
	for _, ic := range player.StartingKit {
		spec, ok := t.Item(ic.Item)
		if !ok {
			return fmt.Errorf("unknown starting kit item %q", ic.Item)
		}
		if ic.Count <= 0 {
			return fmt.Errorf("starting kit count for %q must be positive, got %d", ic.Item, ic.Count)
		}
		kitMass += spec.MassGrams * float64(ic.Count)
	}
	if kitMass > player.InventoryCapacity {
		return fmt.Errorf("starting kit mass %v exceeds inventory capacity %v", kitMass, player.InventoryCapacity)
	}
	return nil
}

// Item looks up one item's spec.
func (t *AssetTable) Item(id ItemID) (ItemSpec, bool) {
	i, ok := t.index[id]
	if !ok {
		return ItemSpec{}, false
	}
	return t.items[i], true
}

// FuelParameters looks up an item's combustion data. The second return is
// false for unknown and non-flammable items alike.
func (t *AssetTable) FuelParameters(id ItemID) (FuelParameters, bool) {
	spec, ok := t.Item(id)
	if !ok || spec.Fuel == nil {
		return FuelParameters{}, false
	}
	return *spec.Fuel, true
}

// ItemMass returns an item's mass in grams, or zero for unknown items.
func (t *AssetTable) ItemMass(id ItemID) float64 {
	spec, ok := t.Item(id)
	if !ok {
		return 0
	}
	return spec.MassGrams
}

// DisplayName returns an item's human-readable name, falling back to the
// raw id for items the table does not know.
func (t *AssetTable) DisplayName(id ItemID) string {
	spec, ok := t.Item(id)
	if !ok {
		return string(id)
	}
	return spec.Name
}

// ItemByName resolves a human-entered item reference against ids and
// display names alike, with case, underscores and extra spaces ignored.
func (t *AssetTable) ItemByName(name string) (ItemSpec, bool) {
	id, ok := t.nameIndex[foldItemName(name)]
	if !ok {
		return ItemSpec{}, false
	}
	return t.Item(id)
}

func foldItemName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

// AllItems returns every item spec in file order.
func (t *AssetTable) AllItems() []ItemSpec {
	out := make([]ItemSpec, len(t.items))
	copy(out, t.items)
	return out
}

// Recipes returns the table's recipe set.
func (t *AssetTable) Recipes() RecipeSet { return t.recipes }

// RecipesFor returns every recipe producing the given item, in file order.
func (t *AssetTable) RecipesFor(product ItemID) []Recipe {
	return t.recipes.For(product)
}

// FireDefaults returns the starting conditions for a new fire.
func (t *AssetTable) FireDefaults() FireDefaults { return t.fire }

// PlayerDefaults returns the starting conditions for a new player.
func (t *AssetTable) PlayerDefaults() PlayerDefaults { return t.player }
