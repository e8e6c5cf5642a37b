package game

// ItemID identifies an item in the asset table. The zero value is not a
// valid item.
type ItemID string

// Items in the built-in asset table. External asset files may define any
// set of items; these constants only name the defaults.
const (
	ItemTwig         ItemID = "twig"
	ItemSmallStick   ItemID = "small_stick"
	ItemMediumStick  ItemID = "medium_stick"
	ItemLargeStick   ItemID = "large_stick"
	ItemMediumLog    ItemID = "medium_log"
	ItemLargeLog     ItemID = "large_log"
	ItemLeaves       ItemID = "leaves"
	ItemSmallBundle  ItemID = "small_bundle"
	ItemMediumBundle ItemID = "medium_bundle"
	ItemRiverStone   ItemID = "river_stone"
)

// ItemCount pairs an item with a quantity. Recipe ingredient lists, product
// lists, inventory reports and shortfall errors all share this shape.
type ItemCount struct {
	Item  ItemID `yaml:"item" json:"item"`
	Count int    `yaml:"count" json:"count"`
}

// FuelParameters is the combustion data carried by every flammable item.
// Non-flammable items have no fuel block and cannot go on a fire.
type FuelParameters struct {
	// BurnEnergy determines how long the fuel burns, how long it takes to
	// heat toward ignition, and how much weight it carries in the fire's
	// target temperature.
	BurnEnergy float64 `yaml:"burn_energy" json:"burn_energy"`
	// BurnTemperature is the temperature the fuel burns at, in kelvin.
	BurnTemperature float64 `yaml:"burn_temperature" json:"burn_temperature"`
	// ActivationCoefficient scales the activation threshold: the fuel
	// ignites once its progress reaches BurnEnergy*ActivationCoefficient.
	ActivationCoefficient float64 `yaml:"activation_coefficient" json:"activation_coefficient"`
	// MinActivationTemperature is the fire temperature below which the fuel
	// loses activation progress instead of gaining it, and below which a
	// burning instance of the fuel goes back out.
	MinActivationTemperature float64 `yaml:"minimum_activation_temperature" json:"minimum_activation_temperature"`
}

// WeaponParameters is data-only: combat is not simulated, but items keep
// their stats so the catalogs stay complete.
type WeaponParameters struct {
	HitChance float64 `yaml:"hit_chance" json:"hit_chance"`
	MinDamage float64 `yaml:"min_damage" json:"min_damage"`
	MaxDamage float64 `yaml:"max_damage" json:"max_damage"`
}

// ItemSpec is one item's full asset record.
type ItemSpec struct {
	ID          ItemID            `yaml:"id" json:"id"`
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	MassGrams   float64           `yaml:"mass_grams" json:"mass_grams"`
	Fuel        *FuelParameters   `yaml:"fuel,omitempty" json:"fuel,omitempty"`
	Weapon      *WeaponParameters `yaml:"weapon,omitempty" json:"weapon,omitempty"`
}

// Flammable reports whether the item carries fuel data.
func (s ItemSpec) Flammable() bool { return s.Fuel != nil }
