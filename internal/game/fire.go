package game

import (
	"fmt"
	"math"

	"github.com/emberhold-games/emberhold/internal/mathutil"
)

// Tuning constants for the thermal model. Time is unitless: one tick at
// resolution 1.0 advances the fire by 1.0 time.
const (
	// heatGainRate scales how fast a fresh item gains activation progress
	// from the fire's temperature.
	heatGainRate = 0.005
	// activationDecayRate scales how fast a fresh item loses activation
	// progress while the fire sits below its activation temperature.
	activationDecayRate = 0.03
	// burnRate scales how fast a burning item spends energy. Hotter fires
	// burn their fuel faster.
	burnRate = 0.001
	// thermalInertia divides the gap between the fire's temperature and its
	// target, so the temperature closes on the target asymptotically.
	thermalInertia = 50.0
)

// Fire is a continuous-time campfire. Fuel is added fresh, heats toward
// ignition while the fire is hot enough, burns its energy off, and is
// discarded when spent. The fire's temperature trends toward a weighted
// mean of its contents and the ambient air.
type Fire struct {
	assets *AssetTable
	items  []BurningItem

	temperature        float64
	ambientTemperature float64
	tickResolution     float64
	freshFuelRadiates  bool
	weightOfAmbient    float64

	temperatureDelta        float64
	ambientTemperatureDelta float64
	energyRemainingDelta    float64
	timeAlive               float64
}

// NewFire builds a fire from the table's starting conditions, already lit.
// The table validated the ember item at load time, so seeding cannot fail.
func NewFire(assets *AssetTable) *Fire {
	defaults := assets.FireDefaults()
	fire := &Fire{
		assets:             assets,
		temperature:        defaults.Temperature,
		ambientTemperature: defaults.AmbientTemperature,
		tickResolution:     defaults.TickResolution,
		freshFuelRadiates:  defaults.FreshFuelRadiates,
		weightOfAmbient:    defaults.WeightOfAmbient,
	}
	fuel, _ := assets.FuelParameters(defaults.Embers.Item)
	for i := 0; i < defaults.Embers.Count; i++ {
		fire.items = append(fire.items, BurningItem{
			item:            defaults.Embers.Item,
			fuel:            fuel,
			remainingEnergy: fuel.BurnEnergy * defaults.Embers.RemainingFraction,
			state:           StateBurning,
		})
	}
	return fire
}

// Temperature returns the fire's current temperature in kelvin.
func (f *Fire) Temperature() float64 { return f.temperature }

// AmbientTemperature returns the air temperature around the fire.
func (f *Fire) AmbientTemperature() float64 { return f.ambientTemperature }

// SetAmbientTemperature changes the air temperature around the fire.
func (f *Fire) SetAmbientTemperature(value float64) { f.ambientTemperature = value }

// TickResolution returns the amount of time one tick advances.
func (f *Fire) TickResolution() float64 { return f.tickResolution }

// SetTickResolution changes the amount of time one tick advances. Coarser
// resolution trades accuracy for fewer ticks. It panics on values that are
// not positive, which would stall time entirely.
func (f *Fire) SetTickResolution(value float64) {
	if value <= 0 {
		panic(fmt.Sprintf("tick resolution must be positive, got %v", value))
	}
	f.tickResolution = value
}

// FreshFuelRadiates reports whether fresh items contribute heat as they
// approach ignition. When enabled, partially heated fuel helps keep the
// fire's target temperature up rather than dragging it toward ambient.
func (f *Fire) FreshFuelRadiates() bool { return f.freshFuelRadiates }

// SetFreshFuelRadiates toggles heat contribution from fresh items.
func (f *Fire) SetFreshFuelRadiates(value bool) { f.freshFuelRadiates = value }

// WeightOfAmbient returns the weight of the ambient air in the fire's
// target temperature. It stands in for heat escaping to the atmosphere.
func (f *Fire) WeightOfAmbient() float64 { return f.weightOfAmbient }

// SetWeightOfAmbient changes the weight of the ambient air in the fire's
// target temperature.
func (f *Fire) SetWeightOfAmbient(value float64) { f.weightOfAmbient = value }

// TemperatureDelta returns the temperature change over the last tick.
func (f *Fire) TemperatureDelta() float64 { return f.temperatureDelta }

// AmbientTemperatureDelta returns the ambient change over the last tick.
func (f *Fire) AmbientTemperatureDelta() float64 { return f.ambientTemperatureDelta }

// EnergyRemainingDelta returns the total energy change over the last tick.
func (f *Fire) EnergyRemainingDelta() float64 { return f.energyRemainingDelta }

// TimeAlive returns how much time the fire has been ticked through.
func (f *Fire) TimeAlive() float64 { return f.timeAlive }

// Items returns a copy of everything currently on the fire.
func (f *Fire) Items() []BurningItem {
	out := make([]BurningItem, len(f.items))
	copy(out, f.items)
	return out
}

// AddItem puts one fresh item on the fire.
func (f *Fire) AddItem(item ItemID) error {
	burning, err := NewBurningItem(f.assets, item)
	if err != nil {
		return err
	}
	f.items = append(f.items, burning)
	return nil
}

// AddItems puts count fresh items of the same kind on the fire. The fire
// is unchanged if the item cannot burn.
func (f *Fire) AddItems(item ItemID, count int) error {
	added := make([]BurningItem, 0, count)
	for i := 0; i < count; i++ {
		burning, err := NewBurningItem(f.assets, item)
		if err != nil {
			return err
		}
		added = append(added, burning)
	}
	f.items = append(f.items, added...)
	return nil
}

// EnergyRemaining returns the total energy left on the fire, burning and
// fresh items both.
func (f *Fire) EnergyRemaining() float64 {
	var total float64
	for i := range f.items {
		total += f.items[i].remainingEnergy
	}
	return total
}

// BurningEnergyRemaining returns the energy left in burning items only.
func (f *Fire) BurningEnergyRemaining() float64 {
	return f.energyInState(StateBurning)
}

// FreshEnergyRemaining returns the energy left in fresh items only.
func (f *Fire) FreshEnergyRemaining() float64 {
	return f.energyInState(StateFresh)
}

func (f *Fire) energyInState(state BurnState) float64 {
	var total float64
	for i := range f.items {
		if f.items[i].state == state {
			total += f.items[i].remainingEnergy
		}
	}
	return total
}

// IsAlive reports whether anything on the fire is burning. A fire that is
// not alive never becomes alive again.
func (f *Fire) IsAlive() bool {
	for i := range f.items {
		if f.items[i].state == StateBurning {
			return true
		}
	}
	return false
}

// HasFreshItems reports whether the fire holds items still heating up.
// True says nothing about whether the fire is alive to ignite them.
func (f *Fire) HasFreshItems() bool {
	for i := range f.items {
		if f.items[i].state == StateFresh {
			return true
		}
	}
	return false
}

// Tick advances the fire by one tick resolution of time. Every item is
// updated against the temperature the fire entered the tick with, spent
// items are discarded, and then the temperature relaxes toward its target.
// Ticking a burnt out fire returns ErrBurntOut and changes nothing.
func (f *Fire) Tick() error {
	if !f.IsAlive() {
		return ErrBurntOut
	}

	ambientBefore := f.ambientTemperature
	temperatureBefore := f.temperature
	energyBefore := f.EnergyRemaining()

	f.tickItems()
	f.tickTemperature()

	f.ambientTemperatureDelta = f.ambientTemperature - ambientBefore
	f.temperatureDelta = f.temperature - temperatureBefore
	f.energyRemainingDelta = f.EnergyRemaining() - energyBefore
	f.timeAlive += f.tickResolution

	return nil
}

// TickMultiple ticks the fire count times, stopping at the first failure.
func (f *Fire) TickMultiple(count int) error {
	for i := 0; i < count; i++ {
		if err := f.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// TickTime ticks the fire through at least duration time. The overshoot is
// bounded by one tick resolution.
func (f *Fire) TickTime(duration float64) error {
	return f.TickMultiple(int(math.Ceil(duration / f.tickResolution)))
}

func (f *Fire) tickItems() {
	for i := range f.items {
		switch f.items[i].state {
		case StateFresh:
			f.heatItemTick(&f.items[i])
		case StateBurning:
			f.burnItemTick(&f.items[i])
		}
	}

	kept := f.items[:0]
	for _, item := range f.items {
		if item.state != StateSpent {
			kept = append(kept, item)
		}
	}
	f.items = kept
}

// heatItemTick drives a fresh item toward or away from ignition. Hotter
// fires heat their fuel faster; a fire below the item's activation
// temperature bleeds progress off in proportion to how far along it was.
func (f *Fire) heatItemTick(item *BurningItem) {
	if f.temperature >= item.fuel.MinActivationTemperature {
		item.activationProgress += f.temperature * heatGainRate * f.tickResolution
	} else {
		item.activationProgress -= (item.fuel.BurnTemperature - f.ambientTemperature) *
			item.ActivationPercentage() * activationDecayRate * f.tickResolution
	}

	if item.activationProgress >= item.activationThreshold() &&
		f.temperature >= item.fuel.MinActivationTemperature {
		item.activationProgress = 0
		item.state = StateBurning
	}
}

// burnItemTick spends a burning item's energy. An item with nothing left
// is marked spent, but a fire too cold to sustain it wins out: the item
// goes back to fresh with its activation progress reset instead.
func (f *Fire) burnItemTick(item *BurningItem) {
	item.remainingEnergy -= f.temperature * burnRate * f.tickResolution

	if item.remainingEnergy <= 0 {
		item.state = StateSpent
		item.remainingEnergy = 0
	}

	if f.temperature < item.fuel.MinActivationTemperature {
		item.state = StateFresh
		item.activationProgress = 0
	}
}

// tickTemperature relaxes the fire's temperature toward its target. The
// step is proportional to the gap, so the approach is asymptotic. An
// empty fire snaps straight to ambient.
func (f *Fire) tickTemperature() {
	if len(f.items) == 0 {
		f.temperature = f.ambientTemperature
		return
	}
	target := f.targetTemperature()
	f.temperature += (target - f.temperature) / thermalInertia * f.tickResolution
}

// targetTemperature is the temperature the fire would settle at with no
// thermal inertia: a mean of every item's contribution weighted by its
// remaining energy, plus the ambient air at its configured weight.
func (f *Fire) targetTemperature() float64 {
	weighted := make([]mathutil.Weighted, 0, len(f.items)+1)
	weighted = append(weighted, mathutil.Weighted{Value: f.ambientTemperature, Weight: f.weightOfAmbient})

	for i := range f.items {
		item := &f.items[i]
		contribution := f.ambientTemperature
		if item.state == StateBurning {
			contribution = item.fuel.BurnTemperature
		} else if f.freshFuelRadiates && item.state == StateFresh &&
			f.temperature >= item.fuel.MinActivationTemperature {
			contribution = f.ambientTemperature +
				(item.fuel.BurnTemperature-f.ambientTemperature)*item.ActivationPercentage()
		}
		weighted = append(weighted, mathutil.Weighted{Value: contribution, Weight: item.remainingEnergy})
	}

	return mathutil.WeightedMean(weighted)
}
