package game

import (
	"fmt"
	"strings"
)

const summaryDivider = "===========================\n"

// summaryItemCap bounds how many items each summary section lists before
// collapsing the rest into an ellipsis line.
const summaryItemCap = 15

// Summary renders the fire's state for a turn report, with the last
// tick's deltas shown as-is.
func (f *Fire) Summary() string {
	return f.SummaryTicks(1)
}

// SummaryTicks renders the fire's state with the last tick's deltas scaled
// up to cover ticks ticks, for interfaces that advance several ticks per
// turn.
func (f *Fire) SummaryTicks(ticks int) string {
	var b strings.Builder

	total := f.EnergyRemaining()
	burning := f.BurningEnergyRemaining()
	fresh := f.FreshEnergyRemaining()
	var burningPercent, freshPercent float64
	if total > 0 {
		burningPercent = burning / total * 100
		freshPercent = fresh / total * 100
	}

	fmt.Fprintf(&b, "TEMPERATURE: %.0fK (%.2f)\n", f.temperature, f.temperatureDelta*float64(ticks))
	fmt.Fprintf(&b, "BURNING ENERGY: %.0f (%.0f%%) (%.2f)\n", burning, burningPercent, f.energyRemainingDelta*float64(ticks))
	fmt.Fprintf(&b, "FRESH ENERGY: %.0f (%.0f%%)\n", fresh, freshPercent)

	b.WriteString(summaryDivider)
	f.writeItemLines(&b, StateFresh, "HEATING")
	b.WriteString(summaryDivider)
	f.writeItemLines(&b, StateBurning, "BURNING")

	return b.String()
}

func (f *Fire) writeItemLines(b *strings.Builder, state BurnState, verb string) {
	n := 0
	for i := range f.items {
		item := &f.items[i]
		if item.state != state {
			continue
		}
		if n > summaryItemCap {
			b.WriteString("...\n")
			break
		}

		var percent float64
		if state == StateFresh {
			percent = item.ActivationPercentage()
		} else {
			percent = item.remainingEnergy / item.fuel.BurnEnergy
		}
		fmt.Fprintf(b, "%s %s: %.0f%%\n", verb, strings.ToUpper(f.assets.DisplayName(item.item)), percent*100)
		n++
	}
}
