// Command firesim runs the campfire model headless. Run with:
//
//	go run ./cmd/firesim -fuel small_stick:4,log -chart out.png
//
// A schedule file feeds the fire at fixed points of fire time:
//
//	feed:
//	  - at: 0
//	    item: small_stick
//	    count: 3
//	  - at: 120
//	    item: log
//
// The run ends at burnout or -max-ticks, leaving a per-tick CSV and a
// temperature and energy chart for tuning fuel tables.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"gopkg.in/yaml.v3"

	"github.com/emberhold-games/emberhold/internal/game"
)

type feedEvent struct {
	At    float64     `yaml:"at"`
	Item  game.ItemID `yaml:"item"`
	Count int         `yaml:"count"`
}

type scheduleFile struct {
	Feed []feedEvent `yaml:"feed"`
}

type sample struct {
	tick        int
	time        float64
	temperature float64
	energy      float64
	burning     float64
	fresh       float64
}

func main() {
	var (
		assetsPath   string
		schedulePath string
		fuel         string
		maxTicks     int
		resolution   float64
		ambient      float64
		csvPath      string
		chartPath    string
		every        int
	)

	flag.StringVar(&assetsPath, "assets", "", "load an external asset table instead of the built-in one")
	flag.StringVar(&schedulePath, "schedule", "", "YAML feed schedule (see the package comment)")
	flag.StringVar(&fuel, "fuel", "", "fuel added at time zero, e.g. small_stick:4,log")
	flag.IntVar(&maxTicks, "max-ticks", 100000, "stop after this many ticks even if the fire still burns")
	flag.Float64Var(&resolution, "resolution", 0, "seconds simulated per tick (0 keeps the asset default)")
	flag.Float64Var(&ambient, "ambient", 0, "ambient temperature in kelvin (0 keeps the asset default)")
	flag.StringVar(&csvPath, "csv", "firesim.csv", "per-tick log path (empty disables)")
	flag.StringVar(&chartPath, "chart", "firesim.png", "chart path (empty disables)")
	flag.IntVar(&every, "every", 1, "sample every nth tick")
	flag.Parse()

	if maxTicks < 1 {
		fatal(fmt.Errorf("max-ticks must be at least 1"))
	}
	if every < 1 {
		every = 1
	}

	assets := game.DefaultAssets()
	if assetsPath != "" {
		loaded, err := game.LoadAssetsFile(assetsPath)
		if err != nil {
			fatal(err)
		}
		assets = loaded
	}

	schedule, err := buildSchedule(assets, schedulePath, fuel)
	if err != nil {
		fatal(err)
	}

	fire := game.NewFire(assets)
	if resolution > 0 {
		fire.SetTickResolution(resolution)
	}
	if ambient > 0 {
		fire.SetAmbientTemperature(ambient)
	}

	samples, feedTimes, skipped, err := run(fire, schedule, maxTicks, every)
	if err != nil {
		fatal(err)
	}

	last := samples[len(samples)-1]
	if fire.IsAlive() {
		fmt.Printf("fire still burning after %d ticks (%.0fs of fire time)\n", last.tick, fire.TimeAlive())
	} else {
		fmt.Printf("fire burned out after %d ticks (%.0fs of fire time)\n", last.tick, fire.TimeAlive())
	}
	var peak float64
	for _, s := range samples {
		peak = math.Max(peak, s.temperature)
	}
	fmt.Printf("peak temperature %.1fK, %.1f energy unspent\n", peak, fire.EnergyRemaining())
	if skipped > 0 {
		fmt.Printf("%d scheduled feeds never landed; the fire was already out\n", skipped)
	}

	if csvPath != "" {
		if err := writeCSV(csvPath, samples); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", csvPath)
	}
	if chartPath != "" {
		if err := renderChart(chartPath, samples, feedTimes); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", chartPath)
	}
}

// run ticks the fire to burnout or the tick limit, landing scheduled feeds
// as their time comes up. It returns the sampled history, the fire times at
// which feeds landed, and how many scheduled feeds the burnout stranded.
func run(fire *game.Fire, schedule []feedEvent, maxTicks, every int) ([]sample, []float64, int, error) {
	samples := []sample{snapshot(0, fire)}
	var feedTimes []float64
	next := 0
	tick := 0
	for tick < maxTicks && fire.IsAlive() {
		for next < len(schedule) && schedule[next].At <= fire.TimeAlive() {
			ev := schedule[next]
			if err := fire.AddItems(ev.Item, ev.Count); err != nil {
				return nil, nil, 0, fmt.Errorf("feed %s at %.0fs: %w", ev.Item, ev.At, err)
			}
			feedTimes = append(feedTimes, fire.TimeAlive())
			next++
		}
		if err := fire.Tick(); err != nil {
			return nil, nil, 0, err
		}
		tick++
		if tick%every == 0 || !fire.IsAlive() {
			samples = append(samples, snapshot(tick, fire))
		}
	}
	if samples[len(samples)-1].tick != tick {
		samples = append(samples, snapshot(tick, fire))
	}
	return samples, feedTimes, len(schedule) - next, nil
}

func snapshot(tick int, fire *game.Fire) sample {
	return sample{
		tick:        tick,
		time:        fire.TimeAlive(),
		temperature: fire.Temperature(),
		energy:      fire.EnergyRemaining(),
		burning:     fire.BurningEnergyRemaining(),
		fresh:       fire.FreshEnergyRemaining(),
	}
}

// buildSchedule merges the -fuel flag and the schedule file into one feed
// list sorted by time. Items resolve by ID or display name and must burn.
func buildSchedule(assets *game.AssetTable, schedulePath, fuel string) ([]feedEvent, error) {
	var events []feedEvent

	if fuel != "" {
		parsed, err := parseFuelList(fuel)
		if err != nil {
			return nil, err
		}
		events = append(events, parsed...)
	}

	if schedulePath != "" {
		loaded, err := loadSchedule(schedulePath)
		if err != nil {
			return nil, err
		}
		events = append(events, loaded...)
	}

	for i := range events {
		ev := &events[i]
		if ev.Count == 0 {
			ev.Count = 1
		}
		if ev.Count < 0 {
			return nil, fmt.Errorf("feed %q: count must be positive", ev.Item)
		}
		if ev.At < 0 {
			return nil, fmt.Errorf("feed %q: at must not be negative", ev.Item)
		}
		spec, ok := assets.ItemByName(string(ev.Item))
		if !ok {
			return nil, fmt.Errorf("feed %q: unknown item", ev.Item)
		}
		if !spec.Flammable() {
			return nil, fmt.Errorf("feed %q: %s does not burn", ev.Item, spec.Name)
		}
		ev.Item = spec.ID
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At < events[j].At
	})
	return events, nil
}

func parseFuelList(list string) ([]feedEvent, error) {
	var events []feedEvent
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, countText, hasCount := strings.Cut(part, ":")
		count := 1
		if hasCount {
			parsed, err := strconv.Atoi(strings.TrimSpace(countText))
			if err != nil {
				return nil, fmt.Errorf("fuel %q: bad count: %w", part, err)
			}
			if parsed < 1 {
				return nil, fmt.Errorf("fuel %q: count must be positive", part)
			}
			count = parsed
		}
		events = append(events, feedEvent{Item: game.ItemID(strings.TrimSpace(name)), Count: count})
	}
	return events, nil
}

func loadSchedule(path string) ([]feedEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var file scheduleFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode schedule %s: %w", path, err)
	}
	return file.Feed, nil
}

func writeCSV(path string, samples []sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "tick,time_s,temperature_k,energy_total,energy_burning,energy_fresh")
	for _, s := range samples {
		fmt.Fprintf(w, "%d,%.1f,%.3f,%.3f,%.3f,%.3f\n",
			s.tick, s.time, s.temperature, s.energy, s.burning, s.fresh)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// renderChart plots temperature against the left axis and remaining energy
// against the right one, with an amber mark at every feed.
func renderChart(path string, samples []sample, feedTimes []float64) error {
	const (
		width  = 960
		height = 540
		left   = 70.0
		right  = 80.0
		top    = 48.0
		bottom = 56.0
	)
	if len(samples) < 2 {
		return fmt.Errorf("not enough samples to chart")
	}

	maxTime := samples[len(samples)-1].time
	if maxTime <= 0 {
		maxTime = 1
	}
	minTemp := samples[0].temperature
	var maxTemp, maxEnergy float64
	for _, s := range samples {
		minTemp = math.Min(minTemp, s.temperature)
		maxTemp = math.Max(maxTemp, s.temperature)
		maxEnergy = math.Max(maxEnergy, s.energy)
	}
	tempLo := math.Floor((minTemp-5)/50) * 50
	tempHi := math.Ceil((maxTemp+5)/50) * 50
	if tempHi-tempLo < 1 {
		tempHi = tempLo + 1
	}
	energyHi := math.Ceil(maxEnergy/100) * 100
	if energyHi <= 0 {
		energyHi = 1
	}

	plotW := float64(width) - left - right
	plotH := float64(height) - top - bottom
	xAt := func(t float64) float64 { return left + plotW*t/maxTime }
	yTemp := func(v float64) float64 { return top + plotH*(1-(v-tempLo)/(tempHi-tempLo)) }
	yEnergy := func(v float64) float64 { return top + plotH*(1-v/energyHi) }

	dc := gg.NewContext(width, height)
	dc.SetRGB255(18, 20, 22)
	dc.Clear()

	dc.SetLineWidth(1)
	for i := 0; i <= 4; i++ {
		frac := float64(i) / 4
		y := top + plotH*frac
		dc.SetRGBA(1, 1, 1, 0.12)
		dc.DrawLine(left, y, left+plotW, y)
		dc.Stroke()
		dc.SetRGB255(180, 180, 180)
		dc.DrawStringAnchored(fmt.Sprintf("%.0fK", tempHi-(tempHi-tempLo)*frac), left-8, y, 1, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", energyHi*(1-frac)), left+plotW+8, y, 0, 0.5)
	}
	for i := 0; i <= 6; i++ {
		frac := float64(i) / 6
		x := left + plotW*frac
		dc.SetRGBA(1, 1, 1, 0.12)
		dc.DrawLine(x, top, x, top+plotH)
		dc.Stroke()
		dc.SetRGB255(180, 180, 180)
		dc.DrawStringAnchored(fmt.Sprintf("%.0fs", maxTime*frac), x, top+plotH+16, 0.5, 0.5)
	}

	dc.SetRGBA255(255, 200, 80, 110)
	for _, t := range feedTimes {
		x := xAt(t)
		dc.DrawLine(x, top, x, top+plotH)
		dc.Stroke()
	}

	// Energy goes under the temperature line so the flame stays readable.
	dc.SetLineWidth(2)
	dc.SetRGB255(80, 200, 160)
	for i, s := range samples {
		if i == 0 {
			dc.MoveTo(xAt(s.time), yEnergy(s.energy))
			continue
		}
		dc.LineTo(xAt(s.time), yEnergy(s.energy))
	}
	dc.Stroke()

	dc.SetRGB255(255, 120, 40)
	for i, s := range samples {
		if i == 0 {
			dc.MoveTo(xAt(s.time), yTemp(s.temperature))
			continue
		}
		dc.LineTo(xAt(s.time), yTemp(s.temperature))
	}
	dc.Stroke()

	dc.SetRGB255(255, 120, 40)
	dc.DrawRectangle(left, 18, 10, 10)
	dc.Fill()
	dc.SetRGB255(220, 220, 220)
	dc.DrawString("temperature (K)", left+16, 27)
	dc.SetRGB255(80, 200, 160)
	dc.DrawRectangle(left+170, 18, 10, 10)
	dc.Fill()
	dc.SetRGB255(220, 220, 220)
	dc.DrawString("energy remaining", left+186, 27)

	return dc.SavePNG(path)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
