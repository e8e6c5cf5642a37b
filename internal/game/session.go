package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/emberhold-games/emberhold/internal/parser"
)

// CommandResult is what a session hands back for one player input. An
// unhandled command is one the session does not own, such as quit, which
// the interface layer decides what to do with; Command carries the
// canonical verb so that routing needs no second parse.
type CommandResult struct {
	Handled      bool
	Command      string
	Message      string
	TimeAdvanced float64
	GameOver     bool
}

// SessionConfig tunes a new session. Zero values fall back to defaults.
type SessionConfig struct {
	// Seed drives the session's only randomness, the survivor's name.
	Seed uint64
	// TicksPerTurn is how many fire ticks one turn of waiting spends.
	TicksPerTurn int
	// PlayerName overrides the drawn name when set.
	PlayerName string
}

const defaultTicksPerTurn = 5

// waitTurnLimit caps a single wait command so a typo cannot skip an
// entire night of tending.
const waitTurnLimit = 100

// Session owns one game: a fire, a player, at most one craft in flight,
// and the parser that turns free text into commands.
type Session struct {
	assets       *AssetTable
	fire         *Fire
	player       *Player
	craft        *InProgressCraft
	parser       *parser.Parser
	lastEntity   string
	ticksPerTurn int
	gameOver     bool
}

// NewSession starts a fresh game against the given asset table.
func NewSession(assets *AssetTable, cfg SessionConfig) *Session {
	ticksPerTurn := cfg.TicksPerTurn
	if ticksPerTurn <= 0 {
		ticksPerTurn = defaultTicksPerTurn
	}
	name := strings.TrimSpace(cfg.PlayerName)
	if name == "" {
		rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
		name = RandomName(rng)
	}
	return &Session{
		assets:       assets,
		fire:         NewFire(assets),
		player:       NewPlayer(assets, name),
		parser:       parser.New(),
		ticksPerTurn: ticksPerTurn,
	}
}

// Fire returns the session's fire.
func (s *Session) Fire() *Fire { return s.fire }

// Player returns the session's player.
func (s *Session) Player() *Player { return s.player }

// ActiveCraft returns the craft in flight, or nil.
func (s *Session) ActiveCraft() *InProgressCraft { return s.craft }

// TicksPerTurn returns how many fire ticks one turn spends.
func (s *Session) TicksPerTurn() int { return s.ticksPerTurn }

// GameOver reports whether the fire has burnt out.
func (s *Session) GameOver() bool { return s.gameOver }

// TurnTime is the amount of fire time one turn covers.
func (s *Session) TurnTime() float64 {
	return float64(s.ticksPerTurn) * s.fire.TickResolution()
}

// Turns is how many full turns of time the fire has lived through.
func (s *Session) Turns() int {
	return int(s.fire.TimeAlive() / s.TurnTime())
}

// Ticks is how many ticks the fire has lived through.
func (s *Session) Ticks() int {
	return int(math.Round(s.fire.TimeAlive() / s.fire.TickResolution()))
}

const helpMessage = "Commands: status, inventory, player, " +
	"add <count|all> <item>, wait [turns], craft <item>, finish, cancel, quit. " +
	"Queries cost no time; actions push the fire on."

// ExecuteCommand parses one line of player input and runs it. Commands
// the session does not own come back unhandled for the caller to route.
func (s *Session) ExecuteCommand(raw string) CommandResult {
	if strings.TrimSpace(raw) == "" {
		return CommandResult{}
	}
	if s.gameOver {
		return CommandResult{
			Handled:  true,
			GameOver: true,
			Message:  "The fire is dead and the cold has the camp. Quit to the menu to start over.",
		}
	}

	intent := s.parser.Parse(s.parseContext(), raw)
	if intent.Clarify != nil {
		return CommandResult{Handled: true, Message: clarifyMessage(intent.Clarify)}
	}

	result := s.dispatch(intent)
	result.Command = intent.Verb
	return result
}

func (s *Session) dispatch(intent parser.Intent) CommandResult {
	switch intent.Verb {
	case "help":
		return CommandResult{Handled: true, Message: helpMessage}
	case "status":
		return CommandResult{Handled: true, Message: s.StatusReport()}
	case "inventory":
		return CommandResult{Handled: true, Message: s.inventoryReport()}
	case "player":
		return CommandResult{Handled: true, Message: s.playerReport()}
	case "add":
		return s.executeAdd(intent)
	case "wait":
		return s.executeWait(intent)
	case "craft":
		return s.executeCraft(intent)
	case "finish":
		return s.executeFinish()
	case "cancel":
		return s.executeCancel()
	default:
		return CommandResult{}
	}
}

func (s *Session) parseContext() parser.ParseContext {
	var inventory []string
	for _, ic := range s.player.Inventory().Items() {
		inventory = append(inventory, s.assets.DisplayName(ic.Item), string(ic.Item))
	}
	var craftables []string
	for _, recipe := range s.assets.Recipes().All() {
		for _, product := range recipe.Products {
			craftables = append(craftables, s.assets.DisplayName(product.Item), string(product.Item))
		}
	}
	return parser.ParseContext{
		Inventory:  inventory,
		Craftables: craftables,
		LastEntity: s.lastEntity,
	}
}

func clarifyMessage(c *parser.ClarifyQuestion) string {
	if len(c.Options) == 0 {
		return c.Prompt
	}
	parts := make([]string, 0, len(c.Options))
	for _, opt := range c.Options {
		if cmd := parser.IntentToCommandString(opt); cmd != "" {
			parts = append(parts, cmd)
		}
	}
	if len(parts) == 0 {
		return c.Prompt
	}
	return c.Prompt + " " + strings.Join(parts, " | ")
}

func (s *Session) executeAdd(intent parser.Intent) CommandResult {
	if len(intent.Args) == 0 {
		return CommandResult{Handled: true, Message: "Usage: add <count|all> <item>"}
	}
	spec, ok := s.assets.ItemByName(intent.Args[0])
	if !ok {
		return CommandResult{Handled: true, Message: fmt.Sprintf("You don't recognise %q.", intent.Args[0])}
	}

	count := 1
	if q := intent.Quantity; q != nil {
		switch q.Unit {
		case "all":
			count = s.player.Inventory().Count(spec.ID)
			if count == 0 {
				return CommandResult{Handled: true, Message: fmt.Sprintf("You have no %s in your pack.", spec.Name)}
			}
		case "count":
			count = q.N
		default:
			return CommandResult{Handled: true, Message: "Usage: add <count|all> <item>"}
		}
	}
	if count < 1 {
		return CommandResult{Handled: true, Message: "Usage: add <count|all> <item>"}
	}

	if !spec.Flammable() {
		return CommandResult{Handled: true, Message: fmt.Sprintf("The %s will not burn.", spec.Name)}
	}

	if err := s.player.Inventory().TakeAmount(spec.ID, count); err != nil {
		var notFound *NotFoundError
		var notEnough *NotEnoughError
		switch {
		case errors.As(err, &notFound):
			return CommandResult{Handled: true, Message: fmt.Sprintf("You have no %s in your pack.", spec.Name)}
		case errors.As(err, &notEnough):
			return CommandResult{Handled: true, Message: fmt.Sprintf("You only have %d %s.", notEnough.Have, pluralName(spec.Name, notEnough.Have))}
		default:
			return CommandResult{Handled: true, Message: fmt.Sprintf("Add failed: %v", err)}
		}
	}
	if err := s.fire.AddItems(spec.ID, count); err != nil {
		if insertErr := s.player.Inventory().Insert(spec.ID, count); insertErr != nil {
			return CommandResult{Handled: true, Message: fmt.Sprintf("Add failed: %v", err)}
		}
		return CommandResult{Handled: true, Message: fmt.Sprintf("The %s will not burn.", spec.Name)}
	}
	s.lastEntity = spec.Name

	base := fmt.Sprintf("You put %d %s on the fire.", count, pluralName(spec.Name, count))
	advanced, notes, over := s.advanceTurns(1)
	return CommandResult{
		Handled:      true,
		Message:      joinSentences(base, notes),
		TimeAdvanced: advanced,
		GameOver:     over,
	}
}

func (s *Session) executeWait(intent parser.Intent) CommandResult {
	turns := 1
	if q := intent.Quantity; q != nil {
		switch q.Unit {
		case "count", "turns":
			turns = q.N
		default:
			return CommandResult{Handled: true, Message: "Usage: wait [turns]"}
		}
	}
	if turns < 1 || turns > waitTurnLimit {
		return CommandResult{Handled: true, Message: fmt.Sprintf("You can wait between 1 and %d turns.", waitTurnLimit)}
	}

	base := "You wait."
	if turns > 1 {
		base = fmt.Sprintf("You wait %d turns.", turns)
	}
	if s.craft != nil {
		base += " The craft moves along."
	}
	advanced, notes, over := s.advanceTurns(turns)
	return CommandResult{
		Handled:      true,
		Message:      joinSentences(base, notes),
		TimeAdvanced: advanced,
		GameOver:     over,
	}
}

func (s *Session) executeCraft(intent parser.Intent) CommandResult {
	if s.craft != nil {
		product := s.craftProductName()
		return CommandResult{Handled: true, Message: fmt.Sprintf("You are already crafting a %s. Finish or cancel it first.", product)}
	}
	if len(intent.Args) == 0 {
		return CommandResult{Handled: true, Message: "Usage: craft <item>"}
	}
	spec, ok := s.assets.ItemByName(intent.Args[0])
	if !ok {
		return CommandResult{Handled: true, Message: fmt.Sprintf("You don't know how to make %q.", intent.Args[0])}
	}

	craft, err := s.player.Craft(spec.ID)
	if err != nil {
		var noRecipe *NoRecipeError
		var missing *MissingIngredientsError
		switch {
		case errors.As(err, &noRecipe):
			return CommandResult{Handled: true, Message: fmt.Sprintf("You don't know how to make a %s.", spec.Name)}
		case errors.As(err, &missing):
			return CommandResult{Handled: true, Message: fmt.Sprintf("You still need %s.", s.describeCounts(missing.Missing))}
		default:
			return CommandResult{Handled: true, Message: fmt.Sprintf("Craft failed: %v", err)}
		}
	}

	s.craft = craft
	s.lastEntity = spec.Name
	return CommandResult{
		Handled: true,
		Message: fmt.Sprintf("You start crafting a %s (%.0f time). Wait to work on it, finish to see it through, or cancel to unmake it.", spec.Name, craft.RecipeTime()),
	}
}

func (s *Session) executeFinish() CommandResult {
	if s.craft == nil {
		return CommandResult{Handled: true, Message: "You are not crafting anything."}
	}

	before := s.fire.TimeAlive()
	items, err := s.craft.Complete(s.fire)
	advanced := s.fire.TimeAlive() - before
	if err != nil {
		s.craft = nil
		s.gameOver = true
		return CommandResult{
			Handled:      true,
			Message:      "The fire burns out under your hands, and the unfinished work is lost with the light.",
			TimeAdvanced: advanced,
			GameOver:     true,
		}
	}
	s.craft = nil
	return CommandResult{
		Handled:      true,
		Message:      fmt.Sprintf("You see the craft through and pack away %s.", s.storeItems(items)),
		TimeAdvanced: advanced,
	}
}

func (s *Session) executeCancel() CommandResult {
	if s.craft == nil {
		return CommandResult{Handled: true, Message: "You are not crafting anything."}
	}

	before := s.fire.TimeAlive()
	items, err := s.craft.Cancel(s.fire)
	advanced := s.fire.TimeAlive() - before
	if err != nil {
		s.craft = nil
		s.gameOver = true
		return CommandResult{
			Handled:      true,
			Message:      "The fire burns out while you pick the work apart, and the pieces are lost in the dark.",
			TimeAdvanced: advanced,
			GameOver:     true,
		}
	}
	s.craft = nil
	return CommandResult{
		Handled:      true,
		Message:      fmt.Sprintf("You unmake the craft and recover %s.", s.storeItems(items)),
		TimeAdvanced: advanced,
	}
}

// advanceTurns spends whole turns on the fire, or on the active craft
// when one is in flight. It reports the fire time actually spent, notes
// worth telling the player, and whether the fire died along the way.
func (s *Session) advanceTurns(turns int) (float64, []string, bool) {
	var notes []string
	before := s.fire.TimeAlive()

	for i := 0; i < turns; i++ {
		if s.craft != nil {
			result, err := s.craft.Progress(s.fire, s.TurnTime())
			if err != nil {
				s.craft = nil
				s.gameOver = true
				notes = append(notes, "The fire has burned out, and the unfinished craft is lost.")
				break
			}
			if result.State == CraftReady {
				notes = append(notes, fmt.Sprintf("The craft is done: you pack away %s.", s.storeItems(result.Items)))
				s.craft = nil
			}
			continue
		}

		if err := s.fire.TickMultiple(s.ticksPerTurn); err != nil {
			s.gameOver = true
			notes = append(notes, "The fire has burned out.")
			break
		}
	}

	return s.fire.TimeAlive() - before, notes, s.gameOver
}

// storeItems puts craft output back in the pack and describes what went
// where. Anything the pack cannot hold is gone.
func (s *Session) storeItems(items []ItemCount) string {
	parts := make([]string, 0, len(items))
	for _, ic := range items {
		if err := s.player.Inventory().Insert(ic.Item, ic.Count); err != nil {
			parts = append(parts, fmt.Sprintf("%s (no room, lost)", s.describeCount(ic)))
			continue
		}
		parts = append(parts, s.describeCount(ic))
	}
	return strings.Join(parts, ", ")
}

func (s *Session) craftProductName() string {
	if s.craft == nil {
		return ""
	}
	products := s.craft.Products()
	if len(products) == 0 {
		return ""
	}
	return s.assets.DisplayName(products[0].Item)
}

// StatusReport renders the turn counter, the fire summary and the state
// of any craft in flight. The status command returns it, and interface
// layers draw it directly as a live pane.
func (s *Session) StatusReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TURN %d (%d ticks)\n", s.Turns(), s.Ticks())
	b.WriteString(s.fire.SummaryTicks(s.ticksPerTurn))
	if s.craft != nil {
		done := (1 - s.craft.TimeRemaining()/s.craft.RecipeTime()) * 100
		fmt.Fprintf(&b, "CRAFTING %s: %.0f%% (%.0f time left)\n",
			strings.ToUpper(s.craftProductName()), done, s.craft.TimeRemaining())
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Session) inventoryReport() string {
	used := s.player.Inventory().UsedCapacity()
	items := s.player.Inventory().Items()
	if len(items) == 0 {
		return fmt.Sprintf("PACK %.0f/%.0fg: empty", used.Current(), used.Max())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "PACK %.0f/%.0fg\n", used.Current(), used.Max())
	for _, ic := range items {
		mass := s.assets.ItemMass(ic.Item) * float64(ic.Count)
		fmt.Fprintf(&b, "%d x %s (%.0fg)\n", ic.Count, s.assets.DisplayName(ic.Item), mass)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Session) playerReport() string {
	hp := s.player.HitPoints()
	used := s.player.Inventory().UsedCapacity()
	return fmt.Sprintf("%s | HP %.0f/%.0f | BODY %.1fK | PACK %.0f/%.0fg",
		strings.ToUpper(s.player.Name()), hp.Current(), hp.Max(),
		s.player.BodyTemperature(), used.Current(), used.Max())
}

func (s *Session) describeCount(ic ItemCount) string {
	return fmt.Sprintf("%d %s", ic.Count, pluralName(s.assets.DisplayName(ic.Item), ic.Count))
}

func (s *Session) describeCounts(items []ItemCount) string {
	parts := make([]string, 0, len(items))
	for _, ic := range items {
		parts = append(parts, s.describeCount(ic))
	}
	return strings.Join(parts, ", ")
}

// BurnDown runs the fire until nothing burns, for the ending report when
// the player walks away. The cap only guards against degenerate tables
// where fuel cannot be spent.
func (s *Session) BurnDown() (turns, ticks int) {
	const maxTicks = 1 << 22

	before := s.fire.TimeAlive()
	for i := 0; i < maxTicks && s.fire.IsAlive(); i++ {
		if s.fire.Tick() != nil {
			break
		}
	}
	s.gameOver = true

	elapsed := s.fire.TimeAlive() - before
	ticks = int(math.Round(elapsed / s.fire.TickResolution()))
	return ticks / s.ticksPerTurn, ticks
}

func pluralName(name string, count int) string {
	if count == 1 {
		return name
	}
	return name + "s"
}

func joinSentences(base string, notes []string) string {
	parts := append([]string{base}, notes...)
	return strings.Join(parts, " ")
}
