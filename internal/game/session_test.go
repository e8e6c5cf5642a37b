package game

import (
	"strings"
	"testing"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()

	session := NewSession(DefaultAssets(), SessionConfig{Seed: 909, PlayerName: "Tester"})
	// Pin the target to the embers' burn temperature so no test here has
	// to race the fire going cold.
	session.Fire().SetWeightOfAmbient(0)
	return session
}

func TestSessionDrawsNameFromSeed(t *testing.T) {
	first := NewSession(DefaultAssets(), SessionConfig{Seed: 7})
	second := NewSession(DefaultAssets(), SessionConfig{Seed: 7})

	if first.Player().Name() == "" {
		t.Fatalf("expected a drawn player name")
	}
	if first.Player().Name() != second.Player().Name() {
		t.Fatalf("expected the same seed to draw the same name, got %q and %q",
			first.Player().Name(), second.Player().Name())
	}
}

func TestSessionEmptyInputDoesNothing(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("   ")
	if res.Handled || res.Message != "" || res.TimeAdvanced != 0 {
		t.Fatalf("expected empty input to be a no-op, got %+v", res)
	}
}

func TestSessionStatusReportsFire(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("status")
	if !res.Handled {
		t.Fatalf("expected status to be handled")
	}
	if !strings.Contains(res.Message, "TEMPERATURE") {
		t.Fatalf("expected a fire summary, got: %s", res.Message)
	}
	if !strings.Contains(res.Message, "TURN 0") {
		t.Fatalf("expected the turn counter, got: %s", res.Message)
	}
	if res.TimeAdvanced != 0 {
		t.Fatalf("expected a query to cost no time, advanced %v", res.TimeAdvanced)
	}
}

func TestSessionInventoryListsPack(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("inventory")
	if !res.Handled {
		t.Fatalf("expected inventory to be handled")
	}
	if !strings.Contains(res.Message, "PACK 8800/10000g") {
		t.Fatalf("expected pack mass header, got: %s", res.Message)
	}
	if !strings.Contains(res.Message, "12 x small stick") {
		t.Fatalf("expected the starting sticks listed, got: %s", res.Message)
	}
}

func TestSessionPlayerReport(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("player")
	if !res.Handled {
		t.Fatalf("expected player to be handled")
	}
	if !strings.Contains(res.Message, "TESTER") {
		t.Fatalf("expected the player name, got: %s", res.Message)
	}
	if !strings.Contains(res.Message, "HP 100/100") {
		t.Fatalf("expected full hit points, got: %s", res.Message)
	}
}

func TestSessionHelp(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("help")
	if !res.Handled || !strings.Contains(res.Message, "Commands:") {
		t.Fatalf("expected the command list, got: %s", res.Message)
	}
}

func TestSessionAddFuelAdvancesOneTurn(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("add 2 twigs")
	if !res.Handled {
		t.Fatalf("expected add to be handled")
	}
	if !strings.Contains(res.Message, "You put 2 twigs on the fire.") {
		t.Fatalf("expected add confirmation, got: %s", res.Message)
	}
	if res.TimeAdvanced != session.TurnTime() {
		t.Fatalf("expected one turn of time, got %v", res.TimeAdvanced)
	}
	if got := session.Player().Inventory().Count(ItemTwig); got != 8 {
		t.Fatalf("expected 8 twigs left in the pack, got %d", got)
	}
	if got := len(session.Fire().Items()); got != 5 {
		t.Fatalf("expected 3 embers plus 2 twigs on the fire, got %d", got)
	}
}

func TestSessionAddAllOfAnItem(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("add all the twigs")
	if !res.Handled {
		t.Fatalf("expected add to be handled")
	}
	if !strings.Contains(res.Message, "You put 10 twigs on the fire.") {
		t.Fatalf("expected all ten twigs added, got: %s", res.Message)
	}
	if got := session.Player().Inventory().Count(ItemTwig); got != 0 {
		t.Fatalf("expected no twigs left, got %d", got)
	}
}

func TestSessionAddRejectsNonFlammable(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("add river stone")
	if !res.Handled {
		t.Fatalf("expected command to be handled")
	}
	if !strings.Contains(res.Message, "will not burn") {
		t.Fatalf("expected a refusal, got: %s", res.Message)
	}
	if res.TimeAdvanced != 0 {
		t.Fatalf("expected a refused add to cost no time, advanced %v", res.TimeAdvanced)
	}
	if got := session.Player().Inventory().Count(ItemRiverStone); got != 1 {
		t.Fatalf("expected the stone still in the pack, got %d", got)
	}
}

func TestSessionAddMoreThanHeld(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("add 30 twigs")
	if !res.Handled {
		t.Fatalf("expected command to be handled")
	}
	if !strings.Contains(res.Message, "You only have 10 twigs.") {
		t.Fatalf("expected a shortfall message, got: %s", res.Message)
	}
	if got := session.Player().Inventory().Count(ItemTwig); got != 10 {
		t.Fatalf("expected the twigs untouched, got %d", got)
	}
}

func TestSessionAddWithoutItemAsksWhich(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("add")
	if !res.Handled {
		t.Fatalf("expected command to be handled")
	}
	if !strings.Contains(res.Message, "What should I add?") {
		t.Fatalf("expected a clarify prompt, got: %s", res.Message)
	}
	if !strings.Contains(res.Message, "twig") {
		t.Fatalf("expected pack items offered as options, got: %s", res.Message)
	}
}

func TestSessionWaitAdvancesTurns(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("wait 3")
	if !res.Handled {
		t.Fatalf("expected wait to be handled")
	}
	if res.TimeAdvanced != 3*session.TurnTime() {
		t.Fatalf("expected three turns of time, got %v", res.TimeAdvanced)
	}
	if session.Turns() != 3 {
		t.Fatalf("expected turn counter at 3, got %d", session.Turns())
	}
}

func TestSessionWaitBounds(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("wait 500")
	if !res.Handled {
		t.Fatalf("expected command to be handled")
	}
	if !strings.Contains(res.Message, "between 1 and 100") {
		t.Fatalf("expected the wait bounds, got: %s", res.Message)
	}
	if res.TimeAdvanced != 0 {
		t.Fatalf("expected a refused wait to cost no time, advanced %v", res.TimeAdvanced)
	}
}

func TestSessionCraftLifecycle(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("craft small stick bundle")
	if !res.Handled {
		t.Fatalf("expected craft to be handled")
	}
	if !strings.Contains(res.Message, "You start crafting a small stick bundle") {
		t.Fatalf("expected craft start message, got: %s", res.Message)
	}
	if res.TimeAdvanced != 0 {
		t.Fatalf("expected starting a craft to cost no time, advanced %v", res.TimeAdvanced)
	}
	if got := session.Player().Inventory().Count(ItemSmallStick); got != 9 {
		t.Fatalf("expected the sticks taken up front, got %d", got)
	}

	res = session.ExecuteCommand("status")
	if !strings.Contains(res.Message, "CRAFTING SMALL STICK BUNDLE") {
		t.Fatalf("expected the craft in the status report, got: %s", res.Message)
	}

	// The recipe takes 100 time; twenty turns of five ticks covers it.
	res = session.ExecuteCommand("wait 20")
	if !res.Handled {
		t.Fatalf("expected wait to be handled")
	}
	if !strings.Contains(res.Message, "The craft is done") {
		t.Fatalf("expected the craft to finish during the wait, got: %s", res.Message)
	}
	if session.ActiveCraft() != nil {
		t.Fatalf("expected no active craft after completion")
	}
	if got := session.Player().Inventory().Count(ItemSmallBundle); got != 1 {
		t.Fatalf("expected the bundle in the pack, got %d", got)
	}
}

func TestSessionCraftWhileCraftingRefused(t *testing.T) {
	session := newTestSession(t)

	if res := session.ExecuteCommand("craft small stick bundle"); !res.Handled {
		t.Fatalf("expected first craft to start")
	}
	res := session.ExecuteCommand("craft medium stick bundle")
	if !strings.Contains(res.Message, "already crafting") {
		t.Fatalf("expected a one-craft-at-a-time refusal, got: %s", res.Message)
	}
}

func TestSessionFinishSeesCraftThrough(t *testing.T) {
	session := newTestSession(t)

	if res := session.ExecuteCommand("craft small stick bundle"); !res.Handled {
		t.Fatalf("expected craft to start")
	}
	res := session.ExecuteCommand("finish")
	if !res.Handled {
		t.Fatalf("expected finish to be handled")
	}
	if !strings.Contains(res.Message, "1 small stick bundle") {
		t.Fatalf("expected the bundle packed away, got: %s", res.Message)
	}
	if res.TimeAdvanced != 100 {
		t.Fatalf("expected the full recipe time, got %v", res.TimeAdvanced)
	}
	if got := session.Player().Inventory().Count(ItemSmallBundle); got != 1 {
		t.Fatalf("expected the bundle in the pack, got %d", got)
	}
}

func TestSessionCancelRecoversIngredients(t *testing.T) {
	session := newTestSession(t)

	if res := session.ExecuteCommand("craft small stick bundle"); !res.Handled {
		t.Fatalf("expected craft to start")
	}
	if res := session.ExecuteCommand("wait 10"); !res.Handled {
		t.Fatalf("expected wait to be handled")
	}

	res := session.ExecuteCommand("cancel")
	if !res.Handled {
		t.Fatalf("expected cancel to be handled")
	}
	if !strings.Contains(res.Message, "3 small sticks") {
		t.Fatalf("expected the sticks recovered, got: %s", res.Message)
	}
	// Half the craft unwinds in a quarter of the time, rounded up to 13
	// whole ticks.
	if res.TimeAdvanced != 13 {
		t.Fatalf("expected 13 ticks of unwinding, got %v", res.TimeAdvanced)
	}
	if got := session.Player().Inventory().Count(ItemSmallStick); got != 12 {
		t.Fatalf("expected all sticks back in the pack, got %d", got)
	}
	if session.ActiveCraft() != nil {
		t.Fatalf("expected no active craft after cancel")
	}
}

func TestSessionFinishWithoutCraft(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("finish")
	if !strings.Contains(res.Message, "not crafting") {
		t.Fatalf("expected a no-craft message, got: %s", res.Message)
	}
	res = session.ExecuteCommand("cancel")
	if !strings.Contains(res.Message, "not crafting") {
		t.Fatalf("expected a no-craft message, got: %s", res.Message)
	}
}

func TestSessionQuitIsUnhandled(t *testing.T) {
	session := newTestSession(t)

	res := session.ExecuteCommand("quit")
	if res.Handled {
		t.Fatalf("expected quit to be left for the interface layer")
	}
	if res.Command != "quit" {
		t.Fatalf("expected canonical verb quit, got %q", res.Command)
	}
}

func TestSessionGameOverWhenFireDies(t *testing.T) {
	session := newTestSession(t)
	session.Fire().items = session.Fire().items[:1]
	session.Fire().items[0].remainingEnergy = 0.5

	res := session.ExecuteCommand("wait")
	if !res.Handled {
		t.Fatalf("expected wait to be handled")
	}
	if !res.GameOver {
		t.Fatalf("expected the fire's death to end the game")
	}
	if !strings.Contains(res.Message, "burned out") {
		t.Fatalf("expected the burn out reported, got: %s", res.Message)
	}
	if !session.GameOver() {
		t.Fatalf("expected the session to stay over")
	}

	res = session.ExecuteCommand("status")
	if !res.GameOver {
		t.Fatalf("expected further commands to report game over")
	}
}

func TestSessionBurnDown(t *testing.T) {
	session := newTestSession(t)
	// Let the target sag naturally so the burn down terminates.
	session.Fire().SetWeightOfAmbient(3000)

	turns, ticks := session.BurnDown()
	if ticks <= 0 {
		t.Fatalf("expected the fire to live some ticks, got %d", ticks)
	}
	if turns != ticks/session.TicksPerTurn() {
		t.Fatalf("expected turns derived from ticks, got turns=%d ticks=%d", turns, ticks)
	}
	if session.Fire().IsAlive() {
		t.Fatalf("expected the fire dead after burning down")
	}
	if !session.GameOver() {
		t.Fatalf("expected the session over after burning down")
	}
}
