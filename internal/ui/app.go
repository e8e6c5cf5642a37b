package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emberhold-games/emberhold/internal/game"
	"github.com/emberhold-games/emberhold/internal/update"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string
	NoUpdate  bool

	// Ascii skips the truecolor fire pane for terminals that cannot
	// show it.
	Ascii bool
	// Seed drives the session's name draw; zero means pick from the clock.
	Seed uint64
	// Assets overrides the embedded table, for modded fuel data.
	Assets *game.AssetTable
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

func (a *App) Run() error {
	m := newMenuModel(a.cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// --- Styles (retro green) ---
var (
	green       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	brightGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimGreen    = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	amber       = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	border      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// --- Model ---

type screen int

const (
	screenMenu screen = iota
	screenHelp
	screenRun
	screenRunOver
)

type menuItem int

const (
	itemStart menuItem = iota
	itemHelp
	itemCheckUpdate
	itemQuit
)

const (
	// maxRunMessages bounds the history so a long night at the fire
	// cannot grow the model without limit.
	maxRunMessages = 200
	// historyWindow is how much of the history the run screen shows.
	historyWindow = 10
	// maxRunInputLen bounds one typed command.
	maxRunInputLen = 120
)

type menuModel struct {
	cfg AppConfig
	idx int

	screen screen
	width  int
	height int

	status string
	busy   bool

	session     *game.Session
	runMessages []string
	runInput    string
	overLines   []string
}

func newMenuModel(cfg AppConfig) menuModel {
	return menuModel{cfg: cfg, idx: 0, screen: screenMenu}
}

func (m menuModel) Init() tea.Cmd {
	// Update checks stay opt-in via the menu.
	return nil
}

type updateResultMsg struct {
	status string
	err    error
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.screen {
		case screenRun:
			return m.updateRun(msg)
		case screenHelp:
			return m.updateHelp(msg)
		case screenRunOver:
			return m.updateRunOver(msg)
		default:
			return m.updateMenu(msg)
		}
	case updateResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Update check failed: %v", msg.err)
			return m, nil
		}
		m.status = msg.status
		return m, nil
	}

	return m, nil
}

func (m menuModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		// Ignore input while the update check runs.
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.idx = (m.idx + 3) % 4
		return m, nil
	case "down", "j":
		m.idx = (m.idx + 1) % 4
		return m, nil
	case "enter":
		switch menuItem(m.idx) {
		case itemStart:
			return m.startRun()
		case itemHelp:
			m.screen = screenHelp
			return m, nil
		case itemCheckUpdate:
			if m.cfg.NoUpdate {
				m.status = "Update checks disabled (--no-update)."
				return m, nil
			}
			m.busy = true
			m.status = "Checking for updates…"
			return m, checkUpdateCmd(m.cfg.Version)
		case itemQuit:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m menuModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter", "q":
		m.screen = screenMenu
		return m, nil
	}
	return m, nil
}

func (m menuModel) updateRun(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m.leaveFire()
	case "enter":
		return m.submitRunInput()
	case "backspace":
		if m.runInput != "" {
			runes := []rune(m.runInput)
			m.runInput = string(runes[:len(runes)-1])
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		if len(m.runInput) < maxRunInputLen {
			m.runInput += string(msg.Runes)
		}
	case tea.KeySpace:
		if len(m.runInput) < maxRunInputLen {
			m.runInput += " "
		}
	}
	return m, nil
}

func (m menuModel) updateRunOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "enter":
		m.screen = screenMenu
		m.session = nil
		m.runMessages = nil
		m.runInput = ""
		m.overLines = nil
		m.status = ""
		return m, nil
	}
	return m, nil
}

func (m menuModel) startRun() (tea.Model, tea.Cmd) {
	assets := m.cfg.Assets
	if assets == nil {
		assets = game.DefaultAssets()
	}
	seed := m.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	m.session = game.NewSession(assets, game.SessionConfig{Seed: seed})
	m.runMessages = nil
	m.runInput = ""
	m.overLines = nil
	m.status = ""
	m.screen = screenRun

	m = m.pushMessage(fmt.Sprintf("%s crouches by the fire. It has caught; keep it fed.", m.session.Player().Name()))
	m = m.pushMessage("Type help for commands.")
	return m, nil
}

func (m menuModel) submitRunInput() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.runInput)
	m.runInput = ""
	if raw == "" {
		return m, nil
	}

	m = m.pushMessage("> " + raw)
	res := m.session.ExecuteCommand(raw)

	if !res.Handled && res.Command == "quit" {
		return m.leaveFire()
	}
	if res.Message != "" {
		m = m.pushMessage(res.Message)
	}
	if res.GameOver {
		return m.fireDied()
	}
	return m, nil
}

// leaveFire ends the run on the player's terms: the fire is left to burn
// itself out, and the ending reports how long it lasted alone.
func (m menuModel) leaveFire() (tea.Model, tea.Cmd) {
	aliveTurns, aliveTicks := m.session.Turns(), m.session.Ticks()
	moreTurns, moreTicks := m.session.BurnDown()

	m.overLines = []string{
		"You bank what is left and walk away.",
		fmt.Sprintf("You tended the fire for %d turns (%d ticks).", aliveTurns, aliveTicks),
		fmt.Sprintf("Alone, it held on for another %d turns (%d ticks) before going dark.", moreTurns, moreTicks),
	}
	m.screen = screenRunOver
	return m, nil
}

func (m menuModel) fireDied() (tea.Model, tea.Cmd) {
	m.overLines = []string{
		"The fire has gone out.",
		fmt.Sprintf("You kept it alive for %d turns (%d ticks).", m.session.Turns(), m.session.Ticks()),
	}
	m.screen = screenRunOver
	return m, nil
}

// pushMessage stamps an entry with the fire clock and appends it to the
// history, dropping the oldest entries past the cap.
func (m menuModel) pushMessage(text string) menuModel {
	stamp := "[--:--:--]"
	if m.session != nil {
		stamp = formatGameTime(m.session.Fire().TimeAlive())
	}
	m.runMessages = append(m.runMessages, stamp+" "+text)
	if over := len(m.runMessages) - maxRunMessages; over > 0 {
		m.runMessages = append([]string(nil), m.runMessages[over:]...)
	}
	return m
}

// formatGameTime renders fire time alive as a [hh:mm:ss] stamp, reading
// one unit of fire time as one second.
func formatGameTime(timeAlive float64) string {
	total := int(math.Round(timeAlive))
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("[%02d:%02d:%02d]", total/3600, total%3600/60, total%60)
}

func (m menuModel) View() string {
	title := brightGreen.Render("EMBERHOLD") + dimGreen.Render("  alpha1")
	ver := dimGreen.Render(fmt.Sprintf("v%s  (%s)  %s", m.cfg.Version, m.cfg.Commit, m.cfg.BuildDate))

	out := title + "\n" + ver + "\n"
	out += border.Render("----------------------------------------") + "\n\n"
	out += m.bodyText()
	out += "\n" + border.Render("----------------------------------------") + "\n"
	out += dimGreen.Render(m.footerHint()) + "\n"
	if m.screen == screenMenu && m.status != "" {
		out += "\n" + green.Render(m.status) + "\n"
	}
	return out
}

func (m menuModel) bodyText() string {
	switch m.screen {
	case screenHelp:
		return m.helpBody()
	case screenRun:
		return m.runBody()
	case screenRunOver:
		return m.runOverBody()
	default:
		return m.menuBody()
	}
}

func (m menuModel) menuBody() string {
	items := []string{
		"Start a fire",
		"How to play",
		"Check for updates",
		"Quit",
	}

	out := ""
	for i, it := range items {
		cursor := "  "
		line := green.Render(it)
		if i == m.idx {
			cursor = "> "
			line = brightGreen.Render(it)
		}
		out += cursor + line + "\n"
	}
	return out
}

const helpBodyText = `You have one job: keep the fire alive.

Fuel does not simply catch. Fresh wood has to be held at its
activation temperature before it ignites, and a pile of cold fuel
dumped on a small fire drags the whole thing down until it dies.
Feed it little and often, and let each piece take before the next.

Commands at the fire:
  status              how the fire is doing (free)
  inventory           what is in your pack (free)
  player              how you are doing (free)
  add <n|all> <item>  put fuel on the fire (one turn)
  wait [turns]        tend the fire and let time pass
  craft <item>        start working a recipe from your pack
  finish              see the active craft through
  cancel              unmake the active craft
  quit                leave the fire to burn down

Plain speech works too: "chuck a couple of twigs on" does what
you would expect.`

func (m menuModel) helpBody() string {
	return green.Render(helpBodyText) + "\n"
}

func (m menuModel) runBody() string {
	if m.session == nil {
		return green.Render("No fire is burning.") + "\n"
	}

	paneW := 30
	if m.width > 0 {
		paneW = clampInt(m.width/3, 16, 34)
	}
	visual := fireASCIIArt(m.session.Fire())
	if !m.cfg.Ascii {
		visual = renderFireANSI(m.session.Fire(), paneW, 12)
	}
	panel := lipgloss.JoinHorizontal(lipgloss.Top, visual, "  ", green.Render(m.session.StatusReport()))

	out := panel + "\n"
	out += brightGreen.Render("Message History") + "\n"
	start := len(m.runMessages) - historyWindow
	if start < 0 {
		start = 0
	}
	for _, msg := range m.runMessages[start:] {
		out += green.Render(msg) + "\n"
	}
	out += "\n" + brightGreen.Render("> ") + green.Render(m.runInput) + brightGreen.Render("_") + "\n"
	return out
}

func (m menuModel) runOverBody() string {
	out := amber.Render("THE FIRE IS OUT") + "\n\n"
	for _, line := range m.overLines {
		out += green.Render(line) + "\n"
	}
	return out
}

func (m menuModel) footerHint() string {
	switch m.screen {
	case screenHelp:
		return "Esc to go back"
	case screenRun:
		return "Enter to send, Esc to leave the fire, Ctrl+C to quit"
	case screenRunOver:
		return "Enter for the menu, q to quit"
	default:
		return "↑/↓ to move, Enter to select, q to quit"
	}
}

func checkUpdateCmd(currentVersion string) tea.Cmd {
	return func() tea.Msg {
		// Tiny delay so the UI visibly switches to busy state.
		time.Sleep(150 * time.Millisecond)

		res, err := update.Check(currentVersion)
		if err != nil {
			return updateResultMsg{err: err}
		}
		return updateResultMsg{status: res}
	}
}
