package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// Model is the Bubble Tea model that drives one game.
// Each tick applies the input collected since the previous tick and
// advances the simulation by exactly one step.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       GameKeyMap
	help       help.Model
	mouse      MouseTracker
	embedded   bool // Running inside a session; Back returns to its menu
	quitting   bool
	backToMenu bool
	saved      bool   // Result of the current match has been stored
	gen        uint64 // Tick loop generation
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, fieldRows(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultGameKeyMap(),
		help:       h,
		gen:        nextTickGen(),
	}
}

// fieldRows returns the terminal rows left for the field under the footer.
func fieldRows(height int) int {
	if height > 1 {
		return height - 1
	}
	return height
}

// fieldConfig is the runtime config as the game sees it.
func (m Model) fieldConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = fieldRows(cfg.ScreenH)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.fieldConfig())
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.mouse.Apply(msg, m.screen.Height(), &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		m.saveAbandoned()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		// Back pauses a running rally first so a stray Esc does not end the
		// match; a decided match cannot be paused and leaves at once.
		if !m.gameState.GameOver && !m.gameState.Paused && !m.gameState.Celebrating {
			m.inputFrame.Set(core.ActionPause)
			return m, nil
		}
		m.saveAbandoned()
		m.backToMenu = true
		if !m.embedded {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case core.ActionRestart:
		if !m.gameState.GameOver {
			return m, nil
		}
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleResize adapts the screen and the field without restarting.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, fieldRows(msg.Height))
	m.help.Width = msg.Width

	m.game.Resize(m.fieldConfig())
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.fieldConfig())
		m.gameState = m.game.State()
		m.saved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.gen)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Store a decided match once; a new match after auto-restart re-arms it
	decided := m.gameState.Celebrating || m.gameState.GameOver
	if decided && !m.saved {
		m.saveResult(m.game.Summary())
		m.saved = true
	} else if !decided {
		m.saved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveAbandoned stores an unfinished match that has at least one point.
func (m *Model) saveAbandoned() {
	if m.saved {
		return
	}
	sum := m.game.Summary()
	if sum.PlayerScore+sum.OpponentScore == 0 {
		return
	}
	m.saveResult(sum)
	m.saved = true
}

// saveResult records a match summary. Failures are logged, never fatal.
func (m *Model) saveResult(sum core.MatchSummary) {
	if m.store == nil {
		return
	}
	_, err := m.store.SaveMatch(storage.MatchResult{
		GameID:        m.game.ID(),
		PlayerScore:   sum.PlayerScore,
		OpponentScore: sum.OpponentScore,
		Won:           sum.Won,
		Decided:       sum.Decided,
		LongestRally:  sum.LongestRally,
		TopSpeed:      sum.TopSpeed,
		Frames:        sum.Frames,
	})
	if err != nil {
		log.Warn("could not save match", "game", m.game.ID(), "err", err)
		return
	}
	log.Debug("match saved", "game", m.game.ID(),
		"player", sum.PlayerScore, "cpu", sum.OpponentScore, "decided", sum.Decided)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + footerStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting && !m.backToMenu
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
// It returns true when the player left with Back rather than Quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Pointer tracking needs motion without a button
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
