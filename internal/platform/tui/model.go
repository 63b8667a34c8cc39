package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/runes/internal/config"
	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/ecs"
	"github.com/vovakirdan/runes/internal/engine"
	"github.com/vovakirdan/runes/internal/gesture"
	"github.com/vovakirdan/runes/internal/levels"
	"github.com/vovakirdan/runes/internal/registry"
	"github.com/vovakirdan/runes/internal/storage"
)

const (
	headerRows = 3
	footerRows = 2
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	hudStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// stages numbers started stages across all sessions of the process.
var stages atomic.Int64

// PlayOptions describes the stage a PlayModel runs.
type PlayOptions struct {
	Game    config.GameConfig
	Level   levels.Level
	Store   *storage.Store // nil disables result saving
	Runtime core.RuntimeConfig
	Logger  *log.Logger
}

// PlayModel is the Bubble Tea model for one running stage.
type PlayModel struct {
	opts   PlayOptions
	engine *engine.Engine
	scene  *Presenter
	screen *core.Screen
	view   viewport
	gen    int

	keys   KeyMap
	help   help.Model
	health progress.Model
	mana   progress.Model

	width, height int
	touching      bool
	paused        bool
	quitting      bool
	backToMenu    bool
	err           error
}

// NewPlayModel builds the stage and its scene.
func NewPlayModel(opts PlayOptions) (PlayModel, error) {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
		opts.Logger.SetLevel(log.ErrorLevel)
	}
	m := PlayModel{
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		health: progress.New(progress.WithSolidFill("#ff5f5f"), progress.WithoutPercentage(), progress.WithWidth(20)),
		mana:   progress.New(progress.WithSolidFill("#5f87ff"), progress.WithoutPercentage(), progress.WithWidth(20)),
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}
	if err := m.startStage(); err != nil {
		return PlayModel{}, err
	}
	m.resize(m.width, m.height)
	return m, nil
}

// startStage creates a fresh engine and scene for the configured level.
func (m *PlayModel) startStage() error {
	templates, err := m.opts.Game.Templates()
	if err != nil {
		return err
	}
	scene := NewPresenter(templates, m.opts.Game.Recognizer.SliceCount)
	e, err := engine.New(engine.Options{
		Config:    m.opts.Game,
		Level:     m.opts.Level,
		Presenter: scene,
		Logger:    m.opts.Logger,
		Seed:      m.opts.Runtime.Seed,
	})
	if err != nil {
		return err
	}
	scene.OnGameEnd(resultSaver(m.opts.Store, m.opts.Logger, e))
	m.engine, m.scene = e, scene
	m.gen = int(stages.Add(1))
	m.touching, m.paused = false, false
	return nil
}

// resultSaver records a finished stage in the scores database.
func resultSaver(store *storage.Store, logger *log.Logger, e *engine.Engine) func(bool, int) {
	return func(won bool, score int) {
		if store == nil {
			return
		}
		st := e.State()
		_, err := store.SaveResult(storage.Result{
			StageID:  e.Level().StageID(),
			Avatar:   e.Avatar().Name,
			Score:    score,
			Won:      won,
			Kills:    st.Kills,
			Duration: int(st.Elapsed),
		})
		if err != nil {
			logger.Warn("could not save result", "stage", e.Level().StageID(), "error", err)
		}
	}
}

// resize fits the arena into the terminal below the HUD.
func (m *PlayModel) resize(width, height int) {
	m.width, m.height = width, height
	rows := max(height-headerRows-footerRows, 3)
	if m.screen == nil {
		m.screen = core.NewScreen(width, rows)
	} else {
		m.screen.Resize(width, rows)
	}
	a := m.opts.Game.Arena
	m.view = fitViewport(width, rows, core.V(a.Width, a.Height))
	m.help.Width = width
}

// Init starts the frame loop.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate, m.gen)
}

// Update handles messages and advances the simulation.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick(msg)
	}
	return m, nil
}

func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Snapshot) {
		m.saveScreenshot()
		return m, nil
	}
	action, quit := m.keys.Action(msg)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	if slot, ok := action.PowerUpSlot(); ok {
		if err := m.engine.SelectPowerUpSlot(slot); err != nil {
			m.scene.Notify(engine.AdvisoryNoPowerUpSelected)
		}
		return m, nil
	}
	switch action {
	case core.ActionNextWave:
		m.engine.StartNextWave()
	case core.ActionPause:
		if !m.engine.GameOver() {
			m.paused = !m.paused
			m.engine.CancelTouches()
			m.touching = false
		}
	case core.ActionRestart:
		m.opts.Runtime.Seed = time.Now().UnixNano()
		if err := m.startStage(); err != nil {
			m.err = err
			return m, nil
		}
		return m, tickCmd(m.opts.Runtime.TickRate, m.gen)
	case core.ActionBack:
		m.backToMenu = true
	}
	return m, nil
}

// handleMouse feeds left-button drags to the engine as one touch stroke.
func (m PlayModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.paused || m.engine.GameOver() || msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	cx, cy := msg.X, msg.Y-headerRows
	pt := m.view.toArena(cx, cy)

	switch msg.Action {
	case tea.MouseActionPress:
		if !m.view.contains(cx, cy) {
			return m, nil
		}
		m.engine.TouchesBegan(pt)
		m.touching = true
	case tea.MouseActionMotion:
		if m.touching {
			m.engine.TouchesMoved(pt)
		}
	case tea.MouseActionRelease:
		if !m.touching {
			return m, nil
		}
		m.touching = false
		res := m.engine.TouchesEnded(pt)
		if res.Kind == gesture.ResultNone && len(res.Path.Points) > 1 {
			m.scene.say("Unknown rune")
		}
	}
	return m, nil
}

func (m PlayModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.quitting {
		return m, nil
	}
	if !m.paused {
		dt := m.opts.Runtime.FrameDelta()
		m.engine.Update(dt)
		m.scene.Tick(dt)
	}
	return m, tickCmd(m.opts.Runtime.TickRate, m.gen)
}

// saveScreenshot writes the arena as plain text under ~/.runes/screenshots.
func (m *PlayModel) saveScreenshot() {
	m.draw()
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".runes", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)
	name := fmt.Sprintf("%s_%s.txt", m.engine.Level().StageID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

func (m *PlayModel) draw() {
	st := m.engine.State()
	drawArena(m.screen, m.view, m.scene, m.engine.Stroke(), st.ShieldActive, func(id ecs.EntityID) bool {
		v, ok := m.engine.Enemy(id)
		return ok && v.Frozen
	})

	switch {
	case st.GameOver:
		title, color := "DEFEAT", core.ColorBrightRed
		if st.Won {
			title, color = "VICTORY", core.ColorBrightGreen
		}
		mid := m.screen.Height() / 2
		m.screen.DrawTextCentered(mid-1, " "+title+" ", color)
		m.screen.DrawTextCentered(mid, fmt.Sprintf(" Final score %d ", st.Score), core.ColorBrightWhite)
		m.screen.DrawTextCentered(mid+1, " r restart · esc menu ", core.ColorGray)
	case m.paused:
		m.screen.DrawTextCentered(m.screen.Height()/2, " PAUSED ", core.ColorBrightYellow)
	}
}

// View renders HUD, arena and help.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}
	m.draw()

	var sb strings.Builder
	sb.WriteString(m.headerView())
	sb.WriteByte('\n')
	sb.WriteString(RenderScreen(m.screen))
	sb.WriteByte('\n')
	sb.WriteString(noticeStyle.Render(m.scene.Notice()))
	sb.WriteByte('\n')
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m PlayModel) headerView() string {
	st := m.engine.State()
	lvl := m.engine.Level()

	stage := fmt.Sprintf("Level %d: %s", lvl.Number, lvl.Name)
	if lvl.Endless() {
		stage = lvl.Name
	}
	waves := fmt.Sprintf("waves %d", st.WavesLeft)
	if lvl.Endless() {
		waves = "waves ∞"
	}
	line1 := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("RUNES "),
		hudStyle.Render(fmt.Sprintf("%s · score %d ×%.1f · %s · enemies %d", stage, st.Score, st.Multiplier, waves, st.EnemiesOnField)),
	)

	line2 := lipgloss.JoinHorizontal(lipgloss.Top,
		hudStyle.Render(fmt.Sprintf("HP %d/%d ", st.Health, st.MaxHealth)),
		m.health.ViewAs(ratio(st.Health, st.MaxHealth)),
		hudStyle.Render(fmt.Sprintf("  MP %d/%d ", st.Mana, st.MaxMana)),
		m.mana.ViewAs(ratio(st.Mana, st.MaxMana)),
	)

	slots := make([]string, 0, 3)
	for i, kind := range m.engine.PowerUps() {
		label := fmt.Sprintf("%d %s (%d)", i+1, registry.Title(kind), m.engine.PowerUpCost(kind))
		if kind == st.Selected {
			slots = append(slots, selectedStyle.Render("["+label+"]"))
		} else {
			slots = append(slots, dimStyle.Render(" "+label+" "))
		}
	}
	return strings.Join([]string{line1, line2, strings.Join(slots, " ")}, "\n")
}

func ratio(v, of int) float64 {
	if of <= 0 {
		return 0
	}
	return core.ClampF(float64(v)/float64(of), 0, 1)
}

// IsQuitting returns true if the user asked to leave the program.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked for the stage menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// Engine exposes the running stage.
func (m PlayModel) Engine() *engine.Engine {
	return m.engine
}

// RunPlay runs a single stage until the user quits or goes back.
// It reports whether the user asked for the menu.
func RunPlay(opts PlayOptions) (bool, error) {
	model, err := NewPlayModel(opts)
	if err != nil {
		return false, err
	}
	p := tea.NewProgram(
		playProgram{model},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	pm, _ := final.(playProgram)
	return pm.BackToMenu(), nil
}

// playProgram quits the program when the play model asks for the menu.
type playProgram struct {
	PlayModel
}

func (p playProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := p.PlayModel.Update(msg)
	p.PlayModel = next.(PlayModel)
	if p.BackToMenu() {
		return p, tea.Quit
	}
	return p, cmd
}
