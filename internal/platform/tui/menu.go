package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/runes/internal/config"
	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/levels"
	"github.com/vovakirdan/runes/internal/storage"
)

// MenuItem is one selectable stage.
type MenuItem struct {
	Level levels.Level
	Title string
	Best  int
}

// MenuModel is the Bubble Tea model for the stage and avatar picker.
type MenuModel struct {
	items          []MenuItem
	avatars        []config.AvatarConfig
	cursor         int
	avatar         int
	width          int
	height         int
	config         core.RuntimeConfig
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists the stages of set followed by the endless stage.
// High scores are read from store when it is not nil.
func NewMenuModel(set *levels.Set, game config.GameConfig, store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, l := range set.Levels() {
		items = append(items, MenuItem{Level: l, Title: fmt.Sprintf("Level %d  %s", l.Number, l.Name)})
	}
	items = append(items, MenuItem{Level: levels.Level{Number: levels.EndlessNumber, Name: "Endless"}, Title: "Endless"})

	if store != nil {
		for i := range items {
			if best, err := store.HighScore(items[i].Level.StageID()); err == nil {
				items[i].Best = best
			}
		}
	}

	m := MenuModel{
		items:   items,
		avatars: game.Avatars,
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
		config:  cfg,
	}
	for i, a := range game.Avatars {
		if a.Name == game.SelectedAvatar().Name {
			m.avatar = i
		}
	}
	return m
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		if n := len(m.avatars); n > 0 {
			m.avatar = (m.avatar + n - 1) % n
		}
	case MenuActionRight:
		if n := len(m.avatars); n > 0 {
			m.avatar = (m.avatar + 1) % n
		}
	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuBestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	lines := []string{
		"",
		menuTitleStyle.Render("  R U N E S  "),
		"",
		"Draw the rune above an enemy to strike it",
		"",
	}
	for i, item := range m.items {
		line := fmt.Sprintf("  %-24s", item.Title)
		if i == m.cursor {
			line = menuCursorStyle.Render(fmt.Sprintf("> %-24s", item.Title))
		}
		best := "     -"
		if item.Best > 0 {
			best = fmt.Sprintf("%6d", item.Best)
		}
		lines = append(lines, line+menuBestStyle.Render(best))
	}
	lines = append(lines, "")
	if a, ok := m.Avatar(); ok {
		lines = append(lines, fmt.Sprintf("◀ %s ▶", a.Title))
	}
	lines = append(lines, "", menuBestStyle.Render("↑/↓ stage · ←/→ hero · enter play · tab scores · q quit"))

	for i, l := range lines {
		lines[i] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, l)
	}
	return strings.Join(lines, "\n")
}

// Selected returns the chosen stage, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Avatar returns the chosen avatar.
func (m MenuModel) Avatar() (config.AvatarConfig, bool) {
	if m.avatar < 0 || m.avatar >= len(m.avatars) {
		return config.AvatarConfig{}, false
	}
	return m.avatars[m.avatar], true
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the outcome of RunMenu.
type MenuResult struct {
	Level           levels.Level
	Avatar          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the stage picker and returns the selection.
func RunMenu(set *levels.Set, game config.GameConfig, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(set, game, store, cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Level = m.Selected().Level
		if a, ok := m.Avatar(); ok {
			result.Avatar = a.Name
		}
	default:
		result.Quit = true
	}
	return result, nil
}
