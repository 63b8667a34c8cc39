package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/runes/internal/levels"
	"github.com/vovakirdan/runes/internal/storage"
)

const (
	minWidthForStats = 90
	statsWidth       = 24
	maxResults       = 100
)

// Stage names one scoreboard page.
type Stage struct {
	ID    string
	Title string
}

// StagesOf lists the stages of a set followed by the endless stage.
func StagesOf(set *levels.Set) []Stage {
	var out []Stage
	for _, l := range set.Levels() {
		out = append(out, Stage{ID: l.StageID(), Title: fmt.Sprintf("Level %d %s", l.Number, l.Name)})
	}
	return append(out, Stage{ID: levels.Level{Number: levels.EndlessNumber}.StageID(), Title: "Endless"})
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextStage key.Binding
	PrevStage key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextStage, k.PrevStage, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.NextStage, k.PrevStage}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns the default scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		NextStage: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next stage")),
		PrevStage: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev stage")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best results of each stage.
type ScoreboardModel struct {
	stages    []Stage
	cursor    int
	store     *storage.Store
	results   []storage.Result
	stats     *storage.StageStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first stage.
func NewScoreboardModel(store *storage.Store, stages []Stage, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		stages: stages,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Result", Width: 8},
		{Title: "Hero", Width: 18},
		{Title: "Kills", Width: 6},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 13},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// load reads the current stage's results and summary.
func (m *ScoreboardModel) load() {
	m.results, m.stats = nil, nil
	if m.store != nil && len(m.stages) > 0 {
		id := m.stages[m.cursor].ID
		if results, err := m.store.TopScores(id, maxResults); err == nil {
			m.results = results
		}
		if stats, err := m.store.Stats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			outcome,
			r.Avatar,
			fmt.Sprintf("%d", r.Kills),
			(time.Duration(r.Duration) * time.Second).String(),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextStage):
			if n := len(m.stages); n > 0 {
				m.cursor = (m.cursor + 1) % n
				m.load()
			}
			return m, nil
		case key.Matches(msg, m.keys.PrevStage):
			if n := len(m.stages); n > 0 {
				m.cursor = (m.cursor + n - 1) % n
				m.load()
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.stages) > 0 {
		title = fmt.Sprintf("HIGH SCORES · ◀ %s ▶", m.stages[m.cursor].Title)
	}

	body := m.table.View()
	if len(m.results) == 0 {
		body = mutedStyle.Italic(true).Padding(2, 4).Render("No results recorded yet.\nClear a stage to set a high score!")
	}
	content := panelStyle.Render(body)
	if m.width >= minWidthForStats {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, "  ", panelStyle.Width(statsWidth).Render(m.statsView()))
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardTitleStyle.Render(title)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) statsView() string {
	s := m.stats
	if s == nil || s.Played == 0 {
		return mutedStyle.Render("Not played yet")
	}
	lines := []string{
		"Stage stats",
		strings.Repeat("─", statsWidth-4),
		fmt.Sprintf("Played   %d", s.Played),
		fmt.Sprintf("Won      %d", s.Wins),
		fmt.Sprintf("Best     %d", s.HighScore),
		fmt.Sprintf("Average  %.0f", s.AvgScore),
	}
	if !s.LastPlayed.IsZero() {
		lines = append(lines, "Last     "+s.LastPlayed.Format("Jan 02"))
	}
	return strings.Join(lines, "\n")
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen and reports whether the user
// went back to the menu.
func RunScoreboard(store *storage.Store, stages []Stage, width, height int) (bool, error) {
	p := tea.NewProgram(NewScoreboardModel(store, stages, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
