package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/trellis/internal/cli/formatter"
	"github.com/alexanderramin/trellis/internal/domain"
)

type boardKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Refresh   key.Binding
	Quit      key.Binding
}

var boardKeys = boardKeyMap{
	Left:      key.NewBinding(key.WithKeys("h", "left")),
	Right:     key.NewBinding(key.WithKeys("l", "right")),
	Up:        key.NewBinding(key.WithKeys("k", "up")),
	Down:      key.NewBinding(key.WithKeys("j", "down")),
	MoveLeft:  key.NewBinding(key.WithKeys("H", "shift+left")),
	MoveRight: key.NewBinding(key.WithKeys("L", "shift+right")),
	Refresh:   key.NewBinding(key.WithKeys("r")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

// boardModel is the interactive board view. It reads through the services on
// every refresh, so column order always reflects stored ranks.
type boardModel struct {
	app       *App
	projectID string

	columns []*domain.TaskStatus
	tasks   map[string][]*domain.Task

	col    int
	cursor int
	err    error
}

func newBoardModel(app *App, projectID string) *boardModel {
	return &boardModel{app: app, projectID: projectID, tasks: map[string][]*domain.Task{}}
}

type boardLoadedMsg struct {
	columns []*domain.TaskStatus
	tasks   map[string][]*domain.Task
	err     error
}

func (m *boardModel) load() tea.Msg {
	ctx := context.Background()
	columns, err := m.app.Statuses.ListByProject(ctx, m.projectID)
	if err != nil {
		return boardLoadedMsg{err: err}
	}
	tasks, err := loadBoardTasks(ctx, m.app, columns)
	if err != nil {
		return boardLoadedMsg{err: err}
	}
	return boardLoadedMsg{columns: columns, tasks: tasks}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.columns = msg.columns
		m.tasks = msg.tasks
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, boardKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, boardKeys.Left):
			if m.col > 0 {
				m.col--
				m.clampCursor()
			}
		case key.Matches(msg, boardKeys.Right):
			if m.col < len(m.columns)-1 {
				m.col++
				m.clampCursor()
			}
		case key.Matches(msg, boardKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, boardKeys.Down):
			if m.cursor < len(m.currentColumn())-1 {
				m.cursor++
			}
		case key.Matches(msg, boardKeys.MoveLeft):
			return m, m.moveSelected(-1)
		case key.Matches(msg, boardKeys.MoveRight):
			return m, m.moveSelected(1)
		case key.Matches(msg, boardKeys.Refresh):
			return m, m.load
		}
	}
	return m, nil
}

func (m *boardModel) currentColumn() []*domain.Task {
	if m.col >= len(m.columns) {
		return nil
	}
	return m.tasks[m.columns[m.col].ID]
}

func (m *boardModel) clampCursor() {
	if n := len(m.currentColumn()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// moveSelected moves the selected task one column over and reloads.
func (m *boardModel) moveSelected(dir int) tea.Cmd {
	tasks := m.currentColumn()
	if len(tasks) == 0 {
		return nil
	}
	target := m.col + dir
	if target < 0 || target >= len(m.columns) {
		return nil
	}
	taskID := tasks[m.cursor].ID
	statusID := m.columns[target].ID
	return func() tea.Msg {
		if _, err := m.app.Tasks.ChangeStatus(context.Background(), taskID, statusID, nil); err != nil {
			return boardLoadedMsg{err: err}
		}
		return m.load()
	}
}

var (
	boardSelectedStyle = lipgloss.NewStyle().
				Foreground(formatter.ColorFg).
				Background(lipgloss.Color("#3c3836")).
				Bold(true)

	boardFocusedBorder = lipgloss.NewStyle().
				Width(30).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(formatter.ColorHeader)

	boardBlurredBorder = lipgloss.NewStyle().
				Width(30).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(formatter.ColorDim)
)

func (m *boardModel) View() string {
	if len(m.columns) == 0 {
		return formatter.Dim("Loading board...")
	}

	rendered := make([]string, 0, len(m.columns))
	for ci, col := range m.columns {
		var b strings.Builder
		b.WriteString(formatter.StyleHeader.Render(col.Name))
		b.WriteString(formatter.Dim(fmt.Sprintf(" (%d)", len(m.tasks[col.ID]))))
		b.WriteString("\n")

		for ti, t := range m.tasks[col.ID] {
			line := t.Title
			if t.Priority != domain.PriorityNone {
				line += "  " + formatter.PriorityBadge(t.Priority)
			}
			if ci == m.col && ti == m.cursor {
				line = boardSelectedStyle.Render("> " + t.Title)
				if t.Priority != domain.PriorityNone {
					line += "  " + formatter.PriorityBadge(t.Priority)
				}
			}
			b.WriteString("\n" + line + "\n")
		}

		style := boardBlurredBorder
		if ci == m.col {
			style = boardFocusedBorder
		}
		rendered = append(rendered, style.Render(b.String()))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	help := formatter.Dim("h/l: column  j/k: task  H/L: move task  r: refresh  q: quit")
	return board + "\n" + help + "\n"
}

func loadBoardTasks(ctx context.Context, app *App, columns []*domain.TaskStatus) (map[string][]*domain.Task, error) {
	tasks := make(map[string][]*domain.Task, len(columns))
	for _, col := range columns {
		list, err := app.Tasks.ListByColumn(ctx, col.ID)
		if err != nil {
			return nil, err
		}
		tasks[col.ID] = list
	}
	return tasks, nil
}

func runBoard(app *App, projectID string) error {
	model := newBoardModel(app, projectID)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return model.err
}
