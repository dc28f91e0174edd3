package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aka1453/promin/internal/cli/formatter"
	"github.com/aka1453/promin/internal/service"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board PROJECT",
		Short: "Interactive board for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the board requires a terminal")
			}

			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			model := newBoardModel(app, projectID)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// boardRow is a flattened row in the board: a milestone header, a task, or
// a deliverable.
type boardRow struct {
	kind          rowKind
	milestoneIdx  int
	taskID        string
	deliverableID string
	label         string
	selectable    bool
}

type rowKind int

const (
	rowMilestone rowKind = iota
	rowTask
	rowDeliverable
)

// boardLoadedMsg carries a freshly loaded project tree.
type boardLoadedMsg struct {
	tree *service.ProjectTree
	err  error
}

type boardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Start  key.Binding
	Done   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle deliverable")),
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start task")),
		Done:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete task")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardModel is the bubbletea model for the interactive board.
type boardModel struct {
	app       *App
	projectID string
	keys      boardKeyMap

	tree    *service.ProjectTree
	rows    []boardRow
	cursor  int
	loading bool
	errMsg  string
	notice  string
}

func newBoardModel(app *App, projectID string) *boardModel {
	return &boardModel{
		app:       app,
		projectID: projectID,
		keys:      defaultBoardKeyMap(),
		loading:   true,
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load()
}

func (m *boardModel) load() tea.Cmd {
	app, projectID := m.app, m.projectID
	return func() tea.Msg {
		tree, err := app.Status.ProjectTree(context.Background(), projectID, time.Now())
		return boardLoadedMsg{tree: tree, err: err}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.tree = msg.tree
		m.rows = flattenTree(msg.tree)
		if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.Reload):
			m.loading = true
			return m, m.load()
		case key.Matches(msg, m.keys.Toggle):
			return m, m.toggleDeliverable()
		case key.Matches(msg, m.keys.Start):
			return m, m.startTask()
		case key.Matches(msg, m.keys.Done):
			return m, m.completeTask()
		}
	}
	return m, nil
}

func (m *boardModel) moveCursor(delta int) {
	next := m.cursor
	for {
		next += delta
		if next < 0 || next >= len(m.rows) {
			return
		}
		if m.rows[next].selectable {
			m.cursor = next
			return
		}
	}
}

func (m *boardModel) currentRow() *boardRow {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

func (m *boardModel) toggleDeliverable() tea.Cmd {
	row := m.currentRow()
	if row == nil || row.kind != rowDeliverable {
		m.notice = "select a deliverable to toggle"
		return nil
	}
	app := m.app
	id := row.deliverableID
	return func() tea.Msg {
		ctx := context.Background()
		d, err := app.Deliverables.GetByID(ctx, id)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		if d.IsDone {
			err = app.Deliverables.Uncheck(ctx, id, time.Now())
		} else {
			err = app.Deliverables.Check(ctx, id, time.Now())
		}
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		tree, err := app.Status.ProjectTree(ctx, m.projectID, time.Now())
		return boardLoadedMsg{tree: tree, err: err}
	}
}

func (m *boardModel) startTask() tea.Cmd {
	return m.taskAction(func(ctx context.Context, app *App, taskID string) error {
		return app.Tasks.Start(ctx, taskID, time.Now())
	})
}

func (m *boardModel) completeTask() tea.Cmd {
	return m.taskAction(func(ctx context.Context, app *App, taskID string) error {
		return app.Tasks.Complete(ctx, taskID, time.Now())
	})
}

func (m *boardModel) taskAction(fn func(context.Context, *App, string) error) tea.Cmd {
	row := m.currentRow()
	if row == nil || row.kind != rowTask {
		m.notice = "select a task first"
		return nil
	}
	app, projectID, taskID := m.app, m.projectID, row.taskID
	return func() tea.Msg {
		ctx := context.Background()
		if err := fn(ctx, app, taskID); err != nil {
			return boardLoadedMsg{err: err}
		}
		tree, err := app.Status.ProjectTree(ctx, projectID, time.Now())
		return boardLoadedMsg{tree: tree, err: err}
	}
}

// flattenTree turns the project tree into board rows, grouping tasks under
// their milestone header and labelling sequence groups.
func flattenTree(tree *service.ProjectTree) []boardRow {
	var rows []boardRow
	for mi, mn := range tree.Milestones {
		rows = append(rows, boardRow{
			kind:         rowMilestone,
			milestoneIdx: mi,
			label: fmt.Sprintf("%s  %s", formatter.Bold(mn.Milestone.Title),
				formatter.RenderProgress(mn.Milestone.ActualProgress, 10)),
		})
		for _, tn := range mn.Tasks {
			label := tn.Task.Title
			if tn.Task.SequenceGroup != "" {
				label += formatter.Dim("  [" + tn.Task.SequenceGroup + "]")
			}
			if tn.Critical {
				label += "  " + formatter.CriticalIndicator(true)
			}
			rows = append(rows, boardRow{
				kind:       rowTask,
				taskID:     tn.Task.ID,
				label:      fmt.Sprintf("%s %s", formatter.StatusPill(tn.Task.Status), label),
				selectable: true,
			})
			for _, d := range tn.Deliverables {
				rows = append(rows, boardRow{
					kind:          rowDeliverable,
					taskID:        tn.Task.ID,
					deliverableID: d.ID,
					label:         fmt.Sprintf("%s %s", formatter.DoneMark(d.IsDone), d.Title),
					selectable:    true,
				})
			}
		}
	}
	return rows
}

func (m *boardModel) View() string {
	var b strings.Builder

	if m.tree != nil {
		p := m.tree.Project
		b.WriteString(formatter.Header(p.Name) + "\n")
		b.WriteString(fmt.Sprintf("%s  %s\n\n",
			formatter.RenderProgress(p.ActualProgress, 20),
			formatter.ScheduleDelta(p.ActualProgress, p.PlannedProgress)))
	}

	switch {
	case m.loading:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	case m.errMsg != "":
		b.WriteString(formatter.StyleRed.Render("Error: "+m.errMsg) + "\n")
	case len(m.rows) == 0:
		b.WriteString(formatter.Dim("Nothing here yet.") + "\n")
	default:
		for i, row := range m.rows {
			indent := ""
			switch row.kind {
			case rowTask:
				indent = "  "
			case rowDeliverable:
				indent = "      "
			}
			cursor := "  "
			if i == m.cursor {
				cursor = formatter.StyleHeader.Render("> ")
			}
			b.WriteString(cursor + indent + row.label + "\n")
		}
	}

	if m.notice != "" {
		b.WriteString("\n" + formatter.Dim(m.notice) + "\n")
	}
	b.WriteString("\n" + formatter.Dim("space toggle · s start · c complete · r refresh · q quit") + "\n")
	return b.String()
}
