// Package tui provides an interactive viewer for checkpoint diffs. It
// renders the change list and per-file content diffs in a scrollable
// viewport.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aezell/sprite-differ/pkg/differ/compare"
	"github.com/aezell/sprite-differ/pkg/differ/output"
	"github.com/aezell/sprite-differ/pkg/differ/textdiff"
)

// Model is the Bubble Tea model for the diff viewer.
type Model struct {
	report   *output.Report
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// NewModel creates a diff viewer model for the given report.
func NewModel(report *output.Report) Model {
	return Model{
		report: report,
		width:  80,
		height: 24,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 1
		contentHeight := m.height - headerHeight - footerHeight
		if contentHeight < 1 {
			contentHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, contentHeight)
			m.viewport.SetContent(m.renderContent())
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = contentHeight
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the viewer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.renderHeader() + "\n" + m.viewport.View() + "\n" + m.renderStatusBar()
}

// renderHeader shows the compared checkpoints.
func (m Model) renderHeader() string {
	res := m.report.Result
	title := titleStyle.Render(fmt.Sprintf("%s -> %s", res.CheckpointA, res.CheckpointB))

	s := res.Summary
	counts := fmt.Sprintf("%s  %s  %s",
		addedLineStyle.Render(fmt.Sprintf("+%d", s.FilesAdded)),
		changedLineStyle.Render(fmt.Sprintf("~%d", s.FilesModified)),
		deletedLineStyle.Render(fmt.Sprintf("-%d", s.FilesDeleted)))

	return title + "  " + counts
}

// renderStatusBar shows scroll position and key hints.
func (m Model) renderStatusBar() string {
	percent := fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)
	return statusBarStyle.Render(percent + "  ↑/↓ scroll · g/G top/bottom · q quit")
}

// renderContent builds the scrollable body: the change list followed by
// per-file content diffs.
func (m Model) renderContent() string {
	var sb strings.Builder

	for _, change := range m.report.Result.Changes {
		sb.WriteString(renderChange(change))
		sb.WriteString("\n")
	}

	for _, fd := range m.report.FileDiffs {
		sb.WriteString("\n")
		sb.WriteString(renderFileDiff(fd))
	}

	if sb.Len() == 0 {
		return mutedStyle.Render("No changes.")
	}
	return sb.String()
}

// renderChange renders one colored change row.
func renderChange(change compare.Change) string {
	switch change.Status {
	case compare.StatusAdded:
		return addedLineStyle.Render("+ " + change.Path)
	case compare.StatusDeleted:
		return deletedLineStyle.Render("- " + change.Path)
	default:
		return changedLineStyle.Render("~ " + change.Path)
	}
}

// renderFileDiff renders a colored content diff for one file.
func renderFileDiff(fd *textdiff.FileDiff) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fd.Filename))
	sb.WriteString(" ")
	sb.WriteString(mutedStyle.Render(fd.Stat()))
	sb.WriteString("\n")

	for _, hunk := range fd.Hunks {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("@@ -%d +%d @@", hunk.StartA, hunk.StartB)))
		sb.WriteString("\n")
		for _, line := range hunk.Lines {
			switch line.Kind {
			case textdiff.KindAdd:
				sb.WriteString(addedLineStyle.Render("+" + line.Content))
			case textdiff.KindDelete:
				sb.WriteString(deletedLineStyle.Render("-" + line.Content))
			default:
				sb.WriteString(" " + line.Content)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Run starts the interactive diff viewer and blocks until the user quits.
func Run(report *output.Report) error {
	p := tea.NewProgram(NewModel(report), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
