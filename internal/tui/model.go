// Package tui implements the terminal front-end. It drives the same file
// set and worker supervisor as the GUI, for headless hosts and quick runs
// over a fixed list of files given on the command line.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"statdesk/internal/fileset"
	"statdesk/internal/worker"
	"statdesk/pkg/types"
)

// Messages translated from supervisor events onto the program's loop.
type (
	workerStartedMsg  struct{}
	workerStatusMsg   struct{ rec worker.StatusRecord }
	workerLogMsg      struct {
		line   string
		stderr bool
	}
	workerFinishedMsg struct{ outcome worker.Outcome }
)

type Model struct {
	files      *fileset.Set
	supervisor *worker.Supervisor
	runCfg     types.RunConfig

	cursor     int
	processing bool
	statusMsg  string

	spinner  spinner.Model
	logView  viewport.Model
	logLines []string

	width  int
	height int
}

// NewModel builds the model over an already populated file set. The
// supervisor is attached later, once the program exists to receive its
// events.
func NewModel(files *fileset.Set, runCfg types.RunConfig) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		files:     files,
		runCfg:    runCfg,
		statusMsg: "Ready.",
		spinner:   sp,
		logView:   viewport.New(80, 8),
	}
}

// SetSupervisor attaches the worker supervisor the model starts and cancels.
func (m *Model) SetSupervisor(s *worker.Supervisor) {
	m.supervisor = s
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logView.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.processing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case workerStartedMsg:
		m.statusMsg = "Processing..."
		return m, m.spinner.Tick

	case workerStatusMsg:
		m.applyStatus(msg.rec)
		return m, nil

	case workerLogMsg:
		line := msg.line
		if msg.stderr {
			line = stderrStyle.Render(line)
		}
		m.logLines = append(m.logLines, line)
		m.logView.SetContent(strings.Join(m.logLines, "\n"))
		m.logView.GotoBottom()
		return m, nil

	case workerFinishedMsg:
		m.processing = false
		m.finish(msg.outcome)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.processing {
			m.supervisor.Cancel()
		}
		return m, tea.Quit

	case "j", "down":
		if m.cursor < m.files.Len()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case " ":
		if m.processing || m.files.Len() == 0 {
			break
		}
		entry := m.files.At(m.cursor)
		entry.Selected = !entry.Selected

	case "a":
		if !m.processing {
			m.files.SelectAll()
		}
	case "i":
		if !m.processing {
			m.files.InvertSelection()
		}

	case "s", "enter":
		if m.processing {
			break
		}
		return m, m.startRun()

	case "c":
		if m.processing {
			m.supervisor.Cancel()
			m.statusMsg = "Cancelling..."
		}
	}
	return m, nil
}

// startRun launches a session over the checked files.
func (m *Model) startRun() tea.Cmd {
	tasks := m.files.CheckedPaths()
	if len(tasks) == 0 {
		m.statusMsg = "Nothing checked."
		return nil
	}

	m.files.ResetStatuses()
	m.logLines = nil
	m.logView.SetContent("")

	if err := m.supervisor.Start(tasks, m.runCfg); err != nil {
		m.statusMsg = failureStyle.Render(err.Error())
		return nil
	}
	m.processing = true
	m.statusMsg = "Starting..."
	return m.spinner.Tick
}

func (m *Model) applyStatus(rec worker.StatusRecord) {
	if status, ok := rec.Status(); ok {
		m.files.UpdateStatus(rec.Path, status, rec.Message)
		return
	}
	m.files.UpdateRawStatus(rec.Path, rec.Code, rec.Message)
}

func (m *Model) finish(outcome worker.Outcome) {
	switch outcome.State {
	case worker.StateSucceeded:
		m.statusMsg = successStyle.Render("Processing finished.")
	case worker.StateCancelled:
		m.files.ForceCancelProcessing()
		m.statusMsg = "Processing cancelled."
	case worker.StateFailed:
		m.statusMsg = failureStyle.Render(fmt.Sprintf("Backend exited with code %d.", outcome.ExitCode))
		if outcome.StderrTail != "" {
			for _, line := range strings.Split(outcome.StderrTail, "\n") {
				m.logLines = append(m.logLines, stderrStyle.Render(line))
			}
			m.logView.SetContent(strings.Join(m.logLines, "\n"))
			m.logView.GotoBottom()
		}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Statdesk"))
	b.WriteString("\n\n")

	if m.files.Len() == 0 {
		b.WriteString(statusStyle.Render("No files. Pass csv/xlsx paths on the command line."))
		b.WriteString("\n")
	}
	for i, e := range m.files.Entries() {
		check := "[ ]"
		if e.Selected {
			check = "[x]"
		}
		row := fmt.Sprintf("%s %s %s", check, m.statusCell(e), e.Name())
		if i == m.cursor {
			row = cursorStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(m.logLines) > 0 {
		b.WriteString(logBorderStyle.Render(m.logView.View()))
		b.WriteString("\n")
	}

	status := m.statusMsg
	if m.processing {
		status = m.spinner.View() + " " + status
	}
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k move · space check · a all · i invert · s start · c cancel · q quit"))
	b.WriteString("\n")
	return b.String()
}

// statusCell pads before styling so ANSI codes don't skew the column width.
func (m *Model) statusCell(e *types.FileEntry) string {
	text := fmt.Sprintf("%-15s", e.StatusText())
	switch e.Status {
	case types.Success:
		if e.Raw == "" {
			return successStyle.Render(text)
		}
	case types.Failure, types.Unidentified:
		if e.Raw == "" {
			return failureStyle.Render(text)
		}
	}
	return text
}
