package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "statdesk/internal/errors"
	"statdesk/internal/fileset"
	"statdesk/internal/log"
	"statdesk/internal/scan"
	"statdesk/internal/worker"
	"statdesk/pkg/types"
)

// BuildFileSet resolves the command-line arguments into a file set.
// Directories are scanned recursively; plain files must match the data-file
// allow-list. Paths that match nothing are logged and skipped.
func BuildFileSet(paths []string) *fileset.Set {
	scanner := scan.New()
	files := fileset.New()
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			log.Warnf("skipping %q: %v", p, err)
			continue
		}
		if info.IsDir() {
			files.AddAll(scanner.Scan(p))
			continue
		}
		if !scanner.MatchPath(p) {
			log.Warnf("skipping %q: not a csv/xlsx file", p)
			continue
		}
		files.Add(p)
	}
	return files
}

// Run starts the terminal front-end over the given paths and blocks until
// the user quits.
func Run(enginePath string, runCfg types.RunConfig, paths []string) error {
	files := BuildFileSet(paths)
	if files.Len() == 0 {
		return apperrors.NewValidationError("no csv/xlsx files among the given paths", apperrors.EmptyTaskList, nil)
	}

	model := NewModel(files, runCfg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Supervisor events fire on its goroutines; Send marshals them onto the
	// program's update loop.
	supervisor := worker.New(enginePath, worker.Events{
		Started: func() { p.Send(workerStartedMsg{}) },
		Status:  func(rec worker.StatusRecord) { p.Send(workerStatusMsg{rec: rec}) },
		Log:     func(line string) { p.Send(workerLogMsg{line: line}) },
		ErrLog:  func(line string) { p.Send(workerLogMsg{line: line, stderr: true}) },
		Finished: func(outcome worker.Outcome) {
			p.Send(workerFinishedMsg{outcome: outcome})
		},
	})
	model.SetSupervisor(supervisor)

	_, err := p.Run()
	supervisor.Cancel()
	return err
}
