// Package gui implements the desktop front-end. It wires the file set, mode
// controller, directory scanner, watcher and worker supervisor to a Fyne
// main window.
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"statdesk/internal/config"
	"statdesk/internal/fileset"
	"statdesk/internal/log"
	"statdesk/internal/mode"
	"statdesk/internal/scan"
	"statdesk/internal/watch"
	"statdesk/internal/worker"
)

// App is the GUI application.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window

	cfg     *config.Config
	cfgPath string

	files      *fileset.Set
	scanner    *scan.Scanner
	modeCtl    *mode.Controller
	supervisor *worker.Supervisor
	watcher    *watch.Watcher

	processing bool

	widgets mainWidgets
}

// NewApp creates the GUI application. cfgPath is where settings are saved
// on exit; enginePath overrides the backend location (empty = default).
func NewApp(cfg *config.Config, cfgPath, enginePath string) *App {
	a := &App{
		fyneApp: app.NewWithID("io.statdesk.app"),
		cfg:     cfg,
		cfgPath: cfgPath,
		files:   fileset.New(),
		scanner: scan.New(),
	}

	a.modeCtl = mode.NewController(cfg.ModeState(), a.files)
	a.modeCtl.Confirm = a.confirmModeSwitch
	a.modeCtl.OnModeChanged = a.onModeChanged

	a.supervisor = worker.New(enginePath, worker.Events{
		Started:  a.onWorkerStarted,
		Status:   a.onWorkerStatus,
		Log:      a.onWorkerLog,
		ErrLog:   a.onWorkerErrLog,
		Finished: a.onWorkerFinished,
	})

	watcher, err := watch.New()
	if err != nil {
		log.Errorf("directory watcher unavailable: %v", err)
		// The GUI still works without it; refresh stays manual.
	} else {
		watcher.OnChange = a.onDirectoryChanged
		a.watcher = watcher
	}

	a.mainWindow = a.fyneApp.NewWindow("Statdesk")

	return a
}

// Run builds the main window and enters the event loop.
func (a *App) Run() {
	a.setupMainWindow()
	a.mainWindow.Show()
	a.fyneApp.Run()
}

// MainWindow returns the main window. Used by tests.
func (a *App) MainWindow() fyne.Window {
	return a.mainWindow
}

// saveSettings writes UI state back into the config and persists it.
func (a *App) saveSettings() {
	a.modeCtl.SetDirectoryPath(a.widgets.dirEntry.Text)
	a.cfg.ApplyModeState(a.modeCtl.State())
	a.cfg.Paths.OutputPath = a.widgets.outputEntry.Text
	a.cfg.Options.OutputToSource = a.widgets.outputToSourceCheck.Checked
	a.cfg.Options.ConflictIndex = a.widgets.conflictSelect.SelectedIndex()

	if a.cfgPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			log.Errorf("cannot resolve settings path: %v", err)
			return
		}
		a.cfgPath = path
	}
	if err := config.Save(a.cfg, a.cfgPath); err != nil {
		log.Errorf("saving settings: %v", err)
	}
}

// showError displays an error dialog and logs it.
func (a *App) showError(message string, err error) {
	log.Errorf("%s: %v", message, err)
	dialog.ShowError(fmt.Errorf("%s: %w", message, err), a.mainWindow)
}

// showInfo displays an information dialog.
func (a *App) showInfo(message string) {
	log.Info(message)
	dialog.ShowInformation("Info", message, a.mainWindow)
}
