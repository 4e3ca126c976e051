package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	apperrors "statdesk/internal/errors"
	"statdesk/internal/log"
	"statdesk/internal/worker"
	"statdesk/pkg/types"
)

// startOrCancel is the action behind the main button: it starts a session
// when idle and kills the running one otherwise.
func (a *App) startOrCancel() {
	if a.processing {
		a.supervisor.Cancel()
		a.widgets.statusLabel.SetText("Cancelling...")
		return
	}

	tasks := a.files.CheckedPaths()
	if len(tasks) == 0 {
		dialog.ShowInformation("Nothing to do", "Check at least one file to process.", a.mainWindow)
		return
	}

	cfg := a.runConfigSnapshot()
	if !cfg.UseSourceDirAsOutput && cfg.OutputDir == "" {
		dialog.ShowInformation("Output directory required",
			"Choose an output directory, or enable writing next to each source file.", a.mainWindow)
		return
	}

	a.files.ResetStatuses()
	a.clearLog()
	a.lockUI(true)

	if err := a.supervisor.Start(tasks, cfg); err != nil {
		a.lockUI(false)
		switch {
		case apperrors.IsLaunch(err):
			a.showError("The backend engine could not be started", err)
		default:
			a.showError("Cannot start processing", err)
		}
		a.widgets.statusLabel.SetText("Ready.")
		return
	}
}

// runConfigSnapshot captures the output options as they stand right now.
// The running session keeps this snapshot even if the controls change.
func (a *App) runConfigSnapshot() types.RunConfig {
	w := &a.widgets
	return types.RunConfig{
		ConflictPolicy:       types.ConflictPolicyFromIndex(w.conflictSelect.SelectedIndex()),
		OutputDir:            w.outputEntry.Text,
		UseSourceDirAsOutput: w.outputToSourceCheck.Checked,
	}
}

// lockUI freezes every control except the cancel button while a session
// runs, and restores them afterwards.
func (a *App) lockUI(locked bool) {
	a.processing = locked
	w := &a.widgets

	setEnabled(w.toggle, !locked)
	setEnabled(w.conflictSelect, !locked)
	setEnabled(w.outputToSourceCheck, !locked)
	if locked {
		setEnabled(w.dirEntry, false)
		setEnabled(w.browseDir, false)
		setEnabled(w.refresh, false)
		setEnabled(w.addFile, false)
		w.startButton.SetText("Cancel")
	} else {
		a.applyModeToControls(a.modeCtl.DirectoryMode())
		w.startButton.SetText("Start Processing")
	}
	a.updateOutputControls()
	a.updateActionButtons()
	w.fileList.Refresh()
}

// --- Supervisor events. These arrive on the supervisor's goroutines. ---

func (a *App) onWorkerStarted() {
	a.widgets.statusLabel.SetText("Processing...")
}

func (a *App) onWorkerStatus(rec worker.StatusRecord) {
	if status, ok := rec.Status(); ok {
		if !a.files.UpdateStatus(rec.Path, status, rec.Message) {
			log.Debugf("status for unknown path %q ignored", rec.Path)
			return
		}
	} else {
		// Unknown token: show it verbatim instead of dropping the update.
		if !a.files.UpdateRawStatus(rec.Path, rec.Code, rec.Message) {
			log.Debugf("status for unknown path %q ignored", rec.Path)
			return
		}
	}
	a.widgets.fileList.Refresh()
}

func (a *App) onWorkerLog(line string) {
	a.appendLog(line)
}

func (a *App) onWorkerErrLog(line string) {
	a.appendLog("[stderr] " + line)
}

func (a *App) onWorkerFinished(outcome worker.Outcome) {
	a.lockUI(false)

	switch outcome.State {
	case worker.StateSucceeded:
		a.widgets.statusLabel.SetText("Processing finished.")
	case worker.StateCancelled:
		a.files.ForceCancelProcessing()
		a.widgets.fileList.Refresh()
		a.widgets.statusLabel.SetText("Processing cancelled.")
		dialog.ShowInformation("Cancelled", "Processing was cancelled.", a.mainWindow)
	case worker.StateFailed:
		a.widgets.statusLabel.SetText("Processing failed.")
		a.showRunFailure(outcome)
	}
}

// showRunFailure reports a failed session, including the backend's last
// stderr lines when it produced any.
func (a *App) showRunFailure(outcome worker.Outcome) {
	msg := fmt.Sprintf("The backend engine exited with code %d.", outcome.ExitCode)
	if outcome.StderrTail != "" {
		msg += "\n\n" + outcome.StderrTail
	}
	label := widget.NewLabel(msg)
	label.Wrapping = fyne.TextWrapWord
	dialog.ShowCustom("Processing failed", "Close", label, a.mainWindow)
}

// appendLog adds one line to the log pane and keeps it scrolled to the end.
func (a *App) appendLog(line string) {
	w := &a.widgets
	if w.logLabel.Text == "" {
		w.logLabel.SetText(line)
	} else {
		w.logLabel.SetText(w.logLabel.Text + "\n" + line)
	}
	w.logScroll.ScrollToBottom()
}

func (a *App) clearLog() {
	a.widgets.logLabel.SetText("")
}
