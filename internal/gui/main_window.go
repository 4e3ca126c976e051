package gui

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"statdesk/internal/log"
)

// mainWidgets holds references to the controls the run lifecycle and mode
// switches enable and disable.
type mainWidgets struct {
	toggle    *modeToggle
	dirEntry  *widget.Entry
	browseDir *widget.Button
	refresh   *widget.Button
	addFile   *widget.Button

	fileList     *widget.List
	removeButton *widget.Button
	selectAll    *widget.Button
	invert       *widget.Button

	conflictSelect      *widget.Select
	outputToSourceCheck *widget.Check
	outputEntry         *widget.Entry
	browseOutput        *widget.Button

	startButton *widget.Button
	statusLabel *widget.Label
	logLabel    *widget.Label
	logScroll   *container.Scroll
}

func (a *App) setupMainWindow() {
	w := &a.widgets

	// --- Mode & input controls ---
	w.toggle = newModeToggle("Use input directory", a.modeCtl.RequestToggle)
	w.toggle.SetChecked(a.modeCtl.DirectoryMode())

	w.dirEntry = widget.NewEntry()
	w.dirEntry.SetPlaceHolder("Input directory to scan")
	w.dirEntry.SetText(a.modeCtl.DirectoryPath())
	w.dirEntry.OnSubmitted = func(path string) {
		a.modeCtl.SetDirectoryPath(path)
		a.rescanDirectory()
	}

	w.browseDir = widget.NewButton("Browse...", a.browseInputDir)
	w.refresh = widget.NewButton("Refresh", a.rescanDirectory)
	w.addFile = widget.NewButton("Add File...", a.addFileDialog)

	// --- File list ---
	w.fileList = widget.NewList(
		func() int { return a.files.Len() },
		func() fyne.CanvasObject {
			check := widget.NewCheck("", nil)
			status := widget.NewLabel("status")
			name := widget.NewLabel("name")
			path := widget.NewLabel("path")
			path.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, container.NewHBox(check, status, name), nil, path)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= a.files.Len() {
				return
			}
			entry := a.files.At(id)
			border := obj.(*fyne.Container)
			left := border.Objects[1].(*fyne.Container)
			check := left.Objects[0].(*widget.Check)
			status := left.Objects[1].(*widget.Label)
			name := left.Objects[2].(*widget.Label)
			path := border.Objects[0].(*widget.Label)

			check.OnChanged = nil
			check.SetChecked(entry.Selected)
			check.OnChanged = func(v bool) {
				entry.Selected = v
			}
			if a.processing {
				check.Disable()
			} else {
				check.Enable()
			}

			text := entry.StatusText()
			if entry.Message != "" {
				text += " - " + entry.Message
			}
			status.SetText(text)
			name.SetText(entry.Name())
			path.SetText(entry.Path)
		},
	)

	w.removeButton = widget.NewButton("Remove Checked", func() {
		removed := a.files.RemoveChecked()
		log.Debugf("removed %d entries", removed)
		a.refreshFileList()
	})
	w.selectAll = widget.NewButton("Select All", func() {
		a.files.SelectAll()
		a.refreshFileList()
	})
	w.invert = widget.NewButton("Invert", func() {
		a.files.InvertSelection()
		a.refreshFileList()
	})

	// --- Output options ---
	w.conflictSelect = widget.NewSelect([]string{"Rename", "Overwrite", "Skip"}, nil)
	w.conflictSelect.SetSelectedIndex(a.cfg.Options.ConflictIndex)

	w.outputEntry = widget.NewEntry()
	w.outputEntry.SetPlaceHolder("Output directory")
	w.outputEntry.SetText(a.cfg.Paths.OutputPath)
	w.browseOutput = widget.NewButton("Browse...", a.browseOutputDir)

	w.outputToSourceCheck = widget.NewCheck("Write output next to each source file", func(checked bool) {
		a.updateOutputControls()
	})
	w.outputToSourceCheck.SetChecked(a.cfg.Options.OutputToSource)

	// --- Run controls, log, status bar ---
	w.startButton = widget.NewButton("Start Processing", a.startOrCancel)
	w.startButton.Importance = widget.HighImportance

	w.logLabel = widget.NewLabel("")
	w.logLabel.Wrapping = fyne.TextWrapWord
	w.logScroll = container.NewVScroll(w.logLabel)
	w.logScroll.SetMinSize(fyne.NewSize(0, 160))

	w.statusLabel = widget.NewLabel("Ready.")

	// --- Layout ---
	modeRow := container.NewBorder(nil, nil,
		container.NewHBox(w.toggle), container.NewHBox(w.browseDir, w.refresh, w.addFile),
		w.dirEntry,
	)
	listButtons := container.NewHBox(w.selectAll, w.invert, w.removeButton)
	outputRow := container.NewBorder(nil, nil,
		container.NewHBox(widget.NewLabel("On conflict:"), w.conflictSelect, w.outputToSourceCheck),
		w.browseOutput,
		w.outputEntry,
	)

	top := container.NewVBox(modeRow, listButtons)
	bottom := container.NewVBox(
		outputRow,
		w.startButton,
		widget.NewSeparator(),
		w.logScroll,
		w.statusLabel,
	)

	content := container.NewBorder(top, bottom, nil, nil, w.fileList)

	a.mainWindow.Resize(fyne.NewSize(900, 700))
	a.mainWindow.SetContent(content)

	a.mainWindow.SetOnDropped(a.handleDrop)
	a.mainWindow.SetCloseIntercept(func() {
		a.supervisor.Cancel()
		if a.watcher != nil {
			a.watcher.Close()
		}
		a.saveSettings()
		a.fyneApp.Quit()
	})

	// Apply the persisted mode and populate the initial list.
	a.applyModeToControls(a.modeCtl.DirectoryMode())
	if a.modeCtl.DirectoryMode() {
		a.rescanDirectory()
	}
	a.updateOutputControls()
	a.updateActionButtons()
}

// refreshFileList redraws the list and recomputes button enablement.
func (a *App) refreshFileList() {
	a.widgets.fileList.Refresh()
	a.updateActionButtons()
}

// updateActionButtons mirrors list emptiness into the bulk buttons.
func (a *App) updateActionButtons() {
	w := &a.widgets
	hasFiles := a.files.Len() > 0
	setEnabled(w.removeButton, hasFiles && !a.processing)
	setEnabled(w.selectAll, hasFiles && !a.processing)
	setEnabled(w.invert, hasFiles && !a.processing)
	if !a.processing {
		setEnabled(w.startButton, hasFiles)
	}
}

func setEnabled(d fyne.Disableable, enabled bool) {
	if enabled {
		d.Enable()
	} else {
		d.Disable()
	}
}

// applyModeToControls enables the control group for the active mode.
func (a *App) applyModeToControls(directoryMode bool) {
	w := &a.widgets
	setEnabled(w.dirEntry, directoryMode)
	setEnabled(w.browseDir, directoryMode)
	setEnabled(w.refresh, directoryMode)
	setEnabled(w.addFile, !directoryMode)
}

// updateOutputControls greys the output path while output-to-source is on.
func (a *App) updateOutputControls() {
	w := &a.widgets
	enabled := !w.outputToSourceCheck.Checked && !a.processing
	setEnabled(w.outputEntry, enabled)
	setEnabled(w.browseOutput, enabled)
}

// confirmModeSwitch shows the clear-list confirmation with an embedded
// "don't ask again" option.
func (a *App) confirmModeSwitch(respond func(proceed, dontAskAgain bool)) {
	dontAsk := widget.NewCheck("Don't ask again", nil)
	content := container.NewVBox(
		widget.NewLabel("Switching modes clears the current file list. Continue?"),
		dontAsk,
	)
	d := dialog.NewCustomConfirm("Confirm Mode Switch", "Yes", "No", content, func(ok bool) {
		respond(ok, dontAsk.Checked)
	}, a.mainWindow)
	d.Show()
}

// onModeChanged reacts to an accepted mode switch.
func (a *App) onModeChanged(directoryMode bool) {
	a.widgets.toggle.SetChecked(directoryMode)
	a.applyModeToControls(directoryMode)
	if directoryMode {
		a.rescanDirectory()
	} else {
		a.stopWatching()
		a.refreshFileList()
	}
}

// rescanDirectory repopulates the list from the configured directory.
func (a *App) rescanDirectory() {
	if !a.modeCtl.DirectoryMode() {
		return
	}
	dir := a.widgets.dirEntry.Text
	a.modeCtl.SetDirectoryPath(dir)

	a.files.Clear()
	found := a.scanner.Scan(dir)
	a.files.AddAll(found)
	a.widgets.statusLabel.SetText(scanSummary(len(found)))
	a.refreshFileList()
	a.startWatching(dir)
}

func scanSummary(n int) string {
	if n == 1 {
		return "Scan complete: 1 file."
	}
	return fmt.Sprintf("Scan complete: %d files.", n)
}

// onDirectoryChanged fires from the watcher goroutine when the watched
// directory's contents settle after a change.
func (a *App) onDirectoryChanged() {
	if a.processing || !a.modeCtl.DirectoryMode() {
		return
	}
	a.rescanDirectory()
}

func (a *App) startWatching(dir string) {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.SetDirectory(dir); err != nil {
		log.Debugf("not watching %q: %v", dir, err)
		return
	}
	if !a.watcher.Running() {
		if err := a.watcher.Start(); err != nil {
			log.Warnf("starting watcher: %v", err)
		}
	}
}

func (a *App) stopWatching() {
	if a.watcher == nil {
		return
	}
	a.watcher.Stop()
}

// browseInputDir lets the user pick the scan directory.
func (a *App) browseInputDir() {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		dir := uri.Path()
		a.widgets.dirEntry.SetText(dir)
		a.cfg.Paths.LastSelectedPath = dir
		a.rescanDirectory()
	}, a.mainWindow)
	a.setDialogLocation(d, a.widgets.dirEntry.Text)
	d.Show()
}

// browseOutputDir lets the user pick the output directory.
func (a *App) browseOutputDir() {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		a.widgets.outputEntry.SetText(uri.Path())
		a.cfg.Paths.LastSelectedPath = uri.Path()
	}, a.mainWindow)
	a.setDialogLocation(d, a.widgets.outputEntry.Text)
	d.Show()
}

// addFileDialog adds a single data file to the list.
func (a *App) addFileDialog() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		path := rc.URI().Path()
		a.cfg.Paths.LastSelectedPath = filepath.Dir(path)
		if a.files.Add(path) {
			a.refreshFileList()
		}
	}, a.mainWindow)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".xlsx"}))
	a.setDialogLocation(d, a.cfg.Paths.LastSelectedPath)
	d.Show()
}

type locatable interface {
	SetLocation(fyne.ListableURI)
}

// setDialogLocation points a file dialog at the last used directory.
func (a *App) setDialogLocation(d locatable, preferred string) {
	dir := preferred
	if dir == "" {
		dir = a.cfg.Paths.LastSelectedPath
	}
	if dir == "" {
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		log.Debugf("cannot list %q for dialog: %v", dir, err)
		return
	}
	d.SetLocation(lister)
}

// handleDrop accepts dropped files and directories. Directories expand
// recursively through the scanner's allow-list; drops are ignored in
// directory mode and while a session is running.
func (a *App) handleDrop(_ fyne.Position, uris []fyne.URI) {
	if a.modeCtl.DirectoryMode() || a.processing {
		return
	}
	added := 0
	for _, uri := range uris {
		path := uriPath(uri)
		if path == "" {
			continue
		}
		if isDir(path) {
			added += a.files.AddAll(a.scanner.Scan(path))
			continue
		}
		if a.scanner.MatchPath(path) && a.files.Add(path) {
			added++
		}
	}
	if added > 0 {
		a.refreshFileList()
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// uriPath extracts a local filesystem path from a dropped URI.
func uriPath(u fyne.URI) string {
	if u == nil {
		return ""
	}
	if u.Scheme() == "file" {
		return u.Path()
	}
	if parsed, err := url.Parse(u.String()); err == nil && parsed.Scheme == "file" {
		return parsed.Path
	}
	return ""
}
