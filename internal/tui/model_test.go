package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statdesk/internal/fileset"
	"statdesk/internal/worker"
	"statdesk/pkg/types"
)

func testModel(paths ...string) *Model {
	files := fileset.New()
	files.AddAll(paths)
	m := NewModel(files, types.RunConfig{OutputDir: "/out", ConflictPolicy: types.Rename})
	m.SetSupervisor(worker.New("/nonexistent/backend_engine", worker.Events{}))
	return m
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBuildFileSetFiltersArguments(t *testing.T) {
	dir := t.TempDir()
	csv := filepath.Join(dir, "a.csv")
	txt := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(csv, nil, 0o644))
	require.NoError(t, os.WriteFile(txt, nil, 0o644))

	files := BuildFileSet([]string{csv, txt, filepath.Join(dir, "missing.csv")})
	require.Equal(t, 1, files.Len())
	assert.True(t, files.Contains(csv))
}

func TestBuildFileSetExpandsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.xlsx"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), nil, 0o644))

	files := BuildFileSet([]string{dir})
	assert.Equal(t, 2, files.Len())
}

func TestCursorMovementStaysInBounds(t *testing.T) {
	m := testModel("/a.csv", "/b.csv")

	m.Update(key("k"))
	assert.Equal(t, 0, m.cursor)

	m.Update(key("j"))
	m.Update(key("j"))
	m.Update(key("j"))
	assert.Equal(t, 1, m.cursor)
}

func TestSpaceTogglesCurrentEntry(t *testing.T) {
	m := testModel("/a.csv", "/b.csv")

	require.True(t, m.files.At(0).Selected)
	m.Update(key(" "))
	assert.False(t, m.files.At(0).Selected)
	m.Update(key(" "))
	assert.True(t, m.files.At(0).Selected)
}

func TestInvertAndSelectAllKeys(t *testing.T) {
	m := testModel("/a.csv", "/b.csv")

	m.Update(key("i"))
	assert.False(t, m.files.At(0).Selected)
	assert.False(t, m.files.At(1).Selected)

	m.Update(key("a"))
	assert.True(t, m.files.At(0).Selected)
	assert.True(t, m.files.At(1).Selected)
}

func TestStartWithNothingCheckedDoesNotLaunch(t *testing.T) {
	m := testModel("/a.csv")
	m.files.SetAllSelected(false)

	m.Update(key("s"))
	assert.False(t, m.processing)
	assert.Equal(t, "Nothing checked.", m.statusMsg)
}

func TestSelectionKeysIgnoredWhileProcessing(t *testing.T) {
	m := testModel("/a.csv")
	m.processing = true

	m.Update(key(" "))
	assert.True(t, m.files.At(0).Selected)
	m.Update(key("i"))
	assert.True(t, m.files.At(0).Selected)
}

func TestWorkerMessagesDriveEntries(t *testing.T) {
	m := testModel("/a.csv")
	m.processing = true

	m.Update(workerStatusMsg{rec: worker.StatusRecord{Path: "/a.csv", Code: "PROCESSING"}})
	assert.Equal(t, types.Processing, m.files.At(0).Status)

	m.Update(workerStatusMsg{rec: worker.StatusRecord{Path: "/a.csv", Code: "SUCCESS", Message: "ok"}})
	assert.Equal(t, types.Success, m.files.At(0).Status)

	m.Update(workerStatusMsg{rec: worker.StatusRecord{Path: "/a.csv", Code: "RETRYING"}})
	assert.Equal(t, "RETRYING", m.files.At(0).StatusText())
}

func TestFinishedCancelledMarksInFlightEntries(t *testing.T) {
	m := testModel("/a.csv")
	m.processing = true
	m.files.UpdateStatus("/a.csv", types.Processing, "")

	m.Update(workerFinishedMsg{outcome: worker.Outcome{State: worker.StateCancelled, ExitCode: -1}})
	assert.False(t, m.processing)
	assert.Equal(t, types.Cancelled, m.files.At(0).Status)
}

func TestFinishedFailureShowsStderrTail(t *testing.T) {
	m := testModel("/a.csv")
	m.processing = true

	m.Update(workerFinishedMsg{outcome: worker.Outcome{
		State:      worker.StateFailed,
		ExitCode:   3,
		StderrTail: "boom\nbang",
	}})
	assert.Contains(t, m.statusMsg, "code 3")
	require.Len(t, m.logLines, 2)
}

func TestViewListsFilesWithCheckboxes(t *testing.T) {
	m := testModel("/data/sales.csv")

	view := m.View()
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "sales.csv")
	assert.Contains(t, view, "Pending")

	m.files.SetAllSelected(false)
	assert.Contains(t, m.View(), "[ ]")
}

func TestViewEmptySetShowsHint(t *testing.T) {
	m := testModel()
	assert.True(t, strings.Contains(m.View(), "No files"))
}
