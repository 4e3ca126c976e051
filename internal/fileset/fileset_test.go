package fileset

import (
	"testing"

	"statdesk/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestAddDeduplicates(t *testing.T) {
	s := New()
	assert.True(t, s.Add("/a/b.csv"))
	assert.False(t, s.Add("/a/b.csv"))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains("/a/b.csv"))
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	s := New()
	s.AddAll([]string{"/z.csv", "/a.csv", "/m.csv"})
	entries := s.Entries()
	assert.Equal(t, "/z.csv", entries[0].Path)
	assert.Equal(t, "/a.csv", entries[1].Path)
	assert.Equal(t, "/m.csv", entries[2].Path)
}

func TestNewEntriesArePendingAndSelected(t *testing.T) {
	s := New()
	s.Add("/a.csv")
	e := s.At(0)
	assert.Equal(t, types.Pending, e.Status)
	assert.True(t, e.Selected)
}

func TestRemoveChecked(t *testing.T) {
	s := New()
	s.AddAll([]string{"/a.csv", "/b.csv", "/c.csv"})
	s.At(1).Selected = false

	removed := s.RemoveChecked()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "/b.csv", s.At(0).Path)
	assert.False(t, s.Contains("/a.csv"))
}

func TestSelectAllChecksEverythingWhenAnyUnchecked(t *testing.T) {
	s := New()
	s.AddAll([]string{"/a.csv", "/b.csv"})
	s.At(0).Selected = false

	s.SelectAll()
	assert.True(t, s.At(0).Selected)
	assert.True(t, s.At(1).Selected)

	// a second SelectAll on a fully-checked set keeps everything checked
	s.SelectAll()
	assert.True(t, s.At(0).Selected)
	assert.True(t, s.At(1).Selected)
}

func TestInvertSelection(t *testing.T) {
	s := New()
	s.AddAll([]string{"/a.csv", "/b.csv"})
	s.At(1).Selected = false

	s.InvertSelection()
	assert.False(t, s.At(0).Selected)
	assert.True(t, s.At(1).Selected)
}

func TestUpdateStatusKnownPath(t *testing.T) {
	s := New()
	s.Add("/a/b.csv")
	assert.True(t, s.UpdateStatus("/a/b.csv", types.Success, "done"))
	assert.Equal(t, types.Success, s.At(0).Status)
	assert.Equal(t, "done", s.At(0).Message)
}

func TestUpdateStatusUnknownPathIsNoOp(t *testing.T) {
	s := New()
	s.Add("/a/b.csv")
	assert.False(t, s.UpdateStatus("/elsewhere.csv", types.Failure, "boom"))
	assert.Equal(t, types.Pending, s.At(0).Status)
	assert.Equal(t, 1, s.Len())
}

func TestClear(t *testing.T) {
	s := New()
	s.AddAll([]string{"/a.csv", "/b.csv"})
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains("/a.csv"))
	// and the set is usable again
	assert.True(t, s.Add("/a.csv"))
}

func TestForceCancelProcessing(t *testing.T) {
	s := New()
	s.AddAll([]string{"/a.csv", "/b.csv", "/c.csv"})
	s.UpdateStatus("/a.csv", types.Success, "")
	s.UpdateStatus("/b.csv", types.Processing, "")

	s.ForceCancelProcessing()
	assert.Equal(t, types.Success, s.At(0).Status)
	assert.Equal(t, types.Cancelled, s.At(1).Status)
	assert.Equal(t, types.Pending, s.At(2).Status)
}

func TestCheckedPaths(t *testing.T) {
	s := New()
	s.AddAll([]string{"/a.csv", "/b.csv", "/c.csv"})
	s.At(1).Selected = false
	assert.Equal(t, []string{"/a.csv", "/c.csv"}, s.CheckedPaths())
}

func TestResetStatuses(t *testing.T) {
	s := New()
	s.Add("/a.csv")
	s.UpdateStatus("/a.csv", types.Failure, "bad")
	s.ResetStatuses()
	assert.Equal(t, types.Pending, s.At(0).Status)
	assert.Empty(t, s.At(0).Message)
}
