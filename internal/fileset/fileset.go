// Package fileset maintains the ordered, deduplicated list of selected files
// and their per-file processing status. It is the single source of truth the
// front-ends render from.
//
// The set is mutated only from the front-end's event callbacks, so it needs
// no locking; supervisor callbacks that arrive on reader goroutines must be
// marshaled onto the UI loop before touching it.
package fileset

import "statdesk/pkg/types"

// Set is an insertion-ordered collection of file entries, unique by path.
type Set struct {
	entries []*types.FileEntry
	index   map[string]*types.FileEntry
}

// New creates an empty set.
func New() *Set {
	return &Set{index: make(map[string]*types.FileEntry)}
}

// Add appends a Pending, selected entry for path. Adding a path that is
// already present is a no-op.
func (s *Set) Add(path string) bool {
	if _, ok := s.index[path]; ok {
		return false
	}
	e := &types.FileEntry{Path: path, Selected: true, Status: types.Pending}
	s.entries = append(s.entries, e)
	s.index[path] = e
	return true
}

// AddAll adds every path in order and returns how many were new.
func (s *Set) AddAll(paths []string) int {
	added := 0
	for _, p := range paths {
		if s.Add(p) {
			added++
		}
	}
	return added
}

// RemoveChecked removes all entries whose selection checkbox is set.
func (s *Set) RemoveChecked() int {
	kept := s.entries[:0]
	removed := 0
	for _, e := range s.entries {
		if e.Selected {
			delete(s.index, e.Path)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return removed
}

// SelectAll checks every entry if any entry is unchecked; if everything is
// already checked it leaves the set fully checked.
func (s *Set) SelectAll() {
	target := false
	for _, e := range s.entries {
		if !e.Selected {
			target = true
			break
		}
	}
	if !target {
		// already fully selected
		return
	}
	s.SetAllSelected(true)
}

// SetAllSelected bulk-sets the selection flag.
func (s *Set) SetAllSelected(selected bool) {
	for _, e := range s.entries {
		e.Selected = selected
	}
}

// InvertSelection flips every entry's selection flag.
func (s *Set) InvertSelection() {
	for _, e := range s.entries {
		e.Selected = !e.Selected
	}
}

// Clear empties the set.
func (s *Set) Clear() {
	s.entries = nil
	s.index = make(map[string]*types.FileEntry)
}

// UpdateStatus updates the status and message of the entry for path. An
// unknown path is silently ignored: a backend-reported path the UI does not
// know about is a recoverable desync, not an error.
func (s *Set) UpdateStatus(path string, status types.Status, message string) bool {
	e, ok := s.index[path]
	if !ok {
		return false
	}
	e.Status = status
	e.Raw = ""
	e.Message = message
	return true
}

// UpdateRawStatus records an unrecognized backend status token verbatim.
// The token becomes the entry's display text; it is not an error.
func (s *Set) UpdateRawStatus(path, token, message string) bool {
	e, ok := s.index[path]
	if !ok {
		return false
	}
	e.Raw = token
	e.Message = message
	return true
}

// ForceCancelProcessing flips entries still marked Processing to Cancelled.
// Called after a run is killed so no entry is left looking in-flight.
func (s *Set) ForceCancelProcessing() {
	for _, e := range s.entries {
		if e.Status == types.Processing {
			e.Status = types.Cancelled
		}
	}
}

// ResetStatuses returns every entry to Pending with no message.
func (s *Set) ResetStatuses() {
	for _, e := range s.entries {
		e.Status = types.Pending
		e.Raw = ""
		e.Message = ""
	}
}

// CheckedPaths returns the paths of all selected entries in order.
func (s *Set) CheckedPaths() []string {
	var paths []string
	for _, e := range s.entries {
		if e.Selected {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

// Entries returns the entries in insertion order. The slice is a copy; the
// pointed-to entries are live.
func (s *Set) Entries() []*types.FileEntry {
	out := make([]*types.FileEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// At returns the entry at position i.
func (s *Set) At(i int) *types.FileEntry {
	return s.entries[i]
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// Contains reports whether path is already in the set.
func (s *Set) Contains(path string) bool {
	_, ok := s.index[path]
	return ok
}
