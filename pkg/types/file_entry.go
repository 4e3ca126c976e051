package types

import "path/filepath"

// FileEntry represents one file in the task list.
type FileEntry struct {
	Path     string // absolute path, unique key within a set
	Selected bool
	Status   Status
	Raw      string // verbatim backend status token when it is not a known code
	Message  string // detail text reported by the backend
}

// Name returns the base name of the file for display.
func (e *FileEntry) Name() string {
	return filepath.Base(e.Path)
}

// StatusText returns the status display string. Unknown backend tokens are
// shown verbatim rather than treated as errors.
func (e *FileEntry) StatusText() string {
	if e.Raw != "" {
		return e.Raw
	}
	return e.Status.String()
}
