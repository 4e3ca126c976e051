package types

// Status represents the processing state of a single file entry.
type Status int

const (
	// Pending is the initial state of every entry added to the file set
	Pending Status = iota
	// Processing means the backend has picked the file up
	Processing
	// Success means the backend finished the file without problems
	Success
	// Failure means the backend reported an error for the file
	Failure
	// Skipped means the backend skipped the file (conflict policy)
	Skipped
	// Unidentified means the backend could not match the file to a platform
	Unidentified
	// Cancelled is set locally when a run is killed while the file was in flight
	Cancelled
)

// String returns the display text for the status.
func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Processing:
		return "Processing..."
	case Success:
		return "Done"
	case Failure:
		return "Failed"
	case Skipped:
		return "Skipped"
	case Unidentified:
		return "Unidentified"
	case Cancelled:
		return "Cancelled"
	}
	return "Unknown"
}
