package types

// ConflictPolicy tells the backend how to handle output filename collisions.
type ConflictPolicy int

const (
	Rename ConflictPolicy = iota
	Overwrite
	Skip
)

// ConflictPolicyFromIndex maps the persisted combo-box index to a policy.
// Out-of-range values fall back to Skip, the safe default.
func ConflictPolicyFromIndex(i int) ConflictPolicy {
	switch i {
	case 0:
		return Rename
	case 1:
		return Overwrite
	case 2:
		return Skip
	}
	return Skip
}

// Index returns the combo-box index for persistence.
func (p ConflictPolicy) Index() int {
	switch p {
	case Rename:
		return 0
	case Overwrite:
		return 1
	}
	return 2
}

// CommandArg returns the value passed to the backend's --on-conflict flag.
func (p ConflictPolicy) CommandArg() string {
	switch p {
	case Rename:
		return "rename"
	case Overwrite:
		return "overwrite"
	}
	return "skip"
}

// RunConfig is an immutable snapshot of the output options taken when a run
// starts. Changes to the UI controls during a run do not affect it.
type RunConfig struct {
	ConflictPolicy       ConflictPolicy
	OutputDir            string
	UseSourceDirAsOutput bool
}
