// Package mode owns the directory-mode/manual-mode toggle. The toggle widget
// itself never changes state; every click is forwarded here as a single
// toggle request and the controller decides what, if anything, happens.
//
// This indirection exists because letting the checkbox run its own state
// machine allowed double-click races where the visual state diverged from
// the logical mode.
package mode

import (
	"time"

	"statdesk/internal/fileset"
	"statdesk/internal/log"
	"statdesk/pkg/types"
)

// DebounceInterval is the minimum spacing between accepted toggle requests.
const DebounceInterval = 300 * time.Millisecond

// Confirm asks the user whether clearing the file list is acceptable and
// calls respond with the answer and the state of the "don't ask again"
// option. GUI front-ends respond from a dialog callback; respond may be
// invoked synchronously.
type Confirm func(respond func(proceed, dontAskAgain bool))

// Controller applies debounced, confirmation-gated mode switches.
type Controller struct {
	state types.ModeState
	files *fileset.Set

	// OnModeChanged fires after an accepted switch, with the new mode.
	// The front-end reacts by relayouting and, on entry to directory
	// mode, scanning DirectoryPath.
	OnModeChanged func(directoryMode bool)

	// Confirm is consulted when switching would discard a non-empty list.
	// A nil Confirm behaves as "don't ask" and proceeds.
	Confirm Confirm

	now      func() time.Time
	last     time.Time
	hasFired bool
}

// NewController creates a controller over the given file set, initialized
// from persisted state.
func NewController(state types.ModeState, files *fileset.Set) *Controller {
	return &Controller{state: state, files: files, now: time.Now}
}

// State returns the current mode state for persistence.
func (c *Controller) State() types.ModeState {
	return c.state
}

// DirectoryMode reports whether directory mode is active.
func (c *Controller) DirectoryMode() bool {
	return c.state.DirectoryMode
}

// SetDirectoryPath updates the configured scan directory.
func (c *Controller) SetDirectoryPath(path string) {
	c.state.DirectoryPath = path
}

// DirectoryPath returns the configured scan directory.
func (c *Controller) DirectoryPath() string {
	return c.state.DirectoryPath
}

// RequestToggle processes one user click on the mode toggle.
//
// Requests arriving within DebounceInterval of the previous accepted request
// are silently dropped: no dialog, no state change. An accepted request that
// the user then declines still restarts the debounce window, since the click
// itself was processed.
func (c *Controller) RequestToggle() {
	t := c.now()
	if c.hasFired && t.Sub(c.last) < DebounceInterval {
		log.Debugf("mode toggle ignored: %v since last accepted request", t.Sub(c.last))
		return
	}
	c.last = t
	c.hasFired = true

	// An empty list has nothing to lose; switch immediately.
	if c.files.Len() > 0 && !c.state.DontAskOnModeChange && c.Confirm != nil {
		c.Confirm(func(proceed, dontAskAgain bool) {
			if !proceed {
				return
			}
			if dontAskAgain {
				c.state.DontAskOnModeChange = true
			}
			c.applyToggle()
		})
		return
	}
	c.applyToggle()
}

func (c *Controller) applyToggle() {
	c.files.Clear()
	c.state.DirectoryMode = !c.state.DirectoryMode
	log.Infof("input mode switched: directoryMode=%v", c.state.DirectoryMode)
	if c.OnModeChanged != nil {
		c.OnModeChanged(c.state.DirectoryMode)
	}
}
