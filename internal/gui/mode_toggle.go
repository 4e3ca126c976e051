package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// modeToggle is a checkbox whose intrinsic toggle behavior is suppressed.
// Clicks are forwarded to the mode controller as a single "toggle
// requested" event; the widget's checked state only ever changes through
// SetChecked calls issued by its owner. This keeps the visual state and
// the logical mode from diverging under rapid clicking.
type modeToggle struct {
	widget.Check
	onRequest func()
}

func newModeToggle(label string, onRequest func()) *modeToggle {
	t := &modeToggle{onRequest: onRequest}
	t.Text = label
	t.ExtendBaseWidget(t)
	return t
}

// Tapped replaces the embedded check's handler; it never flips the widget.
func (t *modeToggle) Tapped(_ *fyne.PointEvent) {
	if t.Disabled() {
		return
	}
	if t.onRequest != nil {
		t.onRequest()
	}
}
