package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestInfoWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Infof("processed %d files", 3)

	out := buf.String()
	if !strings.Contains(out, "processed 3 files") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestDebugSuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetDebug(false)
	Debug("hidden detail")
	if strings.Contains(buf.String(), "hidden detail") {
		t.Errorf("debug output should be suppressed, got %q", buf.String())
	}

	SetDebug(true)
	defer SetDebug(false)
	Debug("visible detail")
	if !strings.Contains(buf.String(), "visible detail") {
		t.Errorf("debug output should appear when enabled, got %q", buf.String())
	}
}
