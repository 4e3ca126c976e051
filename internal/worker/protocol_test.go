package worker

import (
	"testing"

	"statdesk/pkg/types"

	alsrt "github.com/alecthomas/assert"
)

func TestParseStatusLine(t *testing.T) {
	rec, ok := ParseStatusLine("##STATUS##|/a/b.csv|SUCCESS|done")
	alsrt.True(t, ok)
	alsrt.Equal(t, "/a/b.csv", rec.Path)
	alsrt.Equal(t, "SUCCESS", rec.Code)
	alsrt.Equal(t, "done", rec.Message)
}

func TestParseStatusLineLogLine(t *testing.T) {
	_, ok := ParseStatusLine("hello world")
	alsrt.False(t, ok)
}

func TestParseStatusLineMalformedFallsThrough(t *testing.T) {
	_, ok := ParseStatusLine("##STATUS##|onlyonefield")
	alsrt.False(t, ok, "too few fields must be treated as a log line")
}

func TestParseStatusLineKeepsPipesInMessage(t *testing.T) {
	rec, ok := ParseStatusLine("##STATUS##|/a.csv|FAILURE|bad | worse")
	alsrt.True(t, ok)
	alsrt.Equal(t, "bad | worse", rec.Message)
}

func TestParseStatusLineEmptyMessage(t *testing.T) {
	rec, ok := ParseStatusLine("##STATUS##|/a.csv|SKIPPED|")
	alsrt.True(t, ok)
	alsrt.Equal(t, "SKIPPED", rec.Code)
	alsrt.Equal(t, "", rec.Message)
}

func TestStatusTokenMapping(t *testing.T) {
	cases := map[string]types.Status{
		TokenProcessing:   types.Processing,
		TokenSuccess:      types.Success,
		TokenFailure:      types.Failure,
		TokenSkipped:      types.Skipped,
		TokenUnidentified: types.Unidentified,
	}
	for token, want := range cases {
		st, ok := StatusRecord{Code: token}.Status()
		alsrt.True(t, ok, token)
		alsrt.Equal(t, want, st)
	}
}

func TestStatusUnknownTokenPassesThrough(t *testing.T) {
	_, ok := StatusRecord{Code: "RETRYING"}.Status()
	alsrt.False(t, ok, "unknown tokens are display values, not errors")
}
