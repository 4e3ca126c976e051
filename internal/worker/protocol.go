package worker

import (
	"strings"

	"statdesk/pkg/types"
)

// StatusPrefix marks a structured status record on the backend's stdout.
// Everything else on stdout is free-text log output.
const StatusPrefix = "##STATUS##|"

// Backend status tokens.
const (
	TokenProcessing   = "PROCESSING"
	TokenSuccess      = "SUCCESS"
	TokenFailure      = "FAILURE"
	TokenSkipped      = "SKIPPED"
	TokenUnidentified = "UNIDENTIFIED"
)

// StatusRecord is one parsed per-file progress report:
//
//	##STATUS##|<filePath>|<statusCode>|<message>
type StatusRecord struct {
	Path    string
	Code    string
	Message string
}

// ParseStatusLine parses a stdout line as a status record. It returns false
// for log lines and for malformed records (too few fields), which callers
// treat as ordinary log output. Pipes inside the message are preserved.
func ParseStatusLine(line string) (StatusRecord, bool) {
	if !strings.HasPrefix(line, StatusPrefix) {
		return StatusRecord{}, false
	}
	parts := strings.SplitN(line, "|", 4)
	if len(parts) < 4 {
		return StatusRecord{}, false
	}
	return StatusRecord{Path: parts[1], Code: parts[2], Message: parts[3]}, true
}

// Status maps the record's token to a file status. The second return is
// false for tokens this front-end does not recognize; those are displayed
// verbatim, never rejected: the token set is backend-defined.
func (r StatusRecord) Status() (types.Status, bool) {
	switch r.Code {
	case TokenProcessing:
		return types.Processing, true
	case TokenSuccess:
		return types.Success, true
	case TokenFailure:
		return types.Failure, true
	case TokenSkipped:
		return types.Skipped, true
	case TokenUnidentified:
		return types.Unidentified, true
	}
	return types.Pending, false
}
