package diag

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Severity defines the importance of a diagnostic. Values are ordered.
type Severity uint8

const (
	// SevHidden is recorded but not shown by default.
	SevHidden Severity = iota
	SevInfo
	SevWarning
	SevError
)

// String returns the upper-case severity name.
func (s Severity) String() string {
	switch s {
	case SevHidden:
		return "HIDDEN"
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lower-case form used in short output.
func (s Severity) Label() string {
	return strings.ToLower(s.String())
}

// ParseSeverity accepts the labels produced by Label.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hidden":
		return SevHidden, nil
	case "info":
		return SevInfo, nil
	case "warning", "warn":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return SevHidden, errors.Newf("unknown severity %q", s)
}
