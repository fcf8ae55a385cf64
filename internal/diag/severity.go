package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic. Order matters: higher is worse.
type Severity uint8

const (
	SevHint Severity = iota
	SevInfo
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevHint:
		return "HINT"
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity accepts the lowercase names used in lintel.toml.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hint":
		return SevHint, nil
	case "info", "information":
		return SevInfo, nil
	case "warn", "warning":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return SevHint, fmt.Errorf("unknown severity %q", s)
}

// SeverityLabel is the lowercase severity used in single-line output.
func SeverityLabel(sev Severity) string {
	if sev > SevError {
		return "hint"
	}
	return strings.ToLower(sev.String())
}
