package diag

import "fmt"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	// SevError is for error diagnostics.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity converts a config string ("info", "warning", "error") into a
// Severity. Matching is case-insensitive on the first letter forms too.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "info", "Info", "INFO":
		return SevInfo, nil
	case "warning", "Warning", "WARNING", "warn":
		return SevWarning, nil
	case "error", "Error", "ERROR":
		return SevError, nil
	}
	return SevInfo, fmt.Errorf("unknown severity %q", s)
}
