// Package linear provides a synchronous, line-oriented renderer for
// CI and non-interactive environments.
package linear

import "strings"

// Level is a severity hint derived from a log line's text. The build
// core never inspects output; this scan happens purely for display.
type Level int

const (
	// LevelInfo is the default for unrecognized lines.
	LevelInfo Level = iota
	// LevelWarning marks toolchain warnings.
	LevelWarning
	// LevelError marks toolchain errors.
	LevelError
	// LevelSuccess marks completion notices.
	LevelSuccess
)

// Classify scans a line for severity keywords.
func Classify(line string) Level {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "error") || strings.Contains(lower, "fatal"):
		return LevelError
	case strings.Contains(lower, "warning") || strings.Contains(lower, "warn"):
		return LevelWarning
	case strings.Contains(lower, "success") || strings.Contains(lower, "complete"):
		return LevelSuccess
	default:
		return LevelInfo
	}
}
