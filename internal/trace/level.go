package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff   Level = iota // no tracing
	LevelError              // only recorded for crash dumps
	LevelStage              // driver + stage boundaries
	LevelDebug              // everything including per-node events
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelStage:
		return "stage"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off", "":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "stage":
		return LevelStage, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|stage|debug)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
// LevelError keeps stage events too: the ring needs them for crash dumps.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelError, LevelStage:
		return scope <= ScopeStage
	case LevelDebug:
		return true
	}
	return false
}
