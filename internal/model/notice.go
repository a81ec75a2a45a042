package model

import "fmt"

// Level represents how serious a Notice is.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Level int

const (
	// LevelInfo is purely informational.
	LevelInfo Level = iota

	// LevelNote marks a value that was skipped or approximated, for
	// example an operation a variant does not implement.
	LevelNote

	// LevelWarning marks a result that is valid but near a physical limit,
	// such as an extremal horizon.
	LevelWarning

	// LevelCaution marks a configuration that is not a black hole at all,
	// such as a naked singularity.
	LevelCaution
)

// String returns a human-readable representation of the level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelNote:
		return "NOTE"
	case LevelWarning:
		return "WARNING"
	case LevelCaution:
		return "CAUTION"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts the output of Level.String back to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "INFO":
		return LevelInfo, nil
	case "NOTE":
		return LevelNote, nil
	case "WARNING":
		return LevelWarning, nil
	case "CAUTION":
		return LevelCaution, nil
	default:
		return LevelInfo, fmt.Errorf("unknown level %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Notice is a message raised while evaluating a run.
type Notice struct {
	// Level is how serious the notice is.
	Level Level `json:"level"`

	// Step is the pipeline step that raised it, if any.
	Step string `json:"step,omitempty"`

	// Message is the human-readable text.
	Message string `json:"message"`
}
