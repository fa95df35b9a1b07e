package field

import (
	"errors"
	"fmt"
	"strings"
)

// Alliance identifies which side of the field the caller is playing for.
type Alliance uint8

const (
	// Blue is the canonical alliance; catalog geometry is authored from its wall.
	Blue Alliance = iota
	// Red is the mirrored alliance.
	Red
)

// ErrUnknownAlliance is returned by ParseAlliance for anything other than
// "blue" or "red".
var ErrUnknownAlliance = errors.New("unknown alliance")

// Mirrored reports whether geometry must be reflected for this alliance.
func (a Alliance) Mirrored() bool { return a == Red }

func (a Alliance) String() string {
	switch a {
	case Blue:
		return "blue"
	case Red:
		return "red"
	default:
		return fmt.Sprintf("Alliance(%d)", uint8(a))
	}
}

// ParseAlliance parses "blue" or "red", ignoring case and surrounding space.
func ParseAlliance(s string) (Alliance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "blue":
		return Blue, nil
	case "red":
		return Red, nil
	default:
		return Blue, fmt.Errorf("%w %q (want blue or red)", ErrUnknownAlliance, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Alliance) MarshalText() ([]byte, error) {
	if a != Blue && a != Red {
		return nil, fmt.Errorf("%w %d", ErrUnknownAlliance, uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Alliance) UnmarshalText(text []byte) error {
	v, err := ParseAlliance(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
