package scene

import "fmt"

// MissPolicy selects the color of rays that hit nothing.
// One policy applies to every ray of a render, primary and reflected alike.
type MissPolicy int

const (
	// MissAmbient fills misses with the scene's ambient light
	MissAmbient MissPolicy = iota
	// MissBlack returns black for misses
	MissBlack
)

// String returns the name used in scene files
func (p MissPolicy) String() string {
	switch p {
	case MissAmbient:
		return "ambient"
	case MissBlack:
		return "black"
	default:
		return fmt.Sprintf("MissPolicy(%d)", int(p))
	}
}

// ParseMissPolicy converts a scene file name to a policy
func ParseMissPolicy(name string) (MissPolicy, error) {
	switch name {
	case "", "ambient":
		return MissAmbient, nil
	case "black":
		return MissBlack, nil
	default:
		return MissAmbient, fmt.Errorf("unknown miss policy %q (want ambient or black)", name)
	}
}

// MarshalText implements encoding.TextMarshaler
func (p MissPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *MissPolicy) UnmarshalText(text []byte) error {
	policy, err := ParseMissPolicy(string(text))
	if err != nil {
		return err
	}
	*p = policy
	return nil
}
