package fdm

import "fmt"

// TrimMode selects which axes the trim routine is allowed to adjust.
type TrimMode int

const (
	// TrimModeLongitudinal adjusts elevator and throttle only.
	TrimModeLongitudinal TrimMode = iota
	// TrimModeFull additionally levels the lateral axes.
	TrimModeFull
	// TrimModeGround settles the aircraft parked on the ground.
	TrimModeGround
)

func (m TrimMode) String() string {
	switch m {
	case TrimModeLongitudinal:
		return "longitudinal"
	case TrimModeFull:
		return "full"
	case TrimModeGround:
		return "ground"
	}
	return fmt.Sprintf("TrimMode(%d)", int(m))
}

// ParseTrimMode maps a configuration string to a TrimMode.
func ParseTrimMode(s string) (TrimMode, error) {
	switch s {
	case "longitudinal":
		return TrimModeLongitudinal, nil
	case "full":
		return TrimModeFull, nil
	case "ground":
		return TrimModeGround, nil
	}
	return TrimModeFull, fmt.Errorf("unknown trim mode: %q", s)
}
