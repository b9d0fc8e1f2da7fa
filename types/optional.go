package types

// OptionalBool is a three-state boolean for settings that distinguish
// "not set" from an explicit false across the binary boundary.
type OptionalBool int32

const (
	OptionalNone  OptionalBool = -1
	OptionalFalse OptionalBool = 0
	OptionalTrue  OptionalBool = 1
)

func (b OptionalBool) String() string {
	switch b {
	case OptionalTrue:
		return "true"
	case OptionalFalse:
		return "false"
	default:
		return "none"
	}
}

// Valid reports whether b is one of the three states.
func (b OptionalBool) Valid() bool {
	return b == OptionalNone || b == OptionalFalse || b == OptionalTrue
}
