package form

// State is the lifecycle of a form submission.
type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "submitting":
		*s = Submitting
	case "succeeded":
		*s = Succeeded
	case "failed":
		*s = Failed
	default:
		*s = Idle
	}
	return nil
}
