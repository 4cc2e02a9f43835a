package switcher

// State is where a switch request currently stands.
type State int

const (
	Idle State = iota
	Requested
	Elevating
	Polling
	Succeeded
	Failed
	TimedOut
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Requested:
		return "requested"
	case Elevating:
		return "elevating"
	case Polling:
		return "polling"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case TimedOut:
		return "timed out"
	}
	return "unknown"
}
