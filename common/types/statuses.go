package types

// AttemptStatus is the recorded outcome of a mint attempt.
type AttemptStatus string

const (
	// AttemptSubmitted means the intent was accepted for execution by the node.
	AttemptSubmitted AttemptStatus = "SUBMITTED"
	// AttemptFailed means one of the orchestration steps failed.
	AttemptFailed AttemptStatus = "FAILED"
)

// ActionState is the state of a user-triggered action.
type ActionState int

const (
	// ActionIdle means the action can be triggered.
	ActionIdle ActionState = iota
	// ActionInFlight means the action is running; further triggers are ignored.
	ActionInFlight
)

func (s ActionState) String() string {
	switch s {
	case ActionIdle:
		return "idle"
	case ActionInFlight:
		return "in-flight"
	default:
		return "unknown"
	}
}
