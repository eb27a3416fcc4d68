package model

// State represents the lifecycle position of a single download request
type State string

const (
	// StateIdle means the request was created but nothing has run yet
	StateIdle State = "Idle"

	// StateResolving means the destination directory is being prepared
	StateResolving State = "Resolving"

	// StateFetching means the extraction library is downloading
	StateFetching State = "Fetching"

	// StateSucceeded means the extraction produced a file
	StateSucceeded State = "Succeeded"

	// StateFailed means the request failed; it is terminal
	StateFailed State = "Failed"

	// StatePostProcessing means the container fix is running (video only)
	StatePostProcessing State = "PostProcessing"

	// StateDone means the request completed, possibly with warnings
	StateDone State = "Done"
)

var transitions = map[State][]State{
	StateIdle:           {StateResolving, StateFailed},
	StateResolving:      {StateFetching, StateFailed},
	StateFetching:       {StateSucceeded, StateFailed},
	StateSucceeded:      {StatePostProcessing, StateDone},
	StatePostProcessing: {StateDone},
}

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// IsActive returns true while the request is doing work
func (s State) IsActive() bool {
	return s == StateResolving || s == StateFetching || s == StatePostProcessing
}

// IsFinished returns true if the request reached a terminal state
func (s State) IsFinished() bool {
	return s == StateDone || s == StateFailed
}

// CanTransition reports whether moving from s to next is allowed
func (s State) CanTransition(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
