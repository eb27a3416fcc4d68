package model

import "testing"

func TestState_IsActive(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StateIdle, false},
		{StateResolving, true},
		{StateFetching, true},
		{StateSucceeded, false},
		{StateFailed, false},
		{StatePostProcessing, true},
		{StateDone, false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("State(%s).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestState_IsFinished(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StateIdle, false},
		{StateResolving, false},
		{StateFetching, false},
		{StateSucceeded, false},
		{StatePostProcessing, false},
		{StateFailed, true},
		{StateDone, true},
	}

	for _, test := range tests {
		result := test.state.IsFinished()
		if result != test.expected {
			t.Errorf("State(%s).IsFinished() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestState_CanTransition(t *testing.T) {
	tests := []struct {
		from     State
		to       State
		expected bool
	}{
		{StateIdle, StateResolving, true},
		{StateResolving, StateFetching, true},
		{StateResolving, StateFailed, true},
		{StateFetching, StateSucceeded, true},
		{StateFetching, StateFailed, true},
		{StateSucceeded, StatePostProcessing, true},
		{StateSucceeded, StateDone, true},
		{StatePostProcessing, StateDone, true},
		{StatePostProcessing, StateFailed, false},
		{StateFailed, StateResolving, false},
		{StateDone, StateIdle, false},
		{StateIdle, StateFetching, false},
	}

	for _, test := range tests {
		result := test.from.CanTransition(test.to)
		if result != test.expected {
			t.Errorf("%s -> %s = %v, expected %v", test.from, test.to, result, test.expected)
		}
	}
}

func TestState_String(t *testing.T) {
	state := StatePostProcessing
	expected := "PostProcessing"
	result := state.String()

	if result != expected {
		t.Errorf("State.String() = %s, expected %s", result, expected)
	}
}
