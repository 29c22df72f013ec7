package wizard

// allowedTransitions lists every state change the machine may make.
// Staying in the same state is always allowed.
var allowedTransitions = map[State][]State{
	StateIdle:                {StateAwaitingTitle},
	StateAwaitingTitle:       {StateAwaitingIcon, StateAwaitingTitle, StateIdle},
	StateAwaitingIcon:        {StateAwaitingDescription, StateAwaitingTitle, StateIdle},
	StateAwaitingDescription: {StateAwaitingLabel, StateAwaitingTitle, StateIdle},
	StateAwaitingLabel:       {StateAwaitingAmounts, StateAwaitingTitle, StateIdle},
	StateAwaitingAmounts:     {StateAwaitingRecipient, StateAwaitingTitle, StateIdle},
	StateAwaitingRecipient:   {StateFinalizing, StateAwaitingTitle, StateIdle},
	StateFinalizing:          {StateIdle, StateAwaitingTitle},
}

// KnownState reports whether s is a state of the machine.
func KnownState(s State) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether the machine may move from one state to another.
// Any known or unknown state may be reset to idle.
func CanTransition(from, to State) bool {
	if from == to || to == StateIdle {
		return true
	}
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
