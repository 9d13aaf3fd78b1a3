package lifecycle

// State is a remittance processing state
type State string

const (
	StatePending    State = "PENDING"
	StateReviewed   State = "REVIEWED"
	StatePartial    State = "PARTIAL"
	StatePosted     State = "POSTED"
	StateReconciled State = "RECONCILED"
	StateError      State = "ERROR"
)

var validStates = map[State]bool{
	StatePending:    true,
	StateReviewed:   true,
	StatePartial:    true,
	StatePosted:     true,
	StateReconciled: true,
	StateError:      true,
}

// RECONCILED is the normal terminal state; ERROR is terminal and requires
// operator intervention.
var terminalStates = map[State]bool{
	StateReconciled: true,
	StateError:      true,
}

// IsTerminal returns true if no further transitions are allowed from the state
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// IsValid returns true if the state is a defined remittance state
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}
