package lifecycle

// Trigger is an event that can advance a remittance through its lifecycle
type Trigger string

const (
	// TriggerReview fires when every claim on the remittance has been looked
	// at by a human or an automated pass
	TriggerReview Trigger = "REVIEW"

	// TriggerPost fires when every claim was auto-posted or manually approved
	TriggerPost Trigger = "POST"

	// TriggerPartialPost fires when some claims posted but others remain
	// unresolved
	TriggerPartialPost Trigger = "PARTIAL_POST"

	// TriggerResolveRemainder fires when the remaining claims of a partial
	// posting resolve
	TriggerResolveRemainder Trigger = "RESOLVE_REMAINDER"

	// TriggerReconcile fires when the deposit reconciler confirms the
	// remittance total is accounted for in a bank deposit
	TriggerReconcile Trigger = "RECONCILE"

	// TriggerFail moves any non-terminal state to ERROR on unrecoverable
	// parse or posting failure
	TriggerFail Trigger = "FAIL"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
