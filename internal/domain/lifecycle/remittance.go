package lifecycle

import "context"

// Progress reports how many of a remittance's claims have been resolved
// (auto-posted or manually approved) out of the total.
type Progress struct {
	Resolved int
	Total    int
}

// ProgressFunc supplies the current claim progress when a guarded
// transition is evaluated.
type ProgressFunc func(ctx context.Context) Progress

// NewRemittanceMachine builds the remittance lifecycle:
//
//	PENDING -> REVIEWED -> {PARTIAL | POSTED} -> RECONCILED
//
// with ERROR reachable from every non-terminal state. When progress is
// non-nil, POST requires every claim resolved and PARTIAL_POST requires at
// least one but not all.
func NewRemittanceMachine(initial State, progress ProgressFunc) Machine {
	allResolved := func(ctx context.Context) bool {
		p := progress(ctx)
		return p.Total > 0 && p.Resolved == p.Total
	}
	someResolved := func(ctx context.Context) bool {
		p := progress(ctx)
		return p.Resolved > 0 && p.Resolved < p.Total
	}
	if progress == nil {
		allResolved, someResolved = nil, nil
	}

	b := NewBuilder()

	b.Configure(StatePending).
		Permit(TriggerReview, StateReviewed).
		Permit(TriggerFail, StateError)

	b.Configure(StateReviewed).
		PermitIf(TriggerPost, StatePosted, allResolved).
		PermitIf(TriggerPartialPost, StatePartial, someResolved).
		Permit(TriggerFail, StateError)

	b.Configure(StatePartial).
		PermitIf(TriggerResolveRemainder, StatePosted, allResolved).
		Permit(TriggerFail, StateError)

	b.Configure(StatePosted).
		Permit(TriggerReconcile, StateReconciled).
		Permit(TriggerFail, StateError)

	return b.Build(initial)
}
