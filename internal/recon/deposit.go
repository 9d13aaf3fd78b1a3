package recon

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/clearhaven/remitrecon/internal/domain/entity"
)

// ReconciliationResult reports whether a bank deposit is fully explained by
// the remittances claiming to belong to it.
type ReconciliationResult struct {
	DepositAmount        decimal.Decimal            `json:"deposit_amount"`
	MatchedAmount        decimal.Decimal            `json:"matched_amount"`
	Variance             decimal.Decimal            `json:"variance"` // deposit - matched
	IsReconciled         bool                       `json:"is_reconciled"`
	MatchedRemittances   []entity.PaymentRemittance `json:"matched_remittances"`
	UnmatchedRemittances []entity.PaymentRemittance `json:"unmatched_remittances"`
	Notes                []string                   `json:"notes"`
}

// DepositReconciler checks that a deposit's remittances sum to the deposit
// amount, within the same monetary tolerance used everywhere else.
type DepositReconciler struct {
	tolerance decimal.Decimal
}

// NewDepositReconciler creates a reconciler. A zero tolerance selects the
// stock one-cent tolerance.
func NewDepositReconciler(tolerance decimal.Decimal) *DepositReconciler {
	if tolerance.IsZero() {
		tolerance = DefaultVarianceThresholds().MatchTolerance
	}
	return &DepositReconciler{tolerance: tolerance}
}

// Reconcile sums the remittance totals against the deposit. When the full
// set does not balance, it tries setting aside a single remittance whose
// exclusion makes the rest balance; anything less clean is flagged for
// review rather than guessed at.
func (r *DepositReconciler) Reconcile(depositAmount decimal.Decimal, remittances []entity.PaymentRemittance) ReconciliationResult {
	total := decimal.Zero
	for _, remit := range remittances {
		total = total.Add(remit.Financial.TotalAmount)
	}

	variance := depositAmount.Sub(total)
	if variance.Abs().LessThan(r.tolerance) {
		return ReconciliationResult{
			DepositAmount:      depositAmount,
			MatchedAmount:      total,
			Variance:           variance,
			IsReconciled:       true,
			MatchedRemittances: remittances,
			Notes: []string{fmt.Sprintf("%d remittance(s) reconciled to deposit $%s",
				len(remittances), depositAmount.StringFixed(2))},
		}
	}

	// A stray remittance attributed to the wrong deposit is the common
	// failure; test each single exclusion before giving up.
	for i, candidate := range remittances {
		without := total.Sub(candidate.Financial.TotalAmount)
		if depositAmount.Sub(without).Abs().LessThan(r.tolerance) {
			matched := make([]entity.PaymentRemittance, 0, len(remittances)-1)
			matched = append(matched, remittances[:i]...)
			matched = append(matched, remittances[i+1:]...)
			return ReconciliationResult{
				DepositAmount:        depositAmount,
				MatchedAmount:        without,
				Variance:             depositAmount.Sub(without),
				IsReconciled:         true,
				MatchedRemittances:   matched,
				UnmatchedRemittances: []entity.PaymentRemittance{candidate},
				Notes: []string{fmt.Sprintf("Remittance trace %s ($%s) excluded - does not belong to this deposit",
					candidate.TraceNumber, candidate.Financial.TotalAmount.StringFixed(2))},
			}
		}
	}

	return ReconciliationResult{
		DepositAmount:      depositAmount,
		MatchedAmount:      total,
		Variance:           variance,
		IsReconciled:       false,
		MatchedRemittances: remittances,
		Notes: []string{fmt.Sprintf("Deposit $%s differs from remittance total $%s by $%s - manual review required",
			depositAmount.StringFixed(2), total.StringFixed(2), variance.StringFixed(2))},
	}
}
