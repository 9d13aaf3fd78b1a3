package recon

import (
	"github.com/shopspring/decimal"

	"github.com/clearhaven/remitrecon/internal/domain/entity"
)

// Variance classification reasons. The wording is load-bearing: downstream
// worklists group exceptions by these strings.
const (
	ReasonMatches                  = "Payment matches expected amount"
	ReasonSignificantUnderpayment  = "Significant underpayment - review claim details"
	ReasonUnderpaymentReviewFees   = "Underpayment - review fee schedule"
	ReasonMinorUnderpayment        = "Minor underpayment - likely contractual adjustment"
	ReasonOverpayment              = "Overpayment - verify payment accuracy"
)

// VarianceThresholds holds the policy constants for classifying a payment
// gap. Defaults match the historical posting rules; override via config.
type VarianceThresholds struct {
	// MatchTolerance is the monetary equality tolerance shared across the
	// engine (matcher amount disambiguation and deposit reconciliation use
	// the same constant).
	MatchTolerance decimal.Decimal

	// ReviewPercent is the |variance %| above which an underpayment needs a
	// fee-schedule review and auto-posting is vetoed.
	ReviewPercent float64

	// SignificantPercent is the |variance %| above which an underpayment is
	// escalated as significant.
	SignificantPercent float64
}

// DefaultVarianceThresholds returns the stock thresholds: one cent
// tolerance, 10% review, 50% significant.
func DefaultVarianceThresholds() VarianceThresholds {
	return VarianceThresholds{
		MatchTolerance:     decimal.NewFromFloat(0.01),
		ReviewPercent:      10,
		SignificantPercent: 50,
	}
}

// VarianceCalculator classifies the gap between expected and actual
// payments. Pure and deterministic; safe for concurrent use.
type VarianceCalculator struct {
	thresholds VarianceThresholds
}

// NewVarianceCalculator creates a calculator with the given thresholds.
// Zero-valued thresholds fall back to the defaults.
func NewVarianceCalculator(thresholds VarianceThresholds) *VarianceCalculator {
	if thresholds.MatchTolerance.IsZero() {
		thresholds.MatchTolerance = DefaultVarianceThresholds().MatchTolerance
	}
	if thresholds.ReviewPercent == 0 {
		thresholds.ReviewPercent = DefaultVarianceThresholds().ReviewPercent
	}
	if thresholds.SignificantPercent == 0 {
		thresholds.SignificantPercent = DefaultVarianceThresholds().SignificantPercent
	}
	return &VarianceCalculator{thresholds: thresholds}
}

// Calculate compares an expected payment to an actual payment. Inputs are
// never negative; the difference may be. A zero expected amount is
// special-cased so the percentage never divides by zero: 100 when actual is
// non-zero, 0 otherwise.
func (c *VarianceCalculator) Calculate(expected, actual decimal.Decimal) entity.Variance {
	varianceAmount := actual.Sub(expected)

	var percentage float64
	switch {
	case expected.IsZero() && actual.IsZero():
		percentage = 0
	case expected.IsZero():
		percentage = 100
	default:
		percentage, _ = varianceAmount.Div(expected).Mul(decimal.NewFromInt(100)).Float64()
	}

	isUnderpayment := varianceAmount.IsNegative()

	return entity.Variance{
		ExpectedAmount:     expected,
		ActualAmount:       actual,
		VarianceAmount:     varianceAmount,
		VariancePercentage: percentage,
		IsUnderpayment:     isUnderpayment,
		Reason:             c.classify(varianceAmount, percentage, isUnderpayment),
	}
}

func (c *VarianceCalculator) classify(amount decimal.Decimal, percentage float64, underpayment bool) string {
	switch {
	case amount.Abs().LessThan(c.thresholds.MatchTolerance):
		return ReasonMatches
	case underpayment && percentage < -c.thresholds.SignificantPercent:
		return ReasonSignificantUnderpayment
	case percentage < -c.thresholds.ReviewPercent:
		return ReasonUnderpaymentReviewFees
	case percentage < 0:
		return ReasonMinorUnderpayment
	default:
		return ReasonOverpayment
	}
}
