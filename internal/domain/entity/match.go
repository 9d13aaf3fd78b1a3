package entity

import "github.com/shopspring/decimal"

// MatchConfidence grades how trustworthy a match is
type MatchConfidence string

const (
	ConfidenceHigh   MatchConfidence = "HIGH"
	ConfidenceMedium MatchConfidence = "MEDIUM"
	ConfidenceLow    MatchConfidence = "LOW"
)

// MatchMethod records which evidence produced the match
type MatchMethod string

const (
	MethodClaimNumber MatchMethod = "CLAIM_NUMBER"
	MethodPatient     MatchMethod = "PATIENT"
	MethodAmount      MatchMethod = "AMOUNT"
	MethodManual      MatchMethod = "MANUAL"
)

// Variance describes the gap between an expected and an actual payment
type Variance struct {
	ExpectedAmount     decimal.Decimal `json:"expected_amount"`
	ActualAmount       decimal.Decimal `json:"actual_amount"`
	VarianceAmount     decimal.Decimal `json:"variance_amount"` // actual - expected
	VariancePercentage float64         `json:"variance_percentage"`
	IsUnderpayment     bool            `json:"is_underpayment"`
	Reason             string          `json:"reason"`
}

// MatchResult is the matcher's verdict for one claim payment. Never mutated
// after creation; even a total match failure carries actionable text.
type MatchResult struct {
	Claim            ClaimPayment    `json:"claim"`
	MatchedClaimID   string          `json:"matched_claim_id,omitempty"`
	Matched          bool            `json:"matched"`
	Confidence       MatchConfidence `json:"confidence"`
	Method           MatchMethod     `json:"method"`
	Variance         *Variance       `json:"variance,omitempty"`
	SuggestedActions []string        `json:"suggested_actions"`
}

// WriteOffRecommendation is the resolver's disposition for one adjustment
type WriteOffRecommendation struct {
	Adjustment       AdjustmentInfo  `json:"adjustment"`
	WriteOffCode     string          `json:"write_off_code"`
	Reason           string          `json:"reason"`
	Amount           decimal.Decimal `json:"amount"`
	RequiresApproval bool            `json:"requires_approval"`
	AutoPostEligible bool            `json:"auto_post_eligible"`
}
