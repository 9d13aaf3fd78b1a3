package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClaimStatus is the payer's adjudication outcome for one claim
type ClaimStatus string

const (
	ClaimStatusProcessedPrimary   ClaimStatus = "PROCESSED_PRIMARY"
	ClaimStatusProcessedSecondary ClaimStatus = "PROCESSED_SECONDARY"
	ClaimStatusProcessedTertiary  ClaimStatus = "PROCESSED_TERTIARY"
	ClaimStatusDenied             ClaimStatus = "DENIED"
	ClaimStatusReversal           ClaimStatus = "REVERSAL"
	ClaimStatusForwarded          ClaimStatus = "FORWARDED"
	ClaimStatusPredetermination   ClaimStatus = "PREDETERMINATION"
	ClaimStatusOther              ClaimStatus = "OTHER"
)

// IsDenial returns true if the status denotes a denied claim
func (s ClaimStatus) IsDenial() bool {
	return s == ClaimStatusDenied
}

// IsReversal returns true if the status denotes a reversal of a prior payment
func (s ClaimStatus) IsReversal() bool {
	return s == ClaimStatusReversal
}

// String returns the string representation of the status
func (s ClaimStatus) String() string {
	return string(s)
}

// ServicePayment is one billed service line inside a claim payment.
// The sum of adjustment amounts plus the paid amount need not equal the
// billed amount exactly; large unexplained gaps surface through variance.
type ServicePayment struct {
	ProcedureCode  string           `json:"procedure_code"`
	Modifiers      []string         `json:"modifiers,omitempty"` // 0-4 entries
	BilledAmount   decimal.Decimal  `json:"billed_amount"`
	PaidAmount     decimal.Decimal  `json:"paid_amount"`
	Units          decimal.Decimal  `json:"units"`
	PaidUnits      decimal.Decimal  `json:"paid_units"`
	Adjustments    []AdjustmentInfo `json:"adjustments,omitempty"`
	ServiceDate    time.Time        `json:"service_date"`
	ServiceEndDate *time.Time       `json:"service_end_date,omitempty"`
}

// ClaimPayment is one claim's adjudication result as reported on the
// remittance. Immutable once received; it is the unit the matcher operates on.
type ClaimPayment struct {
	ClaimNumber           string          `json:"claim_number"`
	PayerControlNumber    string          `json:"payer_control_number"` // payer ICN
	Status                ClaimStatus     `json:"status"`
	BilledAmount          decimal.Decimal `json:"billed_amount"`
	PaidAmount            decimal.Decimal `json:"paid_amount"`
	PatientResponsibility decimal.Decimal `json:"patient_responsibility"`

	PatientLastName  string `json:"patient_last_name,omitempty"`
	PatientFirstName string `json:"patient_first_name,omitempty"`
	PatientMemberID  string `json:"patient_member_id,omitempty"`
	InsuredLastName  string `json:"insured_last_name,omitempty"`
	InsuredFirstName string `json:"insured_first_name,omitempty"`

	Adjustments []AdjustmentInfo `json:"adjustments,omitempty"`
	Services    []ServicePayment `json:"services,omitempty"`
}

// AllAdjustments returns the claim-level adjustments followed by every
// service-level adjustment, in document order.
func (c *ClaimPayment) AllAdjustments() []AdjustmentInfo {
	out := make([]AdjustmentInfo, 0, len(c.Adjustments))
	out = append(out, c.Adjustments...)
	for _, svc := range c.Services {
		out = append(out, svc.Adjustments...)
	}
	return out
}

// PatientResponsibilityTotal sums all PR-group adjustment amounts on the
// claim and its service lines.
func (c *ClaimPayment) PatientResponsibilityTotal() decimal.Decimal {
	total := decimal.Zero
	for _, adj := range c.AllAdjustments() {
		if adj.Group == GroupPatientResponsibility {
			total = total.Add(adj.Amount)
		}
	}
	return total
}

// NonCoveredServiceCount counts service lines carrying at least one
// adjustment whose reason code is in the supplied non-covered set.
func (c *ClaimPayment) NonCoveredServiceCount(nonCovered map[string]bool) int {
	count := 0
	for _, svc := range c.Services {
		for _, adj := range svc.Adjustments {
			if nonCovered[adj.ReasonCode] {
				count++
				break
			}
		}
	}
	return count
}
