package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemClaim is the billing system's own record of a submitted claim,
// supplied read-only by the claims-database collaborator.
type SystemClaim struct {
	ID              string           `json:"id"`
	ClaimNumber     string           `json:"claim_number"`
	PatientID       string           `json:"patient_id"`
	BilledAmount    decimal.Decimal  `json:"billed_amount"`
	ExpectedPayment *decimal.Decimal `json:"expected_payment,omitempty"` // contracted rate when known
	ServiceDate     time.Time        `json:"service_date"`
}

// ExpectedOrBilled returns the contracted expected payment when known,
// otherwise the billed amount. Variance is always computed against this.
func (c *SystemClaim) ExpectedOrBilled() decimal.Decimal {
	if c.ExpectedPayment != nil {
		return *c.ExpectedPayment
	}
	return c.BilledAmount
}

// SystemPatient is the billing system's patient record, used only for
// identity-based fallback matching.
type SystemPatient struct {
	ID        string `json:"id"`
	MemberID  string `json:"member_id,omitempty"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
}
