package entity

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// RemittanceStatus is the processing lifecycle state of a remittance
type RemittanceStatus string

const (
	RemittancePending    RemittanceStatus = "PENDING"
	RemittanceReviewed   RemittanceStatus = "REVIEWED"
	RemittancePartial    RemittanceStatus = "PARTIAL"
	RemittancePosted     RemittanceStatus = "POSTED"
	RemittanceReconciled RemittanceStatus = "RECONCILED"
	RemittanceError      RemittanceStatus = "ERROR"
)

// PaymentMethod is how the payer moved the money
type PaymentMethod string

const (
	MethodACH         PaymentMethod = "ACH"
	MethodCheck       PaymentMethod = "CHK"
	MethodWire        PaymentMethod = "FWT"
	MethodNonPayment  PaymentMethod = "NON"
)

// ErrUnidentifiableRemittance is returned when a remittance carries neither
// a trace number nor any payer identity. This is a data-integrity failure
// belonging to the parsing collaborator and is the one input condition the
// engine refuses to process.
var ErrUnidentifiableRemittance = errors.New("remittance has no trace number and no payer identity")

// FinancialInfo carries the remittance's money movement summary
type FinancialInfo struct {
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Method        PaymentMethod   `json:"method"`
	EffectiveDate time.Time       `json:"effective_date"`
}

// Party identifies the payer or payee on a remittance
type Party struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier,omitempty"`
}

// ProviderAdjustment is a provider-level adjustment not tied to any claim,
// such as a refund recoupment or prior-period correction.
type ProviderAdjustment struct {
	ReasonCode  string          `json:"reason_code"`
	ReferenceID string          `json:"reference_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// PaymentRemittance is one remittance transaction: identifiers, financial
// info, parties, claim payments, and provider-level adjustments.
type PaymentRemittance struct {
	ControlNumber       string               `json:"control_number"`
	TraceNumber         string               `json:"trace_number"` // bank reassociation key
	Financial           FinancialInfo        `json:"financial"`
	Payer               Party                `json:"payer"`
	Payee               Party                `json:"payee"`
	Claims              []ClaimPayment       `json:"claims"`
	ProviderAdjustments []ProviderAdjustment `json:"provider_adjustments,omitempty"`
	Status              RemittanceStatus     `json:"status"`
	ReceivedAt          time.Time            `json:"received_at"`
}

// Validate rejects remittances that cannot even be identified. Everything
// else is accepted; messy claim data degrades during matching instead of
// aborting the batch.
func (r *PaymentRemittance) Validate() error {
	if r.TraceNumber == "" && r.Payer.Name == "" && r.Payer.Identifier == "" {
		return ErrUnidentifiableRemittance
	}
	return nil
}

// PaymentSummary is the derived roll-up of a remittance's claim payments
type PaymentSummary struct {
	TotalClaims            int             `json:"total_claims"`
	ProcessedClaims        int             `json:"processed_claims"`
	DeniedClaims           int             `json:"denied_claims"`
	ReversalClaims         int             `json:"reversal_claims"`
	TotalBilled            decimal.Decimal `json:"total_billed"`
	TotalPaid              decimal.Decimal `json:"total_paid"`
	TotalPatientResp       decimal.Decimal `json:"total_patient_responsibility"`
	ProviderAdjustmentsSum decimal.Decimal `json:"provider_adjustments_sum"`
	NetPayment             decimal.Decimal `json:"net_payment"`
}

// Summary derives the payment roll-up from the remittance's claims and
// provider-level adjustments. Pure; safe to call concurrently.
func (r *PaymentRemittance) Summary() PaymentSummary {
	s := PaymentSummary{
		TotalClaims:            len(r.Claims),
		TotalBilled:            decimal.Zero,
		TotalPaid:              decimal.Zero,
		TotalPatientResp:       decimal.Zero,
		ProviderAdjustmentsSum: decimal.Zero,
	}

	for _, claim := range r.Claims {
		switch {
		case claim.Status.IsDenial():
			s.DeniedClaims++
		case claim.Status.IsReversal():
			s.ReversalClaims++
		default:
			s.ProcessedClaims++
		}
		s.TotalBilled = s.TotalBilled.Add(claim.BilledAmount)
		s.TotalPaid = s.TotalPaid.Add(claim.PaidAmount)
		s.TotalPatientResp = s.TotalPatientResp.Add(claim.PatientResponsibility)
	}

	for _, adj := range r.ProviderAdjustments {
		s.ProviderAdjustmentsSum = s.ProviderAdjustmentsSum.Add(adj.Amount)
	}

	s.NetPayment = s.TotalPaid.Sub(s.ProviderAdjustmentsSum)
	return s
}
