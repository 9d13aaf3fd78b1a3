package entity

import "github.com/shopspring/decimal"

// AdjustmentGroup identifies who absorbs an adjustment (the 835 CAS group code)
type AdjustmentGroup string

const (
	GroupContractualObligation AdjustmentGroup = "CO"
	GroupPatientResponsibility AdjustmentGroup = "PR"
	GroupOtherAdjustment       AdjustmentGroup = "OA"
	GroupPayerInitiated        AdjustmentGroup = "PI"
	GroupCorrectionReversal    AdjustmentGroup = "CR"
)

var validGroups = map[AdjustmentGroup]string{
	GroupContractualObligation: "Contractual Obligation",
	GroupPatientResponsibility: "Patient Responsibility",
	GroupOtherAdjustment:       "Other Adjustment",
	GroupPayerInitiated:        "Payer Initiated",
	GroupCorrectionReversal:    "Correction/Reversal",
}

// IsValid returns true if the group code is one of the five defined groups
func (g AdjustmentGroup) IsValid() bool {
	_, ok := validGroups[g]
	return ok
}

// Description returns the human-readable name of the group code
func (g AdjustmentGroup) Description() string {
	if desc, ok := validGroups[g]; ok {
		return desc
	}
	return "Unknown"
}

// String returns the two-letter group code
func (g AdjustmentGroup) String() string {
	return string(g)
}

// AdjustmentInfo is one reduction applied to a billed amount. Amount is
// always the non-negative magnitude of the reduction; the group and reason
// code together select at most one write-off rule.
type AdjustmentInfo struct {
	Group      AdjustmentGroup  `json:"group"`
	ReasonCode string           `json:"reason_code"`
	Amount     decimal.Decimal  `json:"amount"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	RemarkCode string           `json:"remark_code,omitempty"`
	Remark     string           `json:"remark,omitempty"`
}
