package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimStatus_Flags(t *testing.T) {
	assert.True(t, ClaimStatusDenied.IsDenial())
	assert.False(t, ClaimStatusProcessedPrimary.IsDenial())
	assert.True(t, ClaimStatusReversal.IsReversal())
	assert.False(t, ClaimStatusDenied.IsReversal())
}

func TestAdjustmentGroup_Validity(t *testing.T) {
	valid := []AdjustmentGroup{
		GroupContractualObligation,
		GroupPatientResponsibility,
		GroupOtherAdjustment,
		GroupPayerInitiated,
		GroupCorrectionReversal,
	}
	for _, g := range valid {
		assert.True(t, g.IsValid(), g)
		assert.NotEqual(t, "Unknown", g.Description())
	}

	assert.False(t, AdjustmentGroup("ZZ").IsValid())
	assert.Equal(t, "Unknown", AdjustmentGroup("ZZ").Description())
}

func TestClaimPayment_AllAdjustments(t *testing.T) {
	claim := ClaimPayment{
		Adjustments: []AdjustmentInfo{
			{Group: GroupContractualObligation, ReasonCode: "45", Amount: decimal.NewFromInt(100)},
		},
		Services: []ServicePayment{
			{
				ProcedureCode: "99213",
				Adjustments: []AdjustmentInfo{
					{Group: GroupPatientResponsibility, ReasonCode: "2", Amount: decimal.NewFromInt(20)},
				},
			},
			{
				ProcedureCode: "99214",
				Adjustments: []AdjustmentInfo{
					{Group: GroupPatientResponsibility, ReasonCode: "1", Amount: decimal.NewFromInt(30)},
				},
			},
		},
	}

	all := claim.AllAdjustments()

	require.Len(t, all, 3)
	assert.Equal(t, "45", all[0].ReasonCode, "claim-level adjustments come first")
	assert.Equal(t, "2", all[1].ReasonCode)
	assert.Equal(t, "1", all[2].ReasonCode)
}

func TestClaimPayment_PatientResponsibilityTotal(t *testing.T) {
	claim := ClaimPayment{
		Adjustments: []AdjustmentInfo{
			{Group: GroupPatientResponsibility, ReasonCode: "1", Amount: decimal.NewFromInt(35)},
			{Group: GroupContractualObligation, ReasonCode: "45", Amount: decimal.NewFromInt(200)},
		},
		Services: []ServicePayment{
			{
				Adjustments: []AdjustmentInfo{
					{Group: GroupPatientResponsibility, ReasonCode: "2", Amount: decimal.NewFromInt(15)},
				},
			},
		},
	}

	assert.True(t, claim.PatientResponsibilityTotal().Equal(decimal.NewFromInt(50)))
}

func TestClaimPayment_NonCoveredServiceCount(t *testing.T) {
	nonCovered := map[string]bool{"50": true, "96": true, "109": true}

	claim := ClaimPayment{
		Services: []ServicePayment{
			{
				// Two non-covered adjustments still count the line once
				Adjustments: []AdjustmentInfo{
					{Group: GroupContractualObligation, ReasonCode: "50", Amount: decimal.NewFromInt(10)},
					{Group: GroupContractualObligation, ReasonCode: "96", Amount: decimal.NewFromInt(10)},
				},
			},
			{
				Adjustments: []AdjustmentInfo{
					{Group: GroupContractualObligation, ReasonCode: "45", Amount: decimal.NewFromInt(10)},
				},
			},
			{
				Adjustments: []AdjustmentInfo{
					{Group: GroupContractualObligation, ReasonCode: "109", Amount: decimal.NewFromInt(10)},
				},
			},
		},
	}

	assert.Equal(t, 2, claim.NonCoveredServiceCount(nonCovered))
}

func TestSystemClaim_ExpectedOrBilled(t *testing.T) {
	billed := decimal.NewFromInt(1000)

	t.Run("no contracted rate", func(t *testing.T) {
		claim := SystemClaim{BilledAmount: billed}
		assert.True(t, claim.ExpectedOrBilled().Equal(billed))
	})

	t.Run("contracted rate wins", func(t *testing.T) {
		expected := decimal.NewFromInt(800)
		claim := SystemClaim{BilledAmount: billed, ExpectedPayment: &expected}
		assert.True(t, claim.ExpectedOrBilled().Equal(expected))
	})
}
