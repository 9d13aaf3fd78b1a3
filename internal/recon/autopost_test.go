package recon

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearhaven/remitrecon/internal/domain/entity"
)

func newTestPolicy() *AutoPostPolicy {
	return NewAutoPostPolicy(NewWriteOffResolver(nil), 10)
}

func TestCanAutoPost_CleanHighConfidenceMatch(t *testing.T) {
	policy := newTestPolicy()

	// Exact match, billed $500 paid $500, no denial, no adjustments
	claim := entity.ClaimPayment{
		ClaimNumber:  "CLM-001",
		Status:       entity.ClaimStatusProcessedPrimary,
		BilledAmount: decimal.NewFromInt(500),
		PaidAmount:   decimal.NewFromInt(500),
	}
	result := entity.MatchResult{
		Claim:          claim,
		MatchedClaimID: "sys-1",
		Matched:        true,
		Confidence:     entity.ConfidenceHigh,
		Method:         entity.MethodClaimNumber,
	}

	assert.True(t, policy.CanAutoPost(claim, result))
}

func TestCanAutoPost_NoMatchOrLowConfidence(t *testing.T) {
	policy := newTestPolicy()
	claim := entity.ClaimPayment{ClaimNumber: "CLM-001", Status: entity.ClaimStatusProcessedPrimary}

	t.Run("unmatched", func(t *testing.T) {
		result := entity.MatchResult{Claim: claim, Matched: false, Confidence: entity.ConfidenceHigh}
		assert.False(t, policy.CanAutoPost(claim, result))
	})

	t.Run("low confidence", func(t *testing.T) {
		result := entity.MatchResult{Claim: claim, MatchedClaimID: "sys-1", Matched: true, Confidence: entity.ConfidenceLow}
		assert.False(t, policy.CanAutoPost(claim, result))
	})
}

func TestCanAutoPost_DenialAlwaysVetoes(t *testing.T) {
	policy := newTestPolicy()

	claim := entity.ClaimPayment{
		ClaimNumber: "CLM-002",
		Status:      entity.ClaimStatusDenied,
	}

	for _, confidence := range []entity.MatchConfidence{entity.ConfidenceHigh, entity.ConfidenceMedium} {
		t.Run(string(confidence), func(t *testing.T) {
			result := entity.MatchResult{
				Claim:          claim,
				MatchedClaimID: "sys-1",
				Matched:        true,
				Confidence:     confidence,
			}
			assert.False(t, policy.CanAutoPost(claim, result), "denials always require human review")
		})
	}
}

func TestCanAutoPost_VarianceExceedsThreshold(t *testing.T) {
	policy := newTestPolicy()

	// 22% underpayment is eligible at the write-off level but the variance
	// veto still applies.
	claim := entity.ClaimPayment{
		ClaimNumber:  "CLM-002",
		Status:       entity.ClaimStatusProcessedPrimary,
		BilledAmount: decimal.NewFromInt(1000),
		PaidAmount:   decimal.NewFromInt(780),
		Adjustments: []entity.AdjustmentInfo{
			{Group: entity.GroupContractualObligation, ReasonCode: "45", Amount: decimal.NewFromInt(220)},
		},
	}
	result := entity.MatchResult{
		Claim:          claim,
		MatchedClaimID: "sys-1",
		Matched:        true,
		Confidence:     entity.ConfidenceMedium,
		Method:         entity.MethodPatient,
		Variance: &entity.Variance{
			VarianceAmount:     decimal.NewFromInt(-220),
			VariancePercentage: -22,
			IsUnderpayment:     true,
		},
	}

	// Sanity check: the write-off itself is auto-eligible
	rec := NewWriteOffResolver(nil).Suggest(claim.Adjustments[0])
	require.True(t, rec.AutoPostEligible)

	assert.False(t, policy.CanAutoPost(claim, result), "|−22%| > 10% vetoes auto-post")
}

func TestCanAutoPost_VarianceWithinThreshold(t *testing.T) {
	policy := newTestPolicy()

	claim := entity.ClaimPayment{
		ClaimNumber: "CLM-003",
		Status:      entity.ClaimStatusProcessedPrimary,
		PaidAmount:  decimal.NewFromInt(950),
	}
	result := entity.MatchResult{
		Claim:          claim,
		MatchedClaimID: "sys-1",
		Matched:        true,
		Confidence:     entity.ConfidenceHigh,
		Variance: &entity.Variance{
			VarianceAmount:     decimal.NewFromInt(-50),
			VariancePercentage: -5,
			IsUnderpayment:     true,
		},
	}

	assert.True(t, policy.CanAutoPost(claim, result))
}

func TestCanAutoPost_IneligibleWriteOffVetoes(t *testing.T) {
	policy := newTestPolicy()

	claim := entity.ClaimPayment{
		ClaimNumber: "CLM-004",
		Status:      entity.ClaimStatusProcessedPrimary,
		Services: []entity.ServicePayment{
			{
				ProcedureCode: "99214",
				Adjustments: []entity.AdjustmentInfo{
					// OA-23 requires approval in the default table
					{Group: entity.GroupOtherAdjustment, ReasonCode: "23", Amount: decimal.NewFromInt(40)},
				},
			},
		},
	}
	result := entity.MatchResult{
		Claim:          claim,
		MatchedClaimID: "sys-1",
		Matched:        true,
		Confidence:     entity.ConfidenceHigh,
	}

	assert.False(t, policy.CanAutoPost(claim, result))
}

func TestCanAutoPost_Total(t *testing.T) {
	policy := newTestPolicy()

	// Any well-typed pair must get a definite answer without panicking,
	// including zero values.
	assert.NotPanics(t, func() {
		policy.CanAutoPost(entity.ClaimPayment{}, entity.MatchResult{})
	})
	assert.False(t, policy.CanAutoPost(entity.ClaimPayment{}, entity.MatchResult{}))
}
