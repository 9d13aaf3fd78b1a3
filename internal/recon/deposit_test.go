package recon

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearhaven/remitrecon/internal/domain/entity"
)

func remittanceWithTotal(trace, total string) entity.PaymentRemittance {
	return entity.PaymentRemittance{
		TraceNumber: trace,
		Financial: entity.FinancialInfo{
			TotalAmount: decimal.RequireFromString(total),
			Method:      entity.MethodACH,
		},
	}
}

func TestReconcile_ExactSum(t *testing.T) {
	reconciler := NewDepositReconciler(decimal.Decimal{})

	remittances := []entity.PaymentRemittance{
		remittanceWithTotal("TRC-1", "1200.50"),
		remittanceWithTotal("TRC-2", "799.50"),
	}

	result := reconciler.Reconcile(decimal.RequireFromString("2000.00"), remittances)

	assert.True(t, result.IsReconciled)
	assert.True(t, result.MatchedAmount.Equal(decimal.RequireFromString("2000.00")))
	assert.True(t, result.Variance.IsZero())
	assert.Len(t, result.MatchedRemittances, 2)
	assert.Empty(t, result.UnmatchedRemittances)
	require.NotEmpty(t, result.Notes)
}

func TestReconcile_WithinTolerance(t *testing.T) {
	reconciler := NewDepositReconciler(decimal.Decimal{})

	remittances := []entity.PaymentRemittance{
		remittanceWithTotal("TRC-1", "999.995"),
	}

	result := reconciler.Reconcile(decimal.NewFromInt(1000), remittances)

	assert.True(t, result.IsReconciled, "sub-cent variance reconciles")
}

func TestReconcile_StrayRemittanceExcluded(t *testing.T) {
	reconciler := NewDepositReconciler(decimal.Decimal{})

	remittances := []entity.PaymentRemittance{
		remittanceWithTotal("TRC-1", "500.00"),
		remittanceWithTotal("TRC-2", "300.00"),
		remittanceWithTotal("TRC-STRAY", "125.00"),
	}

	result := reconciler.Reconcile(decimal.NewFromInt(800), remittances)

	assert.True(t, result.IsReconciled)
	require.Len(t, result.UnmatchedRemittances, 1)
	assert.Equal(t, "TRC-STRAY", result.UnmatchedRemittances[0].TraceNumber)
	assert.Len(t, result.MatchedRemittances, 2)
	require.NotEmpty(t, result.Notes)
	assert.Contains(t, result.Notes[0], "TRC-STRAY")
}

func TestReconcile_Unreconciled(t *testing.T) {
	reconciler := NewDepositReconciler(decimal.Decimal{})

	remittances := []entity.PaymentRemittance{
		remittanceWithTotal("TRC-1", "500.00"),
		remittanceWithTotal("TRC-2", "300.00"),
	}

	result := reconciler.Reconcile(decimal.NewFromInt(1000), remittances)

	assert.False(t, result.IsReconciled)
	assert.True(t, result.Variance.Equal(decimal.NewFromInt(200)))
	require.NotEmpty(t, result.Notes)
	assert.Contains(t, result.Notes[0], "manual review")
}

func TestReconcile_EmptySet(t *testing.T) {
	reconciler := NewDepositReconciler(decimal.Decimal{})

	t.Run("zero deposit", func(t *testing.T) {
		result := reconciler.Reconcile(decimal.Zero, nil)
		assert.True(t, result.IsReconciled)
	})

	t.Run("non-zero deposit", func(t *testing.T) {
		result := reconciler.Reconcile(decimal.NewFromInt(100), nil)
		assert.False(t, result.IsReconciled)
		assert.True(t, result.Variance.Equal(decimal.NewFromInt(100)))
	})
}
