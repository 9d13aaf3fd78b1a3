package report

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/clearhaven/remitrecon/internal/domain/entity"
	"github.com/clearhaven/remitrecon/internal/recon"
)

func TestWorklistWriter_Write(t *testing.T) {
	outcomes := []recon.ClaimOutcome{
		{
			// Auto-posted; must not appear on the worklist
			Result: entity.MatchResult{
				Claim: entity.ClaimPayment{
					ClaimNumber:  "CLM-001",
					Status:       entity.ClaimStatusProcessedPrimary,
					BilledAmount: decimal.NewFromInt(500),
					PaidAmount:   decimal.NewFromInt(500),
				},
				Matched:    true,
				Confidence: entity.ConfidenceHigh,
				Method:     entity.MethodClaimNumber,
			},
			AutoPost: true,
		},
		{
			Result: entity.MatchResult{
				Claim: entity.ClaimPayment{
					ClaimNumber:      "CLM-002",
					PatientLastName:  "Doe",
					PatientFirstName: "Jane",
					Status:           entity.ClaimStatusProcessedPrimary,
					BilledAmount:     decimal.NewFromInt(1000),
					PaidAmount:       decimal.NewFromInt(780),
				},
				Matched:    true,
				Confidence: entity.ConfidenceMedium,
				Method:     entity.MethodPatient,
				Variance: &entity.Variance{
					VarianceAmount:     decimal.NewFromInt(-220),
					VariancePercentage: -22,
					IsUnderpayment:     true,
				},
				SuggestedActions: []string{"Underpayment - review fee schedule"},
			},
			AutoPost: false,
		},
		{
			Result: entity.MatchResult{
				Claim: entity.ClaimPayment{
					ClaimNumber: "CLM-003",
					Status:      entity.ClaimStatusDenied,
				},
				Confidence:       entity.ConfidenceLow,
				Method:           entity.MethodManual,
				SuggestedActions: []string{"Claim denied - review denial reason codes"},
			},
			AutoPost: false,
		},
	}

	path := filepath.Join(t.TempDir(), "worklist.xlsx")
	writer := NewWorklistWriter(nil)

	rows, err := writer.Write(path, outcomes)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheetRows, err := f.GetRows(worklistSheet)
	require.NoError(t, err)
	require.Len(t, sheetRows, 3, "header plus two exception rows")

	assert.Equal(t, worklistHeader, sheetRows[0])
	assert.Equal(t, "CLM-002", sheetRows[1][0])
	assert.Equal(t, "Jane Doe", sheetRows[1][1])
	assert.Equal(t, "-22.00", sheetRows[1][5])
	assert.Equal(t, "CLM-003", sheetRows[2][0])
}

func TestWorklistWriter_AllAutoPosted(t *testing.T) {
	outcomes := []recon.ClaimOutcome{
		{
			Result: entity.MatchResult{
				Claim:      entity.ClaimPayment{ClaimNumber: "CLM-001"},
				Matched:    true,
				Confidence: entity.ConfidenceHigh,
			},
			AutoPost: true,
		},
	}

	path := filepath.Join(t.TempDir(), "empty.xlsx")

	rows, err := NewWorklistWriter(nil).Write(path, outcomes)
	require.NoError(t, err)
	assert.Zero(t, rows)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheetRows, err := f.GetRows(worklistSheet)
	require.NoError(t, err)
	assert.Len(t, sheetRows, 1, "header only")
}
