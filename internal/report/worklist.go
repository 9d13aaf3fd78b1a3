package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/clearhaven/remitrecon/internal/recon"
)

const worklistSheet = "Exception Worklist"

var worklistHeader = []string{
	"Claim Number", "Patient", "Status", "Billed", "Paid",
	"Variance %", "Confidence", "Method", "Suggested Action",
}

// WorklistWriter renders the review-required outcomes of a batch into an
// .xlsx workbook for operators.
type WorklistWriter struct {
	logger *zap.Logger
}

// NewWorklistWriter creates a worklist writer
func NewWorklistWriter(logger *zap.Logger) *WorklistWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorklistWriter{logger: logger}
}

// Write renders every outcome that is not auto-post eligible, one row per
// claim, and saves the workbook to outputPath. Returns the number of
// exception rows written.
func (w *WorklistWriter) Write(outputPath string, outcomes []recon.ClaimOutcome) (int, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(worklistSheet)
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range worklistHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return 0, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(worklistSheet, cell, title); err != nil {
			return 0, fmt.Errorf("failed to write header: %w", err)
		}
	}

	rows := 0
	for _, outcome := range outcomes {
		if outcome.AutoPost {
			continue
		}
		rows++
		if err := w.writeRow(f, rows+1, outcome); err != nil {
			return 0, err
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return 0, fmt.Errorf("failed to save worklist: %w", err)
	}

	w.logger.Info("Exception worklist written",
		zap.String("path", outputPath),
		zap.Int("rows", rows))

	return rows, nil
}

func (w *WorklistWriter) writeRow(f *excelize.File, row int, outcome recon.ClaimOutcome) error {
	claim := outcome.Result.Claim

	variancePct := ""
	if outcome.Result.Variance != nil {
		variancePct = fmt.Sprintf("%.2f", outcome.Result.Variance.VariancePercentage)
	}

	action := ""
	if len(outcome.Result.SuggestedActions) > 0 {
		action = outcome.Result.SuggestedActions[0]
	}

	patient := strings.TrimSpace(claim.PatientFirstName + " " + claim.PatientLastName)

	values := []interface{}{
		claim.ClaimNumber,
		patient,
		claim.Status.String(),
		claim.BilledAmount.StringFixed(2),
		claim.PaidAmount.StringFixed(2),
		variancePct,
		string(outcome.Result.Confidence),
		string(outcome.Result.Method),
		action,
	}

	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(worklistSheet, cell, value); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}
	return nil
}
