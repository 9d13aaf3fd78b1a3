package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/clearhaven/remitrecon/internal/config"
	"github.com/clearhaven/remitrecon/internal/domain/entity"
	"github.com/clearhaven/remitrecon/internal/recon"
	"github.com/clearhaven/remitrecon/internal/report"
	"github.com/clearhaven/remitrecon/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults apply when omitted)")
	remittancePath := flag.String("remittance", "", "path to remittance JSON (required)")
	claimsPath := flag.String("claims", "", "path to system claims JSON (required)")
	patientsPath := flag.String("patients", "", "path to system patients JSON (optional)")
	reportPath := flag.String("report", "", "path for the exception worklist .xlsx (optional)")
	flag.Parse()

	if *remittancePath == "" || *claimsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: reconcile -remittance r.json -claims c.json [-config cfg.yaml] [-patients p.json] [-report out.xlsx]")
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var remittance entity.PaymentRemittance
	if err := readJSON(*remittancePath, &remittance); err != nil {
		logger.Fatal("Failed to read remittance", zap.Error(err))
	}
	if err := remittance.Validate(); err != nil {
		logger.Fatal("Remittance rejected", zap.Error(err))
	}

	var systemClaims []entity.SystemClaim
	if err := readJSON(*claimsPath, &systemClaims); err != nil {
		logger.Fatal("Failed to read system claims", zap.Error(err))
	}

	var patients []entity.SystemPatient
	if *patientsPath != "" {
		if err := readJSON(*patientsPath, &patients); err != nil {
			logger.Fatal("Failed to read system patients", zap.Error(err))
		}
	}

	resolver := recon.NewWriteOffResolver(cfg.RuleTable())
	matcher := recon.NewClaimMatcher(recon.MatcherConfig{
		Thresholds:            cfg.Thresholds(),
		NonCoveredReasonCodes: cfg.Matching.NonCoveredReasonCodes,
	})
	policy := recon.NewAutoPostPolicy(resolver, cfg.Matching.ReviewVariancePercent)
	orchestrator := recon.NewBatchOrchestrator(matcher, resolver, policy, cfg.Batch.Workers, logger)

	result := orchestrator.Process(context.Background(), remittance.Claims, systemClaims, patients)

	summary := remittance.Summary()
	logger.Info("Remittance summary",
		zap.String("trace_number", remittance.TraceNumber),
		zap.String("payer", remittance.Payer.Name),
		zap.Int("total_claims", summary.TotalClaims),
		zap.Int("denied_claims", summary.DeniedClaims),
		zap.String("total_paid", summary.TotalPaid.StringFixed(2)),
		zap.String("net_payment", summary.NetPayment.StringFixed(2)))

	logger.Info("Batch statistics",
		zap.String("batch_id", result.BatchID),
		zap.Int("total", result.Stats.Total),
		zap.Int("matched", result.Stats.Matched),
		zap.Int("unmatched", result.Stats.Unmatched),
		zap.Int("high_confidence", result.Stats.HighConfidence),
		zap.Int("medium_confidence", result.Stats.MediumConfidence),
		zap.Int("low_confidence", result.Stats.LowConfidence),
		zap.Int("auto_post_eligible", result.Stats.AutoPostEligible),
		zap.Int("requires_review", result.Stats.RequiresReview))

	if *reportPath != "" {
		writer := report.NewWorklistWriter(logger)
		rows, err := writer.Write(*reportPath, result.Outcomes)
		if err != nil {
			logger.Fatal("Failed to write exception worklist", zap.Error(err))
		}
		logger.Info("Exception worklist ready",
			zap.String("path", *reportPath),
			zap.Int("exceptions", rows))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
