package recon

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clearhaven/remitrecon/internal/domain/entity"
)

// DefaultMaxWorkers caps the per-batch fan-out when no worker count is
// configured.
const DefaultMaxWorkers = 8

// ClaimOutcome bundles everything the posting collaborator needs for one
// claim payment: the match verdict, the write-off dispositions for its
// adjustments, and the auto-post decision.
type ClaimOutcome struct {
	Result    entity.MatchResult              `json:"result"`
	WriteOffs []entity.WriteOffRecommendation `json:"write_offs,omitempty"`
	AutoPost  bool                            `json:"auto_post"`
}

// BatchStats are the aggregate counters for one orchestrated batch.
/// Invariants: Matched+Unmatched == Total and AutoPostEligible+RequiresReview == Total.
type BatchStats struct {
	Total            int `json:"total"`
	Matched          int `json:"matched"`
	Unmatched        int `json:"unmatched"`
	HighConfidence   int `json:"high_confidence"`
	MediumConfidence int `json:"medium_confidence"`
	LowConfidence    int `json:"low_confidence"`
	AutoPostEligible int `json:"auto_post_eligible"`
	RequiresReview   int `json:"requires_review"`
}

// merge folds another stats value in. Addition only, so partial results
// from parallel workers combine without a total ordering.
func (s *BatchStats) merge(other BatchStats) {
	s.Total += other.Total
	s.Matched += other.Matched
	s.Unmatched += other.Unmatched
	s.HighConfidence += other.HighConfidence
	s.MediumConfidence += other.MediumConfidence
	s.LowConfidence += other.LowConfidence
	s.AutoPostEligible += other.AutoPostEligible
	s.RequiresReview += other.RequiresReview
}

// BatchResult is the orchestrator's output for one remittance batch.
// Outcomes preserve input order regardless of worker scheduling.
type BatchResult struct {
	BatchID  string         `json:"batch_id"`
	Outcomes []ClaimOutcome `json:"outcomes"`
	Stats    BatchStats     `json:"stats"`
}

// BatchOrchestrator runs the matcher, write-off resolver, and auto-post
// policy across a remittance's claim payments. Per-claim work has no
// cross-claim dependency, so large batches fan out over a worker pool.
type BatchOrchestrator struct {
	matcher  *ClaimMatcher
	resolver *WriteOffResolver
	policy   *AutoPostPolicy
	workers  int
	logger   *zap.Logger
}

// NewBatchOrchestrator wires the per-claim pipeline. workers <= 0 selects
// min(batch size, DefaultMaxWorkers) at run time.
func NewBatchOrchestrator(matcher *ClaimMatcher, resolver *WriteOffResolver, policy *AutoPostPolicy, workers int, logger *zap.Logger) *BatchOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchOrchestrator{
		matcher:  matcher,
		resolver: resolver,
		policy:   policy,
		workers:  workers,
		logger:   logger,
	}
}

// Process matches every claim payment against the system claims, resolves
// write-offs, and applies the auto-post policy. Claim-number stages run
// first for every claim; the patient stage is attempted only when a patient
// directory was supplied and the claim-number stages found nothing.
// Deterministic: identical inputs yield identical outcomes and stats.
func (o *BatchOrchestrator) Process(ctx context.Context, claims []entity.ClaimPayment, systemClaims []entity.SystemClaim, patients []entity.SystemPatient) BatchResult {
	result := BatchResult{
		BatchID:  uuid.NewString(),
		Outcomes: make([]ClaimOutcome, len(claims)),
	}

	workers := o.workers
	if workers <= 0 {
		workers = DefaultMaxWorkers
	}
	if workers > len(claims) {
		workers = len(claims)
	}
	if workers < 1 {
		workers = 1
	}

	o.logger.Info("Processing remittance batch",
		zap.String("batch_id", result.BatchID),
		zap.Int("claims", len(claims)),
		zap.Int("system_claims", len(systemClaims)),
		zap.Bool("patient_directory", patients != nil),
		zap.Int("workers", workers))

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				result.Outcomes[idx] = o.processClaim(claims[idx], systemClaims, patients)
			}
		}()
	}

	// No internal cancellation: callers discard results instead. Every fed
	// index gets a complete outcome so nothing is silently dropped.
	for idx := range claims {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	result.Stats = ComputeStats(result.Outcomes)

	o.logger.Info("Batch complete",
		zap.String("batch_id", result.BatchID),
		zap.Int("matched", result.Stats.Matched),
		zap.Int("unmatched", result.Stats.Unmatched),
		zap.Int("auto_post_eligible", result.Stats.AutoPostEligible))

	return result
}

// processClaim is the full per-claim pipeline: match, resolve write-offs,
// decide auto-post.
func (o *BatchOrchestrator) processClaim(claim entity.ClaimPayment, systemClaims []entity.SystemClaim, patients []entity.SystemPatient) ClaimOutcome {
	matchResult := o.matcher.Match(claim, systemClaims, nil)
	if !matchResult.Matched && patients != nil {
		matchResult = o.matcher.Match(claim, systemClaims, patients)
	}

	return ClaimOutcome{
		Result:    matchResult,
		WriteOffs: o.resolver.SuggestAll(claim),
		AutoPost:  o.policy.CanAutoPost(claim, matchResult),
	}
}

// ComputeStats folds the outcomes into aggregate counters. The fold is
// associative and order-independent, so it gives the same answer for any
// permutation of the same outcomes.
func ComputeStats(outcomes []ClaimOutcome) BatchStats {
	var stats BatchStats
	for _, outcome := range outcomes {
		var s BatchStats
		s.Total = 1
		if outcome.Result.Matched {
			s.Matched = 1
		} else {
			s.Unmatched = 1
		}
		switch outcome.Result.Confidence {
		case entity.ConfidenceHigh:
			s.HighConfidence = 1
		case entity.ConfidenceMedium:
			s.MediumConfidence = 1
		default:
			s.LowConfidence = 1
		}
		if outcome.AutoPost {
			s.AutoPostEligible = 1
		} else {
			s.RequiresReview = 1
		}
		stats.merge(s)
	}
	return stats
}
