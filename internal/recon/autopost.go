package recon

import (
	"math"

	"github.com/clearhaven/remitrecon/internal/domain/entity"
)

// AutoPostPolicy decides whether a matched payment is safe to post without
// human review. Pure and total: every valid input gets a definite answer.
type AutoPostPolicy struct {
	resolver           *WriteOffResolver
	maxVariancePercent float64
}

// NewAutoPostPolicy creates a policy. maxVariancePercent <= 0 selects the
// stock 10% cutoff; the resolver must be the one used for the batch so the
// eligibility veto sees the same rule table.
func NewAutoPostPolicy(resolver *WriteOffResolver, maxVariancePercent float64) *AutoPostPolicy {
	if maxVariancePercent <= 0 {
		maxVariancePercent = DefaultVarianceThresholds().ReviewPercent
	}
	if resolver == nil {
		resolver = NewWriteOffResolver(nil)
	}
	return &AutoPostPolicy{
		resolver:           resolver,
		maxVariancePercent: maxVariancePercent,
	}
}

// CanAutoPost evaluates the veto rules in order; the first failing rule
// wins. Denials always require human review regardless of confidence.
func (p *AutoPostPolicy) CanAutoPost(claim entity.ClaimPayment, result entity.MatchResult) bool {
	if !result.Matched || result.Confidence == entity.ConfidenceLow {
		return false
	}

	if claim.Status.IsDenial() {
		return false
	}

	if result.Variance != nil && math.Abs(result.Variance.VariancePercentage) > p.maxVariancePercent {
		return false
	}

	for _, rec := range p.resolver.SuggestAll(claim) {
		if !rec.AutoPostEligible {
			return false
		}
	}

	return true
}
