package recon

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/clearhaven/remitrecon/internal/domain/entity"
)

// DefaultNonCoveredReasonCodes are the CARC codes treated as non-covered
// service signals when counting review-worthy service lines.
var DefaultNonCoveredReasonCodes = []string{"50", "96", "109"}

// MatcherConfig carries the tunable policy for the claim matcher
type MatcherConfig struct {
	// Thresholds drive variance classification on matched claims and the
	// monetary tolerance used for amount disambiguation.
	Thresholds VarianceThresholds

	// NonCoveredReasonCodes override the default non-covered CARC set.
	NonCoveredReasonCodes []string
}

// ClaimMatcher associates remittance claim payments with internal claims
// through an ordered fallback of matching stages. Stateless; one matcher
// may serve concurrent batches.
type ClaimMatcher struct {
	variance   *VarianceCalculator
	tolerance  decimal.Decimal
	nonCovered map[string]bool
}

// NewClaimMatcher creates a matcher from the given config
func NewClaimMatcher(cfg MatcherConfig) *ClaimMatcher {
	calc := NewVarianceCalculator(cfg.Thresholds)

	codes := cfg.NonCoveredReasonCodes
	if codes == nil {
		codes = DefaultNonCoveredReasonCodes
	}
	nonCovered := make(map[string]bool, len(codes))
	for _, code := range codes {
		nonCovered[code] = true
	}

	return &ClaimMatcher{
		variance:   calc,
		tolerance:  calc.thresholds.MatchTolerance,
		nonCovered: nonCovered,
	}
}

// Match associates one claim payment with at most one system claim.
// Claim-number evidence always wins over identity-based inference: the
// patient stage runs only when patients were supplied and the three
// claim-number stages found nothing. Total: every input yields a result
// with actionable text, even on complete failure.
func (m *ClaimMatcher) Match(claim entity.ClaimPayment, systemClaims []entity.SystemClaim, patients []entity.SystemPatient) entity.MatchResult {
	// Stage 1: exact claim-number match
	if claim.ClaimNumber != "" {
		for i := range systemClaims {
			if strings.EqualFold(claim.ClaimNumber, systemClaims[i].ClaimNumber) {
				return m.matched(claim, &systemClaims[i], entity.ConfidenceHigh, entity.MethodClaimNumber)
			}
		}
	}

	// Stage 2: payer control number (ICN) against the same field space
	if claim.PayerControlNumber != "" {
		for i := range systemClaims {
			if strings.EqualFold(claim.PayerControlNumber, systemClaims[i].ClaimNumber) {
				return m.matched(claim, &systemClaims[i], entity.ConfidenceHigh, entity.MethodClaimNumber)
			}
		}
	}

	// Stage 3: normalized fuzzy claim-number match
	if norm := normalizeClaimNumber(claim.ClaimNumber); norm != "" {
		for i := range systemClaims {
			if norm == normalizeClaimNumber(systemClaims[i].ClaimNumber) {
				return m.matched(claim, &systemClaims[i], entity.ConfidenceMedium, entity.MethodClaimNumber)
			}
		}
	}

	// Stage 4: patient-based fallback, only when a directory was supplied
	if patients != nil {
		if result, done := m.matchByPatient(claim, systemClaims, patients); done {
			return result
		}
	}

	// Stage 5: nothing resolved
	actions := []string{"No matching claim found - manual review required"}
	if claim.ClaimNumber == "" {
		actions = append(actions, "Remittance claim carries no claim number")
	}
	actions = append(actions, m.claimActions(claim)...)
	return entity.MatchResult{
		Claim:            claim,
		Confidence:       entity.ConfidenceLow,
		Method:           entity.MethodManual,
		SuggestedActions: actions,
	}
}

// matchByPatient resolves the remittance's patient identity and tries to
// narrow that patient's claims to one, with amount disambiguation as the
// tie-breaker. The bool reports whether this stage produced a final result.
func (m *ClaimMatcher) matchByPatient(claim entity.ClaimPayment, systemClaims []entity.SystemClaim, patients []entity.SystemPatient) (entity.MatchResult, bool) {
	patient := resolvePatient(claim, patients)
	if patient == nil {
		return entity.MatchResult{}, false
	}

	var candidates []*entity.SystemClaim
	for i := range systemClaims {
		if systemClaims[i].PatientID == patient.ID {
			candidates = append(candidates, &systemClaims[i])
		}
	}

	switch len(candidates) {
	case 0:
		actions := []string{fmt.Sprintf("No claims found for patient %s %s", patient.FirstName, patient.LastName)}
		actions = append(actions, m.claimActions(claim)...)
		return entity.MatchResult{
			Claim:            claim,
			Confidence:       entity.ConfidenceLow,
			Method:           entity.MethodPatient,
			SuggestedActions: actions,
		}, true
	case 1:
		return m.matched(claim, candidates[0], entity.ConfidenceMedium, entity.MethodPatient), true
	}

	// Multiple candidates: unique billed-amount hit decides
	var amountHit *entity.SystemClaim
	for _, candidate := range candidates {
		if candidate.BilledAmount.Sub(claim.BilledAmount).Abs().LessThan(m.tolerance) {
			if amountHit != nil {
				amountHit = nil
				break
			}
			amountHit = candidate
		}
	}
	if amountHit != nil {
		return m.matched(claim, amountHit, entity.ConfidenceMedium, entity.MethodAmount), true
	}

	actions := []string{fmt.Sprintf("%d claims found for patient %s %s - manual selection required",
		len(candidates), patient.FirstName, patient.LastName)}
	actions = append(actions, m.claimActions(claim)...)
	return entity.MatchResult{
		Claim:            claim,
		Confidence:       entity.ConfidenceLow,
		Method:           entity.MethodPatient,
		SuggestedActions: actions,
	}, true
}

// matched assembles the result for a successful stage, attaching the
// variance against the system claim's expected payment when non-zero.
func (m *ClaimMatcher) matched(claim entity.ClaimPayment, sys *entity.SystemClaim, confidence entity.MatchConfidence, method entity.MatchMethod) entity.MatchResult {
	result := entity.MatchResult{
		Claim:          claim,
		MatchedClaimID: sys.ID,
		Matched:        true,
		Confidence:     confidence,
		Method:         method,
	}

	variance := m.variance.Calculate(sys.ExpectedOrBilled(), claim.PaidAmount)
	if !variance.VarianceAmount.IsZero() {
		result.Variance = &variance
		result.SuggestedActions = append(result.SuggestedActions, variance.Reason)
	}

	result.SuggestedActions = append(result.SuggestedActions, m.claimActions(claim)...)
	return result
}

// claimActions derives the denial, patient-responsibility, and non-covered
// advisories that apply regardless of how (or whether) the claim matched.
func (m *ClaimMatcher) claimActions(claim entity.ClaimPayment) []string {
	var actions []string

	if claim.Status.IsDenial() {
		actions = append(actions, "Claim denied - review denial reason codes")
	}

	if prTotal := claim.PatientResponsibilityTotal(); prTotal.IsPositive() {
		actions = append(actions, fmt.Sprintf("Patient responsibility: $%s", prTotal.StringFixed(2)))
	}

	if count := claim.NonCoveredServiceCount(m.nonCovered); count > 0 {
		actions = append(actions, fmt.Sprintf("%d non-covered service line(s) - verify patient billing", count))
	}

	return actions
}

// resolvePatient finds the remittance patient in the directory: member id
// first, then insured name, then patient name. First hit wins.
func resolvePatient(claim entity.ClaimPayment, patients []entity.SystemPatient) *entity.SystemPatient {
	if claim.PatientMemberID != "" {
		for i := range patients {
			if strings.EqualFold(claim.PatientMemberID, patients[i].MemberID) {
				return &patients[i]
			}
		}
	}
	if claim.InsuredLastName != "" && claim.InsuredFirstName != "" {
		for i := range patients {
			if strings.EqualFold(claim.InsuredLastName, patients[i].LastName) &&
				strings.EqualFold(claim.InsuredFirstName, patients[i].FirstName) {
				return &patients[i]
			}
		}
	}
	if claim.PatientLastName != "" && claim.PatientFirstName != "" {
		for i := range patients {
			if strings.EqualFold(claim.PatientLastName, patients[i].LastName) &&
				strings.EqualFold(claim.PatientFirstName, patients[i].FirstName) {
				return &patients[i]
			}
		}
	}
	return nil
}

// normalizeClaimNumber lowercases and strips whitespace, hyphens, and
// leading zeros. Embedded letters and check digits pass through untouched;
// refining that is an extension point, not part of this rule.
func normalizeClaimNumber(claimNumber string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(claimNumber) {
		if r == '-' || r == ' ' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimLeft(b.String(), "0")
}
