package recon

import (
	"fmt"

	"github.com/clearhaven/remitrecon/internal/domain/entity"
)

// WriteOffRule is one configured disposition for an adjustment code
type WriteOffRule struct {
	WriteOffCode     string
	Description      string
	RequiresApproval bool
	AutoPostEligible bool
}

// RuleKey selects a write-off rule: reason code plus group code
type RuleKey struct {
	ReasonCode string
	Group      entity.AdjustmentGroup
}

// DefaultWriteOffRules returns the stock rule table for the common CARC
// codes. Callers may extend or replace it via configuration; codes absent
// from the table degrade to the group-code defaults.
func DefaultWriteOffRules() map[RuleKey]WriteOffRule {
	return map[RuleKey]WriteOffRule{
		{ReasonCode: "45", Group: entity.GroupContractualObligation}:  {WriteOffCode: "CONT-ADJ", Description: "Charges exceed fee schedule - contractual adjustment", AutoPostEligible: true},
		{ReasonCode: "42", Group: entity.GroupContractualObligation}:  {WriteOffCode: "CONT-ADJ", Description: "Charges exceed maximum allowable", AutoPostEligible: true},
		{ReasonCode: "97", Group: entity.GroupContractualObligation}:  {WriteOffCode: "BUNDLED", Description: "Payment included in allowance for another service", RequiresApproval: true},
		{ReasonCode: "50", Group: entity.GroupContractualObligation}:  {WriteOffCode: "NON-COV", Description: "Non-covered service - not deemed medically necessary", RequiresApproval: true},
		{ReasonCode: "96", Group: entity.GroupContractualObligation}:  {WriteOffCode: "NON-COV", Description: "Non-covered charges", RequiresApproval: true},
		{ReasonCode: "109", Group: entity.GroupContractualObligation}: {WriteOffCode: "WRONG-PAYER", Description: "Claim not covered by this payer", RequiresApproval: true},
		{ReasonCode: "1", Group: entity.GroupPatientResponsibility}:   {WriteOffCode: "DEDUCT", Description: "Patient deductible", AutoPostEligible: true},
		{ReasonCode: "2", Group: entity.GroupPatientResponsibility}:   {WriteOffCode: "COINS", Description: "Patient coinsurance", AutoPostEligible: true},
		{ReasonCode: "3", Group: entity.GroupPatientResponsibility}:   {WriteOffCode: "COPAY", Description: "Patient copay", AutoPostEligible: true},
		{ReasonCode: "23", Group: entity.GroupOtherAdjustment}:        {WriteOffCode: "PRIOR-PAYER", Description: "Impact of prior payer adjudication", RequiresApproval: true},
	}
}

// WriteOffResolver maps adjustments to recommended dispositions. The rule
// table is read-only after construction and safe to share across workers;
// swap in a new resolver to change rules, never mutate in place.
type WriteOffResolver struct {
	rules map[RuleKey]WriteOffRule
}

// NewWriteOffResolver creates a resolver with the given rule table. A nil
// table selects the defaults. The table is copied so the caller's map
// cannot mutate a resolver already handed to a batch.
func NewWriteOffResolver(rules map[RuleKey]WriteOffRule) *WriteOffResolver {
	if rules == nil {
		rules = DefaultWriteOffRules()
	}
	copied := make(map[RuleKey]WriteOffRule, len(rules))
	for k, v := range rules {
		copied[k] = v
	}
	return &WriteOffResolver{rules: copied}
}

// Suggest maps one adjustment to a recommended write-off. Total: every
// (reasonCode, group) pair produces a recommendation; unrecognized codes
// degrade to the group-code default, never to a crash or silent auto-post.
func (r *WriteOffResolver) Suggest(adj entity.AdjustmentInfo) entity.WriteOffRecommendation {
	if rule, ok := r.rules[RuleKey{ReasonCode: adj.ReasonCode, Group: adj.Group}]; ok {
		return entity.WriteOffRecommendation{
			Adjustment:       adj,
			WriteOffCode:     rule.WriteOffCode,
			Reason:           rule.Description,
			Amount:           adj.Amount,
			RequiresApproval: rule.RequiresApproval,
			AutoPostEligible: rule.AutoPostEligible,
		}
	}
	return r.groupDefault(adj)
}

// groupDefault returns the fallback disposition for an unmapped reason
// code. Contractual and patient-responsibility adjustments are routine and
// auto-post; everything else needs review. The reason embeds the unmapped
// code so operators can extend the rule table later.
func (r *WriteOffResolver) groupDefault(adj entity.AdjustmentInfo) entity.WriteOffRecommendation {
	rec := entity.WriteOffRecommendation{
		Adjustment: adj,
		Amount:     adj.Amount,
	}

	switch adj.Group {
	case entity.GroupContractualObligation:
		rec.WriteOffCode = "CONT-ADJ"
		rec.Reason = fmt.Sprintf("Contractual Obligation - CARC %s", adj.ReasonCode)
		rec.AutoPostEligible = true
	case entity.GroupPatientResponsibility:
		rec.WriteOffCode = "PT-RESP"
		rec.Reason = fmt.Sprintf("Patient Responsibility - CARC %s", adj.ReasonCode)
		rec.AutoPostEligible = true
	case entity.GroupOtherAdjustment:
		rec.WriteOffCode = "OTHER-ADJ"
		rec.Reason = fmt.Sprintf("Other Adjustment - CARC %s", adj.ReasonCode)
		rec.RequiresApproval = true
	case entity.GroupPayerInitiated:
		rec.WriteOffCode = "PAYER-INIT"
		rec.Reason = fmt.Sprintf("Payer Initiated - CARC %s", adj.ReasonCode)
		rec.RequiresApproval = true
	case entity.GroupCorrectionReversal:
		rec.WriteOffCode = "CORRECTION"
		rec.Reason = fmt.Sprintf("Correction/Reversal - CARC %s", adj.ReasonCode)
		rec.RequiresApproval = true
	default:
		rec.WriteOffCode = "REVIEW"
		rec.Reason = fmt.Sprintf("Unknown adjustment group %q - CARC %s", adj.Group, adj.ReasonCode)
		rec.RequiresApproval = true
	}

	return rec
}

// SuggestAll resolves every adjustment on a claim, claim-level first, then
// each service line in document order.
func (r *WriteOffResolver) SuggestAll(claim entity.ClaimPayment) []entity.WriteOffRecommendation {
	adjustments := claim.AllAdjustments()
	recs := make([]entity.WriteOffRecommendation, 0, len(adjustments))
	for _, adj := range adjustments {
		recs = append(recs, r.Suggest(adj))
	}
	return recs
}
