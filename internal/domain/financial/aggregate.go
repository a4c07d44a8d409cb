// Package financial folds benefit, eligibility and adjudication arrays into
// the summary figures shown alongside a bundle. Every function is a pure fold
// and treats missing amounts as zero.
package financial

import (
	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
	"github.com/ehr/nhcx-viewer/pkg/fhirmodels"
)

// BenefitSummary counts benefits and sums their limits.
type BenefitSummary struct {
	Count      int     `json:"count"`
	TotalValue float64 `json:"totalValue"`
}

// Comparison sets the requested amount against the approved amount.
type Comparison struct {
	Requested  fhir.Money `json:"requested"`
	Approved   fhir.Money `json:"approved"`
	Difference float64    `json:"difference"`
}

// ItemStatus is the adjudication verdict for one claim item.
type ItemStatus string

const (
	ItemApproved ItemStatus = "approved"
	ItemReduced  ItemStatus = "reduced"
	ItemRejected ItemStatus = "rejected"
)

// ItemAdjudication is the submitted and approved amounts of one item.
type ItemAdjudication struct {
	Sequence  int        `json:"sequence"`
	Submitted float64    `json:"submitted"`
	Approved  float64    `json:"approved"`
	Status    ItemStatus `json:"status"`
}

// SummarizeBenefits counts the benefits and sums the value of each benefit's
// first limit.
func SummarizeBenefits(benefits []fhir.PlanBenefit) BenefitSummary {
	s := BenefitSummary{Count: len(benefits)}
	for _, b := range benefits {
		if len(b.Limit) > 0 {
			s.TotalValue += b.Limit[0].Value.Amount()
		}
	}
	return s
}

// PlanBenefits summarizes the benefits of every coverage entry of a plan.
func PlanBenefits(plan *fhir.InsurancePlan) BenefitSummary {
	var s BenefitSummary
	if plan == nil {
		return s
	}
	for _, c := range plan.Coverage {
		cs := SummarizeBenefits(c.Benefit)
		s.Count += cs.Count
		s.TotalValue += cs.TotalValue
	}
	return s
}

// EligibilityBenefits counts the benefit items of an eligibility response and
// sums the allowed money of each item's first benefit.
func EligibilityBenefits(resp *fhir.CoverageEligibilityResponse) BenefitSummary {
	var s BenefitSummary
	if resp == nil {
		return s
	}
	for _, ins := range resp.Insurance {
		for _, item := range ins.Item {
			s.Count++
			if len(item.Benefit) > 0 {
				s.TotalValue += item.Benefit[0].AllowedMoney.Amount()
			}
		}
	}
	return s
}

// SettlementTotals compares the submitted total with the benefit total. It
// reports false when either is missing; a missing total is not zero.
func SettlementTotals(totals []fhir.Total) (Comparison, bool) {
	var requested, approved *fhir.Money
	for i := range totals {
		switch totals[i].Category.FirstCode() {
		case fhirmodels.AdjudicationSubmitted:
			if requested == nil {
				requested = moneyOrZero(totals[i].Amount)
			}
		case fhirmodels.AdjudicationBenefit:
			if approved == nil {
				approved = moneyOrZero(totals[i].Amount)
			}
		}
	}
	if requested == nil || approved == nil {
		return Comparison{}, false
	}
	return Comparison{
		Requested:  *requested,
		Approved:   *approved,
		Difference: requested.Amount() - approved.Amount(),
	}, true
}

func moneyOrZero(m *fhir.Money) *fhir.Money {
	if m == nil {
		return &fhir.Money{}
	}
	return m
}

// AdjudicateItems classifies every response item. An item whose benefit is
// zero is rejected, including when nothing was submitted.
func AdjudicateItems(items []fhir.ClaimResponseItem) []ItemAdjudication {
	out := make([]ItemAdjudication, 0, len(items))
	for _, it := range items {
		a := ItemAdjudication{
			Sequence:  it.ItemSequence,
			Submitted: adjudicationAmount(it.Adjudication, fhirmodels.AdjudicationSubmitted),
			Approved:  adjudicationAmount(it.Adjudication, fhirmodels.AdjudicationBenefit),
		}
		switch {
		case a.Approved == 0:
			a.Status = ItemRejected
		case a.Approved < a.Submitted:
			a.Status = ItemReduced
		default:
			a.Status = ItemApproved
		}
		out = append(out, a)
	}
	return out
}

func adjudicationAmount(adj []fhir.Adjudication, category string) float64 {
	for i := range adj {
		if adj[i].Category.FirstCode() == category {
			return adj[i].Amount.Amount()
		}
	}
	return 0
}

// ClaimTotal is the claim's declared total, or the sum of item net amounts
// when the total is absent.
func ClaimTotal(c *fhir.Claim) float64 {
	if c == nil {
		return 0
	}
	if c.Total != nil && c.Total.Value != nil {
		return *c.Total.Value
	}
	var sum float64
	for _, it := range c.Item {
		sum += it.Net.Amount()
	}
	return sum
}
