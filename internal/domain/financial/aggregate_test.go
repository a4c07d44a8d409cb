package financial

import (
	"encoding/json"
	"testing"

	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
)

func ptr[T any](v T) *T { return &v }

func concept(code string) *fhir.CodeableConcept {
	return &fhir.CodeableConcept{Coding: []fhir.Coding{{Code: code}}}
}

func money(v float64) *fhir.Money {
	return &fhir.Money{Value: ptr(v), Currency: "INR"}
}

func item(seq int, submitted, benefit *float64) fhir.ClaimResponseItem {
	it := fhir.ClaimResponseItem{ItemSequence: seq}
	if submitted != nil {
		it.Adjudication = append(it.Adjudication, fhir.Adjudication{Category: concept("submitted"), Amount: money(*submitted)})
	}
	if benefit != nil {
		it.Adjudication = append(it.Adjudication, fhir.Adjudication{Category: concept("benefit"), Amount: money(*benefit)})
	}
	return it
}

func TestAdjudicateItems(t *testing.T) {
	tests := []struct {
		name      string
		submitted *float64
		benefit   *float64
		want      ItemStatus
	}{
		{"nothing approved", ptr(1000.0), ptr(0.0), ItemRejected},
		{"zero submitted and zero approved", ptr(0.0), ptr(0.0), ItemRejected},
		{"reduced", ptr(1000.0), ptr(600.0), ItemReduced},
		{"approved in full", ptr(1000.0), ptr(1000.0), ItemApproved},
		{"approved above submitted", ptr(1000.0), ptr(1200.0), ItemApproved},
		{"benefit missing", ptr(1000.0), nil, ItemRejected},
		{"submitted missing", nil, ptr(500.0), ItemApproved},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjudicateItems([]fhir.ClaimResponseItem{item(i+1, tt.submitted, tt.benefit)})
			if len(got) != 1 {
				t.Fatalf("expected 1 result, got %d", len(got))
			}
			if got[0].Status != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got[0].Status)
			}
			if got[0].Sequence != i+1 {
				t.Errorf("expected sequence %d, got %d", i+1, got[0].Sequence)
			}
		})
	}
}

func TestAdjudicateItems_Amounts(t *testing.T) {
	got := AdjudicateItems([]fhir.ClaimResponseItem{item(1, ptr(1000.0), ptr(600.0))})
	if got[0].Submitted != 1000 || got[0].Approved != 600 {
		t.Errorf("unexpected amounts %+v", got[0])
	}
	if out := AdjudicateItems(nil); len(out) != 0 {
		t.Errorf("expected empty result, got %v", out)
	}
}

func TestPlanBenefits(t *testing.T) {
	r := fhir.DecodeResource(json.RawMessage(`{
		"resourceType": "InsurancePlan",
		"coverage": [{"benefit": [
			{"limit": [{"value": {"value": 5000}}]},
			{"limit": [{"value": {"value": 3000}}]}
		]}]
	}`))
	plan, ok := r.(*fhir.InsurancePlan)
	if !ok {
		t.Fatalf("expected *InsurancePlan, got %T", r)
	}
	got := PlanBenefits(plan)
	if got.Count != 2 || got.TotalValue != 8000 {
		t.Errorf("expected {2 8000}, got %+v", got)
	}
}

func TestPlanBenefits_AcrossCoverages(t *testing.T) {
	plan := &fhir.InsurancePlan{Coverage: []fhir.PlanCoverage{
		{Benefit: []fhir.PlanBenefit{{Limit: []fhir.PlanLimit{{Value: &fhir.Quantity{Value: ptr(100.0)}}}}}},
		{Benefit: []fhir.PlanBenefit{{}, {Limit: []fhir.PlanLimit{{Value: &fhir.Quantity{Value: ptr(50.0)}}, {Value: &fhir.Quantity{Value: ptr(999.0)}}}}}},
	}}
	got := PlanBenefits(plan)
	if got.Count != 3 || got.TotalValue != 150 {
		t.Errorf("expected {3 150}, got %+v", got)
	}
	if empty := PlanBenefits(nil); empty.Count != 0 || empty.TotalValue != 0 {
		t.Errorf("expected zero summary, got %+v", empty)
	}
}

func TestSummarizeBenefits_MissingLimit(t *testing.T) {
	got := SummarizeBenefits([]fhir.PlanBenefit{{}, {Limit: []fhir.PlanLimit{{}}}})
	if got.Count != 2 || got.TotalValue != 0 {
		t.Errorf("expected {2 0}, got %+v", got)
	}
}

func TestEligibilityBenefits(t *testing.T) {
	r := fhir.DecodeResource(json.RawMessage(`{
		"resourceType": "CoverageEligibilityResponse",
		"insurance": [{"item": [
			{"benefit": [{"allowedMoney": {"value": 20000, "currency": "INR"}}, {"allowedMoney": {"value": 1}}]},
			{"benefit": []},
			{"benefit": [{"allowedMoney": {"value": 5000}}]}
		]}]
	}`))
	resp, ok := r.(*fhir.CoverageEligibilityResponse)
	if !ok {
		t.Fatalf("expected *CoverageEligibilityResponse, got %T", r)
	}
	got := EligibilityBenefits(resp)
	if got.Count != 3 || got.TotalValue != 25000 {
		t.Errorf("expected {3 25000}, got %+v", got)
	}
}

func TestSettlementTotals(t *testing.T) {
	totals := []fhir.Total{
		{Category: concept("submitted"), Amount: money(1000)},
		{Category: concept("benefit"), Amount: money(750)},
	}
	cmp, ok := SettlementTotals(totals)
	if !ok {
		t.Fatal("expected comparison")
	}
	if cmp.Requested.Amount() != 1000 || cmp.Approved.Amount() != 750 {
		t.Errorf("unexpected comparison %+v", cmp)
	}
	if cmp.Difference != 250 {
		t.Errorf("expected difference 250, got %v", cmp.Difference)
	}
}

func TestSettlementTotals_Missing(t *testing.T) {
	tests := map[string][]fhir.Total{
		"empty":          nil,
		"only submitted": {{Category: concept("submitted"), Amount: money(1000)}},
		"only benefit":   {{Category: concept("benefit"), Amount: money(1000)}},
		"other codes":    {{Category: concept("copay"), Amount: money(10)}, {Category: nil, Amount: money(5)}},
	}
	for name, totals := range tests {
		if _, ok := SettlementTotals(totals); ok {
			t.Errorf("%s: expected no comparison", name)
		}
	}
}

func TestClaimTotal(t *testing.T) {
	if got := ClaimTotal(nil); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := ClaimTotal(&fhir.Claim{Total: money(4200)}); got != 4200 {
		t.Errorf("expected 4200, got %v", got)
	}
	c := &fhir.Claim{Item: []fhir.ClaimItem{{Net: money(100)}, {Net: money(250)}, {}}}
	if got := ClaimTotal(c); got != 350 {
		t.Errorf("expected 350, got %v", got)
	}
}
