package bundles

import (
	"github.com/ehr/nhcx-viewer/internal/domain/display"
	"github.com/ehr/nhcx-viewer/internal/domain/financial"
	"github.com/ehr/nhcx-viewer/internal/domain/workflow"
	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
)

// BuildView derives the full view model of a parsed bundle. It performs no
// I/O and never fails on missing data.
func BuildView(id string, b *fhir.Bundle) *View {
	c := workflow.Classify(b)
	v := &View{
		ID:             id,
		Name:           DisplayName(id),
		BundleID:       display.Text(b.ID),
		BundleType:     display.Text(b.Type),
		Timestamp:      display.DateText(b.Timestamp),
		Classification: c,
		Stages:         workflow.Stages(c.Category),
		Actions:        workflow.ActionsFor(c.Stage),
	}

	resources := b.Resources()
	v.Resources = make([]display.ResourceView, 0, len(resources))
	for _, r := range resources {
		v.Resources = append(v.Resources, display.Summarize(r))
	}

	main := b.MainResource()
	if main == nil {
		return v
	}
	mv := display.Summarize(main)
	v.Main = &mv

	switch r := main.(type) {
	case *fhir.InsurancePlan:
		s := financial.PlanBenefits(r)
		v.Benefits = &s
	case *fhir.CoverageEligibilityResponse:
		s := financial.EligibilityBenefits(r)
		v.Eligibility = &s
	case *fhir.ClaimResponse:
		if cmp, ok := financial.SettlementTotals(r.Total); ok {
			v.Settlement = &cmp
		}
		v.Items = financial.AdjudicateItems(r.Item)
	case *fhir.Claim:
		total := financial.ClaimTotal(r)
		v.ClaimTotal = &total
	}
	return v
}
