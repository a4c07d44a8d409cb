package bundles

import (
	"strings"
	"unicode"

	"github.com/ehr/nhcx-viewer/internal/domain/display"
	"github.com/ehr/nhcx-viewer/internal/domain/financial"
	"github.com/ehr/nhcx-viewer/internal/domain/workflow"
)

// Info is one entry of the bundle listing.
type Info struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Classification workflow.Classification `json:"classification"`
}

// View is everything a renderer needs for one bundle.
type View struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	BundleID       string                  `json:"bundleId"`
	BundleType     string                  `json:"bundleType"`
	Timestamp      string                  `json:"timestamp"`
	Classification workflow.Classification `json:"classification"`
	Stages         []workflow.StageInfo    `json:"stages,omitempty"`
	Actions        []workflow.Action       `json:"actions"`
	Main           *display.ResourceView   `json:"main,omitempty"`
	Resources      []display.ResourceView  `json:"resources"`

	Benefits    *financial.BenefitSummary    `json:"benefits,omitempty"`
	Eligibility *financial.BenefitSummary    `json:"eligibility,omitempty"`
	Settlement  *financial.Comparison        `json:"settlement,omitempty"`
	Items       []financial.ItemAdjudication `json:"items,omitempty"`
	ClaimTotal  *float64                     `json:"claimTotal,omitempty"`
}

var knownNames = map[string]string{
	"eligibilityCheckReq":  "Eligibility Check Request",
	"eligibilityCheckResp": "Eligibility Check Response",
	"preAuthReq":           "Pre-Authorization Request",
	"preAuthResp":          "Pre-Authorization Response",
	"claimReq":             "Claim Request",
	"claimResp":            "Claim Response",
	"insurancePlanReq":     "Insurance Plan Request",
	"insurancePlanResp":    "Insurance Plan Response",
}

// DisplayName turns a bundle identifier such as "claimResp" into a label.
// Identifiers outside the known set are split on case changes and
// separators, with trailing Req/Resp expanded.
func DisplayName(id string) string {
	if n, ok := knownNames[id]; ok {
		return n
	}

	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range id {
		switch {
		case r == '_' || r == '-' || r == '.' || r == ' ':
			flush()
			continue
		case unicode.IsUpper(r) && i > 0:
			flush()
		}
		cur = append(cur, r)
	}
	flush()

	for i, w := range words {
		switch strings.ToLower(w) {
		case "req":
			w = "Request"
		case "resp":
			w = "Response"
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return display.NA
	}
	return strings.Join(words, " ")
}
