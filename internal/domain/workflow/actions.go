package workflow

// Action is a suggested follow-up shown next to a bundle. Suggestions are
// advisory only.
type Action struct {
	Label   string `json:"label"`
	Primary bool   `json:"primary"`
}

// ActionViewBundle is appended to every suggestion list.
const ActionViewBundle = "View FHIR Bundle"

type actionKey struct {
	stage  string
	status Status
}

var actionRules = map[actionKey][]string{
	{"CE02", StatusComplete}:     {"Submit Pre-Auth"},
	{"PA02", StatusInfoRequired}: {"Submit Documents"},
	{"PA04", StatusApproved}:     {"Submit Claim"},
	{"PA06", StatusPartial}:      {"Submit Claim"},
	{"PA05", StatusRejected}:     {"Resubmit Pre-Auth"},
	{"CL02", StatusInfoRequired}: {"Submit Documents"},
	{"CL04", StatusApproved}:     {"Track Payment"},
	{"CL06", StatusPartial}:      {"Track Payment"},
	{"CL05", StatusRejected}:     {"Resubmit Claim"},
	{"IP02", StatusComplete}:     {"Check Eligibility"},
}

// NextActions suggests follow-ups for a stage in a given status.
func NextActions(stageID string, status Status) []Action {
	var out []Action
	for _, l := range actionRules[actionKey{stageID, status}] {
		out = append(out, Action{Label: l, Primary: true})
	}
	return append(out, Action{Label: ActionViewBundle})
}

// ActionsFor is NextActions for an already derived stage.
func ActionsFor(s StageInfo) []Action {
	return NextActions(s.ID, s.Status)
}
