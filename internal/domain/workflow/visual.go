package workflow

// Visual is the color and icon token a renderer uses for a stage.
type Visual struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

var neutral = Visual{Color: "gray", Icon: "circle"}

var visuals = map[Status]Visual{
	StatusInitiated:    {Color: "blue", Icon: "send"},
	StatusProcessing:   {Color: "amber", Icon: "hourglass"},
	StatusInfoRequired: {Color: "orange", Icon: "file-question"},
	StatusApproved:     {Color: "green", Icon: "check-circle"},
	StatusPartial:      {Color: "yellow", Icon: "circle-half"},
	StatusRejected:     {Color: "red", Icon: "x-circle"},
	StatusPayment:      {Color: "emerald", Icon: "indian-rupee"},
	StatusComplete:     {Color: "teal", Icon: "check"},
}

// VisualFor returns the token for a status, gray for anything unmapped.
func VisualFor(s Status) Visual {
	if v, ok := visuals[s]; ok {
		return v
	}
	return neutral
}
