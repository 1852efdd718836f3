package chat

// TurnOutcome is the payload returned to the caller for one turn.
//
// Crisis turns carry only the response text and the crisis flag; the
// relapse and harm fields are omitted because the crisis path terminates
// before those checks contribute anything.
type TurnOutcome struct {
	Response       string   `json:"response"`
	CrisisDetected bool     `json:"crisis_detected,omitempty"`
	RelapseSupport *bool    `json:"relapse_support,omitempty"`
	HarmCategories []string `json:"harm_categories,omitempty"`
}

// CrisisOutcome assembles the short-circuit payload for a crisis turn.
func CrisisOutcome(text string) TurnOutcome {
	return TurnOutcome{Response: text, CrisisDetected: true}
}

// StandardOutcome assembles the payload for a non-crisis turn.
func StandardOutcome(text string, relapse bool, harmCategories []string) TurnOutcome {
	return TurnOutcome{
		Response:       text,
		RelapseSupport: &relapse,
		HarmCategories: harmCategories,
	}
}
