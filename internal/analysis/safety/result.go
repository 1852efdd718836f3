package safety

// HarmCategory is a one-letter code tagging a message with a coarse risk
// theme. The codes are used for session analytics and light prompt
// annotation, never for crisis branching.
type HarmCategory string

const (
	HarmViolence  HarmCategory = "H" // violence / danger to self or others
	HarmSubstance HarmCategory = "A" // active substance use
	HarmRisk      HarmCategory = "R" // risk, isolation, despair
	HarmMedical   HarmCategory = "M" // medical / treatment
)

// Categories is the canonical taxonomy order. Classify walks this slice, so
// classification results preserve it.
var Categories = []HarmCategory{HarmViolence, HarmSubstance, HarmRisk, HarmMedical}

// Result is the per-message classification. It is derived fresh each turn
// and never persisted beyond folding topics into the session aggregates.
type Result struct {
	Crisis         bool
	Relapse        bool
	Anxiety        bool
	HarmCategories []HarmCategory
	Topics         []string
}

// HarmCodes returns the matched category codes as plain strings, preserving
// taxonomy order.
func (r Result) HarmCodes() []string {
	if len(r.HarmCategories) == 0 {
		return nil
	}
	codes := make([]string, len(r.HarmCategories))
	for i, c := range r.HarmCategories {
		codes[i] = string(c)
	}
	return codes
}
