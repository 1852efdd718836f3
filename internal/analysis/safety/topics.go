package safety

// topicRules maps a conversation topic label to the keywords that signal it.
// Declared as an ordered slice so extraction is deterministic.
var topicRules = []struct {
	Label    string
	Phrases  []string
	compiled ruleSet
}{
	{Label: "cravings", Phrases: []string{"craving", "cravings", "urge", "urges"}},
	{Label: "triggers", Phrases: []string{"trigger", "triggers", "tempted"}},
	{Label: "emotions", Phrases: []string{"anxious", "angry", "depressed"}},
	{Label: "support", Phrases: []string{"sponsor", "group", "meeting", "therapy"}},
	{Label: "relapse", Phrases: []string{"relapsed", "drank", "used"}},
	{Label: "life stress", Phrases: []string{"job", "relationship", "family"}},
}

func init() {
	for i := range topicRules {
		topicRules[i].compiled = compileRuleSet(topicRules[i].Phrases)
	}
}

// ExtractTopics returns the topic labels present in the text, in rule
// declaration order. A label appears at most once per message.
func ExtractTopics(text string) []string {
	var found []string
	for _, rule := range topicRules {
		if rule.compiled.matches(text) {
			found = append(found, rule.Label)
		}
	}
	return found
}
