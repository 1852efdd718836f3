// Package safety classifies raw user text against ordered keyword rule sets:
// life-threatening crisis, relapse admission, acute anxiety, and the four
// harm categories. Matching is pure; nothing here touches session state.
package safety

import (
	"regexp"
	"strings"
)

// Phrase lists are matched case-insensitively on word boundaries, so "used"
// never matches inside "unused". Order inside a list is the order the rules
// were curated in; evaluation short-circuits on the first hit per list.
var crisisPhrases = []string{
	"kill myself", "suicide", "end my life", "end it all", "want to die", "better off dead",
	"overdose", "od'ing", "taking all", "swallow all",
	"can't go on", "no reason to live", "no point living",
	"hurt myself", "self harm", "cut myself",
}

var relapsePhrases = []string{
	"relapsed", "used again", "drank again", "slipped up",
	"bought", "scored", "dealer", "plug",
	"craving", "urge", "trigger", "tempt", "tempted",
}

var anxietyPhrases = []string{
	"anxious", "anxiety", "panic attack", "panicking", "overwhelmed",
	"can't breathe", "freaking out", "spiraling", "can't calm down",
}

// harmPhrases is the curated phrase list per taxonomy category. Evaluation
// walks Categories, so results always come out in taxonomy order.
var harmPhrases = map[HarmCategory][]string{
	HarmViolence: {
		"hurt someone", "hurting someone", "violence", "violent", "weapon",
		"fight", "fighting", "punched", "dangerous", "unsafe",
	},
	HarmSubstance: {
		"drinking", "drunk", "using", "high", "wasted", "pills",
		"alcohol", "drugs", "heroin", "meth", "cocaine", "fentanyl",
	},
	HarmRisk: {
		"alone", "lonely", "isolated", "isolating", "hopeless",
		"worthless", "give up", "giving up", "no one cares", "empty",
	},
	HarmMedical: {
		"therapy", "therapist", "counselor", "medication", "meds",
		"detox", "rehab", "treatment", "doctor", "withdrawal", "withdrawals",
	},
}

type ruleSet struct {
	pattern *regexp.Regexp
}

func compileRuleSet(phrases []string) ruleSet {
	escaped := make([]string, len(phrases))
	for i, p := range phrases {
		escaped[i] = regexp.QuoteMeta(p)
	}
	return ruleSet{
		pattern: regexp.MustCompile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`),
	}
}

func (r ruleSet) matches(text string) bool {
	return r.pattern.MatchString(text)
}

var (
	crisisRules  = compileRuleSet(crisisPhrases)
	relapseRules = compileRuleSet(relapsePhrases)
	anxietyRules = compileRuleSet(anxietyPhrases)

	harmRuleSets = func() map[HarmCategory]ruleSet {
		sets := make(map[HarmCategory]ruleSet, len(Categories))
		for _, cat := range Categories {
			sets[cat] = compileRuleSet(harmPhrases[cat])
		}
		return sets
	}()
)

// Classify evaluates the full rule table against one message.
//
// Crisis is checked first and, when matched, suppresses every other check:
// the caller is expected to short-circuit the turn, so the remaining flags
// stay zero. Relapse, anxiety and harm checks are independent of each other.
func Classify(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	if crisisRules.matches(text) {
		return Result{Crisis: true}
	}

	result := Result{
		Relapse: relapseRules.matches(text),
		Anxiety: anxietyRules.matches(text),
	}

	for _, cat := range Categories {
		if harmRuleSets[cat].matches(text) {
			result.HarmCategories = append(result.HarmCategories, cat)
		}
	}

	result.Topics = ExtractTopics(text)
	return result
}
