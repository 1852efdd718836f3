// Package triage turns a safety classification into the plan for the rest
// of the turn: whether the completion backend runs at all, which prompt
// template it gets, and which flags the outbound payload carries.
package triage

import "github.com/myrecovery365/sobrio/backend/internal/analysis/safety"

// Kind tags the terminal branch a turn takes.
type Kind int

const (
	// Crisis short-circuits the turn: canned resource message, no
	// backend call, no aggregate updates beyond the message count.
	Crisis Kind = iota
	// Relapse invokes the backend with the relapse-oriented template.
	Relapse
	// Standard invokes the backend with the base coaching template.
	Standard
)

// PromptKind selects the template family used to build the backend prompt.
type PromptKind string

const (
	PromptStandard PromptKind = "standard"
	PromptRelapse  PromptKind = "relapse"
)

// Decision is the pure output of the policy; it carries everything the
// orchestrator needs without re-reading the classification.
type Decision struct {
	Kind           Kind
	Prompt         PromptKind
	InvokeBackend  bool
	RelapseSupport bool
	Anxiety        bool
	HarmCategories []safety.HarmCategory
}

// Decide maps a classification onto a branch. Crisis always wins over
// relapse, relapse over standard. Harm categories ride along on both
// non-crisis branches because harm detection is orthogonal to relapse
// detection.
func Decide(result safety.Result) Decision {
	if result.Crisis {
		return Decision{Kind: Crisis}
	}

	decision := Decision{
		Kind:           Standard,
		Prompt:         PromptStandard,
		InvokeBackend:  true,
		RelapseSupport: result.Relapse,
		Anxiety:        result.Anxiety,
		HarmCategories: result.HarmCategories,
	}
	if result.Relapse {
		decision.Kind = Relapse
		decision.Prompt = PromptRelapse
	}
	return decision
}

// CrisisResponse is the fixed resource referral for crisis turns. It is a
// static string on purpose: the crisis path must never depend on backend
// availability.
const CrisisResponse = `I hear that you're in a really difficult place right now, and I want you to know that your life matters.

**Please reach out immediately:**
- 📞 **988 Suicide & Crisis Lifeline**: Call or text 988 (24/7)
- 📱 **Crisis Text Line**: Text HOME to 741741
- 🏥 **Emergency**: Visit your nearest ER or call 911

You're not alone. I'm here to support your recovery, but a trained crisis counselor can help you through this moment right now.`

// FallbackResponse replaces the backend output when the completion service
// fails. A broken backend must never present as a broken conversation, so
// the caller still answers 200 with this text.
const FallbackResponse = "I'm having trouble generating a response right now, but I'm still here for you."
