package ai

import (
	"fmt"
	"strings"

	"github.com/myrecovery365/sobrio/backend/internal/service/triage"
)

// basePreamble is the role-and-principles preamble for ordinary turns.
const basePreamble = `You are Sobrio, a compassionate AI recovery coach trained in evidence-based addiction recovery approaches. You are NOT a therapist or doctor.

Use these principles:
- Reflective listening, validation, and empathy
- Motivational interviewing (OARS)
- Harm reduction and trauma-informed support
- Peer recovery and holistic wellness (mind, body, spirit)
- Avoid judgment, shame, or clinical language
- Emphasize small wins, progress, support systems`

// relapsePreamble replaces the base preamble when the user may have
// relapsed or is at high risk.
const relapsePreamble = `You are Sobrio, a compassionate AI recovery coach. The user may have relapsed or is at high risk. Be warm, non-judgmental, and supportive.

Your response should:
- Validate their honesty
- Normalize relapse as part of some recovery journeys
- Ask what they need right now
- Encourage reaching out to human support (sponsor, group, therapist)`

// SystemText builds the system portion of the prompt: template preamble,
// optional risk annotations, and the user context summary.
func SystemText(req PromptRequest) string {
	var b strings.Builder

	if req.Kind == triage.PromptRelapse {
		b.WriteString(relapsePreamble)
	} else {
		b.WriteString(basePreamble)
	}

	if len(req.HarmCodes) > 0 {
		b.WriteString("\n\nRisk themes tagged for this message: ")
		b.WriteString(strings.Join(req.HarmCodes, ", "))
		b.WriteString(".")
	}
	if req.Anxiety {
		b.WriteString("\nThe user sounds acutely anxious or overwhelmed. Help them slow down and feel grounded before anything else.")
	}

	if req.UserContext != "" {
		b.WriteString("\n\nUser Context: ")
		b.WriteString(req.UserContext)
	}

	return b.String()
}

// RenderText flattens the full request into a single prompt string for
// providers that take plain text rather than structured messages.
func RenderText(req PromptRequest) string {
	var b strings.Builder
	b.WriteString(SystemText(req))

	b.WriteString("\n\nChat History:\n")
	if len(req.History) == 0 {
		b.WriteString("(none)\n")
	}
	for _, turn := range req.History {
		fmt.Fprintf(&b, "User: %s\nSobrio: %s\n", turn.UserText, turn.AssistantText)
	}

	fmt.Fprintf(&b, "\nCurrent Message: %s\n\nYour response:", req.UserText)
	return b.String()
}
