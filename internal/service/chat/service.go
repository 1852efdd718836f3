// Package chat orchestrates one conversational turn: classification,
// triage, prompt composition, the optional backend call, and the session
// bookkeeping around it.
package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/myrecovery365/sobrio/backend/internal/analysis/safety"
	chatmodel "github.com/myrecovery365/sobrio/backend/internal/model/chat"
	"github.com/myrecovery365/sobrio/backend/internal/service/ai"
	"github.com/myrecovery365/sobrio/backend/internal/service/session"
	"github.com/myrecovery365/sobrio/backend/internal/service/triage"
)

// ErrEmptyMessage rejects blank input before any session mutation happens.
var ErrEmptyMessage = errors.New("no message provided")

const defaultBackendTimeout = 8 * time.Second

// Service processes turns. The completer may be nil when no backend
// credentials are configured; every non-crisis turn then takes the
// fallback path but the conversation keeps working.
type Service struct {
	sessions  session.Store
	completer ai.Completer
	timeout   time.Duration

	mu            sync.Mutex
	crisisTurns   int
	relapseTurns  int
	fallbackTurns int
	harmCounts    map[string]int
}

// NewService wires the turn pipeline.
func NewService(sessions session.Store, completer ai.Completer, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultBackendTimeout
	}
	return &Service{
		sessions:   sessions,
		completer:  completer,
		timeout:    timeout,
		harmCounts: make(map[string]int),
	}
}

// HandleTurn runs one message through the full pipeline and returns the
// assembled outcome. Backend failures are recovered into the fallback
// text; only validation problems surface as errors.
func (s *Service) HandleTurn(ctx context.Context, sessionID, message string) (chatmodel.TurnOutcome, error) {
	text := strings.TrimSpace(message)
	if text == "" {
		return chatmodel.TurnOutcome{}, ErrEmptyMessage
	}

	// Snapshot before recording so the composer sees prior-turn state:
	// the very first message composes against an untouched session.
	sess, err := s.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return chatmodel.TurnOutcome{}, err
	}

	result := safety.Classify(text)
	decision := triage.Decide(result)

	if err := s.sessions.RecordMessage(ctx, sessionID); err != nil {
		return chatmodel.TurnOutcome{}, err
	}

	if !decision.InvokeBackend {
		s.noteCrisis()
		log.Printf("[chat] crisis short-circuit for session=%s", sessionID)
		return chatmodel.CrisisOutcome(triage.CrisisResponse), nil
	}

	harmCodes := result.HarmCodes()
	s.noteTurn(decision.RelapseSupport, harmCodes)

	responseText := s.generate(ctx, ai.PromptRequest{
		Kind:        decision.Prompt,
		UserText:    text,
		History:     sess.History,
		UserContext: ComposeContext(sess),
		HarmCodes:   harmCodes,
		Anxiety:     decision.Anxiety,
	}, sessionID)

	if err := s.sessions.RecordTurn(ctx, sessionID, text, responseText); err != nil {
		return chatmodel.TurnOutcome{}, err
	}
	labels := append(append([]string{}, result.Topics...), harmCodes...)
	if err := s.sessions.RecordTopics(ctx, sessionID, labels); err != nil {
		return chatmodel.TurnOutcome{}, err
	}

	return chatmodel.StandardOutcome(responseText, decision.RelapseSupport, harmCodes), nil
}

// ClearSession drops the caller's conversation state.
func (s *Service) ClearSession(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID)
}

// generate runs the single backend attempt under the configured timeout
// and converts any failure into the local fallback sentence.
func (s *Service) generate(ctx context.Context, req ai.PromptRequest, sessionID string) string {
	if s.completer == nil {
		s.noteFallback()
		return triage.FallbackResponse
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.completer.Complete(callCtx, req)
	if err != nil {
		s.noteFallback()
		log.Printf("[chat] backend failure for session=%s, serving fallback: %v", sessionID, err)
		return triage.FallbackResponse
	}
	return text
}

// Analytics is the aggregate view served by the analytics endpoint.
type Analytics struct {
	session.Stats
	CrisisTurns   int            `json:"crisis_turns"`
	RelapseTurns  int            `json:"relapse_turns"`
	FallbackTurns int            `json:"fallback_turns"`
	HarmCounts    map[string]int `json:"harm_counts"`
}

// Analytics combines live session stats with the per-process turn counters.
func (s *Service) Analytics(ctx context.Context) (Analytics, error) {
	stats, err := s.sessions.Stats(ctx)
	if err != nil {
		return Analytics{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	harm := make(map[string]int, len(s.harmCounts))
	for code, n := range s.harmCounts {
		harm[code] = n
	}
	return Analytics{
		Stats:         stats,
		CrisisTurns:   s.crisisTurns,
		RelapseTurns:  s.relapseTurns,
		FallbackTurns: s.fallbackTurns,
		HarmCounts:    harm,
	}, nil
}

func (s *Service) noteCrisis() {
	s.mu.Lock()
	s.crisisTurns++
	s.mu.Unlock()
}

func (s *Service) noteTurn(relapse bool, harmCodes []string) {
	s.mu.Lock()
	if relapse {
		s.relapseTurns++
	}
	for _, code := range harmCodes {
		s.harmCounts[code]++
	}
	s.mu.Unlock()
}

func (s *Service) noteFallback() {
	s.mu.Lock()
	s.fallbackTurns++
	s.mu.Unlock()
}
