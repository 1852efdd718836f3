// Package ai wraps the external text-completion service behind a uniform
// Completer interface. Failures of any kind surface as *BackendError so the
// fallback policy lives with the turn orchestrator, not at each call site.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/myrecovery365/sobrio/backend/internal/model/chat"
	"github.com/myrecovery365/sobrio/backend/internal/service/triage"
)

// PromptRequest is the composed input for one completion. Built and
// discarded per turn.
type PromptRequest struct {
	Kind        triage.PromptKind
	UserText    string
	History     []chat.Turn
	UserContext string
	HarmCodes   []string
	Anxiety     bool
}

// Completer sends one composed prompt to the completion service. A single
// attempt, no retry; the result is trimmed plain text.
type Completer interface {
	Complete(ctx context.Context, req PromptRequest) (string, error)
}

// Failure kinds reported by BackendError.
const (
	FailureTimeout     = "timeout"
	FailureUnavailable = "unavailable"
	FailureMalformed   = "malformed"
)

// BackendError marks any completion failure: unreachable service, rate
// limiting, timeout, or malformed output.
type BackendError struct {
	Kind string
	Err  error
}

func (e *BackendError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("backend %s", e.Kind)
	}
	return fmt.Sprintf("backend %s: %v", e.Kind, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// wrapErr classifies a raw provider error.
func wrapErr(err error) *BackendError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &BackendError{Kind: FailureTimeout, Err: err}
	}
	return &BackendError{Kind: FailureUnavailable, Err: err}
}
