package chat

import (
	"fmt"
	"strings"

	chatmodel "github.com/myrecovery365/sobrio/backend/internal/model/chat"
)

// firstInteractionMarker stands in for the context summary until the
// session has any history to summarize.
const firstInteractionMarker = "First conversation."

// ComposeContext summarizes the session for prompt injection: total
// message count plus the most recent three distinct labels, newest first.
// Order comes straight from the recorded sequence, never re-sorted.
func ComposeContext(sess chatmodel.Session) string {
	if sess.MessageCount == 0 {
		return firstInteractionMarker
	}

	summary := fmt.Sprintf("Message count: %d.", sess.MessageCount)
	if recent := recentDistinct(sess.Topics, 3); len(recent) > 0 {
		summary += " Topics: " + strings.Join(recent, ", ") + "."
	}
	return summary
}

// recentDistinct walks the label sequence from the newest end and keeps
// the first occurrence of each label, up to limit.
func recentDistinct(labels []string, limit int) []string {
	if len(labels) == 0 {
		return nil
	}

	seen := make(map[string]bool, limit)
	var out []string
	for i := len(labels) - 1; i >= 0 && len(out) < limit; i-- {
		if seen[labels[i]] {
			continue
		}
		seen[labels[i]] = true
		out = append(out, labels[i])
	}
	return out
}
