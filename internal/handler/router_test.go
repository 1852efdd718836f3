package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/myrecovery365/sobrio/backend/internal/config"
	chatservice "github.com/myrecovery365/sobrio/backend/internal/service/chat"
	"github.com/myrecovery365/sobrio/backend/internal/service/session"
)

func setupTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := session.NewMemoryStore(session.Config{})
	t.Cleanup(func() { store.Close() })

	svc := chatservice.NewService(store, nil, 0)
	return NewRouter(config.ServerConfig{AllowedOrigins: []string{"https://myrecovery365.com"}}, svc, nil)
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func TestLiveness(t *testing.T) {
	resp := get(t, setupTestRouter(t), "/")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Sobrio") {
		t.Fatalf("unexpected liveness body: %s", resp.Body.String())
	}
}

func TestChatUIServed(t *testing.T) {
	resp := get(t, setupTestRouter(t), "/chat-ui")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}
	if !strings.Contains(resp.Body.String(), "chat-box") {
		t.Fatal("widget markup missing")
	}
}

func TestResourcesList(t *testing.T) {
	resp := get(t, setupTestRouter(t), "/resources")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{"988", "741741", "SAMHSA"} {
		if !strings.Contains(body, want) {
			t.Fatalf("resources missing %q: %s", want, body)
		}
	}
}

func TestCORSHeadersForAllowedOrigin(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://myrecovery365.com")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://myrecovery365.com" {
		t.Fatalf("allow-origin: got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("allow-credentials: got %q", got)
	}
}

func TestCORSUnknownOriginGetsNoHeaders(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin for unknown origin: %q", got)
	}
}
