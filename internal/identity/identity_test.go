package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEnsureSessionMintsAndRoundTrips(t *testing.T) {
	m := NewManager("")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/chat", nil)
	id := m.EnsureSession(w, r)
	if id == "" {
		t.Fatal("expected minted session id")
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}

	// Replaying the cookie yields the same id and no new cookie.
	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodPost, "/chat", nil)
	r2.AddCookie(cookies[0])
	if got := m.EnsureSession(w2, r2); got != id {
		t.Fatalf("expected stable session id, got %q want %q", got, id)
	}
	if len(w2.Result().Cookies()) != 0 {
		t.Fatal("valid cookie must not be reissued")
	}
}

func TestEnsureSessionRejectsTamperedSignature(t *testing.T) {
	m := NewManager("topsecret")

	w := httptest.NewRecorder()
	id := m.EnsureSession(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
	cookie := w.Result().Cookies()[0]

	tampered := *cookie
	tampered.Value += "00"

	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodPost, "/chat", nil)
	r2.AddCookie(&tampered)
	if got := m.EnsureSession(w2, r2); got == id {
		t.Fatal("tampered cookie must mint a fresh session")
	}
}

func TestSessionIDWithoutCookie(t *testing.T) {
	m := NewManager("")
	if _, ok := m.SessionID(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatal("expected no session without cookie")
	}
}
