// Package identity issues the anonymous session token that keys
// conversation state. The token is a cookie minted once per client and
// optionally HMAC-signed so state cannot be hijacked by guessing IDs.
package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SessionCookieName = "sobrio_session"
	cookieMaxAge      = 30 * 24 * time.Hour
)

// Manager mints and validates session cookies. An empty secret disables
// signing; IDs are still random UUIDs.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	m := &Manager{}
	if secret != "" {
		m.secret = []byte(secret)
	}
	return m
}

// EnsureSession returns the caller's session ID, minting and setting a new
// cookie when the request carries none or carries one that fails
// validation.
func (m *Manager) EnsureSession(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if id, ok := m.parse(cookie.Value); ok {
			return id
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    m.encode(id),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// SessionID extracts a valid session ID from the request without minting
// one; the second return reports whether the request carried one.
func (m *Manager) SessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", false
	}
	return m.parse(cookie.Value)
}

func (m *Manager) encode(id string) string {
	if len(m.secret) == 0 {
		return id
	}
	return id + "." + m.sign(id)
}

func (m *Manager) parse(value string) (string, bool) {
	if len(m.secret) == 0 {
		if _, err := uuid.Parse(value); err != nil {
			return "", false
		}
		return value, true
	}

	id, sig, ok := strings.Cut(value, ".")
	if !ok {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	if subtle.ConstantTimeCompare([]byte(sig), []byte(m.sign(id))) != 1 {
		return "", false
	}
	return id, true
}

func (m *Manager) sign(id string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}
