package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// SessionCookieName is the admin session cookie.
const SessionCookieName = "zh_admin_session"

// ErrUnauthorized is the internal signal raised when a privileged operation
// runs without a valid session. Boundaries translate it to a generic
// unauthorized result; it never reaches an end user verbatim.
var ErrUnauthorized = errors.New("unauthorized")

// SessionManager mints, reads, and destroys the cookie-backed admin
// session. There is no server-side session state: the signed token is the
// session.
type SessionManager struct {
	params Params
	now    func() time.Time
}

// NewSessionManager returns a manager over the given params.
func NewSessionManager(p Params) *SessionManager {
	return &SessionManager{params: NewParams(p), now: time.Now}
}

// Params exposes the normalized parameters the manager was built with.
func (m *SessionManager) Params() Params {
	return m.params
}

// Create mints a token bound to the request's current fingerprint and
// writes the session cookie.
func (m *SessionManager) Create(w http.ResponseWriter, r *http.Request) error {
	now := m.now()
	payload := SessionPayload{
		Subject:     m.params.AdminEmail,
		IssuedAt:    now.UnixMilli(),
		ExpiresAt:   now.Add(m.params.SessionTTL).UnixMilli(),
		Fingerprint: m.params.FingerprintFromHeaders(r.Header),
	}
	token, err := EncodeToken(m.params.SessionSecret, payload)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   RequestIsSecure(r),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(m.params.SessionTTL.Seconds()),
	})
	return nil
}

// Get returns the session payload for the request, or nil when the cookie
// is absent or its token fails validation against the request's current
// fingerprint.
func (m *SessionManager) Get(r *http.Request) *SessionPayload {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	fingerprint := m.params.FingerprintFromHeaders(r.Header)
	return DecodeToken(m.params.SessionSecret, cookie.Value, fingerprint, m.now())
}

// Destroy deletes the session cookie. Calling it without a session is a
// no-op.
func (m *SessionManager) Destroy(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   RequestIsSecure(r),
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// Assert returns the session or ErrUnauthorized. Use it as the guard at
// the top of privileged operations.
func (m *SessionManager) Assert(r *http.Request) (*SessionPayload, error) {
	session := m.Get(r)
	if session == nil {
		return nil, ErrUnauthorized
	}
	return session, nil
}

// RequestIsSecure reports whether the request arrived over TLS, directly
// or via a terminating proxy.
func RequestIsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		return true
	}
	return strings.Contains(strings.ToLower(r.Header.Get("Forwarded")), "proto=https")
}
