package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionParams() Params {
	return Params{
		AdminEmail:    "admin@example.com",
		SessionSecret: "session-test-secret",
		SessionTTL:    time.Hour,
	}
}

func clientRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7")
	r.Header.Set("User-Agent", "test-agent")
	r.Header.Set("Accept-Language", "en-US")
	return r
}

// createSession mints a session for r and copies the cookie onto it, as a
// browser would on the next request.
func createSession(t *testing.T, m *SessionManager, r *http.Request) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, m.Create(w, r))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	r.AddCookie(cookies[0])
	return cookies[0]
}

func TestSessionManager_CreateSetsCookieAttributes(t *testing.T) {
	m := NewSessionManager(sessionParams())
	r := clientRequest(t, "/admin/login")
	cookie := createSession(t, m, r)

	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.False(t, cookie.Secure, "plain-HTTP request stays non-secure")
}

func TestSessionManager_SecureCookieBehindTLSProxy(t *testing.T) {
	m := NewSessionManager(sessionParams())
	r := clientRequest(t, "/admin/login")
	r.Header.Set("X-Forwarded-Proto", "https")
	cookie := createSession(t, m, r)
	assert.True(t, cookie.Secure)
}

func TestSessionManager_RoundTrip(t *testing.T) {
	m := NewSessionManager(sessionParams())
	r := clientRequest(t, "/admin")
	createSession(t, m, r)

	session := m.Get(r)
	require.NotNil(t, session)
	assert.Equal(t, "admin@example.com", session.Subject)
	assert.Greater(t, session.ExpiresAt, session.IssuedAt)
}

func TestSessionManager_GetWithoutCookie(t *testing.T) {
	m := NewSessionManager(sessionParams())
	assert.Nil(t, m.Get(clientRequest(t, "/admin")))
}

func TestSessionManager_FingerprintMismatchRejects(t *testing.T) {
	m := NewSessionManager(sessionParams())
	r := clientRequest(t, "/admin")
	cookie := createSession(t, m, r)

	// Replay the cookie from a different client context.
	other := clientRequest(t, "/admin")
	other.Header.Set("User-Agent", "different-agent")
	other.AddCookie(cookie)
	assert.Nil(t, m.Get(other), "stolen cookie fails under a different fingerprint")
}

func TestSessionManager_ExpiredSessionRejected(t *testing.T) {
	m := NewSessionManager(sessionParams())
	r := clientRequest(t, "/admin")
	createSession(t, m, r)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Nil(t, m.Get(r))
}

func TestSessionManager_DestroyExpiresCookie(t *testing.T) {
	m := NewSessionManager(sessionParams())
	w := httptest.NewRecorder()
	m.Destroy(w, clientRequest(t, "/admin/logout"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestSessionManager_DestroyIsIdempotent(t *testing.T) {
	m := NewSessionManager(sessionParams())
	r := clientRequest(t, "/admin/logout")
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		m.Destroy(w, r)
		assert.Len(t, w.Result().Cookies(), 1)
	}
}

func TestSessionManager_Assert(t *testing.T) {
	m := NewSessionManager(sessionParams())

	_, err := m.Assert(clientRequest(t, "/admin"))
	assert.ErrorIs(t, err, ErrUnauthorized)

	r := clientRequest(t, "/admin")
	createSession(t, m, r)
	session, err := m.Assert(r)
	require.NoError(t, err)
	assert.NotNil(t, session)
}
