package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gateSetup(t *testing.T) (*RequestGate, *SessionManager) {
	t.Helper()
	p := sessionParams()
	return NewRequestGate(p), NewSessionManager(p)
}

func serveGate(g *RequestGate, r *http.Request) *httptest.ResponseRecorder {
	passed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("passed"))
	})
	w := httptest.NewRecorder()
	g.Middleware(passed).ServeHTTP(w, r)
	return w
}

func TestGate_PublicPathsPassThrough(t *testing.T) {
	g, _ := gateSetup(t)
	for _, path := range []string{"/", "/blog", "/portfolio", "/contact"} {
		w := serveGate(g, clientRequest(t, path))
		assert.Equal(t, http.StatusOK, w.Code, "path %s", path)
	}
}

func TestGate_NoSessionRedirectsToLogin(t *testing.T) {
	g, _ := gateSetup(t)
	w := serveGate(g, clientRequest(t, "/admin/dashboard"))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login?redirect=%2Fadmin%2Fdashboard", w.Header().Get("Location"))
}

func TestGate_RedirectPreservesQuery(t *testing.T) {
	g, _ := gateSetup(t)
	w := serveGate(g, clientRequest(t, "/admin/blogs?x=1"))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login?redirect=%2Fadmin%2Fblogs%3Fx%3D1", w.Header().Get("Location"))
}

func TestGate_ValidSessionPassesThrough(t *testing.T) {
	g, m := gateSetup(t)
	r := clientRequest(t, "/admin/dashboard")
	createSession(t, m, r)

	w := serveGate(g, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGate_FingerprintMismatchRedirects(t *testing.T) {
	g, m := gateSetup(t)
	r := clientRequest(t, "/admin/dashboard")
	cookie := createSession(t, m, r)

	other := clientRequest(t, "/admin/dashboard")
	other.Header.Set("User-Agent", "other-agent")
	other.AddCookie(cookie)

	w := serveGate(g, other)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/admin/login")
}

func TestGate_GarbageCookieRedirects(t *testing.T) {
	g, _ := gateSetup(t)
	r := clientRequest(t, "/admin/dashboard")
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not.a.token"})

	w := serveGate(g, r)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestGate_LoginPageWithoutSessionPasses(t *testing.T) {
	g, _ := gateSetup(t)
	w := serveGate(g, clientRequest(t, "/admin/login"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGate_LoginPageWithSessionRedirectsToAdmin(t *testing.T) {
	g, m := gateSetup(t)
	r := clientRequest(t, "/admin/login")
	createSession(t, m, r)

	w := serveGate(g, r)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestGate_LoginPageWithInvalidSessionPasses(t *testing.T) {
	// An invalid cookie on the login page is treated as logged out, so the
	// form still renders.
	g, _ := gateSetup(t)
	r := clientRequest(t, "/admin/login")
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})

	w := serveGate(g, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGate_LoginPathItselfNeverCarriesRedirectParam(t *testing.T) {
	g, _ := gateSetup(t)
	w := serveGate(g, clientRequest(t, "/admin/settings"))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "redirect=")

	// The gate validates and shares the same token code as the session
	// manager, so an expired token behaves like no token at all.
}

func TestResolveRedirectTarget(t *testing.T) {
	cases := map[string]string{
		"/admin/blogs?x=1":     "/admin/blogs?x=1",
		"//evil.com":           "/admin",
		"https://evil.com":     "/admin",
		"javascript:alert(1)":  "/admin",
		"":                     "/admin",
		"   ":                  "/admin",
		"/admin":               "/admin",
		"relative/no/slash":    "/admin",
	}
	for input, want := range cases {
		assert.Equal(t, want, ResolveRedirectTarget(input), "input %q", input)
	}
}

func TestSafeRedirectTarget(t *testing.T) {
	assert.True(t, SafeRedirectTarget("/admin/blogs"))
	assert.False(t, SafeRedirectTarget("//evil.com"))
	assert.False(t, SafeRedirectTarget("http://evil.com"))
	assert.False(t, SafeRedirectTarget(""))
}
