package auth

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Gate defaults.
const (
	DefaultProtectedPrefix = "/admin"
	DefaultLoginPath       = "/admin/login"
)

// RequestGate runs ahead of the admin routes. It recomputes the request
// fingerprint, validates the session cookie against it, and redirects
// unauthenticated requests to the login page (or already-authenticated
// requests away from it).
//
// The gate shares the fingerprint and token code with the session manager
// so the two validation paths cannot drift.
type RequestGate struct {
	params      Params
	prefix      string
	loginPath   string
	landingPath string
	now         func() time.Time
}

// NewRequestGate builds a gate protecting DefaultProtectedPrefix with
// DefaultLoginPath as its login page.
func NewRequestGate(p Params) *RequestGate {
	return &RequestGate{
		params:      NewParams(p),
		prefix:      DefaultProtectedPrefix,
		loginPath:   DefaultLoginPath,
		landingPath: DefaultProtectedPrefix,
		now:         time.Now,
	}
}

// Middleware wraps next with the gate's checks.
func (g *RequestGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if !strings.HasPrefix(path, g.prefix) {
			next.ServeHTTP(w, r)
			return
		}

		token := g.sessionToken(r)
		fingerprint := g.params.FingerprintFromHeaders(r.Header)

		if strings.HasPrefix(path, g.loginPath) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			if DecodeToken(g.params.SessionSecret, token, fingerprint, g.now()) != nil {
				// Already authenticated; no reason to show the login form.
				http.Redirect(w, r, g.landingPath, http.StatusFound)
				return
			}
			// Present but invalid: treat as logged out.
			next.ServeHTTP(w, r)
			return
		}

		if token == "" || DecodeToken(g.params.SessionSecret, token, fingerprint, g.now()) == nil {
			http.Redirect(w, r, g.loginRedirectURL(r), http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *RequestGate) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// loginRedirectURL builds the login URL, carrying the originally requested
// path+query as a redirect parameter when it is a safe relative target.
func (g *RequestGate) loginRedirectURL(r *http.Request) string {
	target := r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	if target == g.loginPath || !SafeRedirectTarget(target) {
		return g.loginPath
	}
	return g.loginPath + "?" + url.Values{"redirect": {target}}.Encode()
}

// SafeRedirectTarget reports whether value is a same-origin relative path.
// Protocol-relative ("//…") and absolute URLs are rejected to prevent open
// redirects.
func SafeRedirectTarget(value string) bool {
	return strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "//")
}

// ResolveRedirectTarget validates a user-supplied post-login redirect,
// falling back to the admin landing page for anything unsafe or empty.
func ResolveRedirectTarget(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || !SafeRedirectTarget(trimmed) {
		return DefaultProtectedPrefix
	}
	return trimmed
}
