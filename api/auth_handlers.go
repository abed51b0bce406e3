package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zyna-b/portfolio/auth"
)

// minLoginDuration is the floor on login response time. Padding every
// outcome to the same minimum masks the timing difference between the
// email check and the full key derivation.
const minLoginDuration = 350 * time.Millisecond

func (a *API) LoginPage(w http.ResponseWriter, r *http.Request) {
	redirectTo := ""
	if v := r.URL.Query().Get("redirect"); auth.SafeRedirectTarget(v) {
		redirectTo = v
	}
	a.renderPage(w, r, http.StatusOK, "admin_login", map[string]any{
		"Error":      "",
		"Email":      "",
		"RedirectTo": redirectTo,
	})
}

// Login verifies the submitted credentials and establishes a session.
// Every outcome, success or failure, takes at least minLoginDuration.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	startedAt := a.now()

	if err := r.ParseForm(); err != nil {
		a.loginError(w, r, startedAt, "", "", "Invalid form submission.")
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	redirectTo := r.PostFormValue("redirectTo")
	target := auth.ResolveRedirectTarget(redirectTo)

	key := auth.ClientIP(r.Header)

	if status := a.limiter.Status(key); status.Blocked {
		a.audit.log(AuditLoginRateLimited, r, email, "blocked before verification")
		a.loginError(w, r, startedAt, email, redirectTo,
			"Too many login attempts. Try again in "+formatRetryAfter(status.RetryAfter)+".")
		return
	}

	if email == "" || password == "" {
		a.loginError(w, r, startedAt, email, redirectTo, "Email and password are required.")
		return
	}

	if !a.params.VerifyCredentials(email, password) {
		status := a.limiter.RegisterFailure(key)
		a.audit.log(AuditLoginFailure, r, email, "invalid credentials")
		if status.Blocked {
			a.loginError(w, r, startedAt, email, redirectTo,
				"Too many login attempts. Try again in "+formatRetryAfter(status.RetryAfter)+".")
			return
		}
		a.loginError(w, r, startedAt, email, redirectTo, fmt.Sprintf(
			"Invalid email or password. %d %s remaining.",
			status.RemainingAttempts, pluralize("attempt", status.RemainingAttempts)))
		return
	}

	a.limiter.RegisterSuccess(key)
	if err := a.sessions.Create(w, r); err != nil {
		a.loginError(w, r, startedAt, email, redirectTo, "Could not establish a session.")
		return
	}
	writeCSRFCookie(w, r)
	a.audit.log(AuditLoginSuccess, r, a.params.AdminEmail, "session established")

	a.enforceMinimumDelay(startedAt)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	actor := ""
	if session := a.sessions.Get(r); session != nil {
		actor = session.Subject
	}
	a.sessions.Destroy(w, r)
	clearCSRFCookie(w, r)
	a.audit.log(AuditLogout, r, actor, "session destroyed")
	http.Redirect(w, r, auth.DefaultLoginPath, http.StatusSeeOther)
}

func (a *API) DashboardPage(w http.ResponseWriter, r *http.Request) {
	session := a.sessions.Get(r)
	if session == nil {
		// The gate redirects unauthenticated page requests before they
		// reach here; this guards direct handler use.
		http.Redirect(w, r, auth.DefaultLoginPath, http.StatusFound)
		return
	}

	projects, _ := a.svc.Projects()
	experiments, _ := a.svc.AIExperiments()
	services, _ := a.svc.Services()
	posts, _ := a.svc.BlogSummaries()

	data := map[string]any{
		"Email":          session.Subject,
		"SessionExpires": time.UnixMilli(session.ExpiresAt).UTC().Format(time.RFC1123),
		"Counts": map[string]int{
			"Projects":    len(projects),
			"Experiments": len(experiments),
			"Services":    len(services),
			"Posts":       len(posts),
		},
	}
	if a.audit.trail != nil {
		if entries, err := a.audit.trail.Recent(10); err == nil {
			data["AuditEntries"] = entries
		}
	}
	a.renderPage(w, r, http.StatusOK, "admin_dashboard", data)
}

// loginError re-renders the login page with a message, padding the
// response to the minimum duration first.
func (a *API) loginError(w http.ResponseWriter, r *http.Request, startedAt time.Time, email, redirectTo, msg string) {
	a.enforceMinimumDelay(startedAt)
	if !auth.SafeRedirectTarget(redirectTo) {
		redirectTo = ""
	}
	a.renderPage(w, r, http.StatusUnauthorized, "admin_login", map[string]any{
		"Error":      msg,
		"Email":      email,
		"RedirectTo": redirectTo,
	})
}

func (a *API) enforceMinimumDelay(startedAt time.Time) {
	if remaining := minLoginDuration - a.now().Sub(startedAt); remaining > 0 {
		a.sleep(remaining)
	}
}

// formatRetryAfter renders a duration for the lockout message, rounding up
// to the coarsest sensible unit.
func formatRetryAfter(d time.Duration) string {
	if d <= 0 {
		return "a moment"
	}
	if d < time.Minute {
		secs := int((d + time.Second - 1) / time.Second)
		return fmt.Sprintf("%d %s", secs, pluralize("second", secs))
	}
	if d < time.Hour {
		mins := int((d + time.Minute - 1) / time.Minute)
		return fmt.Sprintf("%d %s", mins, pluralize("minute", mins))
	}
	hours := int((d + time.Hour - 1) / time.Hour)
	return fmt.Sprintf("%d %s", hours, pluralize("hour", hours))
}

func pluralize(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
