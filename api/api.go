// Package api wires the HTTP surface of the portfolio site: the public
// pages, the admin pages behind the session gate, and the JSON admin API.
package api

import (
	_ "embed"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"

	"github.com/zyna-b/portfolio/audit"
	"github.com/zyna-b/portfolio/auth"
	"github.com/zyna-b/portfolio/content"
	"github.com/zyna-b/portfolio/internal/config"
	"github.com/zyna-b/portfolio/mail"
	"github.com/zyna-b/portfolio/web"
)

//go:embed openapi.yaml
var openapiSpec []byte

// API holds the dependencies needed by the page and REST handlers.
type API struct {
	params    auth.Params
	sessions  *auth.SessionManager
	gate      *auth.RequestGate
	limiter   *auth.LoginLimiter
	svc       *content.Service
	renderer  *web.Renderer
	audit     *auditLogger
	mailer    mail.Mailer
	uploadDir string

	// Injectable for tests.
	sleep func(time.Duration)
	now   func() time.Time
}

// Option configures the API instance.
type Option func(*API)

// WithLogger sets the structured logger for audit events.
// If not set, a default JSON logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		replaced := newAuditLogger(logger, a.audit.trail)
		replaced.metrics = a.audit.metrics
		a.audit = replaced
	}
}

// WithAuditTrail persists audit events to the given store in addition to
// the structured log.
func WithAuditTrail(trail *audit.Store) Option {
	return func(a *API) {
		a.audit.trail = trail
	}
}

// WithAlerts enables anomaly detection over audit events.
func WithAlerts(fn AlertFunc) Option {
	return func(a *API) {
		a.audit.metrics = newMetricsCollector(fn)
	}
}

// WithMailer sets the outbound mailer for the contact form.
func WithMailer(m mail.Mailer) Option {
	return func(a *API) {
		a.mailer = m
	}
}

// New creates a new API instance.
func New(cfg *config.Config, svc *content.Service, renderer *web.Renderer, opts ...Option) *API {
	params := auth.NewParams(auth.Params{
		AdminEmail:      cfg.Auth.AdminEmail,
		PasswordHash:    cfg.Auth.PasswordHash,
		PasswordSalt:    cfg.Auth.PasswordSalt,
		Iterations:      cfg.Auth.Iterations,
		Digest:          auth.Digest(cfg.Auth.Digest),
		SessionSecret:   cfg.Auth.SessionSecret,
		FingerprintSalt: cfg.Auth.FingerprintSalt,
		SessionTTL:      cfg.Auth.SessionTTL,
	})

	a := &API{
		params:   params,
		sessions: auth.NewSessionManager(params),
		gate:     auth.NewRequestGate(params),
		limiter: auth.NewLoginLimiter(auth.LimiterConfig{
			MaxAttempts: cfg.Auth.MaxAttempts,
			Window:      cfg.Auth.Window,
			Block:       cfg.Auth.Block,
		}),
		svc:       svc,
		renderer:  renderer,
		audit:     newAuditLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)), nil),
		mailer:    mail.New(cfg.SMTP, slog.Default()),
		uploadDir: cfg.Server.UploadDir,
		sleep:     time.Sleep,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Router returns a chi.Router with all routes mounted: public pages,
// gated admin pages, and the JSON admin API under /api/v1.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(SecurityHeaders)
	r.Use(a.gate.Middleware)

	// Public pages.
	r.Get("/", a.HomePage)
	r.Get("/about", a.AboutPage)
	r.Get("/portfolio", a.PortfolioPage)
	r.Get("/services", a.ServicesPage)
	r.Get("/ai-experiments", a.AIExperimentsPage)
	r.Get("/blog", a.BlogPage)
	r.Get("/blog/{slug}", a.BlogPostPage)
	r.Get("/contact", a.ContactPage)
	r.Post("/contact", a.SubmitContact)

	if static, err := web.StaticHandler(); err == nil {
		r.Handle("/static/*", static)
	}
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(a.uploadDir))))

	// Admin pages. The request gate has already redirected unauthenticated
	// requests, so these handlers can assume a session except on the login
	// page itself.
	r.Route("/admin", func(r chi.Router) {
		r.Get("/", a.DashboardPage)
		r.Get("/login", a.LoginPage)
		r.Post("/login", a.Login)
		r.Post("/logout", a.Logout)
	})

	// JSON admin API.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/yaml")
			w.Write(openapiSpec)
		})

		r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
			SpecURL: "/api/v1/openapi.yaml",
			Path:    "api/v1/docs",
		}, nil))

		r.Handle("/redoc*", middleware.Redoc(middleware.RedocOpts{
			SpecURL: "/api/v1/openapi.yaml",
			Path:    "api/v1/redoc",
		}, nil))

		r.Route("/admin", func(r chi.Router) {
			r.Use(a.RequireSession)
			r.Use(a.CSRFMiddleware)
			r.Put("/sections/{section}", a.SaveSection)
			r.Put("/hero", a.SaveHero)
			r.Put("/about", a.SaveAbout)
			r.Post("/blog", a.UpsertBlog)
			r.Delete("/blog/{id}", a.DeleteBlog)
			r.Post("/uploads/{kind}", a.Upload)
			r.Get("/audit", a.RecentAudit)
		})
	})

	r.NotFound(a.NotFoundPage)

	return r
}

// RequireSession rejects requests without a valid admin session. Pages get
// redirects from the request gate; the JSON API answers 401 instead.
func (a *API) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := a.sessions.Assert(r); err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
