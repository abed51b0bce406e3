package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zyna-b/portfolio/content"
)

const blogPageSize = 6

func (a *API) renderPage(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := a.renderer.Render(w, status, page, data); err != nil {
		a.audit.logger.ErrorContext(r.Context(), "rendering page", "page", page, "error", err)
	}
}

func (a *API) HomePage(w http.ResponseWriter, r *http.Request) {
	site, err := a.svc.Site()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	projects, _ := a.svc.Projects()
	if len(projects) > 3 {
		projects = projects[:3]
	}
	a.renderPage(w, r, http.StatusOK, "home", map[string]any{
		"Hero":             site.Hero,
		"FeaturedProjects": projects,
	})
}

func (a *API) AboutPage(w http.ResponseWriter, r *http.Request) {
	site, err := a.svc.Site()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	experiences, _ := a.svc.Experiences()
	skills, _ := a.svc.Skills()
	certifications, _ := a.svc.Certifications()
	a.renderPage(w, r, http.StatusOK, "about", map[string]any{
		"About":          site.About,
		"Experiences":    experiences,
		"Skills":         skills,
		"Certifications": certifications,
	})
}

func (a *API) PortfolioPage(w http.ResponseWriter, r *http.Request) {
	projects, err := a.svc.Projects()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	a.renderPage(w, r, http.StatusOK, "portfolio", map[string]any{"Projects": projects})
}

func (a *API) ServicesPage(w http.ResponseWriter, r *http.Request) {
	services, err := a.svc.Services()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	a.renderPage(w, r, http.StatusOK, "services", map[string]any{"Services": services})
}

func (a *API) AIExperimentsPage(w http.ResponseWriter, r *http.Request) {
	experiments, err := a.svc.AIExperiments()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	a.renderPage(w, r, http.StatusOK, "ai_experiments", map[string]any{"Experiments": experiments})
}

func (a *API) BlogPage(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	result, err := a.svc.BlogPageOf(page, blogPageSize)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	a.renderPage(w, r, http.StatusOK, "blog", map[string]any{"Page": result})
}

func (a *API) BlogPostPage(w http.ResponseWriter, r *http.Request) {
	post, err := a.svc.BlogBySlug(chi.URLParam(r, "slug"))
	if errors.Is(err, content.ErrNotFound) {
		a.NotFoundPage(w, r)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	a.renderPage(w, r, http.StatusOK, "blog_post", map[string]any{"Post": post})
}

func (a *API) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	a.renderPage(w, r, http.StatusNotFound, "not_found", nil)
}
