package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/zyna-b/portfolio/content"
)

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func (a *API) actor(r *http.Request) string {
	if session := a.sessions.Get(r); session != nil {
		return session.Subject
	}
	return ""
}

// SaveSection replaces one portfolio section wholesale. The section name
// comes from the URL; the body is the full new entry list.
func (a *API) SaveSection(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")

	var err error
	switch section {
	case "projects":
		var entries []content.Project
		if err = decodeBody(r, &entries); err == nil {
			err = a.svc.SaveProjects(entries)
		}
	case "ai-experiments":
		var entries []content.AIExperiment
		if err = decodeBody(r, &entries); err == nil {
			err = a.svc.SaveAIExperiments(entries)
		}
	case "experiences":
		var entries []content.Experience
		if err = decodeBody(r, &entries); err == nil {
			err = a.svc.SaveExperiences(entries)
		}
	case "skills":
		var entries []content.Skill
		if err = decodeBody(r, &entries); err == nil {
			err = a.svc.SaveSkills(entries)
		}
	case "certifications":
		var entries []content.Certification
		if err = decodeBody(r, &entries); err == nil {
			err = a.svc.SaveCertifications(entries)
		}
	case "services":
		var entries []content.ServiceEntry
		if err = decodeBody(r, &entries); err == nil {
			err = a.svc.SaveServices(entries)
		}
	case "faqs":
		var entries []content.FAQ
		if err = decodeBody(r, &entries); err == nil {
			err = a.svc.SaveFAQs(entries)
		}
	default:
		writeError(w, http.StatusNotFound, "unknown section "+section)
		return
	}

	if err != nil {
		mapError(w, err)
		return
	}
	a.audit.log(AuditContentSaved, r, a.actor(r), "section "+section)
	writeJSON(w, http.StatusOK, ActionResult{Success: true, Message: "Saved."})
}

func (a *API) SaveHero(w http.ResponseWriter, r *http.Request) {
	var hero content.HeroContent
	if err := decodeBody(r, &hero); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := a.svc.SaveHero(hero); err != nil {
		mapError(w, err)
		return
	}
	a.audit.log(AuditContentSaved, r, a.actor(r), "hero")
	writeJSON(w, http.StatusOK, ActionResult{Success: true, Message: "Saved."})
}

func (a *API) SaveAbout(w http.ResponseWriter, r *http.Request) {
	var about content.AboutContent
	if err := decodeBody(r, &about); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := a.svc.SaveAbout(about); err != nil {
		mapError(w, err)
		return
	}
	a.audit.log(AuditContentSaved, r, a.actor(r), "about")
	writeJSON(w, http.StatusOK, ActionResult{Success: true, Message: "Saved."})
}

// UpsertBlog creates or updates a blog post depending on whether the body
// carries an ID.
func (a *API) UpsertBlog(w http.ResponseWriter, r *http.Request) {
	var post content.BlogPost
	if err := decodeBody(r, &post); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	saved, err := a.svc.UpsertBlogPost(post)
	if err != nil {
		mapError(w, err)
		return
	}
	a.audit.log(AuditBlogUpserted, r, a.actor(r), "slug "+saved.Slug)
	writeJSON(w, http.StatusOK, ActionResult{Success: true, Message: "Saved.", Data: saved})
}

func (a *API) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.svc.DeleteBlogPost(id); err != nil {
		mapError(w, err)
		return
	}
	a.audit.log(AuditBlogDeleted, r, a.actor(r), "id "+id)
	writeJSON(w, http.StatusOK, ActionResult{Success: true, Message: "Deleted."})
}

// RecentAudit returns the newest audit trail entries for the dashboard.
func (a *API) RecentAudit(w http.ResponseWriter, r *http.Request) {
	if a.audit.trail == nil {
		writeJSON(w, http.StatusOK, ActionResult{Success: true, Data: []any{}})
		return
	}
	entries, err := a.audit.trail.Recent(50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ActionResult{Success: true, Data: entries})
}
