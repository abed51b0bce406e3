package api

import (
	"net/http"
	netmail "net/mail"
	"strings"
	"unicode/utf8"

	"github.com/zyna-b/portfolio/mail"
)

func toMailMessage(f contactForm) mail.ContactMessage {
	return mail.ContactMessage{
		Name:    f.Name,
		Email:   f.Email,
		Subject: f.Subject,
		Message: f.Message,
	}
}

type contactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (f contactForm) validate() []string {
	var problems []string
	if utf8.RuneCountInString(f.Name) < 2 {
		problems = append(problems, "Name must be at least 2 characters.")
	}
	if _, err := netmail.ParseAddress(f.Email); err != nil {
		problems = append(problems, "A valid email address is required.")
	}
	if utf8.RuneCountInString(f.Subject) < 5 {
		problems = append(problems, "Subject must be at least 5 characters.")
	}
	if utf8.RuneCountInString(f.Message) < 10 {
		problems = append(problems, "Message must be at least 10 characters.")
	}
	return problems
}

func (a *API) ContactPage(w http.ResponseWriter, r *http.Request) {
	faqs, _ := a.svc.FAQs()
	a.renderPage(w, r, http.StatusOK, "contact", map[string]any{
		"FAQs": faqs,
		"Form": contactForm{},
	})
}

// SubmitContact validates the form and forwards it through the mailer.
// Validation failures re-render the form with the submitted values intact.
func (a *API) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	form := contactForm{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Subject: strings.TrimSpace(r.PostFormValue("subject")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}
	faqs, _ := a.svc.FAQs()

	if problems := form.validate(); len(problems) > 0 {
		a.renderPage(w, r, http.StatusUnprocessableEntity, "contact", map[string]any{
			"FAQs":  faqs,
			"Form":  form,
			"Flash": map[string]string{"Kind": "error", "Message": strings.Join(problems, " ")},
		})
		return
	}

	a.audit.log(AuditContactMessage, r, form.Email, "subject "+form.Subject)
	if err := a.mailer.SendContactMessage(toMailMessage(form)); err != nil {
		a.audit.logger.ErrorContext(r.Context(), "sending contact mail", "error", err)
		a.renderPage(w, r, http.StatusInternalServerError, "contact", map[string]any{
			"FAQs":  faqs,
			"Form":  form,
			"Flash": map[string]string{"Kind": "error", "Message": "Something went wrong sending your message. Please try again later."},
		})
		return
	}

	a.renderPage(w, r, http.StatusOK, "contact", map[string]any{
		"FAQs":  faqs,
		"Form":  contactForm{},
		"Flash": map[string]string{"Kind": "success", "Message": "Thanks for reaching out! I will get back to you soon."},
	})
}
