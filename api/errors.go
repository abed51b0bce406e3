package api

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/zyna-b/portfolio/content"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ActionResult{Success: false, Message: msg})
}

// mapError translates service errors into HTTP responses. Validation
// failures carry their per-field messages back to the admin UI.
func mapError(w http.ResponseWriter, err error) {
	var verr *content.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, ActionResult{
			Success: false,
			Message: "validation failed",
			Errors:  verr.Messages,
		})
	case errors.Is(err, content.ErrSlugTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, content.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
