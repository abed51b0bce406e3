package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20 // 10 MiB

var folderSanitizer = regexp.MustCompile(`[^a-z0-9-_]`)

// documentExtensions are the only non-image upload types accepted.
var documentExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Upload stores a multipart file under the upload directory. kind selects
// the allow-list: "image" accepts image/* content, "document" accepts
// pdf/doc/docx. Files get a random name; the original name only
// contributes its extension.
func (a *API) Upload(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if kind != "image" && kind != "document" {
		writeError(w, http.StatusNotFound, "unknown upload kind "+kind)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or malformed upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")
	switch kind {
	case "image":
		if !strings.HasPrefix(contentType, "image/") {
			writeError(w, http.StatusUnsupportedMediaType, "only image uploads are accepted here")
			return
		}
	case "document":
		if _, ok := documentExtensions[ext]; !ok {
			writeError(w, http.StatusUnsupportedMediaType, "only pdf, doc, and docx uploads are accepted here")
			return
		}
	}

	folder := sanitizeFolderName(r.FormValue("folder"))
	dir := filepath.Join(a.uploadDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, "creating upload directory")
		return
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storing upload")
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		writeError(w, http.StatusInternalServerError, "storing upload")
		return
	}

	publicPath := "/uploads/" + name
	if folder != "" {
		publicPath = "/uploads/" + folder + "/" + name
	}
	a.audit.log(AuditFileUploaded, r, a.actor(r), fmt.Sprintf("%s %s", kind, publicPath))
	writeJSON(w, http.StatusOK, ActionResult{
		Success: true,
		Message: "Uploaded.",
		Data:    map[string]string{"path": publicPath},
	})
}

// sanitizeFolderName lowercases the requested folder and replaces anything
// outside [a-z0-9-_] so uploads can never escape the upload root.
func sanitizeFolderName(raw string) string {
	folder := strings.ToLower(strings.TrimSpace(raw))
	folder = folderSanitizer.ReplaceAllString(folder, "-")
	return strings.Trim(folder, "-")
}
