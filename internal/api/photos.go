package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxPhotoBytes = 10 << 20 // 10 MB

// PhotoHandler serves uploaded family photos.
type PhotoHandler struct {
	photoDir string
}

// NewPhotoHandler creates a handler rooted at the photo directory.
func NewPhotoHandler(photoDir string) *PhotoHandler {
	return &PhotoHandler{photoDir: photoDir}
}

// safeName validates that the filename is a plain name (no path
// separators, no traversal) and returns the absolute path under the
// photo dir.
func (h *PhotoHandler) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	abs := filepath.Join(h.photoDir, cleaned)
	if !strings.HasPrefix(abs, h.photoDir+string(os.PathSeparator)) && abs != h.photoDir {
		return "", fmt.Errorf("path escapes photo directory")
	}
	return abs, nil
}

// ServeFile handles GET /photos/{filename}.
func (h *PhotoHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	abs, err := h.safeName(filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}

// UploadPhoto handles POST /family/{id}/photo (multipart/form-data,
// field "photo"). The file is stored as "<token>_<original-name>" and
// recorded on the member.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)

	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("photo too large or invalid multipart"))
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'photo' field in multipart form"))
		return
	}
	defer file.Close()

	m, err := h.family.AttachPhoto(chi.URLParam(r, "id"), header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, PhotoResponse{
		Photo: m.Photo,
		URL:   "/photos/" + m.Photo,
	})
}
