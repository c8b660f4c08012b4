package handler

import (
	"net/http"

	"github.com/tsirdo8/mini-social/internal/media"
)

// maxUploadBytes bounds the multipart form size of a direct upload.
const maxUploadBytes = 10 << 20 // 10MB

// UploadHandler handles direct media uploads.
type UploadHandler struct {
	store media.Store
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(store media.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// HandleUpload handles POST /upload requests. The body is a multipart form
// with an "image" file field.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("no file uploaded"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("no file uploaded"))
		return
	}
	defer file.Close()

	ref, err := h.store.Save(r.Context(), header.Filename, file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, messageResponse("server error while uploading file"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "file uploaded successfully",
		"file": map[string]any{
			"path":         ref,
			"originalName": header.Filename,
			"size":         header.Size,
		},
	})
}
