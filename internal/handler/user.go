package handler

import (
	"errors"
	"net/http"

	"github.com/tsirdo8/mini-social/internal/middleware"
	"github.com/tsirdo8/mini-social/internal/model"
	"github.com/tsirdo8/mini-social/internal/service"
)

// maxAvatarBytes bounds the multipart form size of a profile update.
const maxAvatarBytes = 10 << 20 // 10MB

// UserHandler handles HTTP requests for user listing and profile updates.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleList handles GET /users requests.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, messageResponse("server error while fetching users"))
		return
	}
	if users == nil {
		users = []model.UserResponse{}
	}

	writeJSON(w, http.StatusOK, users)
}

// HandleUpdate handles PUT /users requests. The body is a multipart form with
// optional fullName and email fields and an optional avatar file.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("you dont have permition"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		// Field-only updates may arrive urlencoded.
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, messageResponse("invalid request body"))
			return
		}
	}

	var req model.UpdateUserRequest
	if values, ok := r.Form["fullName"]; ok && len(values) > 0 {
		req.FullName = &values[0]
	}
	if values, ok := r.Form["email"]; ok && len(values) > 0 {
		req.Email = &values[0]
	}

	var avatar *service.AvatarUpload
	if file, header, err := r.FormFile("avatar"); err == nil {
		defer file.Close()
		avatar = &service.AvatarUpload{Name: header.Filename, Data: file}
	}

	user, err := h.service.Update(r.Context(), identity.UserID, req, avatar)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBlankFullName),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, messageResponse("server error while updating user"))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "user updated successfully",
		"user":    user,
	})
}
