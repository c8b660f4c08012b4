package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tsirdo8/mini-social/internal/middleware"
	"github.com/tsirdo8/mini-social/internal/model"
	"github.com/tsirdo8/mini-social/internal/service"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleSignUp handles POST /auth/sign-up requests.
func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid request body"))
		return
	}

	if _, err := h.service.SignUp(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, service.ErrFullNameRequired),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, messageResponse("server error while registering user"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse("user registered successfully"))
}

// HandleSignIn handles POST /auth/sign-in requests. The success body is the
// bare JSON-encoded token string.
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid request body"))
		return
	}

	token, err := h.service.SignIn(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsMissing),
			errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, messageResponse("server error while signing in"))
		}
		return
	}

	writeJSON(w, http.StatusOK, token)
}

// HandleCurrentUser handles GET /auth/current-user requests.
func (h *AuthHandler) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("you dont have permition"))
		return
	}

	user, err := h.service.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, messageResponse("server error while fetching user"))
		return
	}

	writeJSON(w, http.StatusOK, user)
}
