package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tsirdo8/mini-social/internal/middleware"
	"github.com/tsirdo8/mini-social/internal/model"
	"github.com/tsirdo8/mini-social/internal/service"
)

var errInvalidPostID = errors.New("invalid post id")

// PostHandler handles HTTP requests for posts and reactions.
type PostHandler struct {
	service *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{service: svc}
}

// HandleList handles GET /posts requests.
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, messageResponse("server error while fetching posts"))
		return
	}
	if posts == nil {
		posts = []model.PostResponse{}
	}

	writeJSON(w, http.StatusOK, posts)
}

// HandleCreate handles POST /posts requests.
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("you dont have permition"))
		return
	}

	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}

	post, err := h.service.Create(r.Context(), identity.UserID, req)
	if err != nil {
		h.writePostError(w, err, "creating")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "post created successfully",
		"post":    post,
	})
}

// HandleGet handles GET /posts/{id} requests.
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		return
	}

	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writePostError(w, err, "fetching")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// HandleUpdate handles PUT /posts/{id} requests.
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("you dont have permition"))
		return
	}

	id, err := postIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		return
	}

	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}

	post, err := h.service.Update(r.Context(), identity.UserID, id, req)
	if err != nil {
		h.writePostError(w, err, "updating")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "post updated successfully",
		"post":    post,
	})
}

// HandleDelete handles DELETE /posts/{id} requests.
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("you dont have permition"))
		return
	}

	id, err := postIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, id); err != nil {
		h.writePostError(w, err, "deleting")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("post deleted successfully"))
}

// HandleToggleReaction handles POST /posts/{id}/reactions requests.
func (h *PostHandler) HandleToggleReaction(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("you dont have permition"))
		return
	}

	id, err := postIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid request body"))
		return
	}

	post, err := h.service.ToggleReaction(r.Context(), identity.UserID, id, req.Type)
	if err != nil {
		h.writePostError(w, err, "updating reaction on")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "reaction updated successfully",
		"post":    post,
	})
}

// postIDParam parses the {id} path parameter. A malformed id fails here,
// before any existence check.
func postIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidPostID
	}
	return id, nil
}

func decodePostRequest(w http.ResponseWriter, r *http.Request) (model.PostRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid request body"))
		return model.PostRequest{}, false
	}
	return req, true
}

func (h *PostHandler) writePostError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrContentRequired),
		errors.Is(err, service.ErrInvalidReactionType):
		writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, messageResponse(err.Error()))
	case errors.Is(err, service.ErrPostNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, messageResponse("server error while "+action+" post"))
	}
}
