package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tsirdo8/mini-social/internal/middleware"
	"github.com/tsirdo8/mini-social/internal/model"
	"github.com/tsirdo8/mini-social/internal/repository"
	"github.com/tsirdo8/mini-social/internal/service"
)

const testSecret = "test-secret"

// fakeStore backs both the user and post store interfaces in memory so the
// full HTTP stack can run under httptest without a database.
type fakeStore struct {
	users      map[int64]*model.User
	posts      map[int64]*model.Post
	reactions  map[int64]map[int64]string // postID -> userID -> kind
	nextUserID int64
	nextPostID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[int64]*model.User),
		posts:     make(map[int64]*model.Post),
		reactions: make(map[int64]map[int64]string),
	}
}

func (s *fakeStore) Create(ctx context.Context, user *model.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.nextUserID++
	user.ID = s.nextUserID
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeStore) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	for _, u := range s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	return users, nil
}

func (s *fakeStore) Update(ctx context.Context, user *model.User) (*model.User, error) {
	if _, ok := s.users[user.ID]; !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *user
	s.users[user.ID] = &cp
	out := cp
	return &out, nil
}

func (s *fakeStore) CreatePost(ctx context.Context, post *model.Post) (*model.PostResponse, error) {
	s.nextPostID++
	post.ID = s.nextPostID
	cp := *post
	s.posts[post.ID] = &cp
	return s.postResponse(post.ID)
}

func (s *fakeStore) GetPostByID(ctx context.Context, id int64) (*model.PostResponse, error) {
	return s.postResponse(id)
}

func (s *fakeStore) ListPosts(ctx context.Context) ([]model.PostResponse, error) {
	var ids []int64
	for id := range s.posts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	var posts []model.PostResponse
	for _, id := range ids {
		p, err := s.postResponse(id)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, nil
}

func (s *fakeStore) AuthorID(ctx context.Context, id int64) (int64, error) {
	p, ok := s.posts[id]
	if !ok {
		return 0, repository.ErrPostNotFound
	}
	return p.AuthorID, nil
}

func (s *fakeStore) UpdatePost(ctx context.Context, id int64, title, content string) (*model.PostResponse, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	p.Title = title
	p.Content = content
	return s.postResponse(id)
}

func (s *fakeStore) DeletePost(ctx context.Context, id int64) error {
	if _, ok := s.posts[id]; !ok {
		return repository.ErrPostNotFound
	}
	delete(s.posts, id)
	delete(s.reactions, id)
	return nil
}

func (s *fakeStore) ToggleReaction(ctx context.Context, postID, userID int64, kind string) (*model.PostResponse, error) {
	if _, ok := s.posts[postID]; !ok {
		return nil, repository.ErrPostNotFound
	}
	if s.reactions[postID] == nil {
		s.reactions[postID] = make(map[int64]string)
	}
	if s.reactions[postID][userID] == kind {
		delete(s.reactions[postID], userID)
	} else {
		s.reactions[postID][userID] = kind
	}
	return s.postResponse(postID)
}

func (s *fakeStore) postResponse(id int64) (*model.PostResponse, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}

	resp := &model.PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Reactions: model.Reactions{Likes: []int64{}, Dislikes: []int64{}},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if author, ok := s.users[p.AuthorID]; ok {
		resp.Author = model.AuthorSummary{
			ID:       author.ID,
			FullName: author.FullName,
			Email:    author.Email,
			Avatar:   author.Avatar,
		}
	}
	for userID, kind := range s.reactions[id] {
		if kind == model.ReactionLike {
			resp.Reactions.Likes = append(resp.Reactions.Likes, userID)
		} else {
			resp.Reactions.Dislikes = append(resp.Reactions.Dislikes, userID)
		}
	}
	return resp, nil
}

// postStoreAdapter bridges the fakeStore's post methods onto service.PostStore,
// whose method names clash with the user-store ones.
type postStoreAdapter struct{ s *fakeStore }

func (a postStoreAdapter) Create(ctx context.Context, post *model.Post) (*model.PostResponse, error) {
	return a.s.CreatePost(ctx, post)
}
func (a postStoreAdapter) GetByID(ctx context.Context, id int64) (*model.PostResponse, error) {
	return a.s.GetPostByID(ctx, id)
}
func (a postStoreAdapter) List(ctx context.Context) ([]model.PostResponse, error) {
	return a.s.ListPosts(ctx)
}
func (a postStoreAdapter) AuthorID(ctx context.Context, id int64) (int64, error) {
	return a.s.AuthorID(ctx, id)
}
func (a postStoreAdapter) Update(ctx context.Context, id int64, title, content string) (*model.PostResponse, error) {
	return a.s.UpdatePost(ctx, id, title, content)
}
func (a postStoreAdapter) Delete(ctx context.Context, id int64) error {
	return a.s.DeletePost(ctx, id)
}
func (a postStoreAdapter) ToggleReaction(ctx context.Context, postID, userID int64, kind string) (*model.PostResponse, error) {
	return a.s.ToggleReaction(ctx, postID, userID, kind)
}

// newTestServer assembles the API routes over in-memory stores, mirroring the
// wiring in cmd/api.
func newTestServer() http.Handler {
	store := newFakeStore()

	authService := service.NewAuthService(store, testSecret, time.Hour)
	postService := service.NewPostService(postStoreAdapter{s: store})

	authHandler := NewAuthHandler(authService)
	postHandler := NewPostHandler(postService)

	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		r.Post("/sign-up", authHandler.HandleSignUp)
		r.Post("/sign-in", authHandler.HandleSignIn)
		r.With(middleware.JWTAuth(testSecret)).Get("/current-user", authHandler.HandleCurrentUser)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(testSecret))
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.HandleList)
			r.Post("/", postHandler.HandleCreate)
			r.Get("/{id}", postHandler.HandleGet)
			r.Put("/{id}", postHandler.HandleUpdate)
			r.Delete("/{id}", postHandler.HandleDelete)
			r.Post("/{id}/reactions", postHandler.HandleToggleReaction)
		})
	})
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return v
}

func signUpAndIn(t *testing.T, h http.Handler, fullName, email string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/auth/sign-up", "", model.SignUpRequest{
		FullName: fullName, Email: email, Password: "secret123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("sign-up status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/auth/sign-in", "", model.SignInRequest{
		Email: email, Password: "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("sign-in status = %d, body %s", rec.Code, rec.Body.String())
	}

	return decodeBody[string](t, rec)
}
