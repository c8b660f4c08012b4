package service

import (
	"context"
	"sort"

	"github.com/tsirdo8/mini-social/internal/model"
	"github.com/tsirdo8/mini-social/internal/repository"
)

// memUserStore is an in-memory UserStore for tests.
type memUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]*model.User)}
}

func (s *memUserStore) Create(ctx context.Context, user *model.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.nextID++
	user.ID = s.nextID
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) List(ctx context.Context) ([]model.User, error) {
	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, *s.users[id])
	}
	return users, nil
}

func (s *memUserStore) Update(ctx context.Context, user *model.User) (*model.User, error) {
	if _, ok := s.users[user.ID]; !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *user
	s.users[user.ID] = &cp
	out := cp
	return &out, nil
}

type reactionKey struct {
	postID int64
	userID int64
}

// memPostStore is an in-memory PostStore for tests. Reactions are a single
// map entry per (post, user), mirroring the one-row-per-pair schema.
type memPostStore struct {
	posts     map[int64]*model.Post
	authors   map[int64]model.AuthorSummary
	reactions map[reactionKey]string
	nextID    int64
}

func newMemPostStore() *memPostStore {
	return &memPostStore{
		posts:     make(map[int64]*model.Post),
		authors:   make(map[int64]model.AuthorSummary),
		reactions: make(map[reactionKey]string),
	}
}

func (s *memPostStore) addAuthor(a model.AuthorSummary) {
	s.authors[a.ID] = a
}

func (s *memPostStore) Create(ctx context.Context, post *model.Post) (*model.PostResponse, error) {
	s.nextID++
	post.ID = s.nextID
	cp := *post
	s.posts[post.ID] = &cp
	return s.response(post.ID)
}

func (s *memPostStore) GetByID(ctx context.Context, id int64) (*model.PostResponse, error) {
	return s.response(id)
}

func (s *memPostStore) List(ctx context.Context) ([]model.PostResponse, error) {
	ids := make([]int64, 0, len(s.posts))
	for id := range s.posts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	posts := make([]model.PostResponse, 0, len(ids))
	for _, id := range ids {
		p, err := s.response(id)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, nil
}

func (s *memPostStore) AuthorID(ctx context.Context, id int64) (int64, error) {
	p, ok := s.posts[id]
	if !ok {
		return 0, repository.ErrPostNotFound
	}
	return p.AuthorID, nil
}

func (s *memPostStore) Update(ctx context.Context, id int64, title, content string) (*model.PostResponse, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	p.Title = title
	p.Content = content
	return s.response(id)
}

func (s *memPostStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.posts[id]; !ok {
		return repository.ErrPostNotFound
	}
	delete(s.posts, id)
	for key := range s.reactions {
		if key.postID == id {
			delete(s.reactions, key)
		}
	}
	return nil
}

func (s *memPostStore) ToggleReaction(ctx context.Context, postID, userID int64, kind string) (*model.PostResponse, error) {
	if _, ok := s.posts[postID]; !ok {
		return nil, repository.ErrPostNotFound
	}

	key := reactionKey{postID: postID, userID: userID}
	if current, ok := s.reactions[key]; ok && current == kind {
		delete(s.reactions, key)
	} else {
		s.reactions[key] = kind
	}

	return s.response(postID)
}

func (s *memPostStore) response(id int64) (*model.PostResponse, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}

	resp := &model.PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    s.authors[p.AuthorID],
		Reactions: model.Reactions{Likes: []int64{}, Dislikes: []int64{}},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for key, kind := range s.reactions {
		if key.postID != id {
			continue
		}
		if kind == model.ReactionLike {
			resp.Reactions.Likes = append(resp.Reactions.Likes, key.userID)
		} else {
			resp.Reactions.Dislikes = append(resp.Reactions.Dislikes, key.userID)
		}
	}
	return resp, nil
}
