package service

import (
	"context"
	"errors"
	"strings"

	"github.com/tsirdo8/mini-social/internal/model"
	"github.com/tsirdo8/mini-social/internal/repository"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrContentRequired     = errors.New("content is required")
	ErrPostNotFound        = errors.New("post not found")
	ErrForbidden           = errors.New("you do not have permission to modify this post")
	ErrInvalidReactionType = errors.New("invalid reaction type")
)

// PostStore is the persistence surface the post service needs.
// *repository.PostRepository satisfies it.
type PostStore interface {
	Create(ctx context.Context, post *model.Post) (*model.PostResponse, error)
	GetByID(ctx context.Context, id int64) (*model.PostResponse, error)
	List(ctx context.Context) ([]model.PostResponse, error)
	AuthorID(ctx context.Context, id int64) (int64, error)
	Update(ctx context.Context, id int64, title, content string) (*model.PostResponse, error)
	Delete(ctx context.Context, id int64) error
	ToggleReaction(ctx context.Context, postID, userID int64, kind string) (*model.PostResponse, error)
}

// PostService handles post CRUD and the reaction toggle.
type PostService struct {
	posts PostStore
}

// NewPostService creates a new PostService.
func NewPostService(posts PostStore) *PostService {
	return &PostService{posts: posts}
}

// List returns all posts, newest first, with joined authors.
func (s *PostService) List(ctx context.Context) ([]model.PostResponse, error) {
	return s.posts.List(ctx)
}

// Create validates the request and creates a post owned by the caller.
func (s *PostService) Create(ctx context.Context, caller int64, req model.PostRequest) (*model.PostResponse, error) {
	if err := validatePostFields(req); err != nil {
		return nil, err
	}

	return s.posts.Create(ctx, &model.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: caller,
	})
}

// Get returns a single post with joined author.
func (s *PostService) Get(ctx context.Context, id int64) (*model.PostResponse, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, translatePostErr(err)
	}
	return post, nil
}

// Update overwrites a post's title and content. Only the owning user may
// update; the ownership check happens before any write.
func (s *PostService) Update(ctx context.Context, caller, id int64, req model.PostRequest) (*model.PostResponse, error) {
	if err := validatePostFields(req); err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, caller, id); err != nil {
		return nil, err
	}

	post, err := s.posts.Update(ctx, id, req.Title, req.Content)
	if err != nil {
		return nil, translatePostErr(err)
	}
	return post, nil
}

// Delete removes a post permanently. Only the owning user may delete.
func (s *PostService) Delete(ctx context.Context, caller, id int64) error {
	if err := s.checkOwnership(ctx, caller, id); err != nil {
		return err
	}
	return translatePostErr(s.posts.Delete(ctx, id))
}

// ToggleReaction flips the caller's like or dislike on a post:
// no reaction + like -> liked, liked + like -> none, disliked + like -> liked,
// and symmetrically for dislike. The store guarantees the caller ends up in
// at most one of the two sets.
func (s *PostService) ToggleReaction(ctx context.Context, caller, postID int64, kind string) (*model.PostResponse, error) {
	if kind != model.ReactionLike && kind != model.ReactionDislike {
		return nil, ErrInvalidReactionType
	}

	post, err := s.posts.ToggleReaction(ctx, postID, caller, kind)
	if err != nil {
		return nil, translatePostErr(err)
	}
	return post, nil
}

func (s *PostService) checkOwnership(ctx context.Context, caller, id int64) error {
	authorID, err := s.posts.AuthorID(ctx, id)
	if err != nil {
		return translatePostErr(err)
	}
	if authorID != caller {
		return ErrForbidden
	}
	return nil
}

func validatePostFields(req model.PostRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(req.Content) == "" {
		return ErrContentRequired
	}
	return nil
}

func translatePostErr(err error) error {
	if errors.Is(err, repository.ErrPostNotFound) {
		return ErrPostNotFound
	}
	return err
}
