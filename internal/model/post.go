package model

import "time"

// Reaction kinds supported on a post.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Post represents a post row in the database.
type Post struct {
	ID        int64
	Title     string
	Content   string
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reactions holds the per-kind sets of reacting user IDs. A user ID appears
// in at most one of the two slices; the post_reactions schema makes anything
// else unrepresentable.
type Reactions struct {
	Likes    []int64 `json:"likes"`
	Dislikes []int64 `json:"dislikes"`
}

// AuthorSummary is the author projection joined into post reads.
type AuthorSummary struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
}

// PostResponse represents a post with its author summary and reaction sets.
type PostResponse struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Author    AuthorSummary `json:"author"`
	Reactions Reactions     `json:"reactions"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// PostRequest represents a create or update post request.
type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReactionRequest represents a POST /posts/{id}/reactions body.
type ReactionRequest struct {
	Type string `json:"type"`
}
