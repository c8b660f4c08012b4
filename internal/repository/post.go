package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tsirdo8/mini-social/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

// postColumns selects a post row with its author summary joined in.
const postColumns = `
	p.id, p.title, p.content, p.created_at, p.updated_at,
	u.id, u.full_name, u.email, COALESCE(u.avatar, '')`

// PostRepository handles post and reaction persistence operations.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post and returns it with its author joined in.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) (*model.PostResponse, error) {
	query := `INSERT INTO posts (title, content, author_id) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, post.Title, post.Content, post.AuthorID)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a post with joined author and reaction sets.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*model.PostResponse, error) {
	query := `SELECT ` + postColumns + ` FROM posts p JOIN users u ON u.id = p.author_id WHERE p.id = ?`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	reactions, err := r.reactionsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Reactions = reactions

	return post, nil
}

// List retrieves all posts, newest first, with joined authors and reactions.
func (r *PostRepository) List(ctx context.Context) ([]model.PostResponse, error) {
	query := `SELECT ` + postColumns + ` FROM posts p JOIN users u ON u.id = p.author_id ORDER BY p.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.PostResponse
	index := make(map[int64]int)
	for rows.Next() {
		post, err := scanPostRows(rows)
		if err != nil {
			return nil, err
		}
		index[post.ID] = len(posts)
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// One pass over post_reactions fills every post's sets.
	rrows, err := r.db.QueryContext(ctx,
		`SELECT post_id, user_id, kind FROM post_reactions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rrows.Close()

	for rrows.Next() {
		var postID, userID int64
		var kind string
		if err := rrows.Scan(&postID, &userID, &kind); err != nil {
			return nil, err
		}
		i, ok := index[postID]
		if !ok {
			continue
		}
		if kind == model.ReactionLike {
			posts[i].Reactions.Likes = append(posts[i].Reactions.Likes, userID)
		} else {
			posts[i].Reactions.Dislikes = append(posts[i].Reactions.Dislikes, userID)
		}
	}

	return posts, rrows.Err()
}

// AuthorID returns the author of a post without loading the full row.
func (r *PostRepository) AuthorID(ctx context.Context, id int64) (int64, error) {
	var authorID int64
	err := r.db.QueryRowContext(ctx, `SELECT author_id FROM posts WHERE id = ?`, id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrPostNotFound
		}
		return 0, err
	}
	return authorID, nil
}

// Update overwrites a post's title and content and returns the updated post.
func (r *PostRepository) Update(ctx context.Context, id int64, title, content string) (*model.PostResponse, error) {
	query := `UPDATE posts SET title = ?, content = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, title, content, id)
	if err != nil {
		return nil, err
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		// RowsAffected is also 0 for a no-op rewrite, so confirm existence.
		if _, err := r.AuthorID(ctx, id); err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, id)
}

// Delete removes a post permanently. Reaction rows follow via ON DELETE CASCADE.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPostNotFound
	}

	return nil
}

// ToggleReaction flips the caller's reaction of the given kind on a post and
// returns the updated post. A reaction is one row keyed (post_id, user_id)
// with a single kind column, so a user can never sit in both sets.
//
// The toggle is two conditional statements in one transaction:
//  1. delete the row if it already holds the requested kind (toggle off);
//  2. otherwise upsert the requested kind, which covers both "no prior
//     reaction" and "switch from the opposite kind" atomically on the
//     unique key.
func (r *PostRepository) ToggleReaction(ctx context.Context, postID, userID int64, kind string) (*model.PostResponse, error) {
	if _, err := r.AuthorID(ctx, postID); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM post_reactions WHERE post_id = ? AND user_id = ? AND kind = ?`,
		postID, userID, kind,
	)
	if err != nil {
		return nil, err
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if removed == 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO post_reactions (post_id, user_id, kind) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE kind = VALUES(kind)`,
			postID, userID, kind,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, postID)
}

func (r *PostRepository) reactionsFor(ctx context.Context, postID int64) (model.Reactions, error) {
	reactions := model.Reactions{Likes: []int64{}, Dislikes: []int64{}}

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, kind FROM post_reactions WHERE post_id = ? ORDER BY id`, postID)
	if err != nil {
		return reactions, err
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var kind string
		if err := rows.Scan(&userID, &kind); err != nil {
			return reactions, err
		}
		if kind == model.ReactionLike {
			reactions.Likes = append(reactions.Likes, userID)
		} else {
			reactions.Dislikes = append(reactions.Dislikes, userID)
		}
	}

	return reactions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostRows(s rowScanner) (*model.PostResponse, error) {
	// Empty slices, not nil, so the sets serialize as [] rather than null.
	post := &model.PostResponse{Reactions: model.Reactions{Likes: []int64{}, Dislikes: []int64{}}}
	err := s.Scan(
		&post.ID, &post.Title, &post.Content, &post.CreatedAt, &post.UpdatedAt,
		&post.Author.ID, &post.Author.FullName, &post.Author.Email, &post.Author.Avatar,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func scanPost(row *sql.Row) (*model.PostResponse, error) {
	post, err := scanPostRows(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}
