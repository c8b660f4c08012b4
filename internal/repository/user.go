package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tsirdo8/mini-social/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

const userColumns = "id, full_name, email, password_hash, role, COALESCE(avatar, ''), created_at, updated_at"

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user struct.
// The UNIQUE index on email enforces the duplicate check; email must already
// be lowercased by the caller.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (full_name, email, password_hash, role) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.FullName, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByEmail retrieves a user by their (lowercased) email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// List retrieves all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.Avatar,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// Update overwrites the user's profile fields and returns the updated row.
func (r *UserRepository) Update(ctx context.Context, user *model.User) (*model.User, error) {
	query := `UPDATE users SET full_name = ?, email = ?, avatar = NULLIF(?, '') WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, user.FullName, user.Email, user.Avatar, user.ID)
	if err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return r.GetByID(ctx, user.ID)
}

func (r *UserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Role,
		&user.Avatar, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
