package model

import "time"

// Roles a user account can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user account in the database. PasswordHash is write-only
// and never reaches an API response.
type User struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	Role         string
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SignUpRequest represents a registration request.
type SignUpRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest represents a login request.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents user data safe for API responses.
type UserResponse struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateUserRequest carries the optional profile fields of a PUT /users
// request. A nil field was not submitted and keeps its stored value.
type UpdateUserRequest struct {
	FullName *string
	Email    *string
	Avatar   *string
}

// ToResponse strips the user down to its API-safe projection.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
