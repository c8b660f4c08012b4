package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tsirdo8/mini-social/internal/crypto"
	"github.com/tsirdo8/mini-social/internal/model"
	"github.com/tsirdo8/mini-social/internal/repository"
)

var (
	ErrFullNameRequired   = errors.New("full name is required")
	ErrInvalidEmail       = errors.New("a valid email is required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrEmailTaken         = errors.New("user already exists")
	ErrCredentialsMissing = errors.New("email and password is required")
	ErrInvalidCredentials = errors.New("email or password is invalid")
)

// minPasswordLength is the server-side password policy floor.
const minPasswordLength = 6

// UserStore is the persistence surface the auth and user services need.
// *repository.UserRepository satisfies it.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) (*model.User, error)
}

// AuthService handles registration, login and token issuance.
type AuthService struct {
	users     UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// SignUp validates the registration request and creates the user with the
// default role. Emails are lowercased before storage so the duplicate check
// is case-insensitive.
func (s *AuthService) SignUp(ctx context.Context, req model.SignUpRequest) (int64, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return 0, ErrFullNameRequired
	}
	if !validEmail(req.Email) {
		return 0, ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return 0, ErrPasswordTooShort
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	user := &model.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}

	return user.ID, nil
}

// SignIn checks the credentials and returns a signed session token carrying
// the user's id and role. Unknown email and wrong password produce the same
// error so a caller cannot probe which emails are registered.
func (s *AuthService) SignIn(ctx context.Context, req model.SignInRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", ErrCredentialsMissing
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return crypto.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtExpiry)
}

// CurrentUser returns the caller's own profile.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}

	return user.ToResponse(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && strings.Contains(email, "@")
}
