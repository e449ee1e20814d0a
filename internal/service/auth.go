package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reelstream/auth-service/internal/models"
	"github.com/reelstream/auth-service/internal/repository"
)

var (
	ErrAllFieldsRequired  = errors.New("all fields are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// Session is the outcome of a successful signup or signin.
type Session struct {
	User  *models.User
	Token string
}

// AuthService orchestrates signup, signin and session lookup. Logout is
// intentionally absent: it is a pure cookie operation with no
// server-side state to touch.
type AuthService interface {
	SignUp(ctx context.Context, username, email, password string) (*Session, error)
	SignIn(ctx context.Context, username, password string) (*Session, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenService
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenService) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

func (s *authService) SignUp(ctx context.Context, username, email, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrAllFieldsRequired
	}

	// Fast-path lookups so each collision names the offending field.
	// Email is checked first. These are not atomic with the insert: two
	// concurrent signups can both pass, and the unique indexes on the
	// users table are the authoritative guard.
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A lost check-then-create race surfaces here as a unique
		// violation; report it exactly like the fast-path check would.
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrDuplicateEmail
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &Session{User: user, Token: token}, nil
}

func (s *authService) SignIn(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrAllFieldsRequired
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same error as a password mismatch so callers cannot tell
			// which part was wrong.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &Session{User: user, Token: token}, nil
}

func (s *authService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Token verified but the record is gone (deleted
			// out-of-band).
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
