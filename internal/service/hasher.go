package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashFormat is returned when a stored digest is structurally invalid
// and cannot be compared against at all.
var ErrHashFormat = errors.New("malformed password hash")

// PasswordHasher hashes and verifies passwords. Verify reports a
// mismatch as (false, nil); only a malformed digest is an error.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) (bool, error)
}

type bcryptHasher struct {
	cost int
}

// NewPasswordHasher creates a bcrypt-backed PasswordHasher with the
// given work factor. A cost outside bcrypt's supported range falls back
// to the default.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptHasher) Verify(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrHashFormat, err)
	}
}
