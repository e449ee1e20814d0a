package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenInvalid covers malformed tokens, bad signatures and wrong
	// signing algorithms.
	ErrTokenInvalid = errors.New("token is not valid")
	// ErrTokenExpired means the signature checked out but the embedded
	// expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

// minSecretLen guards against weak HMAC keys.
const minSecretLen = 32

// SessionClaims are the claims embedded in a session token.
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies session tokens. Tokens are
// self-contained: there is no revocation list, so an issued token stays
// valid until its embedded expiry regardless of logout.
type TokenService interface {
	Issue(userID uuid.UUID) (string, error)
	Verify(tokenString string) (uuid.UUID, error)
	Lifetime() time.Duration
}

type tokenService struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
// The secret is process-wide: verification only succeeds against tokens
// issued with the same key.
func NewTokenService(secret string, lifetime time.Duration) (TokenService, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("token secret must be at least %d bytes", minSecretLen)
	}
	if lifetime <= 0 {
		return nil, errors.New("token lifetime must be positive")
	}
	return &tokenService{secret: []byte(secret), lifetime: lifetime}, nil
}

func (s *tokenService) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}

	return userID, nil
}

func (s *tokenService) Lifetime() time.Duration {
	return s.lifetime
}
