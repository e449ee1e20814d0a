package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	testSecret   = "test-secret-key-at-least-32-chars-long"
	testLifetime = 168 * time.Hour
)

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNewTokenService(t *testing.T) {
	svc, err := NewTokenService(testSecret, testLifetime)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	if got := svc.Lifetime(); got != testLifetime {
		t.Errorf("Lifetime() = %v, want %v", got, testLifetime)
	}
}

func TestNewTokenService_ShortSecret(t *testing.T) {
	if _, err := NewTokenService("short", testLifetime); err == nil {
		t.Error("NewTokenService() should fail for a secret shorter than 32 bytes")
	}
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	if _, err := NewTokenService("", testLifetime); err == nil {
		t.Error("NewTokenService() should fail for an empty secret")
	}
}

func TestNewTokenService_NonPositiveLifetime(t *testing.T) {
	if _, err := NewTokenService(testSecret, 0); err == nil {
		t.Error("NewTokenService() should fail for zero lifetime")
	}
}

// =============================================================================
// Issue / Verify Tests
// =============================================================================

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc, err := NewTokenService(testSecret, testLifetime)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	userID := uuid.New()
	token, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got != userID {
		t.Errorf("Verify() = %s, want %s", got, userID)
	}
}

func TestIssue_ClaimsStructure(t *testing.T) {
	svc, _ := NewTokenService(testSecret, testLifetime)

	userID := uuid.New()
	before := time.Now()
	token, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("ParseWithClaims() error = %v", err)
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok {
		t.Fatal("claims are not SessionClaims")
	}

	if claims.UserID != userID.String() {
		t.Errorf("claims.UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.IssuedAt == nil {
		t.Error("claims.IssuedAt should be set")
	}
	if claims.ExpiresAt == nil {
		t.Fatal("claims.ExpiresAt should be set")
	}

	wantExpiry := before.Add(testLifetime)
	gotExpiry := claims.ExpiresAt.Time
	if gotExpiry.Before(wantExpiry.Add(-5*time.Second)) || gotExpiry.After(wantExpiry.Add(5*time.Second)) {
		t.Errorf("expiry = %v, want within 5s of %v", gotExpiry, wantExpiry)
	}
}

func TestIssue_SigningMethod(t *testing.T) {
	svc, _ := NewTokenService(testSecret, testLifetime)

	token, err := svc.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &SessionClaims{})
	if err != nil {
		t.Fatalf("ParseUnverified() error = %v", err)
	}
	if parsed.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		t.Errorf("alg = %s, want %s", parsed.Method.Alg(), jwt.SigningMethodHS256.Alg())
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	svc, err := NewTokenService(testSecret, 1*time.Millisecond)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	token, err := svc.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify() error = %v, want %v", err, ErrTokenExpired)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer, _ := NewTokenService(testSecret, testLifetime)
	verifier, _ := NewTokenService("another-secret-key-that-is-32-bytes!", testLifetime)

	token, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want %v", err, ErrTokenInvalid)
	}
}

func TestVerify_MalformedToken(t *testing.T) {
	svc, _ := NewTokenService(testSecret, testLifetime)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "aaaa.bbbb"},
		{"four segments", "aaaa.bbbb.cccc.dddd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Verify(tt.token); !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Verify(%q) error = %v, want %v", tt.token, err, ErrTokenInvalid)
			}
		})
	}
}

func TestVerify_TamperedToken(t *testing.T) {
	svc, _ := NewTokenService(testSecret, testLifetime)

	token, err := svc.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want %v", err, ErrTokenInvalid)
	}
}

func TestVerify_WrongSigningMethod(t *testing.T) {
	svc, _ := NewTokenService(testSecret, testLifetime)

	// alg=none token must be rejected even with a well-formed payload.
	claims := SessionClaims{
		UserID: uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want %v", err, ErrTokenInvalid)
	}
}

func TestVerify_NonUUIDUserID(t *testing.T) {
	svc, _ := NewTokenService(testSecret, testLifetime)

	claims := SessionClaims{
		UserID: "42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := signed.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want %v", err, ErrTokenInvalid)
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestConcurrentIssueVerify(t *testing.T) {
	svc, _ := NewTokenService(testSecret, testLifetime)

	const numGoroutines = 10
	errs := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			userID := uuid.New()
			token, err := svc.Issue(userID)
			if err != nil {
				errs <- err
				return
			}
			got, err := svc.Verify(token)
			if err != nil {
				errs <- err
				return
			}
			if got != userID {
				errs <- errors.New("verified id does not match issued id")
				return
			}
			errs <- nil
		}()
	}

	for i := 0; i < numGoroutines; i++ {
		if err := <-errs; err != nil {
			t.Errorf("concurrent issue/verify %d failed: %v", i, err)
		}
	}
}
