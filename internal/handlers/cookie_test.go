package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestSetSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		config       CookieConfig
		wantSecure   bool
		wantSameSite http.SameSite
		wantDomain   string // Go http strips leading dot from domain per RFC 6265
	}{
		{
			name: "development config",
			config: CookieConfig{
				Domain:   "",
				Secure:   false,
				SameSite: http.SameSiteLaxMode,
				Path:     "/",
				MaxAge:   168 * time.Hour,
			},
			wantSecure:   false,
			wantSameSite: http.SameSiteLaxMode,
			wantDomain:   "",
		},
		{
			name:         "cross-site production config",
			config:       DefaultCookieConfig(168 * time.Hour),
			wantSecure:   true,
			wantSameSite: http.SameSiteNoneMode,
			wantDomain:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			helper := NewCookieHelper(tt.config)
			helper.SetSessionCookie(c, "token123")

			cookies := w.Result().Cookies()
			if len(cookies) != 1 {
				t.Fatalf("expected 1 cookie, got %d", len(cookies))
			}

			cookie := cookies[0]
			if cookie.Name != SessionCookie {
				t.Errorf("cookie name = %s, want %s", cookie.Name, SessionCookie)
			}
			if cookie.Value != "token123" {
				t.Errorf("cookie value = %s, want token123", cookie.Value)
			}
			if !cookie.HttpOnly {
				t.Error("session cookie should be HttpOnly")
			}
			if cookie.Secure != tt.wantSecure {
				t.Errorf("Secure = %v, want %v", cookie.Secure, tt.wantSecure)
			}
			if cookie.SameSite != tt.wantSameSite {
				t.Errorf("SameSite = %v, want %v", cookie.SameSite, tt.wantSameSite)
			}
			if cookie.Domain != tt.wantDomain {
				t.Errorf("Domain = %s, want %s", cookie.Domain, tt.wantDomain)
			}
			if cookie.MaxAge != int((168 * time.Hour).Seconds()) {
				t.Errorf("MaxAge = %d, want %d", cookie.MaxAge, int((168*time.Hour).Seconds()))
			}
		})
	}
}

func TestClearSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	helper := NewCookieHelper(DefaultCookieConfig(168 * time.Hour))
	helper.ClearSessionCookie(c)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	cookie := cookies[0]
	if cookie.Value != "" {
		t.Errorf("cleared cookie value = %s, want empty", cookie.Value)
	}
	if cookie.MaxAge >= 0 {
		t.Errorf("cleared cookie MaxAge = %d, want negative", cookie.MaxAge)
	}
}

func TestGetSessionToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	helper := NewCookieHelper(DefaultCookieConfig(168 * time.Hour))

	t.Run("cookie present", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		c.Request.AddCookie(&http.Cookie{Name: SessionCookie, Value: "token123"})

		if got := helper.GetSessionToken(c); got != "token123" {
			t.Errorf("GetSessionToken() = %s, want token123", got)
		}
	})

	t.Run("cookie absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)

		if got := helper.GetSessionToken(c); got != "" {
			t.Errorf("GetSessionToken() = %s, want empty", got)
		}
	})
}
