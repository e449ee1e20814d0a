package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the session token cookie.
const SessionCookie = "token"

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Domain   string
	Path     string
	Secure   bool
	SameSite http.SameSite
	MaxAge   time.Duration
}

// DefaultCookieConfig is the deployed policy: the frontend is served
// from a different origin, so the cookie must be Secure with
// SameSite=None or browsers will not send it cross-site.
func DefaultCookieConfig(maxAge time.Duration) CookieConfig {
	return CookieConfig{
		Path:     "/",
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   maxAge,
	}
}

// CookieHelper manages the session cookie.
type CookieHelper struct {
	config CookieConfig
}

// NewCookieHelper creates a cookie helper with the given configuration.
func NewCookieHelper(config CookieConfig) *CookieHelper {
	return &CookieHelper{config: config}
}

// SetSessionCookie attaches the session token to the response.
func (h *CookieHelper) SetSessionCookie(c *gin.Context, token string) {
	h.setCookie(c, token, int(h.config.MaxAge.Seconds()))
}

// ClearSessionCookie removes the session cookie from the client.
// Clearing does not invalidate the token itself: an issued token stays
// valid until its embedded expiry.
func (h *CookieHelper) ClearSessionCookie(c *gin.Context) {
	h.setCookie(c, "", -1)
}

// GetSessionToken retrieves the session token from the request cookie,
// or "" if absent.
func (h *CookieHelper) GetSessionToken(c *gin.Context) string {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return token
}

func (h *CookieHelper) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(h.config.SameSite)
	c.SetCookie(
		SessionCookie,
		value,
		maxAge,
		h.config.Path,
		h.config.Domain,
		h.config.Secure,
		true, // httpOnly - always true for the session cookie
	)
}
