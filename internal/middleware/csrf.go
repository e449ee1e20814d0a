package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// CSRFConfig holds configuration for CSRF protection middleware.
type CSRFConfig struct {
	// AllowedOrigins mirrors the CORS origin allow-list.
	AllowedOrigins []string
}

// CSRF returns middleware that validates Origin/Referer headers on
// state-changing requests. Required for cookie-based authentication:
// browsers attach the session cookie to every request to this host, so
// a forged cross-site POST would otherwise ride on it.
func CSRF(config CSRFConfig) gin.HandlerFunc {
	allowed := buildOriginSet(config.AllowedOrigins)

	return func(c *gin.Context) {
		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			c.Next()
			return
		}

		// Origin is preferred; Referer is the fallback for older
		// browsers that omit it.
		origin := c.GetHeader("Origin")
		if origin == "" {
			if referer := c.GetHeader("Referer"); referer != "" {
				origin = refererOrigin(referer)
			}
		}

		if origin == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "CSRF validation failed: missing origin",
			})
			return
		}

		if !allowed[normalizeOrigin(origin)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "CSRF validation failed: invalid origin",
			})
			return
		}

		c.Next()
	}
}

// refererOrigin reduces a Referer URL to its scheme://host origin.
func refererOrigin(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
