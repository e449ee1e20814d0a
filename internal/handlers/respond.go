package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/reelstream/auth-service/internal/logger"
)

// respondError writes the structured error body used by every endpoint.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// logAndRespondError logs the underlying error server-side and returns
// only the sanitized message to the client.
func logAndRespondError(c *gin.Context, log *logger.Logger, status int, err error, message string) {
	log.Error(message,
		"error", err,
		"path", c.FullPath(),
		"method", c.Request.Method,
		"status", status,
	)
	respondError(c, status, message)
}
