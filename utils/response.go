package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondWithError aborts the request with the JSON error envelope used by every endpoint.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"status":  status,
		"error":   http.StatusText(status),
		"message": message,
	})
}
