package utils

import "github.com/gin-gonic/gin"

// AbsoluteURL builds an absolute URL for path on the host the request was sent to.
func AbsoluteURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + path
}
