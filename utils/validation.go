package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// JSONContentTypeMessage is the message sent with every 415 response.
const JSONContentTypeMessage = "Content-Type must be application/json"

// HasJSONContentType reports whether the request declares an application/json body.
// Parameters such as charset are ignored.
func HasJSONContentType(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEJSON
}

// ParseBoolQuery coerces a query string flag. true, yes and 1 are true in any case;
// everything else is false.
func ParseBoolQuery(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}
