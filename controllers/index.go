package controllers

import (
	"context"
	"net/http"
	"time"

	"customer-service/utils"

	"github.com/gin-gonic/gin"
)

// Index describes the service.
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Customer REST API Service",
		"version": "1.0",
		"paths":   utils.AbsoluteURL(c, "/customers"),
	})
}

// Pinger checks that a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports 200 while the database answers a ping and 503 otherwise.
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			utils.RespondWithError(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	}
}
