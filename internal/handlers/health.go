package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobboard-dev/jobboard/internal/logger"
	"github.com/jobboard-dev/jobboard/internal/repositories"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Job board API is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Readiness answers 503 while the store does not respond to a ping.
func Readiness(pinger repositories.Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			logger.CtxWithError(c.Request.Context(), "readiness check failed", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"message": "Store is not reachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
