package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prospectio/leadscout/models"
	"github.com/prospectio/leadscout/storage"
)

// Health returns a handler for GET /api/v1/health.
//
// Degrades status when the lead store cannot be queried.
func Health(repo storage.Repository, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		count, err := repo.Count(c.Request.Context())
		if err != nil {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:    status,
			Uptime:    time.Since(startTime).Round(time.Second).String(),
			LeadCount: count,
			Version:   "0.1.0",
		})
	}
}
