package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prospectio/leadscout/models"
	"github.com/prospectio/leadscout/storage"
)

// Stats returns a handler for GET /api/v1/stats.
func Stats(repo storage.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := repo.Stats(c.Request.Context())
		if err != nil {
			detail := errorDetail(err)
			c.JSON(statusFor(detail), models.StatsResponse{Success: false, Error: detail})
			return
		}

		stats.Success = true
		c.JSON(http.StatusOK, stats)
	}
}

// Tags returns a handler for GET /api/v1/tags.
func Tags(repo storage.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tags, err := repo.Tags(c.Request.Context())
		if err != nil {
			detail := errorDetail(err)
			c.JSON(statusFor(detail), models.TagsResponse{Success: false, Error: detail})
			return
		}

		c.JSON(http.StatusOK, models.TagsResponse{Success: true, Tags: tags})
	}
}
