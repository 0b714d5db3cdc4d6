package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prospectio/leadscout/models"
	"github.com/prospectio/leadscout/score"
	"github.com/prospectio/leadscout/storage"
)

// Engagement returns a handler for POST /api/v1/engagement.
//
// Computes the 0-100 engagement score for the supplied metrics. When
// lead_id is set, the score is also stored on that lead.
func Engagement(repo storage.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.EngagementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		s := score.Engagement(req.Followers, req.LikesAvg, req.CommentsAvg)

		if req.LeadID > 0 {
			lead, err := repo.Get(c.Request.Context(), req.LeadID)
			if err != nil {
				detail := errorDetail(err)
				c.JSON(statusFor(detail), models.EngagementResponse{Success: false, Error: detail})
				return
			}
			lead.EngagementScore = s
			lead.Followers = req.Followers
			if _, err := repo.Update(c.Request.Context(), req.LeadID, *lead); err != nil {
				detail := errorDetail(err)
				c.JSON(statusFor(detail), models.EngagementResponse{Success: false, Error: detail})
				return
			}
		}

		c.JSON(http.StatusOK, models.EngagementResponse{Success: true, Score: s})
	}
}
