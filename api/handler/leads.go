package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prospectio/leadscout/models"
	"github.com/prospectio/leadscout/storage"
)

// CreateLead returns a handler for POST /api/v1/leads.
func CreateLead(repo storage.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LeadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		lead, err := repo.Save(c.Request.Context(), req.ToLead())
		if err != nil {
			detail := errorDetail(err)
			c.JSON(statusFor(detail), models.LeadResponse{Success: false, Error: detail})
			return
		}

		c.JSON(http.StatusCreated, models.LeadResponse{Success: true, Lead: lead})
	}
}

// ListLeads returns a handler for GET /api/v1/leads with search, filter,
// and pagination via query parameters.
func ListLeads(repo storage.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q models.SearchQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			bindError(c, err)
			return
		}
		q.Defaults()

		leads, total, err := repo.Search(c.Request.Context(), q)
		if err != nil {
			detail := errorDetail(err)
			c.JSON(statusFor(detail), models.LeadListResponse{Success: false, Error: detail})
			return
		}

		c.JSON(http.StatusOK, models.LeadListResponse{
			Success: true,
			Leads:   leads,
			Total:   total,
			Limit:   q.Limit,
			Offset:  q.Offset,
		})
	}
}

// GetLead returns a handler for GET /api/v1/leads/:id.
func GetLead(repo storage.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := leadID(c)
		if !ok {
			return
		}

		lead, err := repo.Get(c.Request.Context(), id)
		if err != nil {
			detail := errorDetail(err)
			c.JSON(statusFor(detail), models.LeadResponse{Success: false, Error: detail})
			return
		}

		c.JSON(http.StatusOK, models.LeadResponse{Success: true, Lead: lead})
	}
}

// UpdateLead returns a handler for PUT /api/v1/leads/:id.
func UpdateLead(repo storage.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := leadID(c)
		if !ok {
			return
		}

		var req models.LeadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		lead, err := repo.Update(c.Request.Context(), id, req.ToLead())
		if err != nil {
			detail := errorDetail(err)
			c.JSON(statusFor(detail), models.LeadResponse{Success: false, Error: detail})
			return
		}

		c.JSON(http.StatusOK, models.LeadResponse{Success: true, Lead: lead})
	}
}

// DeleteLead returns a handler for DELETE /api/v1/leads/:id.
func DeleteLead(repo storage.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := leadID(c)
		if !ok {
			return
		}

		if err := repo.Delete(c.Request.Context(), id); err != nil {
			detail := errorDetail(err)
			c.JSON(statusFor(detail), models.BulkResponse{Success: false, Error: detail})
			return
		}

		c.JSON(http.StatusOK, models.BulkResponse{Success: true, Affected: 1})
	}
}

// BulkDeleteLeads returns a handler for POST /api/v1/leads/bulk-delete.
func BulkDeleteLeads(repo storage.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BulkDeleteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		n, err := repo.BulkDelete(c.Request.Context(), req.IDs)
		if err != nil {
			detail := errorDetail(err)
			c.JSON(statusFor(detail), models.BulkResponse{Success: false, Error: detail})
			return
		}

		c.JSON(http.StatusOK, models.BulkResponse{Success: true, Affected: n})
	}
}

// BulkTagLeads returns a handler for POST /api/v1/leads/bulk-tag.
func BulkTagLeads(repo storage.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BulkTagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		n, err := repo.BulkTag(c.Request.Context(), req.IDs, req.Tags)
		if err != nil {
			detail := errorDetail(err)
			c.JSON(statusFor(detail), models.BulkResponse{Success: false, Error: detail})
			return
		}

		c.JSON(http.StatusOK, models.BulkResponse{Success: true, Affected: n})
	}
}

// leadID parses the :id path parameter; on failure it writes a 400 and
// reports false.
func leadID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": models.ErrorDetail{
				Code:    models.ErrCodeInvalidInput,
				Message: "invalid lead id",
			},
		})
		return 0, false
	}
	return id, true
}
