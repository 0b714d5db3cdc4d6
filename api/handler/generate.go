package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prospectio/leadscout/llm"
	"github.com/prospectio/leadscout/models"
	"github.com/prospectio/leadscout/storage"
)

// Generate returns a handler for POST /api/v1/generate.
//
// Asks the configured LLM for lead suggestions in a niche. Suggestions are
// returned for review, never stored directly.
func Generate(llmClient *llm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		req.Defaults()

		suggestions, usage, err := llmClient.GenerateLeads(c.Request.Context(), req.Niche, req.Count, req.LLM)
		if err != nil {
			detail := errorDetail(err)
			c.JSON(statusFor(detail), models.GenerateResponse{Success: false, Error: detail})
			return
		}

		c.JSON(http.StatusOK, models.GenerateResponse{
			Success:     true,
			Suggestions: suggestions,
			Usage:       usage,
		})
	}
}

// EmailDraft returns a handler for POST /api/v1/leads/:id/email-draft.
func EmailDraft(repo storage.Repository, llmClient *llm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := leadID(c)
		if !ok {
			return
		}

		var req models.EmailDraftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		req.Defaults()

		lead, err := repo.Get(c.Request.Context(), id)
		if err != nil {
			detail := errorDetail(err)
			c.JSON(statusFor(detail), models.EmailDraftResponse{Success: false, Error: detail})
			return
		}

		draft, usage, err := llmClient.DraftEmail(c.Request.Context(), lead, req.Purpose, req.Tone, req.LLM)
		if err != nil {
			detail := errorDetail(err)
			c.JSON(statusFor(detail), models.EmailDraftResponse{Success: false, Error: detail})
			return
		}

		c.JSON(http.StatusOK, models.EmailDraftResponse{
			Success: true,
			Draft:   draft,
			Usage:   usage,
		})
	}
}
