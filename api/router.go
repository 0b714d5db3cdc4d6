package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prospectio/leadscout/api/handler"
	"github.com/prospectio/leadscout/api/middleware"
	"github.com/prospectio/leadscout/cache"
	"github.com/prospectio/leadscout/config"
	"github.com/prospectio/leadscout/extract"
	"github.com/prospectio/leadscout/llm"
	"github.com/prospectio/leadscout/storage"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(engine *extract.Engine, repo storage.Repository, llmClient *llm.Client, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(repo, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Extraction
	protected.POST("/scrape", handler.Scrape(engine, repo, cc, cfg.Webhook))

	// Leads
	protected.POST("/leads", handler.CreateLead(repo))
	protected.GET("/leads", handler.ListLeads(repo))
	protected.GET("/leads/:id", handler.GetLead(repo))
	protected.PUT("/leads/:id", handler.UpdateLead(repo))
	protected.DELETE("/leads/:id", handler.DeleteLead(repo))
	protected.POST("/leads/bulk-delete", handler.BulkDeleteLeads(repo))
	protected.POST("/leads/bulk-tag", handler.BulkTagLeads(repo))

	// Analytics
	protected.GET("/stats", handler.Stats(repo))
	protected.GET("/tags", handler.Tags(repo))
	protected.POST("/engagement", handler.Engagement(repo))

	// Export
	protected.GET("/export", handler.Export(repo))

	// LLM-backed helpers
	protected.POST("/generate", handler.Generate(llmClient))
	protected.POST("/leads/:id/email-draft", handler.EmailDraft(repo, llmClient))

	return r
}
