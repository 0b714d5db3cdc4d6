package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prospectio/leadscout/cache"
	"github.com/prospectio/leadscout/config"
	"github.com/prospectio/leadscout/extract"
	"github.com/prospectio/leadscout/models"
	"github.com/prospectio/leadscout/storage"
	"github.com/prospectio/leadscout/webhook"
)

// Scrape returns a handler for POST /api/v1/scrape.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Cache lookup (dry runs only).
//  3. Engine.Extract → candidate leads. Fetch/parse failures surface as an
//     empty candidate list, not an HTTP error.
//  4. persist=true: store candidates, counting duplicates as skipped.
//  5. Fire the scrape.completed webhook when configured.
func Scrape(engine *extract.Engine, repo storage.Repository, cc *cache.Cache, wh config.WebhookConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		req.Defaults()

		targetURL := extract.NormalizeURL(req.URL)

		// Cache is only consulted for dry runs; a persisting request must
		// always re-extract so its store counts reflect this call.
		useCache := cc != nil && req.MaxAge > 0 && !req.Persist
		cacheKey := cache.Key(targetURL)
		if useCache {
			if cached, hit := cc.Get(cacheKey, req.MaxAge); hit {
				// Copy so concurrent hits never mutate the shared entry.
				out := *cached
				out.CacheStatus = "hit"
				out.DurationMs = time.Since(totalStart).Milliseconds()
				c.JSON(http.StatusOK, &out)
				return
			}
		}

		candidates := engine.ExtractWithTimeout(c.Request.Context(), req.URL,
			time.Duration(req.Timeout)*time.Second)

		resp := &models.ScrapeResponse{
			Success:    true,
			URL:        targetURL,
			Candidates: candidates,
		}

		if req.Persist {
			for _, candidate := range candidates {
				if candidate.Username == "" {
					resp.Skipped++
					continue
				}
				_, err := repo.Save(c.Request.Context(), candidate.ToLead())
				switch {
				case err == nil:
					resp.Stored++
				case errors.Is(err, storage.ErrDuplicate):
					resp.Skipped++
				default:
					resp.Error = errorDetail(err)
					resp.Success = false
					resp.DurationMs = time.Since(totalStart).Milliseconds()
					if wh.URL != "" {
						webhook.DeliverAsync(wh.URL, wh.Secret, webhook.NewEvent(webhook.EventScrapeFailed, gin.H{
							"url":   targetURL,
							"error": resp.Error.Message,
						}))
					}
					c.JSON(statusFor(resp.Error), resp)
					return
				}
			}
		}

		resp.DurationMs = time.Since(totalStart).Milliseconds()

		if useCache {
			resp.CacheStatus = "miss"
			stored := *resp
			cc.Set(cacheKey, &stored)
		}

		if wh.URL != "" {
			webhook.DeliverAsync(wh.URL, wh.Secret, webhook.NewEvent(webhook.EventScrapeCompleted, gin.H{
				"url":        targetURL,
				"candidates": len(candidates),
				"stored":     resp.Stored,
				"skipped":    resp.Skipped,
			}))
		}

		c.JSON(http.StatusOK, resp)
	}
}
