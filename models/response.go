package models

// ScrapeResponse is the response for POST /api/v1/scrape.
type ScrapeResponse struct {
	// Success indicates whether the request was processed. A page that
	// yields zero candidates is still a success.
	Success bool `json:"success"`

	// URL is the normalized target URL (scheme prepended if missing).
	URL string `json:"url,omitempty"`

	// Candidates holds the extracted leads in discovery order.
	Candidates []CandidateLead `json:"candidates"`

	// Stored and Skipped count persistence outcomes when persist=true.
	// Skipped counts candidates that collided with existing leads.
	Stored  int `json:"stored,omitempty"`
	Skipped int `json:"skipped,omitempty"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching not requested).
	CacheStatus string `json:"cache_status,omitempty"`

	// DurationMs is the end-to-end extraction duration in milliseconds.
	DurationMs int64 `json:"duration_ms"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// LeadResponse wraps a single lead.
type LeadResponse struct {
	Success bool         `json:"success"`
	Lead    *Lead        `json:"lead,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// LeadListResponse is the response for GET /api/v1/leads.
type LeadListResponse struct {
	Success bool         `json:"success"`
	Leads   []Lead       `json:"leads"`
	Total   int64        `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// BulkResponse reports the outcome of a bulk operation.
type BulkResponse struct {
	Success  bool         `json:"success"`
	Affected int64        `json:"affected"`
	Error    *ErrorDetail `json:"error,omitempty"`
}

// PlatformStats aggregates leads for one platform.
type PlatformStats struct {
	Count         int64   `json:"count"`
	AvgFollowers  float64 `json:"avg_followers"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// StatsResponse is the response for GET /api/v1/stats.
type StatsResponse struct {
	Success        bool                     `json:"success"`
	TotalLeads     int64                    `json:"total_leads"`
	TotalFollowers int64                    `json:"total_followers"`
	AvgFollowers   float64                  `json:"avg_followers"`
	AvgEngagement  float64                  `json:"avg_engagement"`
	ByPlatform     map[string]PlatformStats `json:"by_platform"`
	TopPlatforms   []string                 `json:"top_platforms"`
	RecentLeads    []Lead                   `json:"recent_leads"`
	Error          *ErrorDetail             `json:"error,omitempty"`
}

// TagsResponse is the response for GET /api/v1/tags.
type TagsResponse struct {
	Success bool         `json:"success"`
	Tags    []string     `json:"tags"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// EngagementResponse is the response for POST /api/v1/engagement.
type EngagementResponse struct {
	Success bool         `json:"success"`
	Score   float64      `json:"score"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// LLMUsage reports token consumption for an LLM-backed request.
type LLMUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerateResponse is the response for POST /api/v1/generate.
type GenerateResponse struct {
	Success     bool            `json:"success"`
	Suggestions []CandidateLead `json:"suggestions"`
	Usage       *LLMUsage       `json:"usage,omitempty"`
	Error       *ErrorDetail    `json:"error,omitempty"`
}

// EmailDraft is a generated outreach email.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailDraftResponse is the response for POST /api/v1/leads/:id/email-draft.
type EmailDraftResponse struct {
	Success bool         `json:"success"`
	Draft   *EmailDraft  `json:"draft,omitempty"`
	Usage   *LLMUsage    `json:"usage,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status    string `json:"status"` // "healthy" or "degraded"
	Uptime    string `json:"uptime"`
	LeadCount int64  `json:"lead_count"`
	Version   string `json:"version"`
}
