package models

// ScrapeRequest is the payload for POST /api/v1/scrape.
type ScrapeRequest struct {
	// URL is the target page to extract leads from. Required. A bare host
	// without a scheme is accepted; the engine prepends https://.
	URL string `json:"url" binding:"required"`

	// Timeout is the maximum duration in seconds for the page fetch.
	// Default: 10. Max: 60.
	Timeout int `json:"timeout,omitempty" binding:"omitempty,min=1,max=60"`

	// Persist stores the extracted candidates as leads.
	// Candidates that collide with an existing (username, platform) pair
	// are reported as skipped, not overwritten.
	// Default: false (dry run, candidates returned for review).
	Persist bool `json:"persist,omitempty"`

	// MaxAge enables cache lookup: a cached extraction younger than this
	// many milliseconds is returned without refetching the page.
	// 0 disables caching for the request.
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`
}

// Defaults applies default values to unset fields.
func (r *ScrapeRequest) Defaults() {
	if r.Timeout == 0 {
		r.Timeout = 10
	}
}

// LeadRequest is the payload for creating or updating a lead.
type LeadRequest struct {
	Username        string   `json:"username" binding:"required"`
	Platform        string   `json:"platform" binding:"required"`
	FullName        string   `json:"full_name,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	Followers       int64    `json:"followers,omitempty" binding:"omitempty,min=0"`
	Email           string   `json:"email,omitempty" binding:"omitempty,email"`
	Website         string   `json:"website,omitempty"`
	Location        string   `json:"location,omitempty"`
	ProfileURL      string   `json:"profile_url,omitempty"`
	CompanyName     string   `json:"company_name,omitempty"`
	CompanyIndustry string   `json:"company_industry,omitempty"`
	CompanySize     string   `json:"company_size,omitempty"`
	JobTitle        string   `json:"job_title,omitempty"`
	TechStack       []string `json:"tech_stack,omitempty"`
	EngagementScore float64  `json:"engagement_score,omitempty" binding:"omitempty,min=0,max=100"`
	Tags            []string `json:"tags,omitempty"`
}

// ToLead converts the request into a Lead value.
func (r *LeadRequest) ToLead() Lead {
	return Lead{
		Username:        r.Username,
		Platform:        Platform(r.Platform),
		FullName:        r.FullName,
		Bio:             r.Bio,
		Followers:       r.Followers,
		Email:           r.Email,
		Website:         r.Website,
		Location:        r.Location,
		ProfileURL:      r.ProfileURL,
		CompanyName:     r.CompanyName,
		CompanyIndustry: r.CompanyIndustry,
		CompanySize:     r.CompanySize,
		JobTitle:        r.JobTitle,
		TechStack:       r.TechStack,
		EngagementScore: r.EngagementScore,
		Tags:            r.Tags,
	}
}

// SearchQuery holds the lead search filters, bound from query parameters
// on GET /api/v1/leads and GET /api/v1/export.
type SearchQuery struct {
	// Query matches username, full name, bio, or email (case-insensitive
	// substring).
	Query string `form:"q"`

	// Platform filters to one platform; empty or "all" disables the filter.
	Platform string `form:"platform"`

	MinFollowers  int64   `form:"min_followers" binding:"omitempty,min=0"`
	MinEngagement float64 `form:"min_engagement" binding:"omitempty,min=0,max=100"`

	// Tags requires every listed tag to be present on the lead.
	Tags []string `form:"tags"`

	// OrderBy is one of: engagement_score (default), followers, username,
	// created_at, last_updated.
	OrderBy string `form:"order_by"`

	Limit  int `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// Defaults applies default values to unset fields.
func (q *SearchQuery) Defaults() {
	if q.Limit == 0 {
		q.Limit = 100
	}
	if q.OrderBy == "" {
		q.OrderBy = "engagement_score"
	}
}

// BulkDeleteRequest is the payload for POST /api/v1/leads/bulk-delete.
type BulkDeleteRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// BulkTagRequest is the payload for POST /api/v1/leads/bulk-tag.
type BulkTagRequest struct {
	IDs  []int64  `json:"ids" binding:"required,min=1"`
	Tags []string `json:"tags" binding:"required,min=1"`
}

// EngagementRequest is the payload for POST /api/v1/engagement.
type EngagementRequest struct {
	Followers   int64   `json:"followers" binding:"min=0"`
	LikesAvg    float64 `json:"likes_avg,omitempty" binding:"omitempty,min=0"`
	CommentsAvg float64 `json:"comments_avg,omitempty" binding:"omitempty,min=0"`

	// LeadID, when set, stores the computed score on the lead.
	LeadID int64 `json:"lead_id,omitempty"`
}

// LLMParams holds per-request LLM configuration (bring your own key).
type LLMParams struct {
	APIKey  string `json:"api_key" binding:"required"`
	Model   string `json:"model,omitempty"`
	BaseURL string `json:"base_url,omitempty" binding:"omitempty,url"`
}

// Defaults applies default values to unset fields.
func (p *LLMParams) Defaults() {
	if p.Model == "" {
		p.Model = "gpt-4o-mini"
	}
	if p.BaseURL == "" {
		p.BaseURL = "https://api.openai.com/v1"
	}
}

// GenerateRequest is the payload for POST /api/v1/generate.
type GenerateRequest struct {
	// Niche describes the audience to generate lead suggestions for,
	// e.g. "fitness coaches in Austin".
	Niche string `json:"niche" binding:"required"`

	// Count is the number of suggestions to request. Default: 5. Max: 20.
	Count int `json:"count,omitempty" binding:"omitempty,min=1,max=20"`

	LLM LLMParams `json:"llm" binding:"required"`
}

// Defaults applies default values to unset fields.
func (r *GenerateRequest) Defaults() {
	if r.Count == 0 {
		r.Count = 5
	}
	r.LLM.Defaults()
}

// EmailDraftRequest is the payload for POST /api/v1/leads/:id/email-draft.
type EmailDraftRequest struct {
	// Purpose steers the draft, e.g. "introduce our analytics product".
	Purpose string `json:"purpose" binding:"required"`

	// Tone is one of: professional (default), casual, friendly.
	Tone string `json:"tone,omitempty" binding:"omitempty,oneof=professional casual friendly"`

	LLM LLMParams `json:"llm" binding:"required"`
}

// Defaults applies default values to unset fields.
func (r *EmailDraftRequest) Defaults() {
	if r.Tone == "" {
		r.Tone = "professional"
	}
	r.LLM.Defaults()
}
