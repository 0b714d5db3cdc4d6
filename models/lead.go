package models

import "time"

// Platform identifies where a lead was sourced from.
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformFacebook  Platform = "facebook"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformEmail     Platform = "email"
	PlatformPhone     Platform = "phone"
	PlatformWebsite   Platform = "website"
	PlatformOther     Platform = "other"
	PlatformUnknown   Platform = "unknown"
)

// SocialDomains lists the hostnames the extraction engine treats as social
// profile sources. Order matters only for documentation; matching is by
// substring against the href.
var SocialDomains = []string{
	"twitter.com",
	"instagram.com",
	"linkedin.com",
	"facebook.com",
	"tiktok.com",
	"youtube.com",
}

// Lead is a persisted contact record.
type Lead struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Platform        Platform  `json:"platform"`
	FullName        string    `json:"full_name,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Followers       int64     `json:"followers"`
	Email           string    `json:"email,omitempty"`
	Website         string    `json:"website,omitempty"`
	Location        string    `json:"location,omitempty"`
	ProfileURL      string    `json:"profile_url,omitempty"`
	CompanyName     string    `json:"company_name,omitempty"`
	CompanyIndustry string    `json:"company_industry,omitempty"`
	CompanySize     string    `json:"company_size,omitempty"`
	JobTitle        string    `json:"job_title,omitempty"`
	TechStack       []string  `json:"tech_stack"`
	EngagementScore float64   `json:"engagement_score"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"created_at"`
	LastUpdated     time.Time `json:"last_updated"`
}

// CandidateLead is an unpersisted, extraction-time lead record. The engine
// returns candidates to the caller, which decides whether to store them.
// Company fields and TechStack are page-level: every candidate extracted
// from one page carries the same values.
type CandidateLead struct {
	Platform        Platform `json:"platform"`
	Username        string   `json:"username,omitempty"`
	ProfileURL      string   `json:"profile_url,omitempty"`
	FullName        string   `json:"full_name,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Website         string   `json:"website,omitempty"`
	Location        string   `json:"location,omitempty"`
	CompanyName     string   `json:"company_name,omitempty"`
	CompanyIndustry string   `json:"company_industry,omitempty"`
	CompanySize     string   `json:"company_size,omitempty"`
	JobTitle        string   `json:"job_title,omitempty"`
	TechStack       []string `json:"tech_stack"`
	Followers       int64    `json:"followers"`
	EngagementScore float64  `json:"engagement_score"`
	Tags            []string `json:"tags"`
}

// ToLead converts a candidate into a Lead ready for persistence.
func (c *CandidateLead) ToLead() Lead {
	return Lead{
		Username:        c.Username,
		Platform:        c.Platform,
		FullName:        c.FullName,
		Bio:             c.Bio,
		Followers:       c.Followers,
		Email:           c.Email,
		Website:         c.Website,
		Location:        c.Location,
		ProfileURL:      c.ProfileURL,
		CompanyName:     c.CompanyName,
		CompanyIndustry: c.CompanyIndustry,
		CompanySize:     c.CompanySize,
		JobTitle:        c.JobTitle,
		TechStack:       c.TechStack,
		EngagementScore: c.EngagementScore,
		Tags:            c.Tags,
	}
}
