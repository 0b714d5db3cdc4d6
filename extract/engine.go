// Package extract implements the lead extraction engine: one HTTP GET per
// invocation, parsed once, then mined for contact, social, company, and
// technology signals that are aggregated into deduplicated candidate leads.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/prospectio/leadscout/models"
)

// maxNameRunes is the longest anchor text still plausible as a person or
// organization name.
const maxNameRunes = 50

// provenanceTag marks candidates produced by this engine.
const provenanceTag = "scraped"

// Engine converts a page fetch into zero or more candidate leads.
// It is stateless across invocations and safe for concurrent use.
type Engine struct {
	timeout time.Duration
	logger  *slog.Logger

	// fetchFn is swappable in tests; defaults to the utls fetcher.
	fetchFn func(ctx context.Context, url string) ([]byte, error)
}

// NewEngine creates an Engine with the given fetch timeout.
func NewEngine(timeout time.Duration, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		timeout: timeout,
		logger:  logger,
		fetchFn: newFetcher().fetch,
	}
}

// Extract fetches rawURL and returns the candidate leads discovered on the
// page, in discovery order: emails, then phones, then social anchors in DOM
// order. A missing scheme is defaulted to https. The fetch runs under the
// engine's default timeout.
//
// Extraction is atomic: any fetch or parse failure is logged and yields an
// empty slice. Extract never returns an error.
func (e *Engine) Extract(ctx context.Context, rawURL string) []models.CandidateLead {
	return e.ExtractWithTimeout(ctx, rawURL, e.timeout)
}

// ExtractWithTimeout is Extract with a per-call fetch budget. A non-positive
// timeout falls back to the engine default.
func (e *Engine) ExtractWithTimeout(ctx context.Context, rawURL string, timeout time.Duration) []models.CandidateLead {
	if timeout <= 0 {
		timeout = e.timeout
	}
	targetURL := NormalizeURL(rawURL)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := e.fetchFn(ctx, targetURL)
	if err != nil {
		e.logger.Warn("lead extraction fetch failed", "url", targetURL, "error", err)
		return []models.CandidateLead{}
	}

	candidates, err := e.mine(body, targetURL)
	if err != nil {
		e.logger.Warn("lead extraction failed", "url", targetURL, "error", err)
		return []models.CandidateLead{}
	}
	return candidates
}

// NormalizeURL prepends https:// when neither http:// nor https:// is present.
func NormalizeURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}

// mine runs the extractors over the fetched page and aggregates candidates.
// A panic while inspecting the DOM is converted to an error so that a
// malformed page can never take down the caller.
func (e *Engine) mine(body []byte, pageURL string) (candidates []models.CandidateLead, err error) {
	defer func() {
		if r := recover(); r != nil {
			candidates = nil
			err = fmt.Errorf("mine: panic inspecting page: %v", r)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("mine: parse page: %w", err)
	}

	text := string(body)
	agg := newAggregator()

	// 1. Email candidates, keyed by address.
	for _, email := range Emails(text) {
		agg.add(email, models.CandidateLead{
			Email:      email,
			Platform:   models.PlatformEmail,
			ProfileURL: "mailto:" + email,
		})
	}

	// 2. Phone candidates, keyed by phone_<number>. A number already
	// attached to some candidate is not duplicated.
	for _, phone := range Phones(text) {
		if agg.hasPhone(phone) {
			continue
		}
		agg.add("phone_"+phone, models.CandidateLead{
			Phone:    phone,
			Platform: models.PlatformPhone,
		})
	}

	// 3. Social candidates from anchors, in DOM order, keyed by
	// <platform>_<username>. The first short non-empty anchor text wins
	// as the full name.
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" || !isSocialURL(href) {
			return
		}
		platform, username := ResolveProfile(href)
		if username == "" {
			return
		}

		key := string(platform) + "_" + username
		name := plausibleName(s.Text())
		if existing := agg.get(key); existing != nil {
			if existing.FullName == "" && name != "" {
				existing.FullName = name
			}
			return
		}
		agg.add(key, models.CandidateLead{
			Username:   username,
			Platform:   platform,
			ProfileURL: href,
			FullName:   name,
		})
	})

	// 4. Page-level signals, computed once and copied onto every candidate.
	companyName, companyIndustry := CompanyInfo(doc)
	techStack := TechStack(doc, strings.ToLower(text))

	out := make([]models.CandidateLead, 0, len(agg.order))
	for _, key := range agg.order {
		c := agg.byKey[key]
		finalize(c, companyName, companyIndustry, techStack)
		out = append(out, *c)
	}

	e.logger.Debug("lead extraction complete",
		"url", pageURL,
		"candidates", len(out),
		"tech_stack", techStack,
	)
	return out, nil
}

// finalize backfills page-level and field-level defaults on a candidate.
func finalize(c *models.CandidateLead, companyName, companyIndustry string, techStack []string) {
	if c.CompanyName == "" {
		c.CompanyName = companyName
	}
	if c.CompanyIndustry == "" {
		c.CompanyIndustry = companyIndustry
	}
	if c.TechStack == nil {
		c.TechStack = techStack
	}
	if c.Tags == nil {
		c.Tags = []string{provenanceTag}
	}

	// Username backfill: profile URL first, then the email local part.
	if c.Username == "" && c.ProfileURL != "" {
		if _, inferred := ResolveProfile(c.ProfileURL); inferred != "" {
			c.Username = inferred
		}
	}
	if c.Username == "" && c.Email != "" && c.Platform == models.PlatformEmail {
		c.Username = strings.SplitN(c.Email, "@", 2)[0]
	}

	// Platform fallback: every candidate leaves with a platform.
	if c.Platform == "" {
		switch {
		case c.ProfileURL != "" && !isSocialURL(c.ProfileURL):
			c.Platform = models.PlatformWebsite
		case c.Phone != "":
			c.Platform = models.PlatformPhone
		default:
			c.Platform = models.PlatformUnknown
		}
	}
}

// plausibleName returns the trimmed anchor text when short enough to be a
// name, else the empty string.
func plausibleName(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || utf8.RuneCountInString(trimmed) >= maxNameRunes {
		return ""
	}
	return trimmed
}

// aggregator is an insertion-ordered candidate map. No two candidates in
// one run share a key.
type aggregator struct {
	byKey map[string]*models.CandidateLead
	order []string
}

func newAggregator() *aggregator {
	return &aggregator{byKey: make(map[string]*models.CandidateLead)}
}

func (a *aggregator) add(key string, c models.CandidateLead) {
	if _, exists := a.byKey[key]; exists {
		return
	}
	a.byKey[key] = &c
	a.order = append(a.order, key)
}

func (a *aggregator) get(key string) *models.CandidateLead {
	return a.byKey[key]
}

func (a *aggregator) hasPhone(phone string) bool {
	for _, c := range a.byKey {
		if c.Phone == phone {
			return true
		}
	}
	return false
}
