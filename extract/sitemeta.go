package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CompanyInfo derives an organization name and industry guess from page
// metadata. The og:site_name meta tag wins over the <title> element; the
// industry is a small keyword heuristic over the description meta tag.
// Missing tags yield empty strings, never an error.
func CompanyInfo(doc *goquery.Document) (name, industry string) {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		name = strings.TrimSpace(strings.SplitN(title, "|", 2)[0])
	}

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		industry = classifyIndustry(desc)
	}

	if site, ok := doc.Find(`meta[property="og:site_name"]`).First().Attr("content"); ok {
		if site = strings.TrimSpace(site); site != "" {
			name = site
		}
	}

	return name, industry
}

// classifyIndustry is a best-effort keyword classifier, not authoritative.
func classifyIndustry(description string) string {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "software") || strings.Contains(lower, "tech"):
		return "Technology"
	case strings.Contains(lower, "finance") || strings.Contains(lower, "bank"):
		return "Finance"
	default:
		return ""
	}
}
