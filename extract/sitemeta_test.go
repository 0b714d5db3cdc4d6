package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse test HTML: %v", err)
	}
	return doc
}

func TestCompanyInfo(t *testing.T) {
	tests := []struct {
		name         string
		html         string
		wantName     string
		wantIndustry string
	}{
		{
			"og site name wins over title",
			`<html><head>
				<title>Something Else | Blog</title>
				<meta property="og:site_name" content="Acme Co">
			</head></html>`,
			"Acme Co", "",
		},
		{
			"title before pipe",
			`<html><head><title>Acme Co | Home</title></head></html>`,
			"Acme Co", "",
		},
		{
			"title without pipe",
			`<html><head><title>Acme Co</title></head></html>`,
			"Acme Co", "",
		},
		{
			"technology keyword",
			`<html><head>
				<title>Acme</title>
				<meta name="description" content="We build software for teams">
			</head></html>`,
			"Acme", "Technology",
		},
		{
			"finance keyword",
			`<html><head>
				<title>Acme</title>
				<meta name="description" content="A modern bank for founders">
			</head></html>`,
			"Acme", "Finance",
		},
		{
			"unclassified description",
			`<html><head>
				<title>Acme</title>
				<meta name="description" content="Great pizza downtown">
			</head></html>`,
			"Acme", "",
		},
		{
			"no signals at all",
			`<html><head></head><body><p>hi</p></body></html>`,
			"", "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, industry := CompanyInfo(mustDoc(t, tt.html))
			if name != tt.wantName {
				t.Errorf("company name = %q, want %q", name, tt.wantName)
			}
			if industry != tt.wantIndustry {
				t.Errorf("industry = %q, want %q", industry, tt.wantIndustry)
			}
		})
	}
}
