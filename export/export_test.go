package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/prospectio/leadscout/models"
)

func exportLeads() []models.Lead {
	created := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	return []models.Lead{
		{
			ID:              1,
			Username:        "alice",
			Platform:        models.PlatformTwitter,
			FullName:        "Alice Anderson",
			Followers:       10000,
			Email:           "alice@example.com",
			CompanyName:     "Acme Co",
			CompanyIndustry: "Technology",
			TechStack:       []string{"WordPress", "Google Analytics"},
			EngagementScore: 72.5,
			Tags:            []string{"scraped", "vip"},
			CreatedAt:       created,
			LastUpdated:     created,
		},
		{
			ID:       2,
			Username: "bob",
			Platform: models.PlatformEmail,
			Email:    "bob@example.com",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, exportLeads()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0][0] != "ID" || records[0][12] != "Tech Stack" {
		t.Errorf("unexpected header: %v", records[0])
	}
	got := records[1]
	if got[1] != "alice" {
		t.Errorf("username = %q, want alice", got[1])
	}
	if got[12] != "WordPress, Google Analytics" {
		t.Errorf("tech stack = %q", got[12])
	}
	if got[13] != "72.5" {
		t.Errorf("engagement = %q, want 72.5", got[13])
	}
	if got[15] != "2025-06-01 12:30:00" {
		t.Errorf("created at = %q", got[15])
	}
	// Zero timestamps render as empty cells.
	if records[2][15] != "" {
		t.Errorf("zero created at = %q, want empty", records[2][15])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, exportLeads()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var decoded []models.Lead
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("got %d leads, want 2", len(decoded))
	}
	if decoded[0].Username != "alice" || decoded[0].EngagementScore != 72.5 {
		t.Errorf("unexpected first lead: %+v", decoded[0])
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatXLSX, exportLeads()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Leads")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "ID" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][1] != "alice" || rows[1][2] != "twitter" {
		t.Errorf("unexpected data row: %v", rows[1])
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Format("pdf"), nil); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatCSV, "text/csv"},
		{FormatJSON, "application/json"},
		{FormatXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	}
	for _, tt := range tests {
		if got := ContentType(tt.format); got != tt.want {
			t.Errorf("ContentType(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}
