// Package export writes lead lists as CSV, JSON, or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/prospectio/leadscout/models"
)

// Format identifies an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// header is the shared column set across all formats.
var header = []string{
	"ID", "Username", "Platform", "Full Name", "Bio", "Followers",
	"Email", "Website", "Location", "Profile URL", "Company Name",
	"Company Industry", "Tech Stack", "Engagement Score", "Tags",
	"Created At", "Last Updated",
}

// ContentType returns the MIME type for a format.
func ContentType(f Format) string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

// Write encodes leads in the given format onto w.
func Write(w io.Writer, f Format, leads []models.Lead) error {
	switch f {
	case FormatCSV:
		return writeCSV(w, leads)
	case FormatJSON:
		return writeJSON(w, leads)
	case FormatXLSX:
		return writeXLSX(w, leads)
	default:
		return fmt.Errorf("export: unsupported format %q", f)
	}
}

func writeCSV(w io.Writer, leads []models.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}
	for _, l := range leads {
		if err := cw.Write(row(l)); err != nil {
			return fmt.Errorf("export: write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, leads []models.Lead) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(leads); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, leads []models.Lead) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leads"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("export: create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: drop default sheet: %w", err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("export: write xlsx header: %w", err)
	}

	for i, l := range leads {
		cells := row(l)
		values := make([]any, len(cells))
		for j, c := range cells {
			values[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("export: write xlsx row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write xlsx: %w", err)
	}
	return nil
}

func row(l models.Lead) []string {
	return []string{
		strconv.FormatInt(l.ID, 10),
		l.Username,
		string(l.Platform),
		l.FullName,
		l.Bio,
		strconv.FormatInt(l.Followers, 10),
		l.Email,
		l.Website,
		l.Location,
		l.ProfileURL,
		l.CompanyName,
		l.CompanyIndustry,
		strings.Join(l.TechStack, ", "),
		strconv.FormatFloat(l.EngagementScore, 'f', -1, 64),
		strings.Join(l.Tags, ", "),
		formatTime(l.CreatedAt),
		formatTime(l.LastUpdated),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
