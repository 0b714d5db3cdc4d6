package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/prospectio/leadscout/models"
)

// orderColumns whitelists the sortable columns for Search.
var orderColumns = map[string]string{
	"engagement_score": "engagement_score",
	"followers":        "followers",
	"username":         "username",
	"created_at":       "created_at",
	"last_updated":     "last_updated",
}

// DuckDBRepo persists leads in a DuckDB database file.
type DuckDBRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewDuckDBRepo opens (or creates) the DuckDB file at path.
func NewDuckDBRepo(path string, logger *slog.Logger) (*DuckDBRepo, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open duckdb: %w", err)
	}
	return &DuckDBRepo{db: db, logger: logger}, nil
}

// Init creates the schema if it does not exist.
func (r *DuckDBRepo) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE SEQUENCE IF NOT EXISTS leads_id_seq`,
		`CREATE TABLE IF NOT EXISTS leads (
			id BIGINT PRIMARY KEY DEFAULT nextval('leads_id_seq'),
			username TEXT NOT NULL,
			platform TEXT NOT NULL,
			full_name TEXT,
			bio TEXT,
			followers BIGINT DEFAULT 0,
			email TEXT,
			website TEXT,
			location TEXT,
			profile_url TEXT,
			company_name TEXT,
			company_industry TEXT,
			company_size TEXT,
			job_title TEXT,
			tech_stack TEXT DEFAULT '[]',
			engagement_score DOUBLE DEFAULT 0,
			tags TEXT DEFAULT '[]',
			created_at TIMESTAMP,
			last_updated TIMESTAMP,
			UNIQUE (username, platform)
		)`,
	}
	for _, q := range stmts {
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("storage: init schema: %w", err)
		}
	}
	return nil
}

const leadColumns = `id, username, platform, full_name, bio, followers, email, website, location,
	profile_url, company_name, company_industry, company_size, job_title,
	tech_stack, engagement_score, tags, created_at, last_updated`

// Save inserts a new lead. ErrDuplicate is returned when the
// (username, platform) pair is already stored.
func (r *DuckDBRepo) Save(ctx context.Context, lead models.Lead) (*models.Lead, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM leads WHERE username = ? AND platform = ?)`,
		lead.Username, string(lead.Platform),
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("storage: check duplicate: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	now := time.Now().UTC()
	lead.CreatedAt = now
	lead.LastUpdated = now

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO leads (username, platform, full_name, bio, followers, email, website,
			location, profile_url, company_name, company_industry, company_size, job_title,
			tech_stack, engagement_score, tags, created_at, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		lead.Username, string(lead.Platform), lead.FullName, lead.Bio, lead.Followers,
		lead.Email, lead.Website, lead.Location, lead.ProfileURL, lead.CompanyName,
		lead.CompanyIndustry, lead.CompanySize, lead.JobTitle, marshalJSON(lead.TechStack),
		lead.EngagementScore, marshalJSON(lead.Tags), lead.CreatedAt, lead.LastUpdated,
	).Scan(&lead.ID)
	if err != nil {
		return nil, fmt.Errorf("storage: insert lead: %w", err)
	}

	r.logger.Debug("lead stored", "id", lead.ID, "username", lead.Username, "platform", lead.Platform)
	return &lead, nil
}

// Get returns the lead with the given ID, or ErrNotFound.
func (r *DuckDBRepo) Get(ctx context.Context, id int64) (*models.Lead, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = ?`, id)
	lead, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get lead: %w", err)
	}
	return lead, nil
}

// Update replaces the mutable fields of an existing lead.
func (r *DuckDBRepo) Update(ctx context.Context, id int64, lead models.Lead) (*models.Lead, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE leads SET username = ?, platform = ?, full_name = ?, bio = ?, followers = ?,
			email = ?, website = ?, location = ?, profile_url = ?, company_name = ?,
			company_industry = ?, company_size = ?, job_title = ?, tech_stack = ?,
			engagement_score = ?, tags = ?, last_updated = ?
		WHERE id = ?`,
		lead.Username, string(lead.Platform), lead.FullName, lead.Bio, lead.Followers,
		lead.Email, lead.Website, lead.Location, lead.ProfileURL, lead.CompanyName,
		lead.CompanyIndustry, lead.CompanySize, lead.JobTitle, marshalJSON(lead.TechStack),
		lead.EngagementScore, marshalJSON(lead.Tags), time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: update lead: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes the lead with the given ID.
func (r *DuckDBRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("storage: delete lead: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Search applies the query filters and returns one page of leads plus the
// total match count before pagination.
func (r *DuckDBRepo) Search(ctx context.Context, q models.SearchQuery) ([]models.Lead, int64, error) {
	var conds []string
	var args []any

	if q.Query != "" {
		term := "%" + q.Query + "%"
		conds = append(conds,
			`(username ILIKE ? OR full_name ILIKE ? OR bio ILIKE ? OR email ILIKE ?)`)
		args = append(args, term, term, term, term)
	}
	if q.Platform != "" && q.Platform != "all" {
		conds = append(conds, `platform = ?`)
		args = append(args, q.Platform)
	}
	if q.MinFollowers > 0 {
		conds = append(conds, `followers >= ?`)
		args = append(args, q.MinFollowers)
	}
	if q.MinEngagement > 0 {
		conds = append(conds, `engagement_score >= ?`)
		args = append(args, q.MinEngagement)
	}
	for _, tag := range q.Tags {
		if tag == "" {
			continue
		}
		conds = append(conds, `contains(tags, ?)`)
		args = append(args, tag)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("storage: count leads: %w", err)
	}

	orderCol, ok := orderColumns[q.OrderBy]
	if !ok {
		orderCol = "engagement_score"
	}

	query := fmt.Sprintf(
		`SELECT %s FROM leads%s ORDER BY %s DESC LIMIT ? OFFSET ?`,
		leadColumns, where, orderCol,
	)
	rows, err := r.db.QueryContext(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("storage: search leads: %w", err)
	}
	defer rows.Close()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// Count returns the total number of stored leads.
func (r *DuckDBRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n)
	return n, err
}

// Stats aggregates the per-platform distribution, overall averages, and the
// five most recent leads.
func (r *DuckDBRepo) Stats(ctx context.Context) (*models.StatsResponse, error) {
	stats := &models.StatsResponse{
		ByPlatform:   make(map[string]models.PlatformStats),
		TopPlatforms: []string{},
		RecentLeads:  []models.Lead{},
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT platform, COUNT(*), COALESCE(AVG(followers), 0), COALESCE(AVG(engagement_score), 0)
		FROM leads GROUP BY platform`)
	if err != nil {
		return nil, fmt.Errorf("storage: platform stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var platform string
		var ps models.PlatformStats
		if err := rows.Scan(&platform, &ps.Count, &ps.AvgFollowers, &ps.AvgEngagement); err != nil {
			return nil, fmt.Errorf("storage: scan platform stats: %w", err)
		}
		ps.AvgFollowers = round2(ps.AvgFollowers)
		ps.AvgEngagement = round2(ps.AvgEngagement)
		stats.ByPlatform[platform] = ps
		stats.TotalLeads += ps.Count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: platform stats: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(AVG(followers), 0), COALESCE(AVG(engagement_score), 0), COALESCE(SUM(followers), 0)
		FROM leads`,
	).Scan(&stats.AvgFollowers, &stats.AvgEngagement, &stats.TotalFollowers)
	if err != nil {
		return nil, fmt.Errorf("storage: overall stats: %w", err)
	}
	stats.AvgFollowers = round2(stats.AvgFollowers)
	stats.AvgEngagement = round2(stats.AvgEngagement)

	// Top platforms by lead count, capped at five.
	for platform := range stats.ByPlatform {
		stats.TopPlatforms = append(stats.TopPlatforms, platform)
	}
	sort.Slice(stats.TopPlatforms, func(i, j int) bool {
		a, b := stats.TopPlatforms[i], stats.TopPlatforms[j]
		if stats.ByPlatform[a].Count != stats.ByPlatform[b].Count {
			return stats.ByPlatform[a].Count > stats.ByPlatform[b].Count
		}
		return a < b
	})
	if len(stats.TopPlatforms) > 5 {
		stats.TopPlatforms = stats.TopPlatforms[:5]
	}

	recent, err := r.db.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("storage: recent leads: %w", err)
	}
	defer recent.Close()

	stats.RecentLeads, err = scanLeads(recent)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Tags returns the sorted union of all tags across all leads.
func (r *DuckDBRepo) Tags(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tags FROM leads`)
	if err != nil {
		return nil, fmt.Errorf("storage: list tags: %w", err)
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("storage: scan tags: %w", err)
		}
		for _, tag := range unmarshalJSON(raw) {
			set[tag] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: list tags: %w", err)
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// BulkDelete removes all leads whose IDs are listed, returning how many
// rows were deleted.
func (r *DuckDBRepo) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := fmt.Sprintf(`DELETE FROM leads WHERE id IN (%s)`, placeholders(len(ids)))
	res, err := r.db.ExecContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return 0, fmt.Errorf("storage: bulk delete: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// BulkTag merges the given tags into each listed lead's tag set.
func (r *DuckDBRepo) BulkTag(ctx context.Context, ids []int64, tags []string) (int64, error) {
	if len(ids) == 0 || len(tags) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`SELECT id, tags FROM leads WHERE id IN (%s)`, placeholders(len(ids)))
	rows, err := r.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return 0, fmt.Errorf("storage: bulk tag select: %w", err)
	}
	defer rows.Close()

	merged := make(map[int64]string)
	for rows.Next() {
		var id int64
		var raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return 0, fmt.Errorf("storage: bulk tag scan: %w", err)
		}
		merged[id] = marshalJSON(mergeTags(unmarshalJSON(raw), tags))
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("storage: bulk tag select: %w", err)
	}

	var affected int64
	now := time.Now().UTC()
	for id, tagsJSON := range merged {
		res, err := r.db.ExecContext(ctx,
			`UPDATE leads SET tags = ?, last_updated = ? WHERE id = ?`, tagsJSON, now, id)
		if err != nil {
			return affected, fmt.Errorf("storage: bulk tag update: %w", err)
		}
		n, _ := res.RowsAffected()
		affected += n
	}
	return affected, nil
}

func (r *DuckDBRepo) Close() error {
	return r.db.Close()
}

// GetDB exposes the underlying handle for export queries.
func (r *DuckDBRepo) GetDB() *sql.DB {
	return r.db
}

// --- helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*models.Lead, error) {
	var l models.Lead
	var platform, techStack, tags string
	err := row.Scan(
		&l.ID, &l.Username, &platform, &l.FullName, &l.Bio, &l.Followers,
		&l.Email, &l.Website, &l.Location, &l.ProfileURL, &l.CompanyName,
		&l.CompanyIndustry, &l.CompanySize, &l.JobTitle, &techStack,
		&l.EngagementScore, &tags, &l.CreatedAt, &l.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	l.Platform = models.Platform(platform)
	l.TechStack = unmarshalJSON(techStack)
	l.Tags = unmarshalJSON(tags)
	return &l, nil
}

func scanLeads(rows *sql.Rows) ([]models.Lead, error) {
	leads := []models.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: scan lead: %w", err)
		}
		leads = append(leads, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate leads: %w", err)
	}
	return leads, nil
}

func marshalJSON(values []string) string {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return string(b)
}

func unmarshalJSON(raw string) []string {
	var out []string
	if raw == "" {
		return []string{}
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func mergeTags(existing, extra []string) []string {
	seen := make(map[string]struct{}, len(existing))
	out := existing
	for _, t := range existing {
		seen[t] = struct{}{}
	}
	for _, t := range extra {
		if _, ok := seen[t]; ok || t == "" {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
