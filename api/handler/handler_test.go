package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prospectio/leadscout/config"
	"github.com/prospectio/leadscout/extract"
	"github.com/prospectio/leadscout/models"
	"github.com/prospectio/leadscout/storage"
)

// fakeRepo is an in-memory Repository for handler tests.
type fakeRepo struct {
	leads  map[int64]models.Lead
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{leads: make(map[int64]models.Lead), nextID: 1}
}

func (f *fakeRepo) Init(ctx context.Context) error { return nil }

func (f *fakeRepo) Save(ctx context.Context, lead models.Lead) (*models.Lead, error) {
	for _, l := range f.leads {
		if l.Username == lead.Username && l.Platform == lead.Platform {
			return nil, storage.ErrDuplicate
		}
	}
	lead.ID = f.nextID
	f.nextID++
	f.leads[lead.ID] = lead
	return &lead, nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (*models.Lead, error) {
	l, ok := f.leads[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &l, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, lead models.Lead) (*models.Lead, error) {
	if _, ok := f.leads[id]; !ok {
		return nil, storage.ErrNotFound
	}
	lead.ID = id
	f.leads[id] = lead
	return &lead, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.leads[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.leads, id)
	return nil
}

func (f *fakeRepo) Search(ctx context.Context, q models.SearchQuery) ([]models.Lead, int64, error) {
	var out []models.Lead
	for _, l := range f.leads {
		if q.Platform != "" && q.Platform != "all" && string(l.Platform) != q.Platform {
			continue
		}
		out = append(out, l)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.leads)), nil
}

func (f *fakeRepo) Stats(ctx context.Context) (*models.StatsResponse, error) {
	return &models.StatsResponse{TotalLeads: int64(len(f.leads))}, nil
}

func (f *fakeRepo) Tags(ctx context.Context) ([]string, error) { return nil, nil }

func (f *fakeRepo) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := f.leads[id]; ok {
			delete(f.leads, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) BulkTag(ctx context.Context, ids []int64, tags []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := f.leads[id]; ok {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) Close() error { return nil }

func testRouter(repo storage.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/leads", CreateLead(repo))
	r.GET("/leads", ListLeads(repo))
	r.GET("/leads/:id", GetLead(repo))
	r.PUT("/leads/:id", UpdateLead(repo))
	r.DELETE("/leads/:id", DeleteLead(repo))
	r.POST("/leads/bulk-delete", BulkDeleteLeads(repo))
	r.POST("/leads/bulk-tag", BulkTagLeads(repo))
	r.POST("/engagement", Engagement(repo))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateLead(t *testing.T) {
	r := testRouter(newFakeRepo())

	w := doJSON(t, r, http.MethodPost, "/leads",
		`{"username": "alice", "platform": "twitter", "followers": 100}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body)
	}

	var resp models.LeadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Lead == nil || resp.Lead.Username != "alice" {
		t.Errorf("unexpected response: %s", w.Body)
	}
}

func TestCreateLeadDuplicate(t *testing.T) {
	r := testRouter(newFakeRepo())

	body := `{"username": "alice", "platform": "twitter"}`
	if w := doJSON(t, r, http.MethodPost, "/leads", body); w.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/leads", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", w.Code, w.Body)
	}
	if !strings.Contains(w.Body.String(), models.ErrCodeDuplicate) {
		t.Errorf("missing error code in body: %s", w.Body)
	}
}

func TestCreateLeadMissingUsername(t *testing.T) {
	r := testRouter(newFakeRepo())

	w := doJSON(t, r, http.MethodPost, "/leads", `{"platform": "twitter"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body)
	}
}

func TestGetLeadNotFound(t *testing.T) {
	r := testRouter(newFakeRepo())

	w := doJSON(t, r, http.MethodGet, "/leads/42", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", w.Code, w.Body)
	}
}

func TestGetLeadBadID(t *testing.T) {
	r := testRouter(newFakeRepo())

	w := doJSON(t, r, http.MethodGet, "/leads/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body)
	}
}

func TestUpdateAndDeleteLead(t *testing.T) {
	repo := newFakeRepo()
	r := testRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/leads", `{"username": "alice", "platform": "twitter"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/leads/1",
		`{"username": "alice", "platform": "twitter", "full_name": "Alice Anderson"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d: %s", w.Code, w.Body)
	}
	if repo.leads[1].FullName != "Alice Anderson" {
		t.Errorf("full name not updated: %+v", repo.leads[1])
	}

	w = doJSON(t, r, http.MethodDelete, "/leads/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d: %s", w.Code, w.Body)
	}
	if len(repo.leads) != 0 {
		t.Errorf("lead not deleted")
	}
}

func TestListLeads(t *testing.T) {
	repo := newFakeRepo()
	r := testRouter(repo)

	doJSON(t, r, http.MethodPost, "/leads", `{"username": "alice", "platform": "twitter"}`)
	doJSON(t, r, http.MethodPost, "/leads", `{"username": "bob", "platform": "instagram"}`)

	w := doJSON(t, r, http.MethodGet, "/leads?platform=twitter", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}

	var resp models.LeadListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || len(resp.Leads) != 1 || resp.Leads[0].Username != "alice" {
		t.Errorf("unexpected response: %s", w.Body)
	}
	if resp.Limit != 100 {
		t.Errorf("limit = %d, want default 100", resp.Limit)
	}
}

func TestBulkDelete(t *testing.T) {
	repo := newFakeRepo()
	r := testRouter(repo)

	doJSON(t, r, http.MethodPost, "/leads", `{"username": "alice", "platform": "twitter"}`)
	doJSON(t, r, http.MethodPost, "/leads", `{"username": "bob", "platform": "twitter"}`)

	w := doJSON(t, r, http.MethodPost, "/leads/bulk-delete", `{"ids": [1, 2, 99]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}

	var resp models.BulkResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Affected != 2 {
		t.Errorf("affected = %d, want 2", resp.Affected)
	}
}

func TestScrapeHonorsRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, `<html><body>reach us: a@b.com</body></html>`)
	}))
	t.Cleanup(srv.Close)

	// The engine default is far too short for this page; only the request's
	// own timeout can let the fetch finish.
	engine := extract.NewEngine(50*time.Millisecond,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/scrape", Scrape(engine, newFakeRepo(), nil, config.WebhookConfig{}))

	w := doJSON(t, r, http.MethodPost, "/scrape",
		`{"url": "`+srv.URL+`", "timeout": 2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}

	var resp models.ScrapeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Candidates) != 1 {
		t.Fatalf("candidates = %d, want 1 (request timeout not applied)", len(resp.Candidates))
	}
}

func TestEngagementScore(t *testing.T) {
	r := testRouter(newFakeRepo())

	w := doJSON(t, r, http.MethodPost, "/engagement",
		`{"followers": 1000, "likes_avg": 10, "comments_avg": 5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}

	var resp models.EngagementResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Score != 20.1 {
		t.Errorf("score = %v, want 20.1", resp.Score)
	}
}

func TestEngagementStoresOnLead(t *testing.T) {
	repo := newFakeRepo()
	r := testRouter(repo)

	doJSON(t, r, http.MethodPost, "/leads", `{"username": "alice", "platform": "twitter"}`)

	w := doJSON(t, r, http.MethodPost, "/engagement",
		`{"followers": 1000, "likes_avg": 10, "comments_avg": 5, "lead_id": 1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	if repo.leads[1].EngagementScore != 20.1 {
		t.Errorf("stored score = %v, want 20.1", repo.leads[1].EngagementScore)
	}

	w = doJSON(t, r, http.MethodPost, "/engagement",
		`{"followers": 1000, "likes_avg": 10, "comments_avg": 5, "lead_id": 99}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", w.Code, w.Body)
	}
}
