package boardapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"
)

func boardServer(t *testing.T, pages [][]jobItem) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs" {
			http.NotFound(w, r)
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page >= len(pages) {
			page = len(pages) - 1
		}

		resp := searchResponse{
			Items: pages[page],
			Pages: len(pages),
			Page:  page,
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
}

func strp(s string) *string { return &s }

func intp(v int) *int { return &v }

func TestFetchMapsBoardItems(t *testing.T) {
	posted := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	server := boardServer(t, [][]jobItem{
		{
			{
				ID:              "j-1",
				Title:           "Go Engineer",
				Company:         companyInfo{ID: "c-1", Name: "Acme"},
				Location:        strp("Austin, TX"),
				WorkType:        strp("remote"),
				ExperienceLevel: strp("mid"),
				EmploymentType:  strp("full-time"),
				Salary:          &salaryRange{From: intp(140000), To: intp(180000), Currency: "USD"},
				RequiredSkills:  []string{"Go", "SQL"},
				URL:             "https://board.example/jobs/j-1",
				PostedAt:        &posted,
			},
			{
				ID:       "j-2",
				Title:    "Archived Role",
				Company:  companyInfo{Name: "Beta"},
				Archived: true,
			},
		},
	})
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, zap.NewNop())
	source := NewSource("board", client, SearchParams{Text: "go"}, zap.NewNop())

	jobs, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1 (archived skipped)", len(jobs))
	}

	job := jobs[0]
	if job.ExternalID != "j-1" || job.Title != "Go Engineer" || job.Company != "Acme" {
		t.Errorf("mapped job = %+v", job)
	}
	if job.SalaryMin == nil || *job.SalaryMin != 140000 {
		t.Errorf("salary min = %v, want 140000", job.SalaryMin)
	}
	if job.ExternalURL == nil || *job.ExternalURL != "https://board.example/jobs/j-1" {
		t.Errorf("external url = %v", job.ExternalURL)
	}
	if !job.IsActive {
		t.Error("mapped job must be active")
	}
	if job.PostedAt == nil || !job.PostedAt.Equal(posted) {
		t.Errorf("posted at = %v, want %v", job.PostedAt, posted)
	}
}

func TestFetchFollowsPagination(t *testing.T) {
	server := boardServer(t, [][]jobItem{
		{{ID: "p0", Title: "First", Company: companyInfo{Name: "A"}}},
		{{ID: "p1", Title: "Second", Company: companyInfo{Name: "B"}}},
	})
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, zap.NewNop())
	source := NewSource("board", client, SearchParams{}, zap.NewNop())

	jobs, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2 across pages", len(jobs))
	}
	if jobs[0].ExternalID != "p0" || jobs[1].ExternalID != "p1" {
		t.Errorf("page order = [%s %s], want [p0 p1]", jobs[0].ExternalID, jobs[1].ExternalID)
	}
}

func TestFetchServerErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"description":"bad query"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, zap.NewNop())
	source := NewSource("board", client, SearchParams{Text: "???"}, zap.NewNop())

	if _, err := source.Fetch(context.Background()); err == nil {
		t.Error("bad request should propagate")
	}
}
