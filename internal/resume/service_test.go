package resume_test

import (
	"context"
	"errors"
	"testing"

	"jobmatch-engine/internal/models"
	"jobmatch-engine/internal/resume"

	"go.uber.org/zap"
)

type fakeStore struct {
	snapshot    *models.ResumeSnapshot
	updated     bool
	activatedID int64
}

func (s *fakeStore) GetResume(_ context.Context, _ int64) (*models.ResumeSnapshot, error) {
	return s.snapshot, nil
}

func (s *fakeStore) UpdateResumeExtraction(_ context.Context, _ int64, skills models.StringList, years *float64, _ *string, _ models.StringList) error {
	s.updated = true
	s.snapshot.Skills = skills
	s.snapshot.ExperienceYears = years
	return nil
}

func (s *fakeStore) ActivateResume(_ context.Context, _, resumeID int64) error {
	s.activatedID = resumeID
	return nil
}

type fakeExtractor struct {
	extraction *resume.Extraction
	err        error
}

func (e *fakeExtractor) Extract(_ context.Context, _ string) (*resume.Extraction, error) {
	return e.extraction, e.err
}

type fakeRefresher struct {
	calls int
}

func (r *fakeRefresher) Refresh(_ context.Context, _ int64, _ int) ([]*models.MatchRecord, error) {
	r.calls++
	return nil, nil
}

func text(s string) *string { return &s }

func TestReparse_AppliesExtractionAndRefreshes(t *testing.T) {
	store := &fakeStore{snapshot: &models.ResumeSnapshot{
		ID: 7, CandidateID: 1, ParsedText: text("some resume text"),
	}}
	extractor := &fakeExtractor{extraction: &resume.Extraction{
		Skills:          []string{"Go", "SQL"},
		ExperienceYears: 4,
	}}
	refresher := &fakeRefresher{}

	svc := resume.NewService(store, extractor, refresher, 20, zap.NewNop())

	if err := svc.Reparse(context.Background(), 7); err != nil {
		t.Fatalf("reparse: %v", err)
	}

	if !store.updated {
		t.Error("extraction result was not stored")
	}
	if refresher.calls != 1 {
		t.Errorf("refresher called %d times, want 1", refresher.calls)
	}
}

func TestReparse_ExtractionFailureStillRefreshes(t *testing.T) {
	store := &fakeStore{snapshot: &models.ResumeSnapshot{
		ID: 7, CandidateID: 1, ParsedText: text("some resume text"),
	}}
	extractor := &fakeExtractor{err: errors.New("model unavailable")}
	refresher := &fakeRefresher{}

	svc := resume.NewService(store, extractor, refresher, 20, zap.NewNop())

	if err := svc.Reparse(context.Background(), 7); err != nil {
		t.Fatalf("extraction failure must degrade, not fail: %v", err)
	}

	if store.updated {
		t.Error("no extraction should be stored on failure")
	}
	if refresher.calls != 1 {
		t.Errorf("refresher called %d times, want 1", refresher.calls)
	}
}

func TestReparse_UnknownResume(t *testing.T) {
	svc := resume.NewService(&fakeStore{}, &fakeExtractor{}, &fakeRefresher{}, 20, zap.NewNop())

	if err := svc.Reparse(context.Background(), 99); err == nil {
		t.Error("unknown resume should error")
	}
}

func TestActivate_TriggersRefresh(t *testing.T) {
	store := &fakeStore{}
	refresher := &fakeRefresher{}
	svc := resume.NewService(store, &fakeExtractor{}, refresher, 20, zap.NewNop())

	if err := svc.Activate(context.Background(), 1, 7); err != nil {
		t.Fatalf("activate: %v", err)
	}

	if store.activatedID != 7 {
		t.Errorf("activated resume = %d, want 7", store.activatedID)
	}
	if refresher.calls != 1 {
		t.Errorf("refresher called %d times, want 1", refresher.calls)
	}
}
