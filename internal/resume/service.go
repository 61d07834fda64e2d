package resume

import (
	"context"
	"fmt"

	"jobmatch-engine/internal/models"

	"go.uber.org/zap"
)

// Extraction is the structured view of one resume document, as produced by
// an external parsing collaborator.
type Extraction struct {
	Skills          []string
	ExperienceYears float64
	EducationLevel  string
	JobTitles       []string
}

// Extractor turns raw resume text into structured candidate attributes.
// The implementation (LLM call, rule-based parser) lives outside the core.
type Extractor interface {
	Extract(ctx context.Context, parsedText string) (*Extraction, error)
}

type Store interface {
	GetResume(ctx context.Context, resumeID int64) (*models.ResumeSnapshot, error)
	UpdateResumeExtraction(ctx context.Context, resumeID int64, skills models.StringList, experienceYears *float64, educationLevel *string, jobTitles models.StringList) error
	ActivateResume(ctx context.Context, candidateID, resumeID int64) error
}

// Refresher recomputes a candidate's match set after resume changes.
type Refresher interface {
	Refresh(ctx context.Context, candidateID int64, limit int) ([]*models.MatchRecord, error)
}

// Service applies extraction results to resume snapshots and triggers the
// matching refreshes those changes call for.
type Service struct {
	store      Store
	extractor  Extractor
	refresher  Refresher
	matchLimit int
	logger     *zap.Logger
}

func NewService(store Store, extractor Extractor, refresher Refresher, matchLimit int, logger *zap.Logger) *Service {
	return &Service{
		store:      store,
		extractor:  extractor,
		refresher:  refresher,
		matchLimit: matchLimit,
		logger:     logger,
	}
}

// Reparse re-extracts a stored resume's attributes and refreshes the
// candidate's matches. Extraction failure is not fatal: matching proceeds
// with whatever snapshot data is already there.
func (s *Service) Reparse(ctx context.Context, resumeID int64) error {
	snapshot, err := s.store.GetResume(ctx, resumeID)
	if err != nil {
		return fmt.Errorf("load resume: %w", err)
	}
	if snapshot == nil {
		return fmt.Errorf("resume %d not found", resumeID)
	}

	parsedText := ""
	if snapshot.ParsedText != nil {
		parsedText = *snapshot.ParsedText
	}

	extraction, err := s.extractor.Extract(ctx, parsedText)
	if err != nil {
		s.logger.Warn("resume extraction failed, matching will degrade to existing data",
			zap.Int64("resume_id", resumeID),
			zap.Int64("candidate_id", snapshot.CandidateID),
			zap.Error(err),
		)
	} else {
		years := extraction.ExperienceYears
		var education *string
		if extraction.EducationLevel != "" {
			education = &extraction.EducationLevel
		}

		err = s.store.UpdateResumeExtraction(ctx, resumeID,
			models.StringList(extraction.Skills),
			&years,
			education,
			models.StringList(extraction.JobTitles),
		)
		if err != nil {
			return fmt.Errorf("store extraction: %w", err)
		}
	}

	return s.refresh(ctx, snapshot.CandidateID)
}

// Activate makes one snapshot the candidate's active resume and refreshes
// the match set against it.
func (s *Service) Activate(ctx context.Context, candidateID, resumeID int64) error {
	if err := s.store.ActivateResume(ctx, candidateID, resumeID); err != nil {
		return fmt.Errorf("activate resume: %w", err)
	}

	return s.refresh(ctx, candidateID)
}

func (s *Service) refresh(ctx context.Context, candidateID int64) error {
	matches, err := s.refresher.Refresh(ctx, candidateID, s.matchLimit)
	if err != nil {
		return fmt.Errorf("refresh matches: %w", err)
	}

	s.logger.Info("resume change processed",
		zap.Int64("candidate_id", candidateID),
		zap.Int("new_matches", len(matches)),
	)

	return nil
}
