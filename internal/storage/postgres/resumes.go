package postgres

import (
	"context"
	"fmt"

	"jobmatch-engine/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// GetActiveResume returns the candidate's most recent active snapshot, or
// (nil, nil) when the candidate has none.
func (s *Store) GetActiveResume(ctx context.Context, candidateID int64) (*models.ResumeSnapshot, error) {
	var resume models.ResumeSnapshot

	err := s.sess.
		Select("*").
		From("resumes").
		Where("candidate_id = ? AND is_active = ?", candidateID, true).
		OrderDesc("created_at").
		Limit(1).
		LoadOneContext(ctx, &resume)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get active resume",
			zap.Int64("candidate_id", candidateID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get active resume: %w", err)
	}

	return &resume, nil
}

func (s *Store) GetResume(ctx context.Context, resumeID int64) (*models.ResumeSnapshot, error) {
	var resume models.ResumeSnapshot

	err := s.sess.
		Select("*").
		From("resumes").
		Where("id = ?", resumeID).
		LoadOneContext(ctx, &resume)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get resume",
			zap.Int64("resume_id", resumeID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get resume: %w", err)
	}

	return &resume, nil
}

// dbr interpolates raw SQL itself and understands only ? placeholders.
const activateResumeSQL = `
	UPDATE resumes
	SET is_active = (id = ?), updated_at = NOW()
	WHERE candidate_id = ?
`

// ActivateResume marks one snapshot active and deactivates the candidate's
// others in a single statement, so the at-most-one-active invariant holds
// even under concurrent activations.
func (s *Store) ActivateResume(ctx context.Context, candidateID, resumeID int64) error {
	result, err := s.sess.
		UpdateBySql(activateResumeSQL, resumeID, candidateID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to activate resume",
			zap.Int64("candidate_id", candidateID),
			zap.Int64("resume_id", resumeID),
			zap.Error(err),
		)
		return fmt.Errorf("activate resume: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("resume not found")
	}

	s.logger.Info("resume activated",
		zap.Int64("candidate_id", candidateID),
		zap.Int64("resume_id", resumeID),
	)

	return nil
}

// UpdateResumeExtraction stores the structured attributes produced by the
// extraction boundary.
func (s *Store) UpdateResumeExtraction(ctx context.Context, resumeID int64, skills models.StringList, experienceYears *float64, educationLevel *string, jobTitles models.StringList) error {
	_, err := s.sess.
		Update("resumes").
		Set("skills", skills).
		Set("experience_years", experienceYears).
		Set("education_level", educationLevel).
		Set("job_titles", jobTitles).
		Where("id = ?", resumeID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update resume extraction",
			zap.Int64("resume_id", resumeID),
			zap.Error(err),
		)
		return fmt.Errorf("update resume extraction: %w", err)
	}

	s.logger.Info("resume extraction updated",
		zap.Int64("resume_id", resumeID),
		zap.Int("skills", len(skills)),
	)

	return nil
}
