package postgres

import (
	"context"
	"fmt"

	"jobmatch-engine/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

func (s *Store) MatchExists(ctx context.Context, candidateID, jobID int64) (bool, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("job_matches").
		Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to check match existence",
			zap.Int64("candidate_id", candidateID),
			zap.Int64("job_id", jobID),
			zap.Error(err),
		)
		return false, fmt.Errorf("match exists: %w", err)
	}

	return count > 0, nil
}

// dbr interpolates raw SQL itself and understands only ? placeholders.
const insertMatchSQL = `
	INSERT INTO job_matches (
		candidate_id, job_id, overall_score, skills_score,
		experience_score, location_score, salary_score,
		matching_skills, missing_skills, explanation,
		is_recommended, is_viewed, is_dismissed, created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, false, false, NOW())
	ON CONFLICT (candidate_id, job_id) DO NOTHING
	RETURNING id
`

// InsertMatch persists a scored pairing. The unique (candidate_id, job_id)
// constraint makes creation race-safe: a conflicting insert reports
// created=false and the existing record is left untouched.
func (s *Store) InsertMatch(ctx context.Context, match *models.MatchRecord) (bool, error) {
	var id int64
	err := s.sess.
		SelectBySql(insertMatchSQL,
			match.CandidateID,
			match.JobID,
			match.OverallScore,
			match.SkillsScore,
			match.ExperienceScore,
			match.LocationScore,
			match.SalaryScore,
			match.MatchingSkills,
			match.MissingSkills,
			match.Explanation,
			match.IsRecommended,
		).
		LoadOneContext(ctx, &id)

	if err == dbr.ErrNotFound {
		// Conflict: the pair already exists.
		return false, nil
	}

	if err != nil {
		s.logger.Error("failed to insert match",
			zap.Int64("candidate_id", match.CandidateID),
			zap.Int64("job_id", match.JobID),
			zap.Error(err),
		)
		return false, fmt.Errorf("insert match: %w", err)
	}

	match.ID = id

	s.logger.Debug("match created",
		zap.Int64("candidate_id", match.CandidateID),
		zap.Int64("job_id", match.JobID),
		zap.Float64("overall_score", match.OverallScore),
	)

	return true, nil
}

// DeleteStaleMatches removes the candidate's unviewed matches scoring below
// the threshold; they are noise once newer information arrives.
func (s *Store) DeleteStaleMatches(ctx context.Context, candidateID int64, belowScore float64) (int64, error) {
	result, err := s.sess.
		DeleteFrom("job_matches").
		Where("candidate_id = ? AND is_viewed = ? AND overall_score < ?", candidateID, false, belowScore).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete stale matches",
			zap.Int64("candidate_id", candidateID),
			zap.Error(err),
		)
		return 0, fmt.Errorf("delete stale matches: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()

	return rowsAffected, nil
}

func (s *Store) ListMatches(ctx context.Context, candidateID int64, limit int) ([]models.MatchRecord, error) {
	stmt := s.sess.
		Select("*").
		From("job_matches").
		Where("candidate_id = ? AND is_dismissed = ?", candidateID, false).
		OrderDesc("overall_score")

	if limit > 0 {
		stmt = stmt.Limit(uint64(limit))
	}

	var matches []models.MatchRecord

	_, err := stmt.LoadContext(ctx, &matches)
	if err != nil {
		s.logger.Error("failed to list matches",
			zap.Int64("candidate_id", candidateID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return matches, nil
}

// MarkMatchViewed flips the one user-interaction flag that shields a match
// from pruning.
func (s *Store) MarkMatchViewed(ctx context.Context, candidateID, matchID int64) error {
	return s.setMatchFlag(ctx, candidateID, matchID, "is_viewed")
}

func (s *Store) MarkMatchDismissed(ctx context.Context, candidateID, matchID int64) error {
	return s.setMatchFlag(ctx, candidateID, matchID, "is_dismissed")
}

func (s *Store) setMatchFlag(ctx context.Context, candidateID, matchID int64, column string) error {
	result, err := s.sess.
		Update("job_matches").
		Set(column, true).
		Where("id = ? AND candidate_id = ?", matchID, candidateID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update match flag",
			zap.Int64("candidate_id", candidateID),
			zap.Int64("match_id", matchID),
			zap.String("flag", column),
			zap.Error(err),
		)
		return fmt.Errorf("set match flag %s: %w", column, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("match not found")
	}

	return nil
}

func (s *Store) CountMatches(ctx context.Context, candidateID int64) (int, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("job_matches").
		Where("candidate_id = ?", candidateID).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to count matches",
			zap.Int64("candidate_id", candidateID),
			zap.Error(err),
		)
		return 0, fmt.Errorf("count matches: %w", err)
	}

	return count, nil
}
