package postgres

import (
	"context"
	"fmt"
	"time"

	"jobmatch-engine/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

func (s *Store) GetProfile(ctx context.Context, candidateID int64) (*models.Profile, error) {
	var profile models.Profile

	err := s.sess.
		Select("*").
		From("candidate_profiles").
		Where("candidate_id = ?", candidateID).
		LoadOneContext(ctx, &profile)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get profile",
			zap.Int64("candidate_id", candidateID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &profile, nil
}

// GetCandidatesDueForRefresh returns candidates with auto-matching enabled
// whose match interval has elapsed since the last run.
func (s *Store) GetCandidatesDueForRefresh(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile

	query := `
		SELECT * FROM candidate_profiles
		WHERE auto_match_enabled = true
		AND (
			last_matched_at IS NULL
			OR NOW() - last_matched_at >= (match_interval_mins || ' minutes')::interval
		)
	`

	_, err := s.sess.
		SelectBySql(query).
		LoadContext(ctx, &profiles)

	if err != nil {
		s.logger.Error("failed to get candidates due for refresh", zap.Error(err))
		return nil, fmt.Errorf("get candidates due for refresh: %w", err)
	}

	s.logger.Debug("candidates due for refresh",
		zap.Int("count", len(profiles)),
	)

	return profiles, nil
}

// dbr interpolates raw SQL itself and understands only ? placeholders.
const digestCandidatesSQL = `
	SELECT p.* FROM candidate_profiles p
	WHERE p.notify_frequency = ?
	AND EXISTS (
		SELECT 1 FROM notifications n
		WHERE n.candidate_id = p.candidate_id AND n.is_read = false
	)
`

// GetCandidatesForDigest returns profiles on the given notification
// frequency that have unread notifications waiting.
func (s *Store) GetCandidatesForDigest(ctx context.Context, frequency string) ([]models.Profile, error) {
	var profiles []models.Profile

	_, err := s.sess.
		SelectBySql(digestCandidatesSQL, frequency).
		LoadContext(ctx, &profiles)

	if err != nil {
		s.logger.Error("failed to get candidates for digest",
			zap.String("frequency", frequency),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get candidates for digest: %w", err)
	}

	return profiles, nil
}

func (s *Store) UpdateLastMatched(ctx context.Context, candidateID int64) error {
	now := time.Now()

	_, err := s.sess.
		Update("candidate_profiles").
		Set("last_matched_at", now).
		Where("candidate_id = ?", candidateID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update last matched",
			zap.Int64("candidate_id", candidateID),
			zap.Error(err),
		)
		return fmt.Errorf("update last matched: %w", err)
	}

	return nil
}
