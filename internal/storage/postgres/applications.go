package postgres

import (
	"context"
	"fmt"
	"time"

	"jobmatch-engine/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications (candidate_id, job_id, status, notes, applied_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := s.sess.
		SelectBySql(query, app.CandidateID, app.JobID, app.Status, app.Notes).
		LoadOneContext(ctx, &id)

	if err != nil {
		s.logger.Error("failed to create application",
			zap.Int64("candidate_id", app.CandidateID),
			zap.Int64("job_id", app.JobID),
			zap.Error(err),
		)
		return fmt.Errorf("create application: %w", err)
	}

	app.ID = id

	s.logger.Info("application created",
		zap.Int64("candidate_id", app.CandidateID),
		zap.Int64("job_id", app.JobID),
	)

	return nil
}

func (s *Store) GetApplication(ctx context.Context, applicationID int64) (*models.Application, error) {
	var app models.Application

	err := s.sess.
		Select("*").
		From("applications").
		Where("id = ?", applicationID).
		LoadOneContext(ctx, &app)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get application",
			zap.Int64("application_id", applicationID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get application: %w", err)
	}

	return &app, nil
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, applicationID int64, status string) error {
	result, err := s.sess.
		Update("applications").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where("id = ?", applicationID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update application status",
			zap.Int64("application_id", applicationID),
			zap.String("status", status),
			zap.Error(err),
		)
		return fmt.Errorf("update application status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("application not found")
	}

	s.logger.Info("application status updated",
		zap.Int64("application_id", applicationID),
		zap.String("status", status),
	)

	return nil
}

func (s *Store) ListApplications(ctx context.Context, candidateID int64) ([]models.Application, error) {
	var apps []models.Application

	_, err := s.sess.
		Select("*").
		From("applications").
		Where("candidate_id = ?", candidateID).
		OrderDesc("applied_at").
		LoadContext(ctx, &apps)

	if err != nil {
		s.logger.Error("failed to list applications",
			zap.Int64("candidate_id", candidateID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list applications: %w", err)
	}

	return apps, nil
}
