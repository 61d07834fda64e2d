package applications

import (
	"context"
	"fmt"

	"jobmatch-engine/internal/models"

	"go.uber.org/zap"
)

type Store interface {
	CreateApplication(ctx context.Context, app *models.Application) error
	GetApplication(ctx context.Context, applicationID int64) (*models.Application, error)
	UpdateApplicationStatus(ctx context.Context, applicationID int64, status string) error
}

// Notifier routes an application_update notice; delivery is not our concern.
type Notifier interface {
	NotifyApplicationUpdate(ctx context.Context, app *models.Application, status string)
}

// Service applies and tracks a candidate's applications, enforcing the
// pipeline's transition rules.
type Service struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger
}

func NewService(store Store, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Apply records a fresh application in the applied stage.
func (s *Service) Apply(ctx context.Context, candidateID, jobID int64, notes *string) (*models.Application, error) {
	app := &models.Application{
		CandidateID: candidateID,
		JobID:       jobID,
		Status:      string(StatusApplied),
		Notes:       notes,
	}

	if err := s.store.CreateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}

	return app, nil
}

// UpdateStatus moves an application along the pipeline and routes a
// status-change notification.
func (s *Service) UpdateStatus(ctx context.Context, applicationID int64, rawStatus string) error {
	to, err := ParseStatus(rawStatus)
	if err != nil {
		return err
	}

	app, err := s.store.GetApplication(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("load application: %w", err)
	}
	if app == nil {
		return fmt.Errorf("application %d not found", applicationID)
	}

	from, err := ParseStatus(app.Status)
	if err != nil {
		return fmt.Errorf("stored status invalid: %w", err)
	}

	if !IsTransitionAllowed(from, to) {
		return fmt.Errorf("transition %s -> %s is not allowed", from, to)
	}

	if err := s.store.UpdateApplicationStatus(ctx, applicationID, string(to)); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	s.logger.Info("application moved",
		zap.Int64("application_id", applicationID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	if s.notifier != nil {
		s.notifier.NotifyApplicationUpdate(ctx, app, string(to))
	}

	return nil
}
