package postgres

import (
	"context"
	"fmt"

	"jobmatch-engine/internal/models"

	"go.uber.org/zap"
)

func (s *Store) InsertNotification(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (candidate_id, type, title, message, job_id, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, false, NOW())
		RETURNING id
	`

	var id int64
	err := s.sess.
		SelectBySql(query, n.CandidateID, n.Type, n.Title, n.Message, n.JobID).
		LoadOneContext(ctx, &id)

	if err != nil {
		s.logger.Error("failed to insert notification",
			zap.Int64("candidate_id", n.CandidateID),
			zap.String("type", n.Type),
			zap.Error(err),
		)
		return fmt.Errorf("insert notification: %w", err)
	}

	n.ID = id

	return nil
}

func (s *Store) ListUnreadNotifications(ctx context.Context, candidateID int64) ([]models.Notification, error) {
	var notifications []models.Notification

	_, err := s.sess.
		Select("*").
		From("notifications").
		Where("candidate_id = ? AND is_read = ?", candidateID, false).
		OrderDesc("created_at").
		LoadContext(ctx, &notifications)

	if err != nil {
		s.logger.Error("failed to list unread notifications",
			zap.Int64("candidate_id", candidateID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}

	return notifications, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, candidateID, notificationID int64) error {
	result, err := s.sess.
		Update("notifications").
		Set("is_read", true).
		Where("id = ? AND candidate_id = ?", notificationID, candidateID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to mark notification read",
			zap.Int64("candidate_id", candidateID),
			zap.Int64("notification_id", notificationID),
			zap.Error(err),
		)
		return fmt.Errorf("mark notification read: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("notification not found")
	}

	return nil
}
