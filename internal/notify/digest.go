package notify

import (
	"context"
	"fmt"
	"strings"

	"jobmatch-engine/internal/models"

	"go.uber.org/zap"
)

// maxDigestLines caps how many notification titles one digest spells out.
const maxDigestLines = 10

// DeliverDigest pushes one summary of the candidate's unread notifications
// to their enabled channels and marks the included rows read. Candidates on
// non-instant frequency accumulate rows between digests; this is where
// those rows finally go out.
func (r *Router) DeliverDigest(ctx context.Context, profile *models.Profile) error {
	if profile == nil {
		return nil
	}

	unread, err := r.store.ListUnreadNotifications(ctx, profile.CandidateID)
	if err != nil {
		return fmt.Errorf("list unread notifications: %w", err)
	}
	if len(unread) == 0 {
		return nil
	}

	digest := &models.Notification{
		CandidateID: profile.CandidateID,
		Type:        models.NotificationSystem,
		Title:       fmt.Sprintf("You have %d new updates", len(unread)),
		Message:     formatDigest(unread),
	}

	delivered := false
	for _, channel := range r.channels {
		if !channelEnabled(profile, channel.Name()) {
			continue
		}

		if err := channel.Send(ctx, profile, digest); err != nil {
			r.logger.Error("digest delivery failed",
				zap.Int64("candidate_id", profile.CandidateID),
				zap.String("channel", channel.Name()),
				zap.Error(err),
			)
			continue
		}
		delivered = true
	}

	if !delivered {
		// Rows stay unread; the next digest picks them up again.
		return nil
	}

	for _, n := range unread {
		if err := r.store.MarkNotificationRead(ctx, profile.CandidateID, n.ID); err != nil {
			r.logger.Error("failed to mark notification read",
				zap.Int64("candidate_id", profile.CandidateID),
				zap.Int64("notification_id", n.ID),
				zap.Error(err),
			)
		}
	}

	r.logger.Info("digest delivered",
		zap.Int64("candidate_id", profile.CandidateID),
		zap.Int("notifications", len(unread)),
	)

	return nil
}

func formatDigest(unread []models.Notification) string {
	var sb strings.Builder

	sb.WriteString("📬 While you were away:\n")

	for i, n := range unread {
		if i == maxDigestLines {
			sb.WriteString(fmt.Sprintf("...and %d more\n", len(unread)-maxDigestLines))
			break
		}
		sb.WriteString(fmt.Sprintf("• %s\n", n.Title))
	}

	return sb.String()
}
