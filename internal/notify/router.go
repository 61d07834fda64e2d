package notify

import (
	"context"
	"fmt"

	"jobmatch-engine/internal/models"

	"go.uber.org/zap"
)

// MaxNotificationsPerHour caps deliveries per candidate; rows above the cap
// are persisted but not pushed to channels.
const MaxNotificationsPerHour = 30

// Channel delivers one notification over a single transport. Delivery
// failures are logged and dropped; the core never retries.
type Channel interface {
	Name() string
	Send(ctx context.Context, profile *models.Profile, n *models.Notification) error
}

// Store is the slice of persistence the router needs.
type Store interface {
	GetProfile(ctx context.Context, candidateID int64) (*models.Profile, error)
	GetJob(ctx context.Context, jobID int64) (*models.Job, error)
	InsertNotification(ctx context.Context, n *models.Notification) error
	ListUnreadNotifications(ctx context.Context, candidateID int64) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, candidateID, notificationID int64) error
}

// RateLimiter counts deliveries per candidate within a sliding window.
type RateLimiter interface {
	IncrementNotifyRate(ctx context.Context, candidateID int64) (int64, error)
}

// Router persists notifications and fans them out to whichever delivery
// channels the candidate has enabled.
type Router struct {
	store    Store
	limiter  RateLimiter
	channels []Channel
	logger   *zap.Logger
}

func NewRouter(store Store, limiter RateLimiter, logger *zap.Logger, channels ...Channel) *Router {
	return &Router{
		store:    store,
		limiter:  limiter,
		channels: channels,
		logger:   logger,
	}
}

// NotifyMatches records one notification per recommended match and pushes
// them to the candidate's enabled channels. Fire-and-forget: errors are
// logged, never returned to the maintainer.
func (r *Router) NotifyMatches(ctx context.Context, candidateID int64, matches []*models.MatchRecord) {
	if len(matches) == 0 {
		return
	}

	profile, err := r.store.GetProfile(ctx, candidateID)
	if err != nil {
		r.logger.Error("failed to load profile for notification",
			zap.Int64("candidate_id", candidateID),
			zap.Error(err),
		)
		return
	}

	for _, match := range matches {
		job, err := r.store.GetJob(ctx, match.JobID)
		if err != nil || job == nil {
			r.logger.Warn("job missing for match notification",
				zap.Int64("candidate_id", candidateID),
				zap.Int64("job_id", match.JobID),
				zap.Error(err),
			)
			continue
		}

		jobID := job.ID
		n := &models.Notification{
			CandidateID: candidateID,
			Type:        models.NotificationJobMatch,
			Title:       fmt.Sprintf("New job match: %s at %s", job.Title, job.Company),
			Message:     FormatMatchMessage(job, match),
			JobID:       &jobID,
		}

		if err := r.store.InsertNotification(ctx, n); err != nil {
			r.logger.Error("failed to persist match notification",
				zap.Int64("candidate_id", candidateID),
				zap.Int64("job_id", job.ID),
				zap.Error(err),
			)
			continue
		}

		r.deliver(ctx, profile, n)
	}
}

// NotifyApplicationUpdate records and delivers a status-change notice.
func (r *Router) NotifyApplicationUpdate(ctx context.Context, app *models.Application, status string) {
	profile, err := r.store.GetProfile(ctx, app.CandidateID)
	if err != nil {
		r.logger.Error("failed to load profile for notification",
			zap.Int64("candidate_id", app.CandidateID),
			zap.Error(err),
		)
		return
	}

	job, err := r.store.GetJob(ctx, app.JobID)
	if err != nil || job == nil {
		r.logger.Warn("job missing for application notification",
			zap.Int64("candidate_id", app.CandidateID),
			zap.Int64("job_id", app.JobID),
			zap.Error(err),
		)
		return
	}

	jobID := job.ID
	n := &models.Notification{
		CandidateID: app.CandidateID,
		Type:        models.NotificationApplicationUpdate,
		Title:       fmt.Sprintf("Application update: %s at %s", job.Title, job.Company),
		Message:     FormatApplicationMessage(job, status),
		JobID:       &jobID,
	}

	if err := r.store.InsertNotification(ctx, n); err != nil {
		r.logger.Error("failed to persist application notification",
			zap.Int64("candidate_id", app.CandidateID),
			zap.Error(err),
		)
		return
	}

	r.deliver(ctx, profile, n)
}

func (r *Router) deliver(ctx context.Context, profile *models.Profile, n *models.Notification) {
	if profile == nil {
		return
	}

	// Non-instant candidates get their rows batched by a digest later;
	// nothing is pushed right away. An unrecognized frequency would never
	// be picked up by any digest, so it delivers immediately instead.
	if profile.NotifyFrequency != "" && profile.NotifyFrequency != models.NotifyInstant {
		if models.IsValidNotifyFrequency(profile.NotifyFrequency) {
			r.logger.Debug("delivery deferred to digest",
				zap.Int64("candidate_id", profile.CandidateID),
				zap.String("frequency", profile.NotifyFrequency),
			)
			return
		}

		r.logger.Warn("unknown notify frequency, delivering immediately",
			zap.Int64("candidate_id", profile.CandidateID),
			zap.String("frequency", profile.NotifyFrequency),
		)
	}

	if r.limiter != nil {
		count, err := r.limiter.IncrementNotifyRate(ctx, profile.CandidateID)
		if err == nil && count > MaxNotificationsPerHour {
			r.logger.Warn("notification rate limit reached",
				zap.Int64("candidate_id", profile.CandidateID),
				zap.Int64("count", count),
			)
			return
		}
	}

	for _, channel := range r.channels {
		if !channelEnabled(profile, channel.Name()) {
			continue
		}

		if err := channel.Send(ctx, profile, n); err != nil {
			r.logger.Error("channel delivery failed",
				zap.Int64("candidate_id", profile.CandidateID),
				zap.String("channel", channel.Name()),
				zap.Error(err),
			)
			continue
		}

		r.logger.Info("notification delivered",
			zap.Int64("candidate_id", profile.CandidateID),
			zap.String("channel", channel.Name()),
			zap.String("type", n.Type),
		)
	}
}

func channelEnabled(profile *models.Profile, name string) bool {
	switch name {
	case "telegram":
		return profile.TelegramEnabled && profile.TelegramChatID != nil
	case "email":
		return profile.EmailEnabled
	case "whatsapp":
		return profile.WhatsAppEnabled
	default:
		return false
	}
}
