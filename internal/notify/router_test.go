package notify_test

import (
	"context"
	"testing"

	"jobmatch-engine/internal/models"
	"jobmatch-engine/internal/notify"

	"go.uber.org/zap"
)

type fakeStore struct {
	profile       *models.Profile
	job           *models.Job
	notifications []*models.Notification
}

func (s *fakeStore) GetProfile(_ context.Context, _ int64) (*models.Profile, error) {
	return s.profile, nil
}

func (s *fakeStore) GetJob(_ context.Context, _ int64) (*models.Job, error) {
	return s.job, nil
}

func (s *fakeStore) InsertNotification(_ context.Context, n *models.Notification) error {
	n.ID = int64(len(s.notifications) + 1)
	s.notifications = append(s.notifications, n)
	return nil
}

func (s *fakeStore) ListUnreadNotifications(_ context.Context, candidateID int64) ([]models.Notification, error) {
	var unread []models.Notification
	for _, n := range s.notifications {
		if n.CandidateID == candidateID && !n.IsRead {
			unread = append(unread, *n)
		}
	}
	return unread, nil
}

func (s *fakeStore) MarkNotificationRead(_ context.Context, _, notificationID int64) error {
	for _, n := range s.notifications {
		if n.ID == notificationID {
			n.IsRead = true
		}
	}
	return nil
}

type fakeChannel struct {
	name string
	sent []*models.Notification
}

func (c *fakeChannel) Name() string { return c.name }

func (c *fakeChannel) Send(_ context.Context, _ *models.Profile, n *models.Notification) error {
	c.sent = append(c.sent, n)
	return nil
}

type fakeLimiter struct {
	count int64
}

func (l *fakeLimiter) IncrementNotifyRate(_ context.Context, _ int64) (int64, error) {
	l.count++
	return l.count, nil
}

func chatID(v int64) *int64 { return &v }

func instantProfile() *models.Profile {
	return &models.Profile{
		CandidateID:     1,
		TelegramEnabled: true,
		TelegramChatID:  chatID(42),
		EmailEnabled:    true,
		NotifyFrequency: models.NotifyInstant,
	}
}

func sampleMatch() []*models.MatchRecord {
	return []*models.MatchRecord{
		{
			CandidateID:   1,
			JobID:         10,
			OverallScore:  85,
			IsRecommended: true,
			Explanation:   "🎯 Excellent match!",
		},
	}
}

func sampleJob() *models.Job {
	return &models.Job{ID: 10, Title: "Go Engineer", Company: "Acme"}
}

func TestNotifyMatches_PersistsAndDeliversToEnabledChannels(t *testing.T) {
	store := &fakeStore{profile: instantProfile(), job: sampleJob()}
	telegram := &fakeChannel{name: "telegram"}
	whatsapp := &fakeChannel{name: "whatsapp"} // disabled on the profile

	router := notify.NewRouter(store, nil, zap.NewNop(), telegram, whatsapp)
	router.NotifyMatches(context.Background(), 1, sampleMatch())

	if len(store.notifications) != 1 {
		t.Fatalf("persisted %d notifications, want 1", len(store.notifications))
	}
	if store.notifications[0].Type != models.NotificationJobMatch {
		t.Errorf("type = %q, want job_match", store.notifications[0].Type)
	}

	if len(telegram.sent) != 1 {
		t.Errorf("telegram received %d deliveries, want 1", len(telegram.sent))
	}
	if len(whatsapp.sent) != 0 {
		t.Errorf("whatsapp is disabled on the profile but received %d deliveries", len(whatsapp.sent))
	}
}

func TestNotifyMatches_DailyFrequencySkipsImmediateDelivery(t *testing.T) {
	profile := instantProfile()
	profile.NotifyFrequency = models.NotifyDaily

	store := &fakeStore{profile: profile, job: sampleJob()}
	telegram := &fakeChannel{name: "telegram"}

	router := notify.NewRouter(store, nil, zap.NewNop(), telegram)
	router.NotifyMatches(context.Background(), 1, sampleMatch())

	if len(store.notifications) != 1 {
		t.Fatalf("notification row must be persisted even when delivery defers, got %d", len(store.notifications))
	}
	if len(telegram.sent) != 0 {
		t.Errorf("daily frequency must not push immediately, got %d deliveries", len(telegram.sent))
	}
}

func TestNotifyMatches_UnknownFrequencyDeliversImmediately(t *testing.T) {
	profile := instantProfile()
	profile.NotifyFrequency = "fortnightly"

	store := &fakeStore{profile: profile, job: sampleJob()}
	telegram := &fakeChannel{name: "telegram"}

	router := notify.NewRouter(store, nil, zap.NewNop(), telegram)
	router.NotifyMatches(context.Background(), 1, sampleMatch())

	// No digest job ever selects an unrecognized frequency, so deferring
	// would strand the notification.
	if len(telegram.sent) != 1 {
		t.Errorf("unknown frequency must deliver immediately, got %d deliveries", len(telegram.sent))
	}
}

func TestNotifyMatches_RateLimitStopsDelivery(t *testing.T) {
	store := &fakeStore{profile: instantProfile(), job: sampleJob()}
	telegram := &fakeChannel{name: "telegram"}
	limiter := &fakeLimiter{count: notify.MaxNotificationsPerHour} // next increment exceeds

	router := notify.NewRouter(store, limiter, zap.NewNop(), telegram)
	router.NotifyMatches(context.Background(), 1, sampleMatch())

	if len(store.notifications) != 1 {
		t.Fatalf("rate-limited notifications are still persisted, got %d", len(store.notifications))
	}
	if len(telegram.sent) != 0 {
		t.Errorf("delivery should be suppressed over the rate limit, got %d", len(telegram.sent))
	}
}

func TestNotifyApplicationUpdate(t *testing.T) {
	store := &fakeStore{profile: instantProfile(), job: sampleJob()}
	telegram := &fakeChannel{name: "telegram"}

	router := notify.NewRouter(store, nil, zap.NewNop(), telegram)
	app := &models.Application{ID: 5, CandidateID: 1, JobID: 10, Status: "interview"}
	router.NotifyApplicationUpdate(context.Background(), app, "interview")

	if len(store.notifications) != 1 {
		t.Fatalf("persisted %d notifications, want 1", len(store.notifications))
	}
	if store.notifications[0].Type != models.NotificationApplicationUpdate {
		t.Errorf("type = %q, want application_update", store.notifications[0].Type)
	}
	if len(telegram.sent) != 1 {
		t.Errorf("telegram received %d deliveries, want 1", len(telegram.sent))
	}
}

func TestDeliverDigest_SendsSummaryAndMarksRead(t *testing.T) {
	profile := instantProfile()
	profile.NotifyFrequency = models.NotifyDaily

	store := &fakeStore{profile: profile, job: sampleJob()}
	telegram := &fakeChannel{name: "telegram"}

	router := notify.NewRouter(store, nil, zap.NewNop(), telegram)

	// Deferred deliveries accumulate as unread rows.
	router.NotifyMatches(context.Background(), 1, sampleMatch())
	if len(telegram.sent) != 0 {
		t.Fatalf("daily frequency must defer, got %d deliveries", len(telegram.sent))
	}

	if err := router.DeliverDigest(context.Background(), profile); err != nil {
		t.Fatalf("deliver digest: %v", err)
	}

	if len(telegram.sent) != 1 {
		t.Fatalf("digest deliveries = %d, want 1", len(telegram.sent))
	}
	if telegram.sent[0].Type != models.NotificationSystem {
		t.Errorf("digest type = %q, want system", telegram.sent[0].Type)
	}

	for _, n := range store.notifications {
		if !n.IsRead {
			t.Errorf("notification %d still unread after digest", n.ID)
		}
	}
}

func TestDeliverDigest_NoUnreadIsNoop(t *testing.T) {
	store := &fakeStore{profile: instantProfile(), job: sampleJob()}
	telegram := &fakeChannel{name: "telegram"}

	router := notify.NewRouter(store, nil, zap.NewNop(), telegram)

	if err := router.DeliverDigest(context.Background(), store.profile); err != nil {
		t.Fatalf("deliver digest: %v", err)
	}
	if len(telegram.sent) != 0 {
		t.Errorf("empty digest must not send, got %d", len(telegram.sent))
	}
}

func TestDeliverDigest_NoEnabledChannelKeepsUnread(t *testing.T) {
	profile := instantProfile()
	profile.NotifyFrequency = models.NotifyDaily
	profile.TelegramEnabled = false

	store := &fakeStore{profile: profile, job: sampleJob()}
	telegram := &fakeChannel{name: "telegram"}

	router := notify.NewRouter(store, nil, zap.NewNop(), telegram)
	router.NotifyMatches(context.Background(), 1, sampleMatch())

	if err := router.DeliverDigest(context.Background(), profile); err != nil {
		t.Fatalf("deliver digest: %v", err)
	}

	if len(telegram.sent) != 0 {
		t.Errorf("disabled channel must not receive the digest, got %d", len(telegram.sent))
	}
	for _, n := range store.notifications {
		if n.IsRead {
			t.Error("undelivered digest must leave rows unread")
		}
	}
}

func TestNotifyMatches_NoMatchesIsNoop(t *testing.T) {
	store := &fakeStore{profile: instantProfile(), job: sampleJob()}
	router := notify.NewRouter(store, nil, zap.NewNop())

	router.NotifyMatches(context.Background(), 1, nil)

	if len(store.notifications) != 0 {
		t.Errorf("no matches should produce no notifications, got %d", len(store.notifications))
	}
}
