// Package scheduler runs the periodic match refresh cycle for every
// candidate whose interval has elapsed.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobmatch-engine/internal/ingest"
	"jobmatch-engine/internal/models"
	"jobmatch-engine/internal/notify"
	"jobmatch-engine/internal/recommend"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Store interface {
	GetCandidatesDueForRefresh(ctx context.Context) ([]models.Profile, error)
	UpdateLastMatched(ctx context.Context, candidateID int64) error
	GetCandidatesForDigest(ctx context.Context, frequency string) ([]models.Profile, error)
}

// Scheduler wraps robfig/cron around the match maintainer.
type Scheduler struct {
	cron       *cron.Cron
	store      Store
	maintainer *recommend.Maintainer
	matchLimit int
	spec       string
	logger     *zap.Logger

	ingestor     *ingest.Ingestor
	ingestSource ingest.Source
	ingestSpec   string

	router *notify.Router
}

func New(store Store, maintainer *recommend.Maintainer, interval time.Duration, matchLimit int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		store:      store,
		maintainer: maintainer,
		matchLimit: matchLimit,
		spec:       fmt.Sprintf("@every %s", interval),
		logger:     logger,
	}
}

// WithDigests adds daily and weekly digest delivery to the cron loop.
func (s *Scheduler) WithDigests(router *notify.Router) {
	s.router = router
}

// WithIngest adds a periodic board pull to the cron loop.
func (s *Scheduler) WithIngest(ingestor *ingest.Ingestor, source ingest.Source, interval time.Duration) {
	s.ingestor = ingestor
	s.ingestSource = source
	s.ingestSpec = fmt.Sprintf("@every %s", interval)
}

// Start registers the refresh job and starts the cron loop. One cycle runs
// immediately so fresh deployments do not wait for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}

	if s.ingestor != nil {
		_, err := s.cron.AddFunc(s.ingestSpec, func() {
			s.runIngest(ctx)
		})
		if err != nil {
			return fmt.Errorf("register ingest job: %w", err)
		}
	}

	if s.router != nil {
		if _, err := s.cron.AddFunc("@daily", func() {
			s.runDigests(ctx, models.NotifyDaily)
		}); err != nil {
			return fmt.Errorf("register daily digest job: %w", err)
		}
		if _, err := s.cron.AddFunc("@weekly", func() {
			s.runDigests(ctx, models.NotifyWeekly)
		}); err != nil {
			return fmt.Errorf("register weekly digest job: %w", err)
		}
	}

	s.cron.Start()
	s.logger.Info("match scheduler started", zap.String("spec", s.spec))

	go func() {
		if s.ingestor != nil {
			s.runIngest(ctx)
		}
		s.runCycle(ctx)
	}()

	return nil
}

func (s *Scheduler) runDigests(ctx context.Context, frequency string) {
	digestCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	profiles, err := s.store.GetCandidatesForDigest(digestCtx, frequency)
	if err != nil {
		s.logger.Error("failed to get candidates for digest",
			zap.String("frequency", frequency),
			zap.Error(err),
		)
		return
	}

	for i := range profiles {
		if err := s.router.DeliverDigest(digestCtx, &profiles[i]); err != nil {
			s.logger.Error("failed to deliver digest",
				zap.Int64("candidate_id", profiles[i].CandidateID),
				zap.Error(err),
			)
		}
	}
}

func (s *Scheduler) runIngest(ctx context.Context) {
	ingestCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	if _, err := s.ingestor.Run(ingestCtx, s.ingestSource); err != nil {
		s.logger.Error("ingest run failed",
			zap.String("source", s.ingestSource.Name()),
			zap.Error(err),
		)
	}
}

// Stop halts the cron loop and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("match scheduler stopped")
}

// runCycle refreshes every candidate that is due. Per-candidate failures
// are logged and the cycle moves on.
func (s *Scheduler) runCycle(ctx context.Context) {
	cycleCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	profiles, err := s.store.GetCandidatesDueForRefresh(cycleCtx)
	if err != nil {
		s.logger.Error("failed to get candidates due for refresh", zap.Error(err))
		return
	}

	if len(profiles) == 0 {
		s.logger.Debug("no candidates due for refresh")
		return
	}

	s.logger.Info("refresh cycle started", zap.Int("candidates", len(profiles)))

	for _, profile := range profiles {
		if cycleCtx.Err() != nil {
			s.logger.Warn("refresh cycle interrupted", zap.Error(cycleCtx.Err()))
			return
		}

		_, err := s.maintainer.Refresh(cycleCtx, profile.CandidateID, s.matchLimit)
		if errors.Is(err, recommend.ErrRefreshInProgress) {
			s.logger.Debug("candidate refresh already running",
				zap.Int64("candidate_id", profile.CandidateID),
			)
			continue
		}
		if err != nil {
			s.logger.Error("failed to refresh candidate",
				zap.Int64("candidate_id", profile.CandidateID),
				zap.Error(err),
			)
			continue
		}

		if err := s.store.UpdateLastMatched(cycleCtx, profile.CandidateID); err != nil {
			s.logger.Error("failed to update last matched",
				zap.Int64("candidate_id", profile.CandidateID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("refresh cycle finished")
}
