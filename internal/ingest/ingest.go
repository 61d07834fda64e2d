package ingest

import (
	"context"
	"fmt"
	"time"

	"jobmatch-engine/internal/models"

	"go.uber.org/zap"
)

// Source supplies raw job rows from one scraping backend. The scraping
// mechanics live outside the core; a Source just hands over what it found.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Job, error)
}

type Store interface {
	UpsertJob(ctx context.Context, job *models.Job) error
	DeactivateStaleJobs(ctx context.Context, source string, cutoff time.Time) (int64, error)
}

// Stats summarizes one ingest run.
type Stats struct {
	Fetched     int
	Saved       int
	Failed      int
	Deactivated int64
}

// Ingestor writes scraped postings into storage. Per-row failures are
// logged and skipped; a batch never aborts halfway because one row is
// malformed.
type Ingestor struct {
	store      Store
	staleAfter time.Duration
	logger     *zap.Logger
}

func New(store Store, staleAfter time.Duration, logger *zap.Logger) *Ingestor {
	return &Ingestor{
		store:      store,
		staleAfter: staleAfter,
		logger:     logger,
	}
}

// Run pulls one source and upserts everything it returned, then flags
// postings from that source not seen within the stale window.
func (i *Ingestor) Run(ctx context.Context, source Source) (Stats, error) {
	var stats Stats

	jobs, err := source.Fetch(ctx)
	if err != nil {
		return stats, fmt.Errorf("fetch from %s: %w", source.Name(), err)
	}

	stats.Fetched = len(jobs)

	for idx := range jobs {
		job := &jobs[idx]
		job.Source = source.Name()

		if job.Title == "" || job.ExternalID == "" {
			i.logger.Warn("skipping job without title or external id",
				zap.String("source", source.Name()),
				zap.String("external_id", job.ExternalID),
			)
			stats.Failed++
			continue
		}

		// Unknown enum values from a board degrade to absent, so scoring
		// falls back to its documented defaults instead of miscomparing.
		if job.WorkType != nil && !models.IsValidWorkType(*job.WorkType) {
			i.logger.Warn("dropping unknown work type",
				zap.String("source", source.Name()),
				zap.String("external_id", job.ExternalID),
				zap.String("work_type", *job.WorkType),
			)
			job.WorkType = nil
		}
		if job.ExperienceLevel != nil && !models.IsValidExperienceLevel(*job.ExperienceLevel) {
			i.logger.Warn("dropping unknown experience level",
				zap.String("source", source.Name()),
				zap.String("external_id", job.ExternalID),
				zap.String("experience_level", *job.ExperienceLevel),
			)
			job.ExperienceLevel = nil
		}

		if err := i.store.UpsertJob(ctx, job); err != nil {
			i.logger.Error("failed to save job",
				zap.String("source", source.Name()),
				zap.String("external_id", job.ExternalID),
				zap.Error(err),
			)
			stats.Failed++
			continue
		}

		stats.Saved++
	}

	deactivated, err := i.store.DeactivateStaleJobs(ctx, source.Name(), time.Now().Add(-i.staleAfter))
	if err != nil {
		// The batch itself succeeded; report the cleanup failure without
		// discarding the saved rows.
		i.logger.Error("failed to deactivate stale jobs",
			zap.String("source", source.Name()),
			zap.Error(err),
		)
	}
	stats.Deactivated = deactivated

	i.logger.Info("ingest run finished",
		zap.String("source", source.Name()),
		zap.Int("fetched", stats.Fetched),
		zap.Int("saved", stats.Saved),
		zap.Int("failed", stats.Failed),
		zap.Int64("deactivated", stats.Deactivated),
	)

	return stats, nil
}
