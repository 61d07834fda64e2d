package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"jobmatch-engine/internal/matching"
	"jobmatch-engine/internal/models"

	"go.uber.org/zap"
)

// MaxJobPool bounds the number of jobs scored in one candidate run.
const MaxJobPool = 100

// ErrRefreshInProgress is returned when another refresh already holds the
// candidate's lock.
var ErrRefreshInProgress = errors.New("refresh already in progress for candidate")

// Storage is the persistence contract the maintainer runs against. Absent
// rows come back as (nil, nil); real storage failures abort the run.
type Storage interface {
	GetProfile(ctx context.Context, candidateID int64) (*models.Profile, error)
	GetActiveResume(ctx context.Context, candidateID int64) (*models.ResumeSnapshot, error)
	QueryActiveJobs(ctx context.Context, filters models.JobFilters) ([]models.Job, error)
	MatchExists(ctx context.Context, candidateID, jobID int64) (bool, error)
	// InsertMatch reports created=false when the (candidate, job) pair
	// already exists; the unique constraint is the race guard.
	InsertMatch(ctx context.Context, match *models.MatchRecord) (created bool, err error)
	DeleteStaleMatches(ctx context.Context, candidateID int64, belowScore float64) (int64, error)
	ListMatches(ctx context.Context, candidateID int64, limit int) ([]models.MatchRecord, error)
	MarkMatchViewed(ctx context.Context, candidateID, matchID int64) error
	MarkMatchDismissed(ctx context.Context, candidateID, matchID int64) error
}

// ResultCache holds a candidate's most recent match listing between
// refreshes. Cache errors are treated as misses.
type ResultCache interface {
	GetMatchResults(ctx context.Context, candidateID int64) ([]models.MatchRecord, error)
	SetMatchResults(ctx context.Context, candidateID int64, matches []models.MatchRecord) error
	InvalidateMatchResults(ctx context.Context, candidateID int64) error
}

// Notifier receives the recommended subset of freshly created matches.
// Delivery is fire-and-forget; failures are the notifier's concern.
type Notifier interface {
	NotifyMatches(ctx context.Context, candidateID int64, matches []*models.MatchRecord)
}

// Locker serializes refreshes per candidate. Optional: the database unique
// constraint already prevents double-created matches, the lock just avoids
// wasted work when two triggers race.
type Locker interface {
	AcquireRefreshLock(ctx context.Context, candidateID int64) (bool, error)
	ReleaseRefreshLock(ctx context.Context, candidateID int64)
}

// Maintainer keeps a candidate's match set fresh: it scores the candidate
// against the active job pool, persists new matches above the relevance
// gate, prunes stale unviewed low matches, and hands recommended matches
// to the notifier.
type Maintainer struct {
	store    Storage
	notifier Notifier
	locker   Locker
	cache    ResultCache
	logger   *zap.Logger

	compute func(*models.Profile, *models.ResumeSnapshot, *models.Job) *matching.Result
}

func New(store Storage, notifier Notifier, locker Locker, cache ResultCache, logger *zap.Logger) *Maintainer {
	return &Maintainer{
		store:    store,
		notifier: notifier,
		locker:   locker,
		cache:    cache,
		logger:   logger,
		compute:  matching.ComputeMatch,
	}
}

// Refresh recomputes the match set for one candidate. Triggered by resume
// activation, resume reparse, or an explicit recomputation request. Returns
// the newly created matches ordered by overall score descending, truncated
// to limit.
func (m *Maintainer) Refresh(ctx context.Context, candidateID int64, limit int) ([]*models.MatchRecord, error) {
	if m.locker != nil {
		acquired, err := m.locker.AcquireRefreshLock(ctx, candidateID)
		if err != nil {
			m.logger.Warn("refresh lock unavailable, proceeding unlocked",
				zap.Int64("candidate_id", candidateID),
				zap.Error(err),
			)
		} else if !acquired {
			return nil, ErrRefreshInProgress
		} else {
			defer m.locker.ReleaseRefreshLock(ctx, candidateID)
		}
	}

	// Prune first so fresh matches in the 30-40 band survive this run.
	pruned, err := m.store.DeleteStaleMatches(ctx, candidateID, matching.PruneThreshold)
	if err != nil {
		return nil, fmt.Errorf("prune stale matches: %w", err)
	}
	if pruned > 0 {
		m.logger.Info("pruned stale matches",
			zap.Int64("candidate_id", candidateID),
			zap.Int64("count", pruned),
		)
	}

	profile, err := m.store.GetProfile(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	resume, err := m.store.GetActiveResume(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("get active resume: %w", err)
	}

	jobs, err := m.store.QueryActiveJobs(ctx, poolFilters(profile))
	if err != nil {
		return nil, fmt.Errorf("query active jobs: %w", err)
	}

	var created []*models.MatchRecord

	for i := range jobs {
		job := &jobs[i]

		exists, err := m.store.MatchExists(ctx, candidateID, job.ID)
		if err != nil {
			return nil, fmt.Errorf("match existence check: %w", err)
		}
		if exists {
			continue
		}

		result := m.scoreJob(candidateID, profile, resume, job)
		if result == nil || result.OverallScore < matching.RelevanceThreshold {
			continue
		}

		record := &models.MatchRecord{
			CandidateID:     candidateID,
			JobID:           job.ID,
			OverallScore:    result.OverallScore,
			SkillsScore:     result.SkillsScore,
			ExperienceScore: result.ExperienceScore,
			LocationScore:   result.LocationScore,
			SalaryScore:     result.SalaryScore,
			MatchingSkills:  result.MatchingSkills,
			MissingSkills:   result.MissingSkills,
			Explanation:     result.Explanation,
			IsRecommended:   result.Recommended,
		}

		wasCreated, err := m.store.InsertMatch(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("insert match: %w", err)
		}
		if !wasCreated {
			// Lost the race to a concurrent trigger; the existing
			// record wins.
			continue
		}

		created = append(created, record)
	}

	sort.SliceStable(created, func(i, j int) bool {
		return created[i].OverallScore > created[j].OverallScore
	})

	if limit > 0 && len(created) > limit {
		created = created[:limit]
	}

	m.logger.Info("refresh finished",
		zap.Int64("candidate_id", candidateID),
		zap.Int("pool_size", len(jobs)),
		zap.Int("new_matches", len(created)),
	)

	if pruned > 0 || len(created) > 0 {
		m.invalidateCache(ctx, candidateID)
	}

	if m.notifier != nil {
		if recommended := recommendedOnly(created); len(recommended) > 0 {
			m.notifier.NotifyMatches(ctx, candidateID, recommended)
		}
	}

	return created, nil
}

// Matches returns the candidate's current match listing, highest score
// first, dismissed matches excluded. Reads go through the result cache;
// cache failures fall through to storage.
func (m *Maintainer) Matches(ctx context.Context, candidateID int64, limit int) ([]models.MatchRecord, error) {
	if m.cache != nil {
		cached, err := m.cache.GetMatchResults(ctx, candidateID)
		if err == nil && cached != nil {
			if limit > 0 && len(cached) > limit {
				cached = cached[:limit]
			}
			return cached, nil
		}
	}

	matches, err := m.store.ListMatches(ctx, candidateID, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	if m.cache != nil {
		if err := m.cache.SetMatchResults(ctx, candidateID, matches); err != nil {
			m.logger.Debug("failed to cache match results",
				zap.Int64("candidate_id", candidateID),
				zap.Error(err),
			)
		}
	}

	return matches, nil
}

// MarkViewed flags a match as seen, shielding it from pruning. The cached
// listing is dropped so the flag is visible on the next read.
func (m *Maintainer) MarkViewed(ctx context.Context, candidateID, matchID int64) error {
	if err := m.store.MarkMatchViewed(ctx, candidateID, matchID); err != nil {
		return fmt.Errorf("mark match viewed: %w", err)
	}

	m.invalidateCache(ctx, candidateID)
	return nil
}

// MarkDismissed hides a match from future listings. The cached listing is
// dropped so the match disappears on the next read.
func (m *Maintainer) MarkDismissed(ctx context.Context, candidateID, matchID int64) error {
	if err := m.store.MarkMatchDismissed(ctx, candidateID, matchID); err != nil {
		return fmt.Errorf("mark match dismissed: %w", err)
	}

	m.invalidateCache(ctx, candidateID)
	return nil
}

func (m *Maintainer) invalidateCache(ctx context.Context, candidateID int64) {
	if m.cache == nil {
		return
	}

	if err := m.cache.InvalidateMatchResults(ctx, candidateID); err != nil {
		m.logger.Warn("failed to invalidate cached matches",
			zap.Int64("candidate_id", candidateID),
			zap.Error(err),
		)
	}
}

// scoreJob computes one pairing, isolating panics so a malformed job row
// never aborts the batch.
func (m *Maintainer) scoreJob(candidateID int64, profile *models.Profile, resume *models.ResumeSnapshot, job *models.Job) (result *matching.Result) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("scoring panicked, skipping job",
				zap.Int64("candidate_id", candidateID),
				zap.Int64("job_id", job.ID),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			result = nil
		}
	}()

	return m.compute(profile, resume, job)
}

// poolFilters narrows the job pool from profile preferences. A nil profile
// selects the unfiltered active pool.
func poolFilters(profile *models.Profile) models.JobFilters {
	filters := models.JobFilters{Limit: MaxJobPool}
	if profile == nil {
		return filters
	}

	if profile.DesiredLocation != nil && *profile.DesiredLocation != "" {
		filters.Location = profile.DesiredLocation
	}
	if profile.DesiredSalaryMin != nil {
		filters.MinSalary = profile.DesiredSalaryMin
	}

	return filters
}

func recommendedOnly(matches []*models.MatchRecord) []*models.MatchRecord {
	var recommended []*models.MatchRecord
	for _, match := range matches {
		if match.IsRecommended {
			recommended = append(recommended, match)
		}
	}
	return recommended
}
