package postgres

import (
	"context"
	"fmt"
	"time"

	"jobmatch-engine/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// QueryActiveJobs selects the candidate's job pool. A location preference
// keeps remote jobs plus jobs whose location contains the preference; a
// minimum salary excludes jobs whose known salary max falls below it.
func (s *Store) QueryActiveJobs(ctx context.Context, filters models.JobFilters) ([]models.Job, error) {
	stmt := s.sess.
		Select("*").
		From("jobs").
		Where("is_active = ?", true)

	if filters.Location != nil && *filters.Location != "" {
		stmt = stmt.Where(
			"(work_type = 'remote' OR location ILIKE ?)",
			"%"+*filters.Location+"%",
		)
	}

	if filters.MinSalary != nil {
		stmt = stmt.Where(
			"(salary_max IS NULL OR salary_max >= ?)",
			*filters.MinSalary,
		)
	}

	if filters.Limit > 0 {
		stmt = stmt.Limit(uint64(filters.Limit))
	}

	var jobs []models.Job

	_, err := stmt.LoadContext(ctx, &jobs)
	if err != nil {
		s.logger.Error("failed to query active jobs", zap.Error(err))
		return nil, fmt.Errorf("query active jobs: %w", err)
	}

	return jobs, nil
}

func (s *Store) GetJob(ctx context.Context, jobID int64) (*models.Job, error) {
	var job models.Job

	err := s.sess.
		Select("*").
		From("jobs").
		Where("id = ?", jobID).
		LoadOneContext(ctx, &job)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get job",
			zap.Int64("job_id", jobID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get job: %w", err)
	}

	return &job, nil
}

// dbr interpolates raw SQL itself and understands only ? placeholders.
const upsertJobSQL = `
	INSERT INTO jobs (
		title, company, location, work_type, experience_level,
		job_type, salary_min, salary_max, required_skills,
		preferred_skills, source, external_id, external_url,
		is_active, posted_at, scraped_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (source, external_id) DO UPDATE SET
		title = EXCLUDED.title,
		company = EXCLUDED.company,
		location = EXCLUDED.location,
		work_type = EXCLUDED.work_type,
		experience_level = EXCLUDED.experience_level,
		job_type = EXCLUDED.job_type,
		salary_min = EXCLUDED.salary_min,
		salary_max = EXCLUDED.salary_max,
		required_skills = EXCLUDED.required_skills,
		preferred_skills = EXCLUDED.preferred_skills,
		external_url = EXCLUDED.external_url,
		is_active = EXCLUDED.is_active,
		posted_at = EXCLUDED.posted_at,
		scraped_at = EXCLUDED.scraped_at
`

// UpsertJob inserts or refreshes a scraped posting keyed by its source and
// external id.
func (s *Store) UpsertJob(ctx context.Context, job *models.Job) error {
	_, err := s.sess.
		InsertBySql(upsertJobSQL,
			job.Title,
			job.Company,
			job.Location,
			job.WorkType,
			job.ExperienceLevel,
			job.JobType,
			job.SalaryMin,
			job.SalaryMax,
			job.RequiredSkills,
			job.PreferredSkills,
			job.Source,
			job.ExternalID,
			job.ExternalURL,
			true,
			job.PostedAt,
			time.Now(),
		).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to upsert job",
			zap.String("source", job.Source),
			zap.String("external_id", job.ExternalID),
			zap.Error(err),
		)
		return fmt.Errorf("upsert job: %w", err)
	}

	return nil
}

// DeactivateStaleJobs flags postings from one source that have not been
// seen by the scraper since the cutoff.
func (s *Store) DeactivateStaleJobs(ctx context.Context, source string, cutoff time.Time) (int64, error) {
	result, err := s.sess.
		Update("jobs").
		Set("is_active", false).
		Where("source = ? AND is_active = ? AND scraped_at < ?", source, true, cutoff).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to deactivate stale jobs",
			zap.String("source", source),
			zap.Error(err),
		)
		return 0, fmt.Errorf("deactivate stale jobs: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()

	s.logger.Info("stale jobs deactivated",
		zap.String("source", source),
		zap.Int64("count", rowsAffected),
	)

	return rowsAffected, nil
}
