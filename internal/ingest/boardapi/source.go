package boardapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"jobmatch-engine/internal/models"

	"go.uber.org/zap"
)

// maxPages bounds one fetch so a broad query cannot run away.
const maxPages = 5

const defaultPerPage = 50

// SearchParams narrows one board query.
type SearchParams struct {
	Text      string
	Location  string
	MinSalary int
	PerPage   int
}

// Source pulls postings from one board and satisfies the ingest contract.
type Source struct {
	name   string
	client *Client
	params SearchParams
	logger *zap.Logger
}

func NewSource(name string, client *Client, params SearchParams, logger *zap.Logger) *Source {
	if params.PerPage <= 0 {
		params.PerPage = defaultPerPage
	}
	return &Source{
		name:   name,
		client: client,
		params: params,
		logger: logger,
	}
}

func (s *Source) Name() string {
	return s.name
}

// Fetch pages through the board's search endpoint and maps the results.
// Archived postings are skipped; deactivation happens through the stale
// window, not here.
func (s *Source) Fetch(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job

	for page := 0; page < maxPages; page++ {
		response, err := s.search(ctx, page)
		if err != nil {
			return nil, err
		}

		for _, item := range response.Items {
			if item.Archived {
				continue
			}
			jobs = append(jobs, mapJob(item))
		}

		if page >= response.Pages-1 {
			break
		}
	}

	s.logger.Debug("board fetch complete",
		zap.String("source", s.name),
		zap.Int("jobs", len(jobs)),
	)

	return jobs, nil
}

func (s *Source) search(ctx context.Context, page int) (*searchResponse, error) {
	queryParams := url.Values{}

	if s.params.Text != "" {
		queryParams.Set("text", s.params.Text)
	}

	if s.params.Location != "" {
		queryParams.Set("location", s.params.Location)
	}

	if s.params.MinSalary > 0 {
		queryParams.Set("salary", strconv.Itoa(s.params.MinSalary))
	}

	if page > 0 {
		queryParams.Set("page", strconv.Itoa(page))
	}
	queryParams.Set("per_page", strconv.Itoa(s.params.PerPage))

	data, err := s.client.get(ctx, "/jobs", queryParams)
	if err != nil {
		s.logger.Error("failed to search jobs",
			zap.String("source", s.name),
			zap.String("text", s.params.Text),
			zap.Error(err),
		)
		return nil, fmt.Errorf("search jobs: %w", err)
	}

	var response searchResponse
	if err := s.client.parseResponse(data, &response); err != nil {
		s.logger.Error("failed to parse search response", zap.Error(err))
		return nil, err
	}

	return &response, nil
}

func mapJob(item jobItem) models.Job {
	job := models.Job{
		Title:           item.Title,
		Company:         item.Company.Name,
		Location:        item.Location,
		WorkType:        item.WorkType,
		ExperienceLevel: item.ExperienceLevel,
		JobType:         item.EmploymentType,
		RequiredSkills:  models.StringList(item.RequiredSkills),
		PreferredSkills: models.StringList(item.PreferredSkills),
		ExternalID:      item.ID,
		PostedAt:        item.PostedAt,
		IsActive:        true,
	}

	if item.URL != "" {
		externalURL := item.URL
		job.ExternalURL = &externalURL
	}

	if item.Salary != nil {
		job.SalaryMin = item.Salary.From
		job.SalaryMax = item.Salary.To
	}

	return job
}
