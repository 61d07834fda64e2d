package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Profile holds a candidate's job preferences and notification settings.
// It is owned by the profile service; the matching core only reads it.
type Profile struct {
	CandidateID      int64      `db:"candidate_id"`
	DesiredTitle     *string    `db:"desired_title"`
	DesiredLocation  *string    `db:"desired_location"`
	DesiredSalaryMin *int       `db:"desired_salary_min"`
	DesiredSalaryMax *int       `db:"desired_salary_max"`
	ExperienceLevel  *string    `db:"experience_level"`
	WorkType         *string    `db:"work_type"`
	Skills           StringList `db:"skills"`
	Industries       StringList `db:"industries"`
	CompanySizes     StringList `db:"company_sizes"`

	EmailEnabled      bool      `db:"email_enabled"`
	WhatsAppEnabled   bool      `db:"whatsapp_enabled"`
	TelegramEnabled   bool      `db:"telegram_enabled"`
	TelegramChatID    *int64    `db:"telegram_chat_id"`
	NotifyFrequency   string    `db:"notify_frequency"` // instant, daily, weekly
	AutoMatchEnabled  bool      `db:"auto_match_enabled"`
	MatchIntervalMins int       `db:"match_interval_mins"`

	LastMatchedAt *time.Time `db:"last_matched_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// ResumeSnapshot is the extracted view of one uploaded resume.
// At most one snapshot is active per candidate.
type ResumeSnapshot struct {
	ID          int64   `db:"id"`
	CandidateID int64   `db:"candidate_id"`
	Filename    string  `db:"filename"`
	ParsedText  *string `db:"parsed_text"`

	Skills          StringList `db:"skills"`
	ExperienceYears *float64   `db:"experience_years"`
	EducationLevel  *string    `db:"education_level"`
	JobTitles       StringList `db:"job_titles"`

	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Job is a scraped posting. Rows are written only by the ingest boundary;
// the matching core treats them as read-only.
type Job struct {
	ID              int64   `db:"id"`
	Title           string  `db:"title"`
	Company         string  `db:"company"`
	Location        *string `db:"location"`
	WorkType        *string `db:"work_type"` // remote, hybrid, onsite
	ExperienceLevel *string `db:"experience_level"`
	JobType         *string `db:"job_type"` // full-time, part-time, contract
	SalaryMin       *int    `db:"salary_min"`
	SalaryMax       *int    `db:"salary_max"`

	RequiredSkills  StringList `db:"required_skills"`
	PreferredSkills StringList `db:"preferred_skills"`

	Source      string     `db:"source"`
	ExternalID  string     `db:"external_id"`
	ExternalURL *string    `db:"external_url"`
	IsActive    bool       `db:"is_active"`
	PostedAt    *time.Time `db:"posted_at"`
	ScrapedAt   time.Time  `db:"scraped_at"`
}

// MatchRecord is a persisted scored pairing of one candidate and one job.
// The (candidate_id, job_id) pair is unique; scores are never rewritten in
// place, only the viewed/dismissed flags mutate after creation.
type MatchRecord struct {
	ID          int64 `db:"id"`
	CandidateID int64 `db:"candidate_id"`
	JobID       int64 `db:"job_id"`

	OverallScore    float64 `db:"overall_score"`
	SkillsScore     float64 `db:"skills_score"`
	ExperienceScore float64 `db:"experience_score"`
	LocationScore   float64 `db:"location_score"`
	SalaryScore     float64 `db:"salary_score"`

	MatchingSkills StringList `db:"matching_skills"`
	MissingSkills  StringList `db:"missing_skills"`
	Explanation    string     `db:"explanation"`

	IsRecommended bool      `db:"is_recommended"`
	IsViewed      bool      `db:"is_viewed"`
	IsDismissed   bool      `db:"is_dismissed"`
	CreatedAt     time.Time `db:"created_at"`
}

// Application tracks a candidate's application to one job.
type Application struct {
	ID          int64     `db:"id"`
	CandidateID int64     `db:"candidate_id"`
	JobID       int64     `db:"job_id"`
	Status      string    `db:"status"`
	Notes       *string   `db:"notes"`
	AppliedAt   time.Time `db:"applied_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Notification is a routed message awaiting or past delivery.
type Notification struct {
	ID          int64     `db:"id"`
	CandidateID int64     `db:"candidate_id"`
	Type        string    `db:"type"` // job_match, application_update, system
	Title       string    `db:"title"`
	Message     string    `db:"message"`
	JobID       *int64    `db:"job_id"`
	IsRead      bool      `db:"is_read"`
	CreatedAt   time.Time `db:"created_at"`
}

// JobFilters narrows the active-job pool for one candidate run.
type JobFilters struct {
	Location  *string // restrict to remote jobs or locations containing this
	MinSalary *int    // exclude jobs whose known salary max is below this
	Limit     int
}

// StringList stores a []string as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal([]string(l))
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, (*[]string)(l))
}
