package boardapi

import "time"

type searchResponse struct {
	Items   []jobItem `json:"items"`
	Found   int       `json:"found"`
	Pages   int       `json:"pages"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
}

type jobItem struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Company         companyInfo  `json:"company"`
	Location        *string      `json:"location"`
	WorkType        *string      `json:"work_type"`
	ExperienceLevel *string      `json:"experience_level"`
	EmploymentType  *string      `json:"employment_type"`
	Salary          *salaryRange `json:"salary"`
	RequiredSkills  []string     `json:"required_skills"`
	PreferredSkills []string     `json:"preferred_skills"`
	URL             string       `json:"url"`
	PostedAt        *time.Time   `json:"posted_at"`
	Archived        bool         `json:"archived"`
}

type companyInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type salaryRange struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
}

type errorResponse struct {
	Description string `json:"description"`
	Errors      []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"errors"`
}
