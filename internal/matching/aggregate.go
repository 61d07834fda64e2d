package matching

import (
	"math"
	"strings"

	"jobmatch-engine/internal/models"
)

// Weights for the overall score. Education is reserved in the table but has
// no scoring function yet, so the effective weights sum to 0.90. Kept that
// way on purpose: normalizing would shift every persisted overall score and
// the 30/40/70 thresholds along with it.
const (
	WeightSkills     = 0.35
	WeightExperience = 0.25
	WeightLocation   = 0.15
	WeightSalary     = 0.15
	WeightEducation  = 0.10 // reserved, not computed
)

const (
	// RelevanceThreshold is the minimum overall score for a match to be
	// persisted at all.
	RelevanceThreshold = 30.0

	// PruneThreshold marks unviewed matches below it as stale noise once
	// newer information arrives.
	PruneThreshold = 40.0

	// RecommendThreshold marks a match as a high-confidence suggestion.
	RecommendThreshold = 70.0
)

// Result is the full scored outcome for one (candidate, job) pair.
type Result struct {
	OverallScore    float64
	SkillsScore     float64
	ExperienceScore float64
	LocationScore   float64
	SalaryScore     float64
	MatchingSkills  []string
	MissingSkills   []string
	Explanation     string
	Recommended     bool
}

// ComputeMatch scores one job against a candidate's profile and active
// resume snapshot. Either input may be nil; missing attributes degrade to
// documented defaults instead of failing.
func ComputeMatch(profile *models.Profile, resume *models.ResumeSnapshot, job *models.Job) *Result {
	candidateSkills := CandidateSkills(profile, resume)

	skills := ScoreSkills(candidateSkills, job.RequiredSkills, job.PreferredSkills)

	years := 0.0
	if resume != nil && resume.ExperienceYears != nil {
		years = *resume.ExperienceYears
	}
	experience := ScoreExperience(years, deref(job.ExperienceLevel))

	var candidateLocation, candidateWorkType string
	if profile != nil {
		candidateLocation = deref(profile.DesiredLocation)
		candidateWorkType = deref(profile.WorkType)
	}
	location := ScoreLocation(candidateLocation, deref(job.Location), candidateWorkType, deref(job.WorkType))

	var salaryMin, salaryMax *int
	if profile != nil {
		salaryMin = profile.DesiredSalaryMin
		salaryMax = profile.DesiredSalaryMax
	}
	salary := ScoreSalary(salaryMin, salaryMax, job.SalaryMin, job.SalaryMax)

	overall := skills.Score*WeightSkills +
		experience*WeightExperience +
		location*WeightLocation +
		salary*WeightSalary

	explanation := Explain(overall, skills.Score, experience, location, salary, skills.Matching, skills.Missing)

	// Thresholds apply to the rounded score, matching what gets persisted.
	overall = round1(overall)

	return &Result{
		OverallScore:    overall,
		SkillsScore:     round1(skills.Score),
		ExperienceScore: round1(experience),
		LocationScore:   round1(location),
		SalaryScore:     round1(salary),
		MatchingSkills:  skills.Matching,
		MissingSkills:   skills.Missing,
		Explanation:     explanation,
		Recommended:     overall >= RecommendThreshold,
	}
}

// CandidateSkills merges resume and profile skills into one deduplicated
// list, resume first, preserving first-seen order and casing.
func CandidateSkills(profile *models.Profile, resume *models.ResumeSnapshot) []string {
	var merged []string
	if resume != nil {
		merged = append(merged, resume.Skills...)
	}
	if profile != nil {
		merged = append(merged, profile.Skills...)
	}

	seen := make(map[string]bool, len(merged))
	result := make([]string, 0, len(merged))
	for _, skill := range merged {
		norm := strings.ToLower(strings.TrimSpace(skill))
		if seen[norm] {
			continue
		}
		seen[norm] = true
		result = append(result, skill)
	}
	return result
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
