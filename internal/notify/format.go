package notify

import (
	"fmt"
	"strings"

	"jobmatch-engine/internal/models"
)

// FormatMatchMessage renders one scored match as a plain-text notification
// body.
func FormatMatchMessage(job *models.Job, match *models.MatchRecord) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", job.Title))
	sb.WriteString(fmt.Sprintf("🏢 Company: %s\n", job.Company))

	if job.Location != nil && *job.Location != "" {
		sb.WriteString(fmt.Sprintf("📍 Location: %s\n", *job.Location))
	}

	if job.WorkType != nil && *job.WorkType != "" {
		sb.WriteString(fmt.Sprintf("💼 Work type: %s\n", *job.WorkType))
	}

	sb.WriteString(fmt.Sprintf("💰 Salary: %s\n", FormatSalaryRange(job.SalaryMin, job.SalaryMax)))
	sb.WriteString(fmt.Sprintf("⭐ Match score: %.1f%%\n", match.OverallScore))

	if len(match.MatchingSkills) > 0 {
		sb.WriteString(fmt.Sprintf("✅ Your skills: %s\n", strings.Join(match.MatchingSkills, ", ")))
	}

	if len(match.MissingSkills) > 0 {
		sb.WriteString(fmt.Sprintf("📚 To learn: %s\n", strings.Join(match.MissingSkills, ", ")))
	}

	sb.WriteString(fmt.Sprintf("\n%s", match.Explanation))

	if job.ExternalURL != nil && *job.ExternalURL != "" {
		sb.WriteString(fmt.Sprintf("\n\n🔗 %s", *job.ExternalURL))
	}

	return sb.String()
}

// FormatApplicationMessage renders a status-change notice.
func FormatApplicationMessage(job *models.Job, status string) string {
	return fmt.Sprintf(
		"Your application for %s at %s moved to status: %s",
		job.Title, job.Company, status,
	)
}

func FormatSalaryRange(min, max *int) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%d - %d", *min, *max)
	case min != nil:
		return fmt.Sprintf("from %d", *min)
	case max != nil:
		return fmt.Sprintf("up to %d", *max)
	default:
		return "not specified"
	}
}
