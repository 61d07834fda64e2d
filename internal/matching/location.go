package matching

import "strings"

// ScoreLocation rates how compatible a candidate's location and work-type
// preference are with a job's. Rules are ordered by precedence; the first
// that applies wins.
func ScoreLocation(candidateLocation, jobLocation, candidateWorkType, jobWorkType string) float64 {
	// Remote jobs match anyone, whatever the location text says.
	if strings.EqualFold(jobWorkType, "remote") {
		return 100
	}

	if strings.EqualFold(candidateWorkType, "remote") {
		if strings.EqualFold(jobWorkType, "hybrid") {
			return 90
		}
		return 70
	}

	if candidateLocation == "" || jobLocation == "" {
		return 50
	}

	candidateLoc := strings.ToLower(strings.TrimSpace(candidateLocation))
	jobLoc := strings.ToLower(strings.TrimSpace(jobLocation))

	if candidateLoc == jobLoc {
		return 100
	}

	if strings.Contains(jobLoc, candidateLoc) || strings.Contains(candidateLoc, jobLoc) {
		return 85
	}

	candidateParts := strings.Split(candidateLoc, ",")
	jobParts := strings.Split(jobLoc, ",")

	// Same city: first comma-delimited segment.
	if strings.TrimSpace(candidateParts[0]) == strings.TrimSpace(jobParts[0]) {
		return 90
	}

	// Same state/region: last segment, only meaningful when both sides
	// actually have a region part.
	if len(candidateParts) > 1 && len(jobParts) > 1 {
		if strings.TrimSpace(candidateParts[len(candidateParts)-1]) == strings.TrimSpace(jobParts[len(jobParts)-1]) {
			return 60
		}
	}

	return 30
}
