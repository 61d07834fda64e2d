package matching

import "strings"

type experienceRange struct {
	min float64
	max float64
}

var experienceRanges = map[string]experienceRange{
	"entry":     {0, 2},
	"mid":       {2, 5},
	"senior":    {5, 10},
	"executive": {10, 20},
}

// ScoreExperience rates a candidate's years of experience against a job's
// experience-level tag. An unknown or absent tag is neutral (75). Being
// under-qualified is penalized twice as hard as being over-qualified:
// employers tolerate excess experience far more than a deficit.
func ScoreExperience(years float64, jobLevel string) float64 {
	r, ok := experienceRanges[strings.ToLower(jobLevel)]
	if !ok {
		return 75
	}

	if years >= r.min && years <= r.max {
		return 100
	}

	if years < r.min {
		gap := r.min - years
		penalty := gap * 20
		if penalty > 80 {
			penalty = 80
		}
		score := 100 - penalty
		if score < 20 {
			score = 20
		}
		return score
	}

	gap := years - r.max
	penalty := gap * 10
	if penalty > 40 {
		penalty = 40
	}
	score := 100 - penalty
	if score < 60 {
		score = 60
	}
	return score
}
