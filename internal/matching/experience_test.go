package matching_test

import (
	"testing"

	"jobmatch-engine/internal/matching"
)

func TestScoreExperience(t *testing.T) {
	cases := []struct {
		name  string
		years float64
		level string
		want  float64
	}{
		{"within mid range", 3, "mid", 100},
		{"lower bound inclusive", 2, "mid", 100},
		{"upper bound inclusive", 5, "mid", 100},
		{"no experience for senior", 0, "senior", 20},
		{"heavily overqualified for mid", 15, "mid", 60},
		{"slightly underqualified", 1, "mid", 80},
		{"slightly overqualified", 6, "mid", 90},
		{"entry with zero years", 0, "entry", 100},
		{"executive range", 12, "executive", 100},
		{"unknown level is neutral", 3, "", 75},
		{"unrecognized level is neutral", 3, "principal", 75},
		{"level tag is case-insensitive", 3, "Mid", 100},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := matching.ScoreExperience(c.years, c.level)
			if got != c.want {
				t.Errorf("ScoreExperience(%v, %q) = %v, want %v", c.years, c.level, got, c.want)
			}
		})
	}
}

func TestScoreExperience_UnderqualifiedPenaltyHarsherThanOver(t *testing.T) {
	under := matching.ScoreExperience(1, "senior") // 4 below min
	over := matching.ScoreExperience(14, "senior") // 4 above max

	if under >= over {
		t.Errorf("under-qualified score %v should be below over-qualified score %v", under, over)
	}
}
