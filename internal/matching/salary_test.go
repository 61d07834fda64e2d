package matching_test

import (
	"testing"

	"jobmatch-engine/internal/matching"
)

func intp(v int) *int { return &v }

func TestScoreSalary(t *testing.T) {
	cases := []struct {
		name                     string
		candidateMin, candidateMax *int
		jobMin, jobMax             *int
		want                       float64
	}{
		{"no candidate range is acceptable", nil, nil, intp(50000), intp(80000), 75},
		{"no job range is neutral", intp(90000), intp(130000), nil, nil, 50},
		{"partial overlap", intp(80000), intp(120000), intp(100000), intp(140000), 80},
		{"full overlap", intp(90000), intp(100000), intp(80000), intp(150000), 100},
		{"exact single figure inside job range", intp(100000), intp(100000), intp(90000), intp(120000), 100},
		{"no overlap but job pays above floor", intp(50000), intp(60000), intp(70000), intp(90000), 40},
		{"job pays below expectations", intp(150000), intp(200000), intp(50000), intp(70000), 20},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := matching.ScoreSalary(c.candidateMin, c.candidateMax, c.jobMin, c.jobMax)
			if got != c.want {
				t.Errorf("ScoreSalary = %v, want %v", got, c.want)
			}
		})
	}
}

func TestScoreSalary_DerivedBounds(t *testing.T) {
	// Candidate max defaults to min*1.5: [80000, 120000 derived] against
	// [100000, 140000] overlaps [100000, 120000] => 60 + 0.5*40.
	got := matching.ScoreSalary(intp(80000), nil, intp(100000), intp(140000))
	if got != 80 {
		t.Errorf("derived candidate max: score = %v, want 80", got)
	}

	// Job min defaults to max*0.8: job [80000 derived, 100000] against
	// candidate [90000, 110000] overlaps [90000, 100000] => 60 + 0.5*40.
	got = matching.ScoreSalary(intp(90000), intp(110000), nil, intp(100000))
	if got != 80 {
		t.Errorf("derived job min: score = %v, want 80", got)
	}

	// Job max defaults to min*1.3: job [100000, 130000 derived] against
	// candidate [120000, 160000] overlaps [120000, 130000] => 60 + 10.
	got = matching.ScoreSalary(intp(120000), intp(160000), intp(100000), nil)
	if got != 70 {
		t.Errorf("derived job max: score = %v, want 70", got)
	}
}
