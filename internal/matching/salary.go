package matching

// ScoreSalary rates the overlap between a candidate's desired salary range
// and a job's advertised one. Nil bounds are absent. Missing single bounds
// are derived heuristically so partial data never produces a zero-width
// range: candidate max defaults to min*1.5, job min to max*0.8, job max to
// min*1.3, with 200000 as the fallback ceiling.
func ScoreSalary(candidateMin, candidateMax, jobMin, jobMax *int) float64 {
	// No desired range at all: assume whatever is offered is acceptable.
	if candidateMin == nil && candidateMax == nil {
		return 75
	}

	// Job does not disclose salary: neutral.
	if jobMin == nil && jobMax == nil {
		return 50
	}

	cMin := 0.0
	if candidateMin != nil {
		cMin = float64(*candidateMin)
	}

	cMax := 200000.0
	if candidateMax != nil {
		cMax = float64(*candidateMax)
	} else if candidateMin != nil {
		cMax = cMin * 1.5
	}

	jMin := 0.0
	if jobMin != nil {
		jMin = float64(*jobMin)
	} else if jobMax != nil {
		jMin = float64(*jobMax) * 0.8
	}

	jMax := 200000.0
	if jobMax != nil {
		jMax = float64(*jobMax)
	} else if jobMin != nil {
		jMax = float64(*jobMin) * 1.3
	}

	overlapStart := cMin
	if jMin > overlapStart {
		overlapStart = jMin
	}
	overlapEnd := cMax
	if jMax < overlapEnd {
		overlapEnd = jMax
	}

	if overlapStart <= overlapEnd {
		candidateWidth := cMax - cMin
		if candidateWidth <= 0 {
			// Exact single-figure requirement inside the job's range.
			return 100
		}

		overlapPct := (overlapEnd - overlapStart) / candidateWidth
		score := 60 + overlapPct*40
		if score > 100 {
			score = 100
		}
		return score
	}

	// No overlap, but the job tops out above the candidate's floor.
	if jMax >= cMin {
		return 40
	}

	return 20
}
