package matching

import "strings"

// SkillsResult carries the skills sub-score together with its evidence:
// which candidate skills matched (candidate casing) and which required
// skills are absent (job casing).
type SkillsResult struct {
	Score    float64
	Matching []string
	Missing  []string
}

// ScoreSkills compares a candidate's skill set against a job's required and
// preferred skills. Comparison is exact string equality after lowercasing
// and trimming; no fuzzy matching. An empty required list means full credit,
// and matched preferred skills add up to a 30-point bonus.
func ScoreSkills(candidateSkills, requiredSkills, preferredSkills []string) SkillsResult {
	if len(candidateSkills) == 0 {
		return SkillsResult{
			Score:    0,
			Matching: []string{},
			Missing:  append([]string{}, requiredSkills...),
		}
	}

	candidateNorm := normalizeSkills(candidateSkills)
	requiredNorm := normalizeSkills(requiredSkills)
	preferredNorm := normalizeSkills(preferredSkills)

	requiredSet := toSet(requiredNorm)
	preferredSet := toSet(preferredNorm)

	// Classify each distinct candidate skill: required first, preferred
	// only if not already required, so a skill listed in both does not
	// count twice.
	matchedRequired := 0
	matchedPreferred := 0
	matchedSet := make(map[string]bool)

	seen := make(map[string]bool)
	for _, skill := range candidateNorm {
		if seen[skill] {
			continue
		}
		seen[skill] = true

		switch {
		case requiredSet[skill]:
			matchedRequired++
			matchedSet[skill] = true
		case preferredSet[skill]:
			matchedPreferred++
			matchedSet[skill] = true
		}
	}

	requiredRatio := 1.0 // no requirements means full score
	if len(requiredSkills) > 0 {
		requiredRatio = float64(matchedRequired) / float64(len(requiredSkills))
	}

	preferredBonus := 0.0
	if len(preferredSkills) > 0 {
		preferredBonus = float64(matchedPreferred) / float64(len(preferredSkills)) * 0.3
	}

	score := (requiredRatio + preferredBonus) * 100
	if score > 100 {
		score = 100
	}

	matching := []string{}
	reported := make(map[string]bool)
	for i, skill := range candidateSkills {
		norm := candidateNorm[i]
		if matchedSet[norm] && !reported[norm] {
			matching = append(matching, skill)
			reported[norm] = true
		}
	}

	candidateSet := toSet(candidateNorm)
	missing := []string{}
	for i, skill := range requiredSkills {
		if !candidateSet[requiredNorm[i]] {
			missing = append(missing, skill)
		}
	}

	return SkillsResult{
		Score:    score,
		Matching: matching,
		Missing:  missing,
	}
}

func normalizeSkills(skills []string) []string {
	norm := make([]string, len(skills))
	for i, skill := range skills {
		norm[i] = strings.ToLower(strings.TrimSpace(skill))
	}
	return norm
}

func toSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, skill := range skills {
		set[skill] = true
	}
	return set
}
