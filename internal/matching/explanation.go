package matching

import (
	"fmt"
	"strings"
)

// Explain assembles a human-readable rationale from the sub-scores and the
// skills evidence. Assembly is deterministic template selection: the same
// inputs always produce the same string. Clause order is fixed as
// overall, skills, experience, location, salary.
func Explain(overall, skills, experience, location, salary float64, matching, missing []string) string {
	var parts []string

	switch {
	case overall >= 80:
		parts = append(parts, "🎯 Excellent match!")
	case overall >= 60:
		parts = append(parts, "✅ Good match")
	case overall >= 40:
		parts = append(parts, "⚠️ Moderate match")
	default:
		parts = append(parts, "❌ Poor match")
	}

	switch {
	case skills >= 80:
		parts = append(parts, fmt.Sprintf("Strong skills alignment with %d matching skills.", len(matching)))
	case skills >= 60:
		parts = append(parts, fmt.Sprintf("Good skills match with %d relevant skills.", len(matching)))
	case len(missing) > 0:
		listed := missing
		suffix := ""
		if len(missing) > 3 {
			listed = missing[:3]
			suffix = "..."
		}
		parts = append(parts, fmt.Sprintf("Missing %d key skills: %s%s", len(missing), strings.Join(listed, ", "), suffix))
	}

	switch {
	case experience >= 80:
		parts = append(parts, "Experience level aligns well with requirements.")
	case experience >= 60:
		parts = append(parts, "Experience level is acceptable for this role.")
	default:
		parts = append(parts, "Experience level may not fully meet requirements.")
	}

	switch {
	case location >= 90:
		parts = append(parts, "Perfect location match.")
	case location >= 70:
		parts = append(parts, "Good location compatibility.")
	case location >= 50:
		parts = append(parts, "Location may require consideration.")
	}

	switch {
	case salary >= 80:
		parts = append(parts, "Salary range aligns well with expectations.")
	case salary >= 60:
		parts = append(parts, "Salary is within acceptable range.")
	case salary >= 40:
		parts = append(parts, "Salary may be lower than ideal.")
	}

	return strings.Join(parts, " ")
}
