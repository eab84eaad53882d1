package expiry

import (
	"sort"

	"expirycheck/pkg/models"
)

const (
	// dateBonus dominates any possible detector*OCR product (detector
	// confidence ≤ 1, OCR confidence ≤ 100), so candidates the OCR engine
	// flagged as date-shaped always outrank unflagged ones.
	dateBonus = 1000.0

	// DefaultCandidateLimit caps how many candidates reach the cascade.
	DefaultCandidateLimit = 3
)

// Prioritize ranks detected candidates by how promising they are for date
// extraction and truncates to the first limit entries. Candidates with empty
// text are discarded. The sort is stable: equal scores keep their input order.
// A limit of zero or less falls back to DefaultCandidateLimit.
func Prioritize(candidates []models.Candidate, limit int) []models.Candidate {
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}

	ranked := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Text == "" {
			continue
		}
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return priorityScore(ranked[i]) > priorityScore(ranked[j])
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func priorityScore(c models.Candidate) float64 {
	score := 0.0
	if c.LooksLikeDate {
		score = dateBonus
	}
	if c.DetectorConfidence != nil {
		score += *c.DetectorConfidence * c.OCRConfidence
	}
	return score
}
