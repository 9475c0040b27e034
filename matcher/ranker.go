package matcher

import (
	"sort"
	"strings"

	"medilink-backend/models"
)

// Rank orders candidates by score, then rating, narrows them to the intent
// targets when that leaves anything, and keeps at most limit doctors.
func Rank(candidates []Candidate, hits []IntentHit, limit int) []models.Doctor {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Doctor.Rating > ranked[j].Doctor.Rating
	})

	if len(hits) > 0 {
		targets := SignalSet{IntentHits: hits}.IntentTargets()
		if narrowed := narrow(ranked, targets); len(narrowed) > 0 {
			ranked = narrowed
		}
	}

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]models.Doctor, len(ranked))
	for i, c := range ranked {
		out[i] = c.Doctor
	}
	return out
}

func narrow(ranked []Candidate, targets []string) []Candidate {
	var out []Candidate
	for _, c := range ranked {
		if specialtyMatches(strings.ToLower(c.Doctor.Specialty), targets) {
			out = append(out, c)
		}
	}
	return out
}

func specialtyMatches(specialty string, targets []string) bool {
	for _, t := range targets {
		if specialty == t || strings.Contains(specialty, t) || strings.Contains(t, specialty) {
			return true
		}
	}
	return false
}
