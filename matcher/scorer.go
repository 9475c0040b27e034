package matcher

import (
	"regexp"
	"strings"

	"medilink-backend/models"
)

// Weights are the additive scoring factors.
type Weights struct {
	Condition       float64
	Specialty       float64
	Location        float64
	City            float64
	Language        float64
	Rating          float64
	RatingThreshold float64
	Intent          float64
}

// DefaultWeights returns the standard factor weights.
func DefaultWeights() Weights {
	return Weights{
		Condition:       2,
		Specialty:       1.5,
		Location:        0.5,
		City:            0.5,
		Language:        1.2,
		Rating:          0.3,
		RatingThreshold: 4.6,
		Intent:          3,
	}
}

// Candidate is a scored doctor.
type Candidate struct {
	Doctor        models.Doctor
	Score         float64
	ConditionHits int
}

// Scorer computes the relevance of a doctor for a signal set.
type Scorer struct {
	weights  Weights
	cities   []string
	language *regexp.Regexp
}

func NewScorer(vocab Vocabulary, weights Weights) *Scorer {
	cities := make([]string, 0, len(vocab.Cities))
	for _, c := range vocab.Cities {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			cities = append(cities, c)
		}
	}

	language, err := regexp.Compile(vocab.BanglaLanguages)
	if err != nil || vocab.BanglaLanguages == "" {
		language = regexp.MustCompile(DefaultVocabulary().BanglaLanguages)
	}

	return &Scorer{
		weights:  weights,
		cities:   cities,
		language: language,
	}
}

// Score adds up every factor that applies to doc.
func (s *Scorer) Score(doc models.Doctor, signals SignalSet) Candidate {
	specialty := strings.ToLower(doc.Specialty)
	location := strings.ToLower(doc.Location)
	hospital := strings.ToLower(doc.Hospital)

	c := Candidate{Doctor: doc}

	for _, cond := range doc.Conditions {
		cond = strings.TrimSpace(strings.ToLower(cond))
		if cond != "" && signals.Has(cond) {
			c.ConditionHits++
		}
	}
	c.Score = float64(c.ConditionHits) * s.weights.Condition

	if signals.any(func(t string) bool { return strings.Contains(specialty, t) }) {
		c.Score += s.weights.Specialty
	}

	if signals.any(func(t string) bool {
		return strings.Contains(location, t) || strings.Contains(hospital, t)
	}) {
		c.Score += s.weights.Location
	}

	for _, city := range s.cities {
		if signals.Has(city) && strings.Contains(location, city) {
			c.Score += s.weights.City
			break
		}
	}

	if signals.PrefersBangla && s.speaksBangla(doc) {
		c.Score += s.weights.Language
	}

	if doc.Rating >= s.weights.RatingThreshold {
		c.Score += s.weights.Rating
	}

	for _, hit := range signals.IntentHits {
		for _, target := range hit.Targets {
			if strings.Contains(specialty, target) {
				c.Score += s.weights.Intent
				break
			}
		}
	}

	return c
}

func (s *Scorer) speaksBangla(doc models.Doctor) bool {
	for _, lang := range doc.Languages {
		if s.language.MatchString(lang) {
			return true
		}
	}
	return false
}

// Eligible reports whether a candidate may be suggested at all. With
// requireConditionHit set, boosts alone never qualify a doctor.
func (c Candidate) Eligible(requireConditionHit bool) bool {
	if c.Score <= 0 {
		return false
	}
	return !requireConditionHit || c.ConditionHits > 0
}
