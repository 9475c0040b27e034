package matcher

import (
	"context"

	"medilink-backend/models"
)

func testRoster() []models.Doctor {
	return []models.Doctor{
		{
			ID:            "card-1",
			Name:          "Dr. Karim Hossain",
			Specialty:     "Cardiologist",
			Hospital:      "Square Hospital",
			Location:      "Dhaka",
			Languages:     []string{"Bangla", "English"},
			Rating:        4.8,
			NextAvailable: "Tomorrow 10:00",
			Conditions:    []string{"chest pain", "palpitation", "heart"},
		},
		{
			ID:         "pulm-1",
			Name:       "Dr. Nusrat Jahan",
			Specialty:  "Pulmonologist",
			Hospital:   "Evercare Hospital",
			Location:   "Chittagong",
			Languages:  []string{"English"},
			Rating:     4.5,
			Conditions: []string{"shortness of breath", "asthma", "cough"},
		},
		{
			ID:            "gp-1",
			Name:          "Dr. Farhana Akter",
			Specialty:     "General Physician",
			Hospital:      "Labaid Clinic",
			Location:      "Sylhet",
			Languages:     []string{"Bengali"},
			Rating:        4.3,
			NextAvailable: "Today 17:30",
			Conditions:    []string{"fever", "cough", "cold"},
		},
		{
			ID:         "ortho-1",
			Name:       "Dr. Tanvir Ahmed",
			Specialty:  "Orthopedic Surgeon",
			Hospital:   "National Orthopedic Hospital",
			Location:   "Dhaka",
			Languages:  []string{"English"},
			Rating:     4.6,
			Conditions: []string{"back pain", "joint pain"},
		},
		{
			ID:         "neuro-1",
			Name:       "Dr. Mahmud Rahman",
			Specialty:  "Neurologist",
			Hospital:   "Popular Medical",
			Location:   "Khulna",
			Languages:  []string{"English"},
			Rating:     4.9,
			Conditions: []string{"migraine", "pain", "numbness"},
		},
		{
			ID:         "derm-1",
			Name:       "Dr. Sadia Islam",
			Specialty:  "Dermatologist",
			Hospital:   "Skin Care Centre",
			Location:   "Rajshahi",
			Languages:  []string{"Bangla"},
			Rating:     5.0,
			Conditions: []string{"acne", "eczema", "rash"},
		},
	}
}

func staticRoster(doctors []models.Doctor) RosterProvider {
	return RosterFunc(func(ctx context.Context) ([]models.Doctor, error) {
		return doctors, nil
	})
}

func newSignals(tokens []string, hits []IntentHit, bangla bool) SignalSet {
	set := newTokenSet()
	set.add(tokens...)
	return SignalSet{tokens: set, IntentHits: hits, PrefersBangla: bangla}
}

func suggestionIDs(reply *Reply) []string {
	ids := make([]string, 0, len(reply.Suggestions))
	for _, s := range reply.Suggestions {
		ids = append(ids, s.ID)
	}
	return ids
}
