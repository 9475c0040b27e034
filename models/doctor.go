package models

import (
	"encoding/json"
	"strings"
)

// Doctor is a roster entry as seen by the matching engine.
type Doctor struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Specialty       string   `json:"specialty"`
	Hospital        string   `json:"hospital"`
	Location        string   `json:"location"`
	Languages       []string `json:"languages"`
	ExperienceYears int      `json:"experienceYears"`
	Rating          float64  `json:"rating"`
	NextAvailable   string   `json:"nextAvailable"`
	Education       []string `json:"education"`
	Bio             string   `json:"bio"`
	Conditions      []string `json:"conditions"`
}

// DoctorRecord is the stored shape of a doctor. List fields are kept as
// JSON-serialized strings.
type DoctorRecord struct {
	ID              string  `bson:"_id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	Specialty       string  `bson:"specialty" json:"specialty"`
	Hospital        string  `bson:"hospital" json:"hospital"`
	Languages       string  `bson:"languages" json:"languages"`
	ExperienceYears int     `bson:"experience_years" json:"experience_years"`
	Rating          float64 `bson:"rating" json:"rating"`
	NextAvailable   string  `bson:"next_available" json:"next_available"`
	Education       string  `bson:"education" json:"education"`
	Bio             string  `bson:"bio" json:"bio"`
	Location        string  `bson:"location" json:"location"`
	Conditions      string  `bson:"conditions" json:"conditions"`
}

// Suggestion is the reduced doctor view returned alongside a chat reply.
type Suggestion struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Specialty     string  `json:"specialty"`
	Hospital      string  `json:"hospital"`
	NextAvailable string  `json:"nextAvailable"`
	Rating        float64 `json:"rating"`
}

// ToDoctor decodes the serialized list fields. Unparseable lists become empty.
func (r DoctorRecord) ToDoctor() Doctor {
	return Doctor{
		ID:              r.ID,
		Name:            r.Name,
		Specialty:       r.Specialty,
		Hospital:        r.Hospital,
		Location:        r.Location,
		Languages:       DecodeList(r.Languages),
		ExperienceYears: r.ExperienceYears,
		Rating:          r.Rating,
		NextAvailable:   r.NextAvailable,
		Education:       DecodeList(r.Education),
		Bio:             r.Bio,
		Conditions:      DecodeList(r.Conditions),
	}
}

// NewDoctorRecord serializes a doctor for storage.
func NewDoctorRecord(d Doctor) DoctorRecord {
	return DoctorRecord{
		ID:              d.ID,
		Name:            d.Name,
		Specialty:       d.Specialty,
		Hospital:        d.Hospital,
		Languages:       EncodeList(d.Languages),
		ExperienceYears: d.ExperienceYears,
		Rating:          d.Rating,
		NextAvailable:   d.NextAvailable,
		Education:       EncodeList(d.Education),
		Bio:             d.Bio,
		Location:        d.Location,
		Conditions:      EncodeList(d.Conditions),
	}
}

// Suggestion reduces the doctor to its suggestion view.
func (d Doctor) Suggestion() Suggestion {
	return Suggestion{
		ID:            d.ID,
		Name:          d.Name,
		Specialty:     d.Specialty,
		Hospital:      d.Hospital,
		NextAvailable: d.NextAvailable,
		Rating:        d.Rating,
	}
}

// DecodeList parses a JSON string array, returning an empty list for blank
// or malformed input. Non-string elements are skipped.
func DecodeList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	var items []interface{}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// EncodeList serializes a list; nil is stored as "[]".
func EncodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}
