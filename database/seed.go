package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"medilink-backend/models"

	"github.com/google/uuid"
)

// RosterWriter is the part of the roster store that seeding needs.
type RosterWriter interface {
	Count(ctx context.Context) (int64, error)
	UpsertMany(ctx context.Context, doctors []models.Doctor) (int, error)
}

// SeedIfEmpty imports the doctor file into an empty roster. A missing file
// is not an error.
func SeedIfEmpty(ctx context.Context, repo RosterWriter, path string) (int, error) {
	if path == "" {
		return 0, nil
	}

	n, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Doctor seed skipped: %s not found", path)
		return 0, nil
	}

	doctors, err := ReadDoctorFile(path)
	if err != nil {
		return 0, err
	}
	if len(doctors) == 0 {
		log.Println("Doctor seed skipped: no doctors available")
		return 0, nil
	}

	written, err := repo.UpsertMany(ctx, doctors)
	if err != nil {
		return 0, err
	}
	log.Printf("Seeded %d doctors from %s", written, path)
	return written, nil
}

// ReadDoctorFile reads a JSON array of doctor objects and normalizes it.
func ReadDoctorFile(path string) ([]models.Doctor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read doctor file: %w", err)
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse doctor file: %w", err)
	}
	return NormalizeExternalDoctors(raw), nil
}

// NormalizeExternalDoctors maps directory exports with loosely named fields
// onto doctors. List fields may be arrays or comma-separated strings and
// numbers may be strings.
func NormalizeExternalDoctors(raw []map[string]interface{}) []models.Doctor {
	doctors := make([]models.Doctor, 0, len(raw))
	for _, r := range raw {
		id := first(r, "id", "slug")
		if id == nil {
			id = "dr_" + uuid.NewString()
		}

		doctors = append(doctors, models.Doctor{
			ID:              toString(id),
			Name:            stringOr(first(r, "name"), "Unknown Doctor"),
			Specialty:       stringOr(first(r, "specialty", "specialisation", "department"), "General Physician"),
			Hospital:        stringOr(first(r, "hospital", "hospitalName", "organization"), "Partner Hospital"),
			Languages:       toList(first(r, "languages", "language")),
			ExperienceYears: int(toNumber(first(r, "experienceYears", "experience"))),
			Rating:          toNumber(first(r, "rating")),
			NextAvailable:   stringOr(first(r, "nextAvailable", "availability"), ""),
			Education:       toList(first(r, "education", "qualifications")),
			Bio:             stringOr(first(r, "bio", "about"), ""),
			Location:        stringOr(first(r, "location", "city", "address"), ""),
			Conditions:      toList(first(r, "conditions", "expertise", "keywords")),
		})
	}
	return doctors
}

// first returns the first present, non-empty value among keys.
func first(r map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || isEmpty(v) {
			continue
		}
		return v
	}
	return nil
}

func isEmpty(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case float64:
		return t == 0 || math.IsNaN(t)
	case bool:
		return !t
	default:
		return false
	}
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func stringOr(v interface{}, def string) string {
	if v == nil {
		return def
	}
	return toString(v)
}

func toNumber(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		if math.IsInf(t, 0) {
			return 0
		}
		return t
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	default:
		return 0
	}
}

func toList(v interface{}) []string {
	out := []string{}
	switch t := v.(type) {
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	case string:
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
