package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"medilink-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoster struct {
	count    int64
	countErr error
	written  []models.Doctor
}

func (f *fakeRoster) Count(ctx context.Context) (int64, error) {
	return f.count, f.countErr
}

func (f *fakeRoster) UpsertMany(ctx context.Context, doctors []models.Doctor) (int, error) {
	f.written = append(f.written, doctors...)
	return len(doctors), nil
}

func decodeRaw(t *testing.T, s string) []map[string]interface{} {
	t.Helper()
	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func TestNormalizeExternalDoctors(t *testing.T) {
	raw := decodeRaw(t, `[
		{
			"slug": "dr-karim",
			"name": "Dr. Karim",
			"specialisation": "Cardiologist",
			"hospitalName": "Square Hospital",
			"language": "Bangla, English",
			"experience": "12",
			"rating": "4.7",
			"availability": "Mon 10am",
			"qualifications": ["MBBS", "FCPS"],
			"about": "Heart specialist",
			"city": "Dhaka",
			"expertise": "chest pain, palpitation,"
		},
		{
			"id": 42,
			"specialty": "",
			"department": "Neurology",
			"rating": "not a number",
			"conditions": ["migraine", 7]
		},
		{}
	]`)

	doctors := NormalizeExternalDoctors(raw)
	require.Len(t, doctors, 3)

	karim := doctors[0]
	assert.Equal(t, "dr-karim", karim.ID)
	assert.Equal(t, "Cardiologist", karim.Specialty)
	assert.Equal(t, "Square Hospital", karim.Hospital)
	assert.Equal(t, []string{"Bangla", "English"}, karim.Languages)
	assert.Equal(t, 12, karim.ExperienceYears)
	assert.InDelta(t, 4.7, karim.Rating, 1e-9)
	assert.Equal(t, "Mon 10am", karim.NextAvailable)
	assert.Equal(t, []string{"MBBS", "FCPS"}, karim.Education)
	assert.Equal(t, "Heart specialist", karim.Bio)
	assert.Equal(t, "Dhaka", karim.Location)
	assert.Equal(t, []string{"chest pain", "palpitation"}, karim.Conditions)

	second := doctors[1]
	assert.Equal(t, "42", second.ID)
	assert.Equal(t, "Neurology", second.Specialty)
	assert.Equal(t, "Unknown Doctor", second.Name)
	assert.Zero(t, second.Rating)
	assert.Equal(t, []string{"migraine"}, second.Conditions)

	empty := doctors[2]
	assert.True(t, strings.HasPrefix(empty.ID, "dr_"))
	assert.Equal(t, "General Physician", empty.Specialty)
	assert.Equal(t, "Partner Hospital", empty.Hospital)
	assert.NotNil(t, empty.Languages)
	assert.Empty(t, empty.Conditions)
}

func TestSeedIfEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doctors.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"d1","name":"Dr. A","conditions":["fever"]}]`), 0o644))
	ctx := context.Background()

	t.Run("empty roster is seeded", func(t *testing.T) {
		var logs bytes.Buffer
		log.SetOutput(&logs)
		t.Cleanup(func() { log.SetOutput(os.Stderr) })

		repo := &fakeRoster{}
		n, err := SeedIfEmpty(ctx, repo, path)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		require.Len(t, repo.written, 1)
		assert.Equal(t, []string{"fever"}, repo.written[0].Conditions)
		assert.Equal(t, 1, strings.Count(logs.String(), "Seeded 1 doctors"))
	})

	t.Run("populated roster is left alone", func(t *testing.T) {
		repo := &fakeRoster{count: 3}
		n, err := SeedIfEmpty(ctx, repo, path)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, repo.written)
	})

	t.Run("missing file", func(t *testing.T) {
		repo := &fakeRoster{}
		n, err := SeedIfEmpty(ctx, repo, filepath.Join(t.TempDir(), "nope.json"))
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("count failure", func(t *testing.T) {
		countErr := errors.New("boom")
		_, err := SeedIfEmpty(ctx, &fakeRoster{countErr: countErr}, path)
		assert.ErrorIs(t, err, countErr)
	})

	t.Run("malformed file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{not json`), 0o644))
		_, err := SeedIfEmpty(ctx, &fakeRoster{}, bad)
		assert.Error(t, err)
	})
}
