package matcher

import (
	"fmt"
	"os"
	"slices"

	"github.com/goccy/go-yaml"
)

// BanglaSymptom maps a Bangla symptom fragment to canonical English tags.
type BanglaSymptom struct {
	Key  string   `yaml:"key"`
	Tags []string `yaml:"tags"`
}

// SpecialtyPhrase maps an English condition phrase to the specialties that
// treat it.
type SpecialtyPhrase struct {
	Phrase  string   `yaml:"phrase"`
	Targets []string `yaml:"targets"`
}

// ParaphraseRule emits Tags when any of its checks match. Pattern is a
// regular expression over the canonical text, Compact a substring of the
// whitespace-stripped text, and TokenPattern a regular expression tested
// against every tag emitted before the rule runs.
type ParaphraseRule struct {
	Name         string   `yaml:"name"`
	Pattern      string   `yaml:"pattern,omitempty"`
	Compact      string   `yaml:"compact,omitempty"`
	TokenPattern string   `yaml:"token_pattern,omitempty"`
	Tags         []string `yaml:"tags"`
}

// Vocabulary is the lexical configuration of a Matcher.
type Vocabulary struct {
	BanglaSymptoms   []BanglaSymptom   `yaml:"bangla_symptoms"`
	SpecialtyPhrases []SpecialtyPhrase `yaml:"specialty_phrases"`
	Paraphrases      []ParaphraseRule  `yaml:"paraphrases"`
	Cities           []string          `yaml:"cities"`
	// BanglaLanguages matches the language names that earn the Bangla boost.
	BanglaLanguages string `yaml:"bangla_languages"`
}

// DefaultVocabulary returns the built-in tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		BanglaSymptoms: []BanglaSymptom{
			{Key: "জ্বর", Tags: []string{"fever"}},
			{Key: "সর্দি", Tags: []string{"cold"}},
			{Key: "কাশি", Tags: []string{"cough"}},
			{Key: "গলা", Tags: []string{"throat"}},
			{Key: "ব্যথা", Tags: []string{"pain"}},
			{Key: "মাথা", Tags: []string{"headache"}},
			{Key: "বমি", Tags: []string{"vomit", "nausea"}},
			{Key: "ঝিমঝিম", Tags: []string{"dizzy"}},
			{Key: "হৃদপিণ্ড", Tags: []string{"heart", "cardio"}},
			{Key: "বুকব্যথা", Tags: []string{"chest pain"}},
			{Key: "বুকে ব্যথা", Tags: []string{"chest pain"}},
			{Key: "বুকের ব্যথা", Tags: []string{"chest pain"}},
			{Key: "ডায়াবেটিস", Tags: []string{"diabetes"}},
			{Key: "চুলকানি", Tags: []string{"itch", "rash"}},
			{Key: "চর্ম", Tags: []string{"skin"}},
			{Key: "গর্ভ", Tags: []string{"pregnancy"}},
			{Key: "মাসিক", Tags: []string{"menstrual"}},
			{Key: "মানসিক", Tags: []string{"anxiety", "depression"}},
			{Key: "চোখ", Tags: []string{"eye"}},
			{Key: "কান", Tags: []string{"ear"}},
			{Key: "পেট", Tags: []string{"stomach", "abdomen"}},
			{Key: "হাঁপানি", Tags: []string{"asthma"}},
		},
		SpecialtyPhrases: []SpecialtyPhrase{
			{Phrase: "back pain", Targets: []string{"orthopedic", "orthopedic surgeon", "spine", "physio"}},
			{Phrase: "lower back pain", Targets: []string{"orthopedic", "spine"}},
			{Phrase: "joint pain", Targets: []string{"orthopedic", "rheumatology"}},
			{Phrase: "knee pain", Targets: []string{"orthopedic"}},
			{Phrase: "shoulder pain", Targets: []string{"orthopedic"}},
			{Phrase: "neck pain", Targets: []string{"orthopedic", "neurology"}},
			{Phrase: "sciatica", Targets: []string{"orthopedic", "spine"}},
			{Phrase: "slipped disc", Targets: []string{"orthopedic", "spine"}},
			{Phrase: "migraine", Targets: []string{"neurologist"}},
			{Phrase: "seizure", Targets: []string{"neurologist"}},
			{Phrase: "numbness", Targets: []string{"neurologist"}},
			{Phrase: "chest pain", Targets: []string{"cardiologist", "pulmonologist"}},
			{Phrase: "palpitation", Targets: []string{"cardiologist"}},
			{Phrase: "shortness of breath", Targets: []string{"pulmonologist", "cardiologist"}},
			{Phrase: "breathing problem", Targets: []string{"pulmonologist"}},
			{Phrase: "pregnancy", Targets: []string{"gynecologist"}},
			{Phrase: "period pain", Targets: []string{"gynecologist"}},
			{Phrase: "menstrual", Targets: []string{"gynecologist"}},
			{Phrase: "fertility", Targets: []string{"gynecologist"}},
			{Phrase: "diabetes", Targets: []string{"endocrinologist"}},
			{Phrase: "thyroid", Targets: []string{"endocrinologist"}},
			{Phrase: "skin rash", Targets: []string{"dermatologist"}},
			{Phrase: "eczema", Targets: []string{"dermatologist"}},
			{Phrase: "acne", Targets: []string{"dermatologist"}},
			{Phrase: "anxiety", Targets: []string{"psychiatrist"}},
			{Phrase: "depression", Targets: []string{"psychiatrist"}},
			{Phrase: "insomnia", Targets: []string{"psychiatrist"}},
			{Phrase: "kidney pain", Targets: []string{"nephrologist"}},
			{Phrase: "urine problem", Targets: []string{"nephrologist"}},
			{Phrase: "stomach pain", Targets: []string{"gastroenterologist"}},
			{Phrase: "gastric", Targets: []string{"gastroenterologist"}},
			{Phrase: "ibs", Targets: []string{"gastroenterologist"}},
		},
		Paraphrases: []ParaphraseRule{
			{
				Name:    "chest-discomfort",
				Pattern: `(?i)chest\s*(pressure|tightness|heaviness|discomfort)`,
				Compact: "chestpressure",
				Tags:    []string{"chest pain", "chest tightness"},
			},
			{
				Name:    "breathlessness",
				Pattern: `(?i)difficulty breathing|breathless|breathlessness|cannot breathe|can't breathe|cant breathe`,
				Compact: "shortnessofbreath",
				Tags:    []string{"shortness of breath", "breathing problem"},
			},
			{
				Name:         "pressure-is-pain",
				TokenPattern: `pressure`,
				Tags:         []string{"pain"},
			},
		},
		Cities:          []string{"dhaka", "chittagong", "sylhet", "khulna", "rajshahi"},
		BanglaLanguages: `(?i)bangla|bengali`,
	}
}

// LoadVocabulary reads a YAML vocabulary file.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	return ParseVocabulary(data)
}

// ParseVocabulary decodes a YAML vocabulary. Sections left empty keep the
// built-in defaults.
func ParseVocabulary(data []byte) (Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("failed to parse vocabulary: %w", err)
	}
	return v.withDefaults(), nil
}

// clone copies every table so the caller keeps no handle on them.
func (v Vocabulary) clone() Vocabulary {
	out := Vocabulary{
		BanglaSymptoms:   make([]BanglaSymptom, len(v.BanglaSymptoms)),
		SpecialtyPhrases: make([]SpecialtyPhrase, len(v.SpecialtyPhrases)),
		Paraphrases:      make([]ParaphraseRule, len(v.Paraphrases)),
		Cities:           slices.Clone(v.Cities),
		BanglaLanguages:  v.BanglaLanguages,
	}
	for i, s := range v.BanglaSymptoms {
		s.Tags = slices.Clone(s.Tags)
		out.BanglaSymptoms[i] = s
	}
	for i, p := range v.SpecialtyPhrases {
		p.Targets = slices.Clone(p.Targets)
		out.SpecialtyPhrases[i] = p
	}
	for i, r := range v.Paraphrases {
		r.Tags = slices.Clone(r.Tags)
		out.Paraphrases[i] = r
	}
	return out
}

func (v Vocabulary) withDefaults() Vocabulary {
	def := DefaultVocabulary()
	if len(v.BanglaSymptoms) == 0 {
		v.BanglaSymptoms = def.BanglaSymptoms
	}
	if len(v.SpecialtyPhrases) == 0 {
		v.SpecialtyPhrases = def.SpecialtyPhrases
	}
	if len(v.Paraphrases) == 0 {
		v.Paraphrases = def.Paraphrases
	}
	if len(v.Cities) == 0 {
		v.Cities = def.Cities
	}
	if v.BanglaLanguages == "" {
		v.BanglaLanguages = def.BanglaLanguages
	}
	return v
}
