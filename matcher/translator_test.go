package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator(t *testing.T) {
	tr := NewTranslator(DefaultVocabulary(), nil)

	tests := []struct {
		name    string
		message string
		want    []string
		absent  []string
	}{
		{
			name:    "bangla fever and cough",
			message: "জ্বর ও কাশি হচ্ছে",
			want:    []string{"fever", "cough", "জ্বর", "কাশি"},
		},
		{
			name:    "bangla multi-word key",
			message: "বুকে ব্যথা করছে",
			want:    []string{"chest pain", "pain"},
		},
		{
			name:    "bangla joined key",
			message: "আমার বুকব্যথা",
			want:    []string{"chest pain"},
		},
		{
			name:    "chest pressure paraphrase",
			message: "I feel chest pressure at night",
			want:    []string{"chest pain", "chest tightness", "pain", "pressure"},
		},
		{
			name:    "chest tightness without space",
			message: "chesttightness",
			want:    []string{"chest pain", "chest tightness"},
			absent:  []string{"shortness of breath"},
		},
		{
			name:    "breathlessness paraphrase",
			message: "I can't breathe properly",
			want:    []string{"shortness of breath", "breathing problem"},
		},
		{
			name:    "plain english keeps raw tokens",
			message: "Fever and COLD",
			want:    []string{"fever", "and", "cold"},
			absent:  []string{"pain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.Translate(Normalize(tt.message))
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, got, a)
			}
		})
	}
}

func TestTranslatorDeduplicates(t *testing.T) {
	tr := NewTranslator(DefaultVocabulary(), nil)
	got := tr.Translate(Normalize("জ্বর জ্বর fever"))

	seen := map[string]int{}
	for _, tok := range got {
		seen[tok]++
	}
	for tok, n := range seen {
		assert.Equal(t, 1, n, "token %q repeated", tok)
	}
}

func TestTranslatorIsolatesBadRules(t *testing.T) {
	vocab := DefaultVocabulary()
	vocab.Paraphrases = append([]ParaphraseRule{
		{Name: "broken", Pattern: "(unclosed", Tags: []string{"never"}},
		{Name: "broken-token", TokenPattern: "[", Tags: []string{"never"}},
	}, vocab.Paraphrases...)

	tr := NewTranslator(vocab, nil)
	require.Len(t, tr.rules, len(DefaultVocabulary().Paraphrases))

	got := tr.Translate(Normalize("chest heaviness"))
	assert.Contains(t, got, "chest pain")
	assert.NotContains(t, got, "never")
}

func TestTranslatorRuleOrderFeedsTokenRules(t *testing.T) {
	vocab := DefaultVocabulary()
	vocab.Paraphrases = []ParaphraseRule{
		{Name: "hypertension", Pattern: `hypertension`, Tags: []string{"high blood pressure"}},
		{Name: "pressure-is-pain", TokenPattern: `pressure`, Tags: []string{"pain"}},
	}

	got := NewTranslator(vocab, nil).Translate(Normalize("diagnosed with hypertension"))
	assert.Contains(t, got, "high blood pressure")
	assert.Contains(t, got, "pain")
}
