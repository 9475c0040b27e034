package matcher

import (
	"slices"
	"strings"
)

// IntentHit records a recognized condition phrase and the specialties it
// points to.
type IntentHit struct {
	Phrase  string   `json:"phrase"`
	Targets []string `json:"targets"`
}

type phraseEntry struct {
	phrase  string
	compact string
	words   []string
	targets []string
}

// IntentDetector finds specialty phrases in a normalized message.
type IntentDetector struct {
	phrases []phraseEntry
}

func NewIntentDetector(vocab Vocabulary) *IntentDetector {
	d := &IntentDetector{}
	for _, p := range vocab.SpecialtyPhrases {
		phrase := strings.ToLower(strings.TrimSpace(p.Phrase))
		if phrase == "" {
			continue
		}
		targets := make([]string, 0, len(p.Targets))
		for _, target := range p.Targets {
			if target = strings.ToLower(strings.TrimSpace(target)); target != "" {
				targets = append(targets, target)
			}
		}
		d.phrases = append(d.phrases, phraseEntry{
			phrase:  phrase,
			compact: stripWhitespace(phrase),
			words:   strings.Fields(phrase),
			targets: targets,
		})
	}
	return d
}

// Detect returns every matching phrase in table order, plus the extra tokens
// the hits contribute: the phrase, its compact form and each of its words.
func (d *IntentDetector) Detect(n Normalized) ([]IntentHit, []string) {
	var hits []IntentHit
	extra := newTokenSet()
	for _, p := range d.phrases {
		if !strings.Contains(n.Text, p.phrase) && !strings.Contains(n.Compact, p.compact) {
			continue
		}
		hits = append(hits, IntentHit{Phrase: p.phrase, Targets: slices.Clone(p.targets)})
		extra.add(p.phrase, p.compact)
		extra.add(p.words...)
	}
	return hits, extra.slice()
}
