package matcher

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
)

type banglaKey struct {
	key     string
	compact string
	tags    []string
}

type paraphraseRule struct {
	name         string
	pattern      *regexp.Regexp
	compact      string
	tokenPattern *regexp.Regexp
	tags         []string
}

// Translator maps Bangla symptom fragments and English paraphrases onto
// canonical condition tags.
type Translator struct {
	keys   []banglaKey
	rules  []paraphraseRule
	logger *slog.Logger
}

// NewTranslator compiles the Bangla and paraphrase tables of vocab. Rules
// whose expressions do not compile are skipped.
func NewTranslator(vocab Vocabulary, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Translator{logger: logger}
	for _, s := range vocab.BanglaSymptoms {
		key := canonicalKey(s.Key)
		if key == "" {
			continue
		}
		t.keys = append(t.keys, banglaKey{
			key:     key,
			compact: stripWhitespace(key),
			tags:    slices.Clone(s.Tags),
		})
	}

	for _, r := range vocab.Paraphrases {
		rule, err := compileRule(r)
		if err != nil {
			logger.Warn("skipping paraphrase rule", "rule", r.Name, "error", err)
			continue
		}
		t.rules = append(t.rules, rule)
	}
	return t
}

func compileRule(r ParaphraseRule) (paraphraseRule, error) {
	rule := paraphraseRule{
		name:    r.Name,
		compact: strings.ToLower(stripWhitespace(r.Compact)),
		tags:    slices.Clone(r.Tags),
	}
	if r.Pattern != "" {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return rule, fmt.Errorf("invalid pattern: %w", err)
		}
		rule.pattern = re
	}
	if r.TokenPattern != "" {
		re, err := regexp.Compile(r.TokenPattern)
		if err != nil {
			return rule, fmt.Errorf("invalid token pattern: %w", err)
		}
		rule.tokenPattern = re
	}
	return rule, nil
}

// Translate returns the deduplicated canonical tags for n. Every raw token
// is part of the result as well.
func (t *Translator) Translate(n Normalized) []string {
	return t.translate(n).slice()
}

func (t *Translator) translate(n Normalized) *tokenSet {
	out := newTokenSet()

	if n.PrefersBangla {
		for _, k := range t.keys {
			if strings.Contains(n.Text, k.key) || strings.Contains(n.Compact, k.key) ||
				strings.Contains(n.Text, k.compact) || strings.Contains(n.Compact, k.compact) {
				out.add(k.tags...)
			}
		}
	}

	for _, tok := range n.Tokens {
		if containsBangla(tok) {
			for _, k := range t.keys {
				if strings.Contains(tok, k.key) || strings.Contains(k.key, tok) {
					out.add(k.tags...)
				}
			}
		}
		out.add(tok)
	}

	for _, rule := range t.rules {
		t.applyRule(rule, n, out)
	}
	return out
}

// applyRule evaluates one paraphrase rule. A panicking rule is logged and
// contributes nothing.
func (t *Translator) applyRule(rule paraphraseRule, n Normalized, out *tokenSet) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Warn("paraphrase rule failed", "rule", rule.name, "panic", r)
		}
	}()

	if rule.matches(n, out) {
		out.add(rule.tags...)
	}
}

func (r paraphraseRule) matches(n Normalized, emitted *tokenSet) bool {
	if r.pattern != nil && r.pattern.MatchString(n.Text) {
		return true
	}
	if r.compact != "" && strings.Contains(n.Compact, r.compact) {
		return true
	}
	if r.tokenPattern != nil && emitted.any(r.tokenPattern.MatchString) {
		return true
	}
	return false
}
