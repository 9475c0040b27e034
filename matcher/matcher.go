package matcher

import (
	"context"
	"fmt"
	"log/slog"

	"medilink-backend/models"
)

// DefaultMaxSuggestions is the number of doctors presented per reply.
const DefaultMaxSuggestions = 4

// RosterProvider returns the full current doctor roster.
type RosterProvider interface {
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
}

// RosterFunc adapts a function to RosterProvider.
type RosterFunc func(ctx context.Context) ([]models.Doctor, error)

func (f RosterFunc) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	return f(ctx)
}

// Matcher ranks roster doctors against free-text symptom descriptions.
type Matcher struct {
	roster RosterProvider

	vocabulary          Vocabulary
	weights             Weights
	english             Templates
	bangla              Templates
	maxSuggestions      int
	requireConditionHit bool
	logger              *slog.Logger

	translator *Translator
	detector   *IntentDetector
	scorer     *Scorer
	composer   *Composer
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithVocabulary replaces the built-in vocabulary tables.
func WithVocabulary(vocab Vocabulary) Option {
	return func(m *Matcher) error {
		m.vocabulary = vocab.clone().withDefaults()
		return nil
	}
}

// WithWeights replaces the default scoring weights.
func WithWeights(weights Weights) Option {
	return func(m *Matcher) error {
		m.weights = weights
		return nil
	}
}

// WithMaxSuggestions sets how many doctors a reply lists.
// Default is DefaultMaxSuggestions.
func WithMaxSuggestions(n int) Option {
	return func(m *Matcher) error {
		if n <= 0 {
			return ErrInvalidMaxSuggestions
		}
		m.maxSuggestions = n
		return nil
	}
}

// WithConditionGate sets whether a doctor needs at least one condition tag
// match to be suggested. Default is true.
func WithConditionGate(required bool) Option {
	return func(m *Matcher) error {
		m.requireConditionHit = required
		return nil
	}
}

// WithTemplates replaces the English and Bangla reply wording.
func WithTemplates(english, bangla Templates) Option {
	return func(m *Matcher) error {
		m.english = english
		m.bangla = bangla
		return nil
	}
}

// New creates a matcher reading doctors from roster.
func New(roster RosterProvider, opts ...Option) (*Matcher, error) {
	if roster == nil {
		return nil, ErrRosterRequired
	}

	m := &Matcher{
		roster:              roster,
		vocabulary:          DefaultVocabulary(),
		weights:             DefaultWeights(),
		english:             EnglishTemplates(),
		bangla:              BanglaTemplates(),
		maxSuggestions:      DefaultMaxSuggestions,
		requireConditionHit: true,
		logger:              slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	m.translator = NewTranslator(m.vocabulary, m.logger)
	m.detector = NewIntentDetector(m.vocabulary)
	m.scorer = NewScorer(m.vocabulary, m.weights)
	m.composer = NewComposer(m.english, m.bangla)
	return m, nil
}

// Analyze derives the signal set of a message without touching the roster.
func (m *Matcher) Analyze(message string) SignalSet {
	n := Normalize(message)
	tokens := m.translator.translate(n)
	hits, extra := m.detector.Detect(n)
	tokens.add(extra...)

	return SignalSet{
		tokens:        tokens,
		IntentHits:    hits,
		PrefersBangla: n.PrefersBangla,
	}
}

// Candidates scores every doctor and keeps the eligible ones, in roster order.
func (m *Matcher) Candidates(doctors []models.Doctor, signals SignalSet) []Candidate {
	var out []Candidate
	for _, doc := range doctors {
		c := m.scorer.Score(doc, signals)
		if c.Eligible(m.requireConditionHit) {
			out = append(out, c)
		}
	}
	return out
}

// BuildReply answers one message against the current roster. The only error
// it returns is a roster failure, wrapped in ErrRosterUnavailable; any text,
// including an empty one, yields a reply.
func (m *Matcher) BuildReply(ctx context.Context, message string) (*Reply, error) {
	signals := m.Analyze(message)

	doctors, err := m.roster.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRosterUnavailable, err)
	}

	candidates := m.Candidates(doctors, signals)
	ranked := Rank(candidates, signals.IntentHits, m.maxSuggestions)
	reply := m.composer.Compose(signals.PrefersBangla, ranked)

	m.logger.Debug("built reply",
		"tokens", len(signals.Tokens()),
		"intent_hits", len(signals.IntentHits),
		"bangla", signals.PrefersBangla,
		"roster", len(doctors),
		"eligible", len(candidates),
		"suggested", len(reply.Suggestions),
	)
	return &reply, nil
}
