package matcher

// SignalSet is everything derived from one message that scoring looks at.
type SignalSet struct {
	tokens        *tokenSet
	IntentHits    []IntentHit
	PrefersBangla bool
}

// Tokens returns the translated tokens in first-seen order.
func (s SignalSet) Tokens() []string {
	if s.tokens == nil {
		return nil
	}
	return s.tokens.slice()
}

// Has reports whether token is part of the signal set.
func (s SignalSet) Has(token string) bool {
	return s.tokens != nil && s.tokens.has(token)
}

func (s SignalSet) any(fn func(string) bool) bool {
	return s.tokens != nil && s.tokens.any(fn)
}

// IntentTargets is the lower-cased union of all intent hit targets.
func (s SignalSet) IntentTargets() []string {
	set := newTokenSet()
	for _, hit := range s.IntentHits {
		set.add(hit.Targets...)
	}
	return set.slice()
}
