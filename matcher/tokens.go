package matcher

import "strings"

// tokenSet is an insertion-ordered set of lower-cased tokens.
type tokenSet struct {
	order []string
	seen  map[string]struct{}
}

func newTokenSet() *tokenSet {
	return &tokenSet{seen: make(map[string]struct{})}
}

func (s *tokenSet) add(tokens ...string) {
	for _, t := range tokens {
		t = strings.ToLower(t)
		if t == "" {
			continue
		}
		if _, ok := s.seen[t]; ok {
			continue
		}
		s.seen[t] = struct{}{}
		s.order = append(s.order, t)
	}
}

func (s *tokenSet) has(t string) bool {
	_, ok := s.seen[t]
	return ok
}

func (s *tokenSet) any(fn func(string) bool) bool {
	for _, t := range s.order {
		if fn(t) {
			return true
		}
	}
	return false
}

func (s *tokenSet) slice() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
