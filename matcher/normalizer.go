package matcher

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	banglaFirst = '\u0980'
	banglaLast  = '\u09FF'
)

// Normalized is the canonical form of one user message.
type Normalized struct {
	// Text is the NFC, lower-cased message.
	Text string
	// Compact is Text with every whitespace run removed.
	Compact string
	// Tokens are the runs of [a-z0-9] and Bangla-block characters in Text.
	Tokens []string
	// PrefersBangla is set when Text contains any Bangla character.
	PrefersBangla bool
}

// Normalize canonicalizes a raw message. It never fails: if Unicode
// composition panics the lower-cased raw string is used instead.
func Normalize(raw string) Normalized {
	text := canonicalize(raw)
	return Normalized{
		Text:          text,
		Compact:       stripWhitespace(text),
		Tokens:        tokenize(text),
		PrefersBangla: containsBangla(text),
	}
}

func canonicalize(raw string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = strings.ToLower(raw)
		}
	}()
	return strings.ToLower(norm.NFC.String(raw))
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !isTokenRune(r)
	})
}

func isTokenRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || isBangla(r)
}

func isBangla(r rune) bool {
	return r >= banglaFirst && r <= banglaLast
}

func containsBangla(s string) bool {
	return strings.IndexFunc(s, isBangla) >= 0
}

// canonicalKey applies the message normalization to a vocabulary key.
func canonicalKey(s string) string {
	return canonicalize(strings.TrimFunc(s, unicode.IsSpace))
}
