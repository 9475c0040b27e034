// Package matcher turns a free-text symptom description, in English or
// Bangla, into a ranked shortlist of doctors and a short reply in the
// language the user wrote in.
//
// The pipeline is a single pass per message:
//
//	Normalize -> Translator -> IntentDetector -> Scorer -> Rank -> Composer
//
// Vocabulary tables (Bangla symptom keys, specialty phrases, paraphrase
// rules, cities) are data injected at construction time; see Vocabulary.
// The doctor roster is read once per request through a RosterProvider.
//
// A Matcher holds no per-request state and is safe for concurrent use.
package matcher
