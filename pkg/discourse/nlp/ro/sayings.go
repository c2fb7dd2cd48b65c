package ro

import (
	"regexp"
	"strings"
)

var punctuationOnly = regexp.MustCompile(`^[^\p{L}\p{N}]+$`)

var defaultOpenings = []string{
	"salut", "noroc", "bună", "servus",
	"pepper", "pepăr",
	"salut pepper", "salut pepăr",
	"bună ziua", "bună ziua pepper", "bună ziua pepăr",
	"bună pepper", "bună pepăr",
	"noroc pepper", "noroc pepăr",
	"servus pepper", "servus pepăr",
}

var defaultClosings = []string{
	"mulțumesc", "mulțam", "mersi", "pa", "la revedere",
}

// Sayings recognizes Romanian conversation openers and closers and holds
// the robot's fixed reply lines. Recognition is done on the lower-cased,
// punctuation-stripped word sequence.
type Sayings struct {
	openings map[string]bool
	closings map[string]bool
}

// NewSayings creates the Romanian phrase tables, optionally extended with
// extra opening and closing phrases from configuration.
func NewSayings(extraOpenings, extraClosings []string) *Sayings {
	s := &Sayings{
		openings: make(map[string]bool),
		closings: make(map[string]bool),
	}
	for _, p := range append(append([]string{}, defaultOpenings...), extraOpenings...) {
		s.openings[normalizePhrase(p)] = true
	}
	for _, p := range append(append([]string{}, defaultClosings...), extraClosings...) {
		s.closings[normalizePhrase(p)] = true
	}
	return s
}

// IsOpening reports whether the words mark the start of a conversation.
func (s *Sayings) IsOpening(words []string) bool {
	return s.openings[filterWords(words)]
}

// IsClosing reports whether the words mark the end of a conversation.
func (s *Sayings) IsClosing(words []string) bool {
	return s.closings[filterWords(words)]
}

// OpeningLines is what the robot says to start the conversation; each line
// goes to the TTS module separately.
func (s *Sayings) OpeningLines() []string {
	return []string{"Bună ziua!", "Cu ce vă pot ajuta?"}
}

// ClosingLines is what the robot says to end the conversation.
func (s *Sayings) ClosingLines() []string {
	return []string{"La revedere."}
}

// DontKnowLines is what the robot says when the fact base has no answer.
func (s *Sayings) DontKnowLines() []string {
	return []string{"Nu știu.", "Această informație nu îmi este disponibilă."}
}

// DidntUnderstandLines is what the robot says when it needs the question
// rephrased.
func (s *Sayings) DidntUnderstandLines() []string {
	return []string{"Nu am înțeles ce ați întrebat.", "Vă rog să reformulați."}
}

// filterWords drops punctuation-only tokens and joins the rest lower-cased.
func filterWords(words []string) string {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if punctuationOnly.MatchString(w) {
			continue
		}
		kept = append(kept, strings.ToLower(strings.TrimSpace(w)))
	}
	return strings.Join(kept, " ")
}

func normalizePhrase(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}
