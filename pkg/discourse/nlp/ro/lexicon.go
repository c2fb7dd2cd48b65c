// Package ro is the Romanian implementation of the language seams: MSD
// part-of-speech rules, the functional-word list, fixed conversational
// phrases and the query analyzer over TEPROLIN-style annotations.
package ro

import (
	"regexp"
	"strings"
)

// MSD prefixes per the Romanian tagset. Rw and Pw cover wh-adverbs and
// wh-pronouns ("unde", "când", "cine") which act as nominal slots here.
var (
	functionalPattern = regexp.MustCompile(`^(N|P[^x]|M|R[gw]|Vm|Af|Y)`)
	nounPattern       = regexp.MustCompile(`^(N|P[^x]|M|Rw|Yn?)`)
	pureNounPattern   = regexp.MustCompile(`^(N|Yn?)`)
)

var commandVerbs = map[string]bool{
	"duce":    true,
	"conduce": true,
	"arăta":   true,
	"aduce":   true,
}

// Lexicon answers Romanian word and part-of-speech questions. The zero
// value is ready to use; NewLexicon allows extending the functional-word
// list from configuration.
type Lexicon struct {
	extraFunctional map[string]bool
}

// NewLexicon creates a lexicon, optionally extending the built-in
// functional-word list.
func NewLexicon(extraFunctionalWords []string) *Lexicon {
	lex := &Lexicon{}
	if len(extraFunctionalWords) > 0 {
		lex.extraFunctional = make(map[string]bool, len(extraFunctionalWords))
		for _, w := range extraFunctionalWords {
			lex.extraFunctional[strings.ToLower(strings.TrimSpace(w))] = true
		}
	}
	return lex
}

// IsCommandVerb checks a verb lemma for a "command" verb ("du-mă la...").
func (l *Lexicon) IsCommandVerb(lemma string) bool {
	return commandVerbs[strings.ToLower(lemma)]
}

// IsFunctionalPOS reports whether the MSD belongs to a closed-class word.
func (l *Lexicon) IsFunctionalPOS(pos string) bool {
	return !functionalPattern.MatchString(pos)
}

// IsFunctionalWord reports whether the word itself is functional.
func (l *Lexicon) IsFunctionalWord(word string) bool {
	word = strings.ToLower(word)
	return stopWords[word] || l.extraFunctional[word]
}

// IsNounPOS reports whether the MSD is noun-like, including pronouns and
// the wh-adverbs that stand in for nouns ("unde", "când").
func (l *Lexicon) IsNounPOS(pos string) bool {
	return nounPattern.MatchString(pos)
}

// IsPureNounPOS reports whether the MSD is strictly nominal.
func (l *Lexicon) IsPureNounPOS(pos string) bool {
	return pureNounPattern.MatchString(pos)
}

// IsSkippablePOS reports whether the MSD may be skipped at the start of an
// utterance: prepositions, conjunctions, interjections.
func (l *Lexicon) IsSkippablePOS(pos string) bool {
	return strings.HasPrefix(pos, "Sp") || strings.HasPrefix(pos, "C") || strings.HasPrefix(pos, "I")
}
