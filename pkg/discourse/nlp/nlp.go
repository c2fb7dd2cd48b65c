// Package nlp defines the language seams of the dialogue engine: the
// annotation/query-analysis processor, the part-of-speech lexicon and the
// fixed-phrase tables. The engine core never hard-wires a language; exactly
// one implementation of these interfaces exists per natural language (see
// the ro subpackage).
package nlp

import (
	"context"

	"github.com/cognicore/discourse/pkg/discourse/model"
)

// Processor turns raw utterances into annotated tokens and structured
// queries. Annotation is typically a blocking call to an external service,
// hence the contexts.
type Processor interface {
	model.Annotator

	// AnalyzeQuery mines an annotated utterance for its conversational
	// classification, action verb and verb arguments.
	AnalyzeQuery(ctx context.Context, tokens []model.Token) (*model.Query, error)

	// CorrectText fixes up text coming from a speech-recognition engine
	// before annotation; may be the identity.
	CorrectText(text string) string

	// IsQueryVariable reports whether a token span could stand for the
	// missing information the user asks about ("cine", "unde", "ce sală").
	IsQueryVariable(tokens []model.Token) bool

	// SetConcepts hands the universe's bound concepts to the processor so
	// query classification can consult them.
	SetConcepts(concepts []*model.Concept)
}

// Lexicon answers language-specific word and part-of-speech questions. POS
// values are morpho-syntactic descriptors as emitted by the annotation
// service.
type Lexicon interface {
	// IsCommandVerb checks a verb lemma for a "command" verb ("du-mă...").
	IsCommandVerb(lemma string) bool
	// IsFunctionalPOS reports whether the POS belongs to a closed-class
	// (functional) word.
	IsFunctionalPOS(pos string) bool
	// IsFunctionalWord reports whether the word itself is functional.
	IsFunctionalWord(word string) bool
	// IsNounPOS reports whether the POS is noun-like, including pronouns
	// and wh-adverbs standing in for nouns.
	IsNounPOS(pos string) bool
	// IsPureNounPOS reports whether the POS is strictly nominal.
	IsPureNounPOS(pos string) bool
	// IsSkippablePOS reports whether the POS may be skipped at the start
	// of an utterance (prepositions, conjunctions, interjections).
	IsSkippablePOS(pos string) bool
}

// Sayings recognizes and produces the fixed phrases of a conversation.
// Reply line lists are ordered; each line is deliverable on its own.
type Sayings interface {
	// IsOpening reports whether the words mark the start of a conversation.
	IsOpening(words []string) bool
	// IsClosing reports whether the words mark the end of a conversation.
	IsClosing(words []string) bool

	OpeningLines() []string
	ClosingLines() []string
	DontKnowLines() []string
	DidntUnderstandLines() []string
}

// ContentLength returns the number of content (non-functional) tokens in a
// sentence.
func ContentLength(tokens []model.Token, lex Lexicon) int {
	n := 0
	for _, t := range tokens {
		if !lex.IsFunctionalPOS(t.POS) {
			n++
		}
	}
	return n
}
