// Package wordnet is the seam to a WordNet-like semantic network, used to
// decide whether two words can be treated as equivalent: synonyms or
// first-order hypernyms/hyponyms. Lookups are expensive (typically a web
// service), so equivalence decisions are cached for the life of the
// conversation and can be persisted across runs.
package wordnet

import "context"

// WordNet retrieves first-order semantic relations for a word. Results are
// sense-merged: all senses contribute to one list.
type WordNet interface {
	Synonyms(ctx context.Context, word string) ([]string, error)
	Hypernyms(ctx context.Context, word string) ([]string, error)
	Hyponyms(ctx context.Context, word string) ([]string, error)
}

// Entry is one persisted equivalence decision.
type Entry struct {
	W1, W2 string
	Equal  bool
}
