// Package store defines persistence for the conversation caches: the
// text-annotation cache and the lexical-equivalence cache. Both are loaded
// at startup if present and rewritten wholesale at shutdown.
package store

import (
	"context"

	"github.com/cognicore/discourse/pkg/discourse/nlp"
	"github.com/cognicore/discourse/pkg/discourse/wordnet"
)

// CacheStore persists the two conversation caches. A missing backing
// resource is not an error on load; loads then return empty slices.
type CacheStore interface {
	Close() error

	LoadAnnotations(ctx context.Context) ([]nlp.Entry, error)
	SaveAnnotations(ctx context.Context, entries []nlp.Entry) error

	LoadEquivalences(ctx context.Context) ([]wordnet.Entry, error)
	SaveEquivalences(ctx context.Context, entries []wordnet.Entry) error
}
