package wordnet

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Equivalence wraps a WordNet with a symmetric boolean cache. A decision
// made for (w1,w2) is stored under both orderings, and negative decisions
// are cached just as long as positive ones: once a pair is "not equivalent"
// it stays that way for the cache's lifetime.
//
// Lookup failures are logged and treated as "no relation found" for the
// current call, without caching, so a transient outage cannot poison the
// persisted cache.
type Equivalence struct {
	wn  WordNet
	log *zap.Logger

	mu    sync.RWMutex
	cache map[[2]string]bool
}

// NewEquivalence creates an equivalence oracle over wn. A nil logger
// disables logging.
func NewEquivalence(wn WordNet, log *zap.Logger) *Equivalence {
	if log == nil {
		log = zap.NewNop()
	}
	return &Equivalence{
		wn:    wn,
		log:   log,
		cache: make(map[[2]string]bool),
	}
}

// Equals reports whether w1 and w2 are synonyms or direct
// hypernyms/hyponyms of one another. The relation sets of w1 are consulted
// in that order, short-circuiting on the first hit.
func (e *Equivalence) Equals(ctx context.Context, w1, w2 string) bool {
	e.mu.RLock()
	v, ok := e.cache[[2]string{w1, w2}]
	if !ok {
		v, ok = e.cache[[2]string{w2, w1}]
	}
	e.mu.RUnlock()
	if ok {
		return v
	}

	if e.wn == nil {
		return false
	}

	lookups := []func(context.Context, string) ([]string, error){
		e.wn.Synonyms,
		e.wn.Hypernyms,
		e.wn.Hyponyms,
	}
	for _, lookup := range lookups {
		words, err := lookup(ctx, w1)
		if err != nil {
			e.log.Warn("wordnet lookup failed", zap.String("word", w1), zap.Error(err))
			return false
		}
		for _, w := range words {
			if w == w2 {
				e.store(w1, w2, true)
				return true
			}
		}
	}

	e.store(w1, w2, false)
	return false
}

func (e *Equivalence) store(w1, w2 string, equal bool) {
	e.mu.Lock()
	e.cache[[2]string{w1, w2}] = equal
	e.cache[[2]string{w2, w1}] = equal
	e.mu.Unlock()
}

// Len returns the number of cache slots (two per decided pair).
func (e *Equivalence) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}

// Entries returns the cached decisions sorted by word pair, for a stable
// dump. Both orderings of each pair are included.
func (e *Equivalence) Entries() []Entry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Entry, 0, len(e.cache))
	for k, v := range e.cache {
		out = append(out, Entry{W1: k[0], W2: k[1], Equal: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].W1 != out[j].W1 {
			return out[i].W1 < out[j].W1
		}
		return out[i].W2 < out[j].W2
	})
	return out
}

// Prime loads previously persisted decisions, each under both orderings.
func (e *Equivalence) Prime(entries []Entry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, en := range entries {
		e.cache[[2]string{en.W1, en.W2}] = en.Equal
		e.cache[[2]string{en.W2, en.W1}] = en.Equal
	}
}
