package nlp

import (
	"sort"
	"sync"

	"github.com/cognicore/discourse/pkg/discourse/model"
)

// AnnotationCache remembers annotation results per source text, so repeated
// utterances and fact-base references do not re-hit the annotation service.
// It can be primed from a cache store at startup and dumped at shutdown.
//
// The cache is created per processor instance; instances never share one.
type AnnotationCache struct {
	mu      sync.RWMutex
	entries map[string][]model.Token
}

// NewAnnotationCache creates an empty cache.
func NewAnnotationCache() *AnnotationCache {
	return &AnnotationCache{entries: make(map[string][]model.Token)}
}

// Get returns the cached annotation for a text, if present.
func (c *AnnotationCache) Get(text string) ([]model.Token, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	toks, ok := c.entries[text]
	return toks, ok
}

// Put stores the annotation for a text.
func (c *AnnotationCache) Put(text string, tokens []model.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[text] = tokens
}

// Len returns the number of cached texts.
func (c *AnnotationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Entry is one cached text with its annotation, used for persistence.
type Entry struct {
	Text   string
	Tokens []model.Token
}

// Entries returns the cache contents sorted by text, for a stable dump.
func (c *AnnotationCache) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, 0, len(c.entries))
	for text, toks := range c.entries {
		out = append(out, Entry{Text: text, Tokens: toks})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Text < out[j].Text })
	return out
}

// Prime loads previously persisted entries into the cache.
func (c *AnnotationCache) Prime(entries []Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		c.entries[e.Text] = e.Tokens
	}
}
