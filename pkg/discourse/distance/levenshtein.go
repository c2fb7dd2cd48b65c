// Package distance implements bounded Levenshtein edit distance with a
// symmetric memoizing cache. The computation uses a single rolling cost row,
// so memory is O(len of the shorter string), and bails out early once the
// bound can no longer be met.
package distance

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Unbounded disables the distance bound.
const Unbounded = -1

// DefaultCacheSize is the number of string pairs remembered by an engine.
const DefaultCacheSize = 4096

type pairKey struct {
	a, b string
}

// canonical orders the pair so that (a,b) and (b,a) share one cache slot.
func canonical(a, b string) pairKey {
	if a > b {
		return pairKey{b, a}
	}
	return pairKey{a, b}
}

// Engine computes edit distances and memoizes results per unordered string
// pair. Each engine owns its cache; engines never share state. Cached
// results include the maxN+1 "too far" sentinel, so one engine should be
// queried with a consistent bound.
type Engine struct {
	cache *lru.Cache[pairKey, int]
}

// New creates an engine with a cache of the given size; sizes below 1 fall
// back to DefaultCacheSize.
func New(cacheSize int) *Engine {
	if cacheSize < 1 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[pairKey, int](cacheSize)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &Engine{cache: cache}
}

// Distance returns the Levenshtein distance between a and b, bounded by
// maxN when maxN >= 0. Any return value greater than maxN is a sentinel
// meaning "too far" and must not be read as a true distance.
func (e *Engine) Distance(a, b string, maxN int) int {
	if a == b {
		return 0
	}

	key := canonical(a, b)
	if d, ok := e.cache.Get(key); ok {
		return d
	}

	d := compute(a, b, maxN)
	e.cache.Add(key, d)
	return d
}

// Within reports whether the distance between a and b is at most maxN.
// A negative maxN disables the bound, so any pair is within it.
func (e *Engine) Within(a, b string, maxN int) bool {
	if maxN < 0 {
		return true
	}
	return e.Distance(a, b, maxN) <= maxN
}

// Len returns the number of cached pairs.
func (e *Engine) Len() int {
	return e.cache.Len()
}

func compute(a, b string, maxN int) int {
	ra := []rune(a)
	rb := []rune(b)
	la := len(ra)
	lb := len(rb)

	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	if maxN >= 0 && diff > maxN {
		return maxN + 1
	}
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	// Keep the cost row as short as possible.
	if la < lb {
		ra, rb = rb, ra
		la, lb = lb, la
	}

	cost := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		cost[j] = j
	}

	for i := 1; i <= la; i++ {
		cost[0] = i
		prev := i - 1
		rowMin := prev
		for j := 1; j <= lb; j++ {
			act := prev
			if ra[i-1] != rb[j-1] {
				act++
			}
			prev = cost[j]
			cost[j] = min3(1+prev, 1+cost[j-1], act)
			if prev < rowMin {
				rowMin = prev
			}
		}
		if maxN >= 0 && rowMin > maxN {
			return maxN + 1
		}
	}

	if maxN >= 0 && cost[lb] > maxN {
		return maxN + 1
	}
	return cost[lb]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
