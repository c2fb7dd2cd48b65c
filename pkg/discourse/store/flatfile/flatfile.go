// Package flatfile persists the conversation caches as two plain text
// files, human-readable and diffable. The annotation file holds one block
// per source text: the text line, one tab-separated token record per line,
// and a blank line terminating the block. The equivalence file holds one
// decision per line, "word1#word2<TAB>true|false".
package flatfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cognicore/discourse/pkg/discourse/internalerr"
	"github.com/cognicore/discourse/pkg/discourse/model"
	"github.com/cognicore/discourse/pkg/discourse/nlp"
	"github.com/cognicore/discourse/pkg/discourse/store"
	"github.com/cognicore/discourse/pkg/discourse/wordnet"
)

const tokenFields = 6

// Store reads and writes the cache files at fixed paths. A missing file on
// load yields an empty cache.
type Store struct {
	annotationsPath  string
	equivalencesPath string
}

var _ store.CacheStore = (*Store)(nil)

// New creates a flat-file cache store over the two paths.
func New(annotationsPath, equivalencesPath string) *Store {
	return &Store{annotationsPath: annotationsPath, equivalencesPath: equivalencesPath}
}

// Close is a no-op; files are only held open during load and save.
func (s *Store) Close() error { return nil }

// LoadAnnotations reads the annotation cache file.
func (s *Store) LoadAnnotations(ctx context.Context) ([]nlp.Entry, error) {
	f, err := os.Open(s.annotationsPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open annotation cache: %w", err)
	}
	defer f.Close()

	var (
		entries []nlp.Entry
		current *nlp.Entry
		lineNo  int
	)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" {
			if current != nil {
				entries = append(entries, *current)
				current = nil
			}
			continue
		}
		if current == nil {
			current = &nlp.Entry{Text: line}
			continue
		}
		tok, err := parseTokenRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", s.annotationsPath, lineNo, err)
		}
		current.Tokens = append(current.Tokens, tok)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read annotation cache: %w", err)
	}
	if current != nil {
		entries = append(entries, *current)
	}
	return entries, nil
}

// SaveAnnotations rewrites the annotation cache file wholesale.
func (s *Store) SaveAnnotations(ctx context.Context, entries []nlp.Entry) error {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Text)
		b.WriteByte('\n')
		for _, t := range e.Tokens {
			fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%d\t%t\n",
				t.Form, t.Lemma, t.POS, t.DepRel, t.Head, t.ActionVerbDependent)
		}
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.annotationsPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write annotation cache: %w", err)
	}
	return nil
}

// LoadEquivalences reads the equivalence cache file.
func (s *Store) LoadEquivalences(ctx context.Context) ([]wordnet.Entry, error) {
	f, err := os.Open(s.equivalencesPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open equivalence cache: %w", err)
	}
	defer f.Close()

	var (
		entries []wordnet.Entry
		lineNo  int
	)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" {
			continue
		}
		e, err := parseEquivalenceRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", s.equivalencesPath, lineNo, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read equivalence cache: %w", err)
	}
	return entries, nil
}

// SaveEquivalences rewrites the equivalence cache file wholesale.
func (s *Store) SaveEquivalences(ctx context.Context, entries []wordnet.Entry) error {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s#%s\t%t\n", e.W1, e.W2, e.Equal)
	}
	if err := os.WriteFile(s.equivalencesPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write equivalence cache: %w", err)
	}
	return nil
}

func parseTokenRecord(line string) (model.Token, error) {
	parts := strings.Split(line, "\t")
	if len(parts) != tokenFields {
		return model.Token{}, fmt.Errorf("token record has %d fields, want %d: %w",
			len(parts), tokenFields, internalerr.ErrInvalidInput)
	}
	head, err := strconv.Atoi(parts[4])
	if err != nil {
		return model.Token{}, fmt.Errorf("bad head index %q: %w", parts[4], internalerr.ErrInvalidInput)
	}
	avd, err := strconv.ParseBool(parts[5])
	if err != nil {
		return model.Token{}, fmt.Errorf("bad verb-dependency flag %q: %w", parts[5], internalerr.ErrInvalidInput)
	}
	return model.Token{
		Form:                parts[0],
		Lemma:               parts[1],
		POS:                 parts[2],
		DepRel:              parts[3],
		Head:                head,
		ActionVerbDependent: avd,
	}, nil
}

func parseEquivalenceRecord(line string) (wordnet.Entry, error) {
	pair, value, ok := strings.Cut(line, "\t")
	if !ok {
		return wordnet.Entry{}, fmt.Errorf("missing value field: %w", internalerr.ErrInvalidInput)
	}
	w1, w2, ok := strings.Cut(pair, "#")
	if !ok || w1 == "" || w2 == "" {
		return wordnet.Entry{}, fmt.Errorf("bad word pair %q: %w", pair, internalerr.ErrInvalidInput)
	}
	equal, err := strconv.ParseBool(value)
	if err != nil {
		return wordnet.Entry{}, fmt.Errorf("bad value %q: %w", value, internalerr.ErrInvalidInput)
	}
	return wordnet.Entry{W1: w1, W2: w2, Equal: equal}, nil
}
