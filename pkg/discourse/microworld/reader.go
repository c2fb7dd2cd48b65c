// Package microworld loads a universe of discourse from a declarative .mw
// fact-base file. The format is line-oriented UTF-8, one statement per
// line, # starts a comment:
//
//	CONCEPT sală, laborator, cameră -> LOCATION
//	REFERENCE sală 209 = C1
//	TIME marți, 8:00 = T1
//	PREDICATE afla, găsi -> SAY_SOMETHING
//	TRUE afla C1 T1
//
// Loading is fail-fast: a malformed line, unknown enum token, duplicate
// reference code, or use of an undeclared concept or predicate aborts the
// load with a line-numbered error, and no partial universe is returned.
package microworld

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/discourse/pkg/discourse/internalerr"
	"github.com/cognicore/discourse/pkg/discourse/model"
	"github.com/cognicore/discourse/pkg/discourse/universe"
)

// Reader parses one .mw file.
type Reader struct {
	path string
}

// NewReader creates a reader over the given .mw file path.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Name derives the micro-world name from the file name: base name without
// the .mw suffix, upper-cased.
func (r *Reader) Name() string {
	name := filepath.Base(r.path)
	name = strings.TrimSuffix(name, ".mw")
	return strings.ToUpper(name)
}

// Populate parses the file and loads its concepts and asserted predicates
// into the universe. Reference annotation goes through an, which may be nil
// when tokenized references are not needed.
func (r *Reader) Populate(ctx context.Context, uni *universe.Universe, an model.Annotator) error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("open micro-world: %w", err)
	}
	defer f.Close()

	p := &parser{
		refs:  make(map[string]*model.Concept),
		annot: an,
	}

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := p.statement(ctx, line); err != nil {
			return fmt.Errorf("%s: line %d: %w", r.path, lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read micro-world: %w", err)
	}

	// Concepts enter the universe in declaration order of their codes, so
	// dumps are reproducible run to run.
	for _, code := range p.codeOrder {
		uni.AddConcept(p.refs[code])
	}
	uni.SetPredicates(p.truePredicates)
	return nil
}

// parser accumulates declarations while statements are consumed one by one.
// Concept and predicate declarations are templates; REFERENCE and TRUE
// lines instantiate deep copies of them.
type parser struct {
	concepts       []*model.Concept
	predicates     []*model.Predicate
	refs           map[string]*model.Concept
	codeOrder      []string
	truePredicates []*model.Predicate
	annot          model.Annotator
}

func (p *parser) statement(ctx context.Context, line string) error {
	keyword, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch keyword {
	case "CONCEPT":
		return p.conceptLine(rest)
	case "REFERENCE":
		return p.referenceLine(ctx, rest)
	case "PREDICATE":
		return p.predicateLine(rest)
	case "TRUE":
		return p.trueLine(rest)
	}
	if t, err := model.ParseConceptType(keyword); err == nil {
		return p.constantLine(t, rest)
	}
	return fmt.Errorf("unrecognized statement %q: %w", keyword, internalerr.ErrInvalidInput)
}

// CONCEPT <name>[, <synonym>]* -> <TYPE>
func (p *parser) conceptLine(rest string) error {
	names, typeName, ok := splitArrow(rest)
	if !ok {
		return fmt.Errorf("CONCEPT line needs '-> TYPE': %w", internalerr.ErrInvalidInput)
	}
	t, err := model.ParseConceptType(typeName)
	if err != nil {
		return fmt.Errorf("%v: %w", err, internalerr.ErrInvalidInput)
	}
	canonical, synonyms, err := splitNameList(names)
	if err != nil {
		return err
	}
	c, err := model.BuildConcept(t, canonical, synonyms, "")
	if err != nil {
		return err
	}
	p.concepts = append(p.concepts, c)
	return nil
}

// REFERENCE <canonicalName> <free-text reference> = <code>
func (p *parser) referenceLine(ctx context.Context, rest string) error {
	canonical, tail, ok := strings.Cut(rest, " ")
	if !ok {
		return fmt.Errorf("REFERENCE line needs a concept name and a reference: %w", internalerr.ErrInvalidInput)
	}
	reference, code, err := splitAssignment(tail)
	if err != nil {
		return err
	}

	canonical = strings.ToLower(canonical)
	for _, c := range p.concepts {
		if c.CanonicalName() != canonical {
			continue
		}
		bound := c.DeepCopy()
		if err := bound.SetReference(ctx, reference, p.annot); err != nil {
			return err
		}
		return p.register(code, bound)
	}
	return fmt.Errorf("reference to undeclared concept %q: %w", canonical, internalerr.ErrNotFound)
}

// <TYPE> <free-text reference> = <code>
func (p *parser) constantLine(t model.ConceptType, rest string) error {
	reference, code, err := splitAssignment(rest)
	if err != nil {
		return err
	}
	c, err := model.NewConstant(t, reference)
	if err != nil {
		return err
	}
	return p.register(code, c)
}

// PREDICATE <verb>[, <synonym>]* -> <USER_INTENT>
func (p *parser) predicateLine(rest string) error {
	names, intentName, ok := splitArrow(rest)
	if !ok {
		return fmt.Errorf("PREDICATE line needs '-> USER_INTENT': %w", internalerr.ErrInvalidInput)
	}
	intent, err := model.ParseUserIntent(intentName)
	if err != nil {
		return fmt.Errorf("%v: %w", err, internalerr.ErrInvalidInput)
	}
	verb, synonyms, err := splitNameList(names)
	if err != nil {
		return err
	}
	pred, err := model.BuildPredicate(intent, verb, synonyms, nil)
	if err != nil {
		return err
	}
	p.predicates = append(p.predicates, pred)
	return nil
}

// TRUE <verb> <code> [<code> ...]
func (p *parser) trueLine(rest string) error {
	parts := strings.Fields(rest)
	if len(parts) == 0 {
		return fmt.Errorf("TRUE line needs a predicate verb: %w", internalerr.ErrInvalidInput)
	}
	verb := parts[0]
	for _, tmpl := range p.predicates {
		if !strings.EqualFold(tmpl.ActionVerb(), verb) {
			continue
		}
		fact := tmpl.DeepCopy()
		for _, code := range parts[1:] {
			c, ok := p.refs[code]
			if !ok {
				return fmt.Errorf("undeclared reference code %q: %w", code, internalerr.ErrNotFound)
			}
			fact.AddArgument(c)
		}
		p.truePredicates = append(p.truePredicates, fact)
		return nil
	}
	return fmt.Errorf("undeclared predicate %q: %w", verb, internalerr.ErrNotFound)
}

func (p *parser) register(code string, c *model.Concept) error {
	if _, exists := p.refs[code]; exists {
		return fmt.Errorf("reference code %q: %w", code, internalerr.ErrDuplicate)
	}
	p.refs[code] = c
	p.codeOrder = append(p.codeOrder, code)
	return nil
}

// splitArrow splits "names -> TOKEN" and trims both sides.
func splitArrow(s string) (names, token string, ok bool) {
	names, token, ok = strings.Cut(s, "->")
	return strings.TrimSpace(names), strings.TrimSpace(token), ok
}

// splitAssignment splits "free text = code" on the last '=', so references
// containing '=' remain expressible.
func splitAssignment(s string) (value, code string, err error) {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return "", "", fmt.Errorf("missing '= code' part: %w", internalerr.ErrInvalidInput)
	}
	value = strings.TrimSpace(s[:i])
	code = strings.TrimSpace(s[i+1:])
	if value == "" || !isRefCode(code) {
		return "", "", fmt.Errorf("bad reference assignment %q: %w", s, internalerr.ErrInvalidInput)
	}
	return value, code, nil
}

// splitNameList splits "name, synonym, synonym" into head and tail.
func splitNameList(s string) (string, []string, error) {
	parts := strings.Split(s, ",")
	head := strings.TrimSpace(parts[0])
	if head == "" {
		return "", nil, fmt.Errorf("empty name list: %w", internalerr.ErrInvalidInput)
	}
	var synonyms []string
	for _, p := range parts[1:] {
		synonyms = append(synonyms, strings.TrimSpace(p))
	}
	return head, synonyms, nil
}

// isRefCode accepts the alphanumeric reference codes of the format (C1, T2).
func isRefCode(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
