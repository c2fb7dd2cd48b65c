package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/cognicore/discourse/pkg/discourse/internalerr"
)

// Concept is a typed variable of the universe of discourse which gets bound
// to a value at load time. It can be expressed through a canonical form
// (e.g. "cameră"), through synonyms ("sală", "laborator") and it carries the
// textual reference it is bound to ("209").
//
// No two concepts of one universe should share a canonical form; this is a
// documented limitation and is not enforced.
type Concept struct {
	ctype     ConceptType
	canonical string
	synonyms  []string
	reference string
	refTokens []Token
	// constant concepts have a mandatory reference, no canonical form and
	// ignore synonym additions
	constant bool
}

// NewConcept creates a concept of the given type. Canonical form and
// reference may both be empty at this point; a blank canonical form is
// normalized away.
func NewConcept(t ConceptType, canonical, reference string) *Concept {
	c := &Concept{ctype: t, reference: reference}
	if !isBlank(canonical) {
		c.canonical = strings.ToLower(strings.TrimSpace(canonical))
	}
	return c
}

// BuildConcept is the convenience constructor used by the fact-base loader:
// type, canonical form, synonyms and reference in one call.
func BuildConcept(t ConceptType, canonical string, synonyms []string, reference string) (*Concept, error) {
	c := NewConcept(t, canonical, reference)
	for _, s := range synonyms {
		if err := c.AddSynonym(s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewConstant creates a constant: a concept instance whose reference is
// mandatory and which never carries a canonical form or synonyms. Useful for
// one-off values like "8:00" where the variable name is of no interest.
func NewConstant(t ConceptType, reference string) (*Concept, error) {
	if isBlank(reference) {
		return nil, fmt.Errorf("%w: constant reference may not be empty or blank", internalerr.ErrInvalidInput)
	}
	return &Concept{ctype: t, reference: reference, constant: true}, nil
}

// IsConstant reports whether this concept was built with NewConstant.
func (c *Concept) IsConstant() bool { return c.constant }

// Type returns the type of this concept.
func (c *Concept) Type() ConceptType { return c.ctype }

// CanonicalName returns the "standard" name for this concept, or the empty
// string when none is set.
func (c *Concept) CanonicalName() string { return c.canonical }

// Reference returns the textual reference this concept is bound to, or the
// empty string when unbound.
func (c *Concept) Reference() string { return c.reference }

// TokenizedReference returns the annotated version of the reference, used
// when matching against user descriptions.
func (c *Concept) TokenizedReference() []Token { return c.refTokens }

// Synonyms returns the synonym list; callers must not mutate it.
func (c *Concept) Synonyms() []string { return c.synonyms }

// AddSynonym adds an alternate word by which this concept can be identified
// in text. Blank synonyms are rejected. Constants silently ignore the call.
func (c *Concept) AddSynonym(syn string) error {
	if c.constant {
		return nil
	}
	if isBlank(syn) {
		return fmt.Errorf("%w: synonym may not be empty or blank", internalerr.ErrInvalidInput)
	}
	c.synonyms = append(c.synonyms, strings.ToLower(strings.TrimSpace(syn)))
	return nil
}

// SetReference binds the concept to a reference and recomputes the
// tokenized form. The annotation call is skipped when the value does not
// change, since annotation may be expensive.
func (c *Concept) SetReference(ctx context.Context, value string, an Annotator) error {
	if value == "" || value == c.reference {
		return nil
	}
	c.reference = value
	if an == nil {
		return nil
	}
	toks, err := an.Annotate(ctx, value)
	if err != nil {
		return fmt.Errorf("annotate reference %q: %w", value, err)
	}
	c.refTokens = toks
	return nil
}

// IsThisConcept tests whether a word refers to this concept: by canonical
// form, by synonym, or through the equivalence oracle when one is supplied.
// A concept without a canonical form never matches.
func (c *Concept) IsThisConcept(ctx context.Context, word string, eq Equivalencer) bool {
	if c.canonical == "" {
		return false
	}
	word = strings.ToLower(strings.TrimSpace(word))
	if word == c.canonical {
		return true
	}
	for _, syn := range c.synonyms {
		if word == syn {
			return true
		}
	}
	if eq != nil {
		return eq.Equals(ctx, word, c.canonical)
	}
	return false
}

// DeepCopy returns a fully independent copy of this concept.
func (c *Concept) DeepCopy() *Concept {
	dup := &Concept{
		ctype:     c.ctype,
		canonical: c.canonical,
		reference: c.reference,
		constant:  c.constant,
	}
	dup.synonyms = append(dup.synonyms, c.synonyms...)
	dup.refTokens = append(dup.refTokens, c.refTokens...)
	return dup
}

// Equal compares two concepts. Regular concepts are equal when type and
// canonical form match and the references agree case-insensitively (or are
// both absent). A constant compares only type and reference, so it can equal
// any instantiated concept bound to the same value.
func (c *Concept) Equal(other *Concept) bool {
	if other == nil || c.ctype != other.ctype {
		return false
	}
	if !c.constant && !other.constant && c.canonical != other.canonical {
		return false
	}
	if c.reference == "" && other.reference == "" {
		return true
	}
	return c.reference != "" && other.reference != "" &&
		strings.EqualFold(c.reference, other.reference)
}

func (c *Concept) String() string {
	if !isBlank(c.reference) {
		return "'" + c.reference + "'/" + c.ctype.String()
	}
	return "'" + c.canonical + "'/" + c.ctype.String()
}
