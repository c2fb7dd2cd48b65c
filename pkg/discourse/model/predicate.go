package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/cognicore/discourse/pkg/discourse/internalerr"
)

// Predicate is the principal information unit the dialogue engine reasons
// about: a named relation, asserted true in the universe with its arguments
// bound in order to concepts. The name is an action-verb lemma ("afla",
// "ține") with optional synonyms, and carries the user intent that holds
// when this predicate answers a query.
type Predicate struct {
	verb     string
	synonyms []string
	intent   UserIntent
	args     []*Concept
}

// NewPredicate creates a predicate for the given intent and action verb.
// A blank verb is rejected.
func NewPredicate(intent UserIntent, verb string) (*Predicate, error) {
	if isBlank(verb) {
		return nil, fmt.Errorf("%w: action verb may not be empty or blank", internalerr.ErrInvalidInput)
	}
	return &Predicate{
		verb:   strings.ToLower(strings.TrimSpace(verb)),
		intent: intent,
	}, nil
}

// BuildPredicate is the convenience constructor used by the fact-base
// loader: intent, verb, verb synonyms and bound arguments in one call.
func BuildPredicate(intent UserIntent, verb string, synonyms []string, args []*Concept) (*Predicate, error) {
	p, err := NewPredicate(intent, verb)
	if err != nil {
		return nil, err
	}
	for _, s := range synonyms {
		if err := p.AddSynonym(s); err != nil {
			return nil, err
		}
	}
	for _, a := range args {
		p.AddArgument(a)
	}
	return p, nil
}

// ActionVerb returns the lemma this predicate is named by.
func (p *Predicate) ActionVerb() string { return p.verb }

// Intent returns the user intent associated with this predicate.
func (p *Predicate) Intent() UserIntent { return p.intent }

// Arguments returns the bound arguments, in assertion order. Argument
// position is the identity used throughout scoring.
func (p *Predicate) Arguments() []*Concept { return p.args }

// AddSynonym adds an alternate verb lemma for this predicate.
func (p *Predicate) AddSynonym(syn string) error {
	if isBlank(syn) {
		return fmt.Errorf("%w: synonym may not be empty or blank", internalerr.ErrInvalidInput)
	}
	p.synonyms = append(p.synonyms, strings.ToLower(strings.TrimSpace(syn)))
	return nil
}

// AddArgument appends a bound concept; order is significant.
func (p *Predicate) AddArgument(c *Concept) {
	p.args = append(p.args, c)
}

// IsThisPredicate tests whether a word refers to this predicate's action
// verb, by exact match, synonym, or the equivalence oracle when supplied.
func (p *Predicate) IsThisPredicate(ctx context.Context, word string, eq Equivalencer) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == p.verb {
		return true
	}
	for _, syn := range p.synonyms {
		if word == syn {
			return true
		}
	}
	if eq != nil {
		return eq.Equals(ctx, word, p.verb)
	}
	return false
}

// DeepCopy duplicates verb, intent and synonyms but not the arguments; the
// fact-base loader re-attaches arguments per asserted fact.
func (p *Predicate) DeepCopy() *Predicate {
	dup := &Predicate{verb: p.verb, intent: p.intent}
	dup.synonyms = append(dup.synonyms, p.synonyms...)
	return dup
}

func (p *Predicate) String() string {
	var b strings.Builder
	b.WriteString(p.verb)
	b.WriteString("(")
	for i, a := range p.args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString(")")
	return b.String()
}
