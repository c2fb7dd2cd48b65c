// Package model holds the data model of a universe of discourse: typed
// concepts bound to textual references, predicates asserted true over them,
// and the annotated-token queries that get matched against both.
package model

import (
	"context"
	"fmt"
	"strings"
)

// ConceptType is the closed set of types a concept can have.
type ConceptType int

const (
	// Word is the general category: any noun, e.g. "curs".
	Word ConceptType = iota
	// Person is a named person, e.g. "Angela Gheorghiu".
	Person
	// Time is a time expression, e.g. "8:15".
	Time
	// Location is a place, e.g. "sala 209".
	Location
)

var conceptTypeNames = map[ConceptType]string{
	Word:     "WORD",
	Person:   "PERSON",
	Time:     "TIME",
	Location: "LOCATION",
}

func (t ConceptType) String() string {
	if name, ok := conceptTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ConceptType(%d)", int(t))
}

// ParseConceptType maps a declaration token like "LOCATION" to its type.
func ParseConceptType(s string) (ConceptType, error) {
	for t, name := range conceptTypeNames {
		if name == s {
			return t, nil
		}
	}
	return Word, fmt.Errorf("unknown concept type %q", s)
}

// ConceptTypeNames returns the declaration tokens of all concept types.
func ConceptTypeNames() []string {
	names := make([]string, 0, len(conceptTypeNames))
	for t := Word; t <= Location; t++ {
		names = append(names, conceptTypeNames[t])
	}
	return names
}

// UserIntent classifies what the user ultimately wants from a predicate.
type UserIntent int

const (
	// SaySomething: the user wants an explanation or a piece of information.
	SaySomething UserIntent = iota
	// TakeMeSomewhere: the user wants to be led somewhere.
	TakeMeSomewhere
	// BringMeThat: the user wants something fetched.
	BringMeThat
	// ShowMeHow: the user wants a demonstration.
	ShowMeHow
)

var userIntentNames = map[UserIntent]string{
	SaySomething:    "SAY_SOMETHING",
	TakeMeSomewhere: "TAKE_ME_SOMEWHERE",
	BringMeThat:     "BRING_ME_THAT",
	ShowMeHow:       "SHOW_ME_HOW",
}

func (i UserIntent) String() string {
	if name, ok := userIntentNames[i]; ok {
		return name
	}
	return fmt.Sprintf("UserIntent(%d)", int(i))
}

// ParseUserIntent maps a declaration token like "SAY_SOMETHING" to its intent.
func ParseUserIntent(s string) (UserIntent, error) {
	for i, name := range userIntentNames {
		if name == s {
			return i, nil
		}
	}
	return SaySomething, fmt.Errorf("unknown user intent %q", s)
}

// Equivalencer reports whether two words are lexically equivalent, i.e.
// synonyms or direct hypernyms/hyponyms of each other. Implementations are
// expected to cache aggressively since lookups may hit the network.
type Equivalencer interface {
	Equals(ctx context.Context, w1, w2 string) bool
}

// Annotator turns raw text into an ordered sequence of annotated tokens.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]Token, error)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
