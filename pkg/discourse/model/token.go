package model

import "fmt"

// Token is one annotated token of an input text, as produced by the
// external annotation service: surface form, lemma, morpho-syntactic
// descriptor and its place in the dependency tree.
type Token struct {
	Form   string
	Lemma  string
	POS    string
	DepRel string
	// Head is the 1-based index of this token's head in the dependency
	// tree; 0 marks the sentence root.
	Head int
	// ActionVerbDependent is set on tokens directly linked to the action
	// verb of the query.
	ActionVerbDependent bool
}

func (t Token) String() string {
	return t.Form + "/" + t.Lemma + "/" + t.POS + " " + t.DepRel + "<-" + fmt.Sprint(t.Head)
}

// QueryType is the closed set of conversational classifications an
// utterance can receive.
type QueryType int

const (
	// Unknown is the zero value: the utterance has not been classified.
	Unknown QueryType = iota
	// Command: "condu-mă te rog la camera 1222"
	Command
	// LocationQuery: "unde e sala 209?"
	LocationQuery
	// PersonQuery: "cine ține cursul din sala 1254?"
	PersonQuery
	// TimeQuery: "când se ține cursul de fotografie?"
	TimeQuery
	// How: "cum ajung în laboratorul de robotică?"
	How
	// What: "în ce sală se ține cursul de informatică?"
	What
	// YesNo: "nu e așa că se ține cursul de SDA în sala 113?"
	YesNo
	// Goodbye marks the end of the conversation.
	Goodbye
	// Hello marks the start of the conversation.
	Hello
)

var queryTypeNames = map[QueryType]string{
	Unknown:       "UNKNOWN",
	Command:       "COMMAND",
	LocationQuery: "LOCATION",
	PersonQuery:   "PERSON",
	TimeQuery:     "TIME",
	How:           "HOW",
	What:          "WHAT",
	YesNo:         "YESNO",
	Goodbye:       "GOODBYE",
	Hello:         "HELLO",
}

func (q QueryType) String() string {
	if name, ok := queryTypeNames[q]; ok {
		return name
	}
	return fmt.Sprintf("QueryType(%d)", int(q))
}

// Argument is one syntactic argument of the query's action verb: the token
// span describing it, plus whether it is the query variable, i.e. the
// missing information the user asks for. In "în ce sală se desfășoară
// cursul de informatică?", "în ce sală" is the query variable.
type Argument struct {
	Tokens     []Token
	IsVariable bool
}

// Query is the structured form of one user utterance: its conversational
// classification, the main verb lemma and the verb's arguments.
type Query struct {
	Type       QueryType
	ActionVerb string
	Arguments  []Argument
}
