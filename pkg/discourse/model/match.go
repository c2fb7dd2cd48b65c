package model

// Match is the scored outcome of aligning one query against one predicate.
// It is transient: built during resolution, consumed by the dialogue
// manager, never stored.
type Match struct {
	// Predicate is the matched predicate.
	Predicate *Predicate
	// ArgScores holds one score per predicate argument, the row maximum of
	// the alignment matrix.
	ArgScores []float64
	// Score is the aggregate match score: 1.0 credit for the verb match
	// plus the per-argument row maxima.
	Score float64
	// SaidArgument is the index of the predicate argument believed to
	// answer the query's variable slot, or -1 when none was found.
	SaidArgument int
	// Valid is true when Score exceeds 2.0, i.e. strictly more than the
	// verb credit plus one variable-slot match. Predicates with no
	// arguments can never validate, and only the first variable slot is
	// ever bound; see the scoring notes in the universe package.
	Valid bool
}

// NewMatch creates an unscored match for a predicate.
func NewMatch(p *Predicate) *Match {
	return &Match{
		Predicate:    p,
		ArgScores:    make([]float64, len(p.Arguments())),
		SaidArgument: -1,
	}
}
