// Package universe implements query resolution for one micro-world: the
// inventory of bound concepts and true predicates, and the fuzzy alignment
// of structured queries against them.
package universe

import (
	"context"
	"strings"

	"github.com/cognicore/discourse/pkg/discourse/distance"
	"github.com/cognicore/discourse/pkg/discourse/model"
	"github.com/cognicore/discourse/pkg/discourse/nlp"
)

// descriptionDistanceBound caps the edit distance consulted when aligning
// description words against reference words.
const descriptionDistanceBound = 5

// noAlignment is the distance assigned to a description word before any
// reference word has been considered.
const noAlignment = 1000

// Universe is the complete fact base of one micro-world plus the matching
// engine over it. The distance engine and equivalence oracle are shared
// with the rest of the conversation, not owned.
type Universe struct {
	concepts   []*model.Concept
	predicates []*model.Predicate

	dist *distance.Engine
	eq   model.Equivalencer
	lex  nlp.Lexicon
}

// New creates an empty universe. eq may be nil, in which case only exact
// and synonym matches are recognized.
func New(dist *distance.Engine, eq model.Equivalencer, lex nlp.Lexicon) *Universe {
	return &Universe{dist: dist, eq: eq, lex: lex}
}

// AddConcept adds a bound concept to this universe.
func (u *Universe) AddConcept(c *model.Concept) {
	u.concepts = append(u.concepts, c)
}

// Concepts returns the bound concepts of this universe.
func (u *Universe) Concepts() []*model.Concept { return u.concepts }

// Predicates returns the true predicates of this universe.
func (u *Universe) Predicates() []*model.Predicate { return u.predicates }

// AddPredicate adds one true predicate.
func (u *Universe) AddPredicate(p *model.Predicate) {
	u.predicates = append(u.predicates, p)
}

// SetPredicates replaces the predicate collection as a batch.
func (u *Universe) SetPredicates(preds []*model.Predicate) {
	u.predicates = append(u.predicates[:0:0], preds...)
}

// ResolveQuery scores every predicate against the query and returns the
// best match; ties keep the first-seen maximum. It returns nil when no
// predicate's action verb matches the query's verb, which safely means the
// information is not in the fact base.
func (u *Universe) ResolveQuery(ctx context.Context, q *model.Query) *model.Match {
	var best *model.Match
	maxScore := 0.0
	for _, pred := range u.predicates {
		m := u.scoreAgainstPredicate(ctx, q, pred)
		if m != nil && m.Score > maxScore {
			best = m
			maxScore = m.Score
		}
	}
	return best
}

// ResolveQueryInContext recovers an answer from the predicate matched on a
// previous turn: the user asked for another argument of the same relation,
// with a query too thin to match on its own. Only the variable slot's type
// is checked here; descriptions are not re-scored. Returns nil when the
// verb no longer matches or no argument fits the variable.
func (u *Universe) ResolveQueryInContext(ctx context.Context, q *model.Query, pred *model.Predicate) *model.Match {
	if !pred.IsThisPredicate(ctx, q.ActionVerb, u.eq) {
		return nil
	}
	m := model.NewMatch(pred)
	for _, qarg := range q.Arguments {
		if !qarg.IsVariable {
			continue
		}
		for i, parg := range pred.Arguments() {
			if u.isCompatibleType(ctx, parg, qarg, q.Type) {
				m.SaidArgument = i
				break
			}
		}
		// Only the first variable argument is considered.
		break
	}
	if m.SaidArgument < 0 {
		return nil
	}
	m.Valid = true
	return m
}

// scoreAgainstPredicate aligns the query's syntactic arguments with the
// predicate's bound arguments and produces a scored match, or nil when the
// action verbs do not correspond.
//
// Each matrix cell is computed exactly once; the index-transposition reuse
// of earlier implementations is deliberately dropped because transposed
// cells compare different contents.
func (u *Universe) scoreAgainstPredicate(ctx context.Context, q *model.Query, pred *model.Predicate) *model.Match {
	if !pred.IsThisPredicate(ctx, q.ActionVerb, u.eq) {
		return nil
	}

	pargs := pred.Arguments()
	qargs := q.Arguments

	scores := make([][]float64, len(pargs))
	for i, parg := range pargs {
		scores[i] = make([]float64, len(qargs))
		for j, qarg := range qargs {
			switch {
			case qarg.IsVariable && u.isCompatibleType(ctx, parg, qarg, q.Type):
				// A query variable of the right type counts as a full
				// argument match.
				scores[i][j] = 1.0
			case u.isConceptInstance(ctx, qarg.Tokens, parg):
				// The user described this argument rather than asking
				// for it; fuzzy-score the description.
				scores[i][j] = u.DescriptionSimilarity(ctx, parg.TokenizedReference(), qarg.Tokens)
			}
		}
	}

	m := model.NewMatch(pred)
	// The predicate matched at least by name.
	m.Score = 1.0
	for i, parg := range pargs {
		rowMax := 0.0
		for j, qarg := range qargs {
			if scores[i][j] > rowMax {
				rowMax = scores[i][j]
			}
			if qarg.IsVariable && m.SaidArgument == -1 &&
				u.isCompatibleType(ctx, parg, qarg, q.Type) {
				m.SaidArgument = i
			}
		}
		m.Score += rowMax
		m.ArgScores[i] = rowMax
	}
	// 1.0 for the predicate name plus 1.0 for the query variable is not
	// enough on its own; some described argument has to agree too.
	m.Valid = m.Score > 2.0
	return m
}

// isConceptInstance verifies whether the user's description names the
// given bound concept: some content token hanging off the action verb must
// match the concept's canonical form or a synonym.
func (u *Universe) isConceptInstance(ctx context.Context, toks []model.Token, c *model.Concept) bool {
	for _, t := range toks {
		if !t.ActionVerbDependent || u.lex.IsFunctionalPOS(t.POS) {
			continue
		}
		if c.IsThisConcept(ctx, t.Lemma, u.eq) || c.IsThisConcept(ctx, t.Form, u.eq) {
			return true
		}
	}
	return false
}

// isCompatibleType reports whether the query could be asking for this
// concept: a WORD concept must be named by a noun inside a "what" query's
// variable span, the other types pair with their query classification.
func (u *Universe) isCompatibleType(ctx context.Context, c *model.Concept, arg model.Argument, qt model.QueryType) bool {
	switch c.Type() {
	case model.Word:
		if qt != model.What {
			return false
		}
		for _, t := range arg.Tokens {
			if u.lex.IsNounPOS(t.POS) && strings.EqualFold(t.Lemma, c.CanonicalName()) {
				return true
			}
		}
		return false
	case model.Person:
		return qt == model.PersonQuery
	case model.Location:
		return qt == model.LocationQuery
	case model.Time:
		return qt == model.TimeQuery
	}
	return false
}

// DescriptionSimilarity scores how well a user description matches a
// reference, both as annotated token sequences. For each content word of
// the description the best-aligning reference word is found (lemma
// equality or lexical equivalence first, then bounded edit distance on the
// surface forms) and the pair contributes (|i-j|+1)*(L+1) to the total
// cost, penalizing positional and lexical drift together. The final score
// is 2/(cost/dLen + cost/rLen): exactly 1.0 for identical sequences,
// decreasing toward 0 as cost grows. A side with no content words scores 0.
func (u *Universe) DescriptionSimilarity(ctx context.Context, description, reference []model.Token) float64 {
	dLen := nlp.ContentLength(description, u.lex)
	rLen := nlp.ContentLength(reference, u.lex)
	if dLen == 0 || rLen == 0 {
		return 0
	}

	cost := 0
	for i, dt := range description {
		if u.lex.IsFunctionalPOS(dt.POS) {
			continue
		}
		best := noAlignment
		bestAt := len(reference)
		for j, rt := range reference {
			if u.lex.IsFunctionalPOS(rt.POS) {
				continue
			}
			if strings.EqualFold(dt.Lemma, rt.Lemma) ||
				(u.eq != nil && u.eq.Equals(ctx, dt.Lemma, rt.Lemma)) {
				best = 0
				bestAt = j
				break
			}
			d := u.dist.Distance(strings.ToLower(dt.Form), strings.ToLower(rt.Form), descriptionDistanceBound)
			if d < best {
				best = d
				bestAt = j
			}
		}
		drift := i - bestAt
		if drift < 0 {
			drift = -drift
		}
		cost += (drift + 1) * (best + 1)
	}

	dScore := float64(cost) / float64(dLen)
	rScore := float64(cost) / float64(rLen)
	return 2.0 / (dScore + rScore)
}
