package universe

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/cognicore/discourse/pkg/discourse/distance"
	"github.com/cognicore/discourse/pkg/discourse/model"
)

// testLexicon mimics the Romanian MSD conventions closely enough for
// scoring: content words are nouns, main verbs, numerals, adjectives,
// residuals and wh-adverbs.
type testLexicon struct{}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func (testLexicon) IsCommandVerb(lemma string) bool { return lemma == "duce" }
func (testLexicon) IsFunctionalPOS(pos string) bool {
	return !hasAnyPrefix(pos, "N", "Vm", "M", "Y", "Af", "Rg", "Rw", "P")
}
func (testLexicon) IsFunctionalWord(word string) bool { return word == "de" }
func (testLexicon) IsNounPOS(pos string) bool {
	return hasAnyPrefix(pos, "N", "M", "Rw", "Y", "P")
}
func (testLexicon) IsPureNounPOS(pos string) bool  { return hasAnyPrefix(pos, "N", "Y") }
func (testLexicon) IsSkippablePOS(pos string) bool { return hasAnyPrefix(pos, "Sp", "C", "I") }

type mapEquivalencer map[[2]string]bool

func (m mapEquivalencer) Equals(ctx context.Context, w1, w2 string) bool {
	return m[[2]string{w1, w2}] || m[[2]string{w2, w1}]
}

type fixedAnnotator struct{ tokens []model.Token }

func (f fixedAnnotator) Annotate(ctx context.Context, text string) ([]model.Token, error) {
	return f.tokens, nil
}

func tok(form, lemma, pos string) model.Token {
	return model.Token{Form: form, Lemma: lemma, POS: pos, ActionVerbDependent: true}
}

func courseTokens() []model.Token {
	return []model.Token{
		tok("cursul", "curs", "Ncmsry"),
		tok("de", "de", "Spsa"),
		tok("informatică", "informatică", "Ncfsrn"),
	}
}

func newTestUniverse(eq model.Equivalencer) *Universe {
	return New(distance.New(0), eq, testLexicon{})
}

func TestDescriptionSimilarityIdentity(t *testing.T) {
	u := newTestUniverse(nil)
	toks := courseTokens()
	got := u.DescriptionSimilarity(context.Background(), toks, toks)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("DescriptionSimilarity(x, x) = %v, want 1.0", got)
	}
}

func TestDescriptionSimilarityDegrades(t *testing.T) {
	u := newTestUniverse(nil)
	ref := courseTokens()
	desc := []model.Token{
		tok("cursul", "curs", "Ncmsry"),
		tok("de", "de", "Spsa"),
		tok("matematică", "matematică", "Ncfsrn"),
	}
	got := u.DescriptionSimilarity(context.Background(), desc, ref)
	if got <= 0 || got >= 1.0 {
		t.Errorf("similarity of a near-miss = %v, want strictly between 0 and 1", got)
	}
}

func TestDescriptionSimilarityUsesEquivalence(t *testing.T) {
	eq := mapEquivalencer{{"matematică", "informatică"}: true}
	withEq := newTestUniverse(eq)
	without := newTestUniverse(nil)

	ref := courseTokens()
	desc := []model.Token{
		tok("cursul", "curs", "Ncmsry"),
		tok("de", "de", "Spsa"),
		tok("matematică", "matematică", "Ncfsrn"),
	}
	ctx := context.Background()
	if got, plain := withEq.DescriptionSimilarity(ctx, desc, ref), without.DescriptionSimilarity(ctx, desc, ref); got <= plain {
		t.Errorf("equivalence-aware similarity %v should exceed plain %v", got, plain)
	}
}

func TestDescriptionSimilarityAllFunctionalSide(t *testing.T) {
	u := newTestUniverse(nil)
	functional := []model.Token{tok("de", "de", "Spsa"), tok("la", "la", "Spsa")}
	if got := u.DescriptionSimilarity(context.Background(), functional, courseTokens()); got != 0 {
		t.Errorf("all-functional description scored %v, want 0", got)
	}
	if got := u.DescriptionSimilarity(context.Background(), courseTokens(), functional); got != 0 {
		t.Errorf("all-functional reference scored %v, want 0", got)
	}
}

// roomUniverse builds the familiar orientation micro-world: afla(sala=209,
// cursul de informatică).
func roomUniverse(t *testing.T, extraArgs ...*model.Concept) *Universe {
	t.Helper()
	u := newTestUniverse(nil)

	room, err := model.BuildConcept(model.Location, "sală", []string{"laborator"}, "")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := room.SetReference(ctx, "209", fixedAnnotator{[]model.Token{tok("209", "209", "Mc")}}); err != nil {
		t.Fatal(err)
	}

	course, err := model.BuildConcept(model.Word, "curs", nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := course.SetReference(ctx, "cursul de informatică", fixedAnnotator{courseTokens()}); err != nil {
		t.Fatal(err)
	}

	args := append([]*model.Concept{room, course}, extraArgs...)
	pred, err := model.BuildPredicate(model.SaySomething, "afla", []string{"găsi"}, args)
	if err != nil {
		t.Fatal(err)
	}
	u.AddConcept(room)
	u.AddConcept(course)
	u.AddPredicate(pred)
	return u
}

func whereQuery() *model.Query {
	return &model.Query{
		Type:       model.LocationQuery,
		ActionVerb: "afla",
		Arguments: []model.Argument{
			{Tokens: []model.Token{tok("unde", "unde", "Rw")}, IsVariable: true},
			{Tokens: courseTokens()},
		},
	}
}

func TestResolveQueryDirectAnswer(t *testing.T) {
	u := roomUniverse(t)
	m := u.ResolveQuery(context.Background(), whereQuery())
	if m == nil {
		t.Fatal("ResolveQuery returned nil")
	}
	if m.SaidArgument != 0 {
		t.Errorf("SaidArgument = %d, want 0", m.SaidArgument)
	}
	if !m.Valid {
		t.Errorf("match with score %v should be valid", m.Score)
	}
	if m.Score <= 2.0 {
		t.Errorf("Score = %v, want > 2.0", m.Score)
	}
	if got := m.Predicate.Arguments()[m.SaidArgument].Reference(); got != "209" {
		t.Errorf("answered reference = %q, want %q", got, "209")
	}
}

func TestScoreExactlyTwoIsInvalid(t *testing.T) {
	u := roomUniverse(t)
	// Only the variable slot, no described argument: verb credit plus one
	// slot-type match lands exactly on the threshold.
	q := &model.Query{
		Type:       model.LocationQuery,
		ActionVerb: "afla",
		Arguments: []model.Argument{
			{Tokens: []model.Token{tok("unde", "unde", "Rw")}, IsVariable: true},
		},
	}
	m := u.ResolveQuery(context.Background(), q)
	if m == nil {
		t.Fatal("ResolveQuery returned nil")
	}
	if math.Abs(m.Score-2.0) > 1e-9 {
		t.Errorf("Score = %v, want exactly 2.0", m.Score)
	}
	if m.Valid {
		t.Error("score of exactly 2.0 must not validate")
	}
	if m.SaidArgument != 0 {
		t.Errorf("SaidArgument = %d, want 0", m.SaidArgument)
	}
}

func TestResolveQueryUnknownVerb(t *testing.T) {
	u := roomUniverse(t)
	q := whereQuery()
	q.ActionVerb = "costa"
	if m := u.ResolveQuery(context.Background(), q); m != nil {
		t.Errorf("unknown verb should yield nil, got %+v", m)
	}
}

func TestResolveQueryVerbSynonym(t *testing.T) {
	u := roomUniverse(t)
	q := whereQuery()
	q.ActionVerb = "găsi"
	if m := u.ResolveQuery(context.Background(), q); m == nil || !m.Valid {
		t.Error("verb synonym should still resolve the query")
	}
}

func TestResolveQueryKeepsFirstSeenMaximum(t *testing.T) {
	u := roomUniverse(t)
	// A second identical predicate scores the same; the first must win.
	first := u.Predicates()[0]
	twin, err := model.BuildPredicate(model.SaySomething, "afla", nil, first.Arguments())
	if err != nil {
		t.Fatal(err)
	}
	u.AddPredicate(twin)

	m := u.ResolveQuery(context.Background(), whereQuery())
	if m == nil {
		t.Fatal("ResolveQuery returned nil")
	}
	if m.Predicate != first {
		t.Error("tie should keep the first-seen maximum")
	}
}

func TestResolveQueryInContext(t *testing.T) {
	when, err := model.NewConstant(model.Time, "marți, 8:00")
	if err != nil {
		t.Fatal(err)
	}
	u := roomUniverse(t, when)
	pred := u.Predicates()[0]
	ctx := context.Background()

	// "și când?": same verb, a bare time variable.
	q := &model.Query{
		Type:       model.TimeQuery,
		ActionVerb: "afla",
		Arguments: []model.Argument{
			{Tokens: []model.Token{tok("când", "când", "Rw")}, IsVariable: true},
		},
	}
	m := u.ResolveQueryInContext(ctx, q, pred)
	if m == nil {
		t.Fatal("ResolveQueryInContext returned nil")
	}
	if !m.Valid {
		t.Error("context match with a bound slot should be valid")
	}
	if m.SaidArgument != 2 {
		t.Errorf("SaidArgument = %d, want 2", m.SaidArgument)
	}
	if got := pred.Arguments()[m.SaidArgument].Reference(); got != "marți, 8:00" {
		t.Errorf("answered reference = %q", got)
	}

	// Wrong verb: context does not apply.
	q.ActionVerb = "costa"
	if m := u.ResolveQueryInContext(ctx, q, pred); m != nil {
		t.Error("context resolution should require a matching verb")
	}

	// No variable slot of a fitting type.
	q.ActionVerb = "afla"
	q.Type = model.PersonQuery
	if m := u.ResolveQueryInContext(ctx, q, pred); m != nil {
		t.Error("context resolution without a fitting slot should fail")
	}
}
