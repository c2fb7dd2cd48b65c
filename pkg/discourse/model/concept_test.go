package model

import (
	"context"
	"testing"
)

func TestNewConceptNormalizesCanonicalForm(t *testing.T) {
	c := NewConcept(Person, "Def", "abc")
	if got := c.CanonicalName(); got != "def" {
		t.Errorf("CanonicalName() = %q, want %q", got, "def")
	}

	blank := NewConcept(Word, "   ", "abc")
	if got := blank.CanonicalName(); got != "" {
		t.Errorf("blank canonical form should stay unset, got %q", got)
	}
}

func TestBuildConceptLowercasesSynonyms(t *testing.T) {
	c, err := BuildConcept(Word, "abc", []string{"a", "B", "c"}, "def")
	if err != nil {
		t.Fatalf("BuildConcept: %v", err)
	}
	want := []string{"a", "b", "c"}
	got := c.Synonyms()
	if len(got) != len(want) {
		t.Fatalf("Synonyms() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Synonyms()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAddSynonymRejectsBlank(t *testing.T) {
	c := NewConcept(Word, "abc", "")
	if err := c.AddSynonym("  "); err == nil {
		t.Error("AddSynonym(blank) should fail")
	}
}

func TestIsThisConcept(t *testing.T) {
	c, err := BuildConcept(Location, "sală", []string{"laborator"}, "209")
	if err != nil {
		t.Fatalf("BuildConcept: %v", err)
	}
	ctx := context.Background()

	if !c.IsThisConcept(ctx, "Sală", nil) {
		t.Error("canonical form should match case-insensitively")
	}
	if !c.IsThisConcept(ctx, "laborator", nil) {
		t.Error("synonym should match")
	}
	if c.IsThisConcept(ctx, "curs", nil) {
		t.Error("unrelated word should not match")
	}

	noCanon := NewConcept(Location, "", "209")
	if noCanon.IsThisConcept(ctx, "sală", nil) {
		t.Error("concept without canonical form should never match")
	}
}

func TestConceptDeepCopyIsIndependent(t *testing.T) {
	orig, err := BuildConcept(Word, "abc", []string{"x"}, "def")
	if err != nil {
		t.Fatalf("BuildConcept: %v", err)
	}
	dup := orig.DeepCopy()

	if !orig.Equal(dup) {
		t.Error("deep copy should be equal to the original")
	}
	if err := dup.AddSynonym("y"); err != nil {
		t.Fatalf("AddSynonym: %v", err)
	}
	if len(orig.Synonyms()) != 1 {
		t.Errorf("mutating the copy changed the original: %v", orig.Synonyms())
	}
}

func TestConceptEqual(t *testing.T) {
	a := NewConcept(Person, "", "abc")
	b := NewConcept(Person, "", "ABC")
	if !a.Equal(b) {
		t.Error("references should compare case-insensitively")
	}

	c := NewConcept(Word, "abc", "")
	d := NewConcept(Person, "abc", "")
	if c.Equal(d) {
		t.Error("different types should not be equal")
	}

	e := NewConcept(Word, "abc", "")
	f := NewConcept(Word, "abc", "")
	if !e.Equal(f) {
		t.Error("both references absent should be equal")
	}
}

func TestConstantRequiresReference(t *testing.T) {
	if _, err := NewConstant(Person, "  "); err == nil {
		t.Error("NewConstant with blank reference should fail")
	}
	if _, err := NewConstant(Person, ""); err == nil {
		t.Error("NewConstant with empty reference should fail")
	}
}

func TestConstantAddSynonymIsNoOp(t *testing.T) {
	c, err := NewConstant(Word, "ref")
	if err != nil {
		t.Fatalf("NewConstant: %v", err)
	}
	if err := c.AddSynonym(""); err != nil {
		t.Errorf("constant AddSynonym should never fail, got %v", err)
	}
	if err := c.AddSynonym("something"); err != nil {
		t.Errorf("constant AddSynonym should never fail, got %v", err)
	}
	if len(c.Synonyms()) != 0 {
		t.Errorf("constant should have no synonyms, got %v", c.Synonyms())
	}
}

func TestConstantEqualIsRelaxed(t *testing.T) {
	c, err := NewConstant(Word, "ref")
	if err != nil {
		t.Fatalf("NewConstant: %v", err)
	}

	dup := c.DeepCopy()
	if !c.Equal(dup) {
		t.Error("deep-copied constant should be equal")
	}
	if c == dup {
		t.Error("deep copy should not share storage")
	}

	otherType, _ := NewConstant(Person, "ref")
	if c.Equal(otherType) {
		t.Error("constants with different types should not be equal")
	}

	upper, _ := NewConstant(Word, "REF")
	if !c.Equal(upper) {
		t.Error("constant references should compare case-insensitively")
	}

	// Relaxed against a regular concept bound to the same value.
	bound := NewConcept(Word, "oră", "ref")
	if !c.Equal(bound) {
		t.Error("constant should equal a concept bound to the same reference")
	}
}

type fixedAnnotator struct {
	tokens []Token
	calls  int
}

func (f *fixedAnnotator) Annotate(ctx context.Context, text string) ([]Token, error) {
	f.calls++
	return f.tokens, nil
}

func TestSetReferenceSkipsRedundantAnnotation(t *testing.T) {
	an := &fixedAnnotator{tokens: []Token{{Form: "209", Lemma: "209", POS: "Mc"}}}
	c := NewConcept(Location, "sală", "")
	ctx := context.Background()

	if err := c.SetReference(ctx, "209", an); err != nil {
		t.Fatalf("SetReference: %v", err)
	}
	if err := c.SetReference(ctx, "209", an); err != nil {
		t.Fatalf("SetReference: %v", err)
	}
	if an.calls != 1 {
		t.Errorf("annotator called %d times, want 1", an.calls)
	}
	if len(c.TokenizedReference()) != 1 {
		t.Errorf("TokenizedReference() = %v, want one token", c.TokenizedReference())
	}
}
