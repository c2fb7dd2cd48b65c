package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cognicore/discourse/pkg/discourse/model"
	"github.com/cognicore/discourse/pkg/discourse/nlp"
	"github.com/cognicore/discourse/pkg/discourse/wordnet"
)

func openTestStore(t *testing.T) (*sqliteStore, context.Context) {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "caches.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.(*sqliteStore), ctx
}

func TestEmptyDatabaseLoadsEmpty(t *testing.T) {
	s, ctx := openTestStore(t)

	ann, err := s.LoadAnnotations(ctx)
	if err != nil {
		t.Fatalf("LoadAnnotations: %v", err)
	}
	if len(ann) != 0 {
		t.Errorf("fresh database returned %d annotation entries", len(ann))
	}

	eq, err := s.LoadEquivalences(ctx)
	if err != nil {
		t.Fatalf("LoadEquivalences: %v", err)
	}
	if len(eq) != 0 {
		t.Errorf("fresh database returned %d equivalence entries", len(eq))
	}
}

func TestAnnotationRoundTrip(t *testing.T) {
	s, ctx := openTestStore(t)

	in := []nlp.Entry{
		{
			Text: "cursul de informatică",
			Tokens: []model.Token{
				{Form: "cursul", Lemma: "curs", POS: "Ncmsry", DepRel: "root", Head: 0, ActionVerbDependent: true},
				{Form: "de", Lemma: "de", POS: "Spsa", DepRel: "case", Head: 3},
				{Form: "informatică", Lemma: "informatică", POS: "Ncfsrn", DepRel: "nmod", Head: 1},
			},
		},
		{Text: "sala 209", Tokens: []model.Token{{Form: "sala", Lemma: "sală", POS: "Ncfsry", DepRel: "root", Head: 0}}},
	}
	if err := s.SaveAnnotations(ctx, in); err != nil {
		t.Fatalf("SaveAnnotations: %v", err)
	}

	out, err := s.LoadAnnotations(ctx)
	if err != nil {
		t.Fatalf("LoadAnnotations: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestEquivalenceRoundTripSorted(t *testing.T) {
	s, ctx := openTestStore(t)

	in := []wordnet.Entry{
		{W1: "sală", W2: "laborator", Equal: true},
		{W1: "laborator", W2: "sală", Equal: true},
		{W1: "curs", W2: "sală", Equal: false},
	}
	if err := s.SaveEquivalences(ctx, in); err != nil {
		t.Fatalf("SaveEquivalences: %v", err)
	}

	out, err := s.LoadEquivalences(ctx)
	if err != nil {
		t.Fatalf("LoadEquivalences: %v", err)
	}
	want := []wordnet.Entry{
		{W1: "curs", W2: "sală", Equal: false},
		{W1: "laborator", W2: "sală", Equal: true},
		{W1: "sală", W2: "laborator", Equal: true},
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("load order mismatch:\n got %+v\nwant %+v", out, want)
	}
}

func TestSaveReplacesPreviousContents(t *testing.T) {
	s, ctx := openTestStore(t)

	if err := s.SaveAnnotations(ctx, []nlp.Entry{{Text: "first", Tokens: []model.Token{}}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveAnnotations(ctx, []nlp.Entry{{Text: "second", Tokens: []model.Token{}}}); err != nil {
		t.Fatal(err)
	}

	out, err := s.LoadAnnotations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Text != "second" {
		t.Errorf("second save did not replace the first: %+v", out)
	}
}
