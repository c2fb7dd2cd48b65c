package microworld

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/discourse/pkg/discourse/distance"
	"github.com/cognicore/discourse/pkg/discourse/internalerr"
	"github.com/cognicore/discourse/pkg/discourse/model"
	"github.com/cognicore/discourse/pkg/discourse/universe"
)

const precisWorld = `# The PRECIS orientation micro-world.
CONCEPT sală, laborator, cameră -> LOCATION
CONCEPT curs -> WORD
CONCEPT profesor -> PERSON

REFERENCE sală 209 = C1
REFERENCE curs cursul de informatică = C2
TIME marți, 8:00 = T1
PERSON Adriana Vlad = P1

PREDICATE afla, găsi -> SAY_SOMETHING
PREDICATE duce -> TAKE_ME_SOMEWHERE

TRUE afla C1 C2 T1 P1
TRUE duce C1
`

func writeWorld(t *testing.T, name, content string) *Reader {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewReader(path)
}

func emptyUniverse() *universe.Universe {
	return universe.New(distance.New(0), nil, nil)
}

func TestPopulate(t *testing.T) {
	r := writeWorld(t, "precis.mw", precisWorld)
	uni := emptyUniverse()
	if err := r.Populate(context.Background(), uni, nil); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	concepts := uni.Concepts()
	if len(concepts) != 4 {
		t.Fatalf("got %d concepts, want 4", len(concepts))
	}
	// Declaration order of the reference codes: C1, C2, T1, P1.
	if got := concepts[0].Reference(); got != "209" {
		t.Errorf("first concept reference = %q, want %q", got, "209")
	}
	if got := concepts[0].CanonicalName(); got != "sală" {
		t.Errorf("first concept canonical = %q, want %q", got, "sală")
	}
	if !concepts[2].IsConstant() || concepts[2].Type() != model.Time {
		t.Errorf("third concept should be a TIME constant, got %v", concepts[2])
	}
	if got := concepts[3].Reference(); got != "Adriana Vlad" {
		t.Errorf("fourth concept reference = %q", got)
	}

	preds := uni.Predicates()
	if len(preds) != 2 {
		t.Fatalf("got %d predicates, want 2", len(preds))
	}
	if got := len(preds[0].Arguments()); got != 4 {
		t.Errorf("first fact has %d arguments, want 4", got)
	}
	if !preds[0].IsThisPredicate(context.Background(), "găsi", nil) {
		t.Error("predicate synonym găsi was not kept")
	}
	if preds[1].Intent() != model.TakeMeSomewhere {
		t.Errorf("second fact intent = %v, want TAKE_ME_SOMEWHERE", preds[1].Intent())
	}
	// Both facts reference the same bound concept instance for C1.
	if preds[0].Arguments()[0] != preds[1].Arguments()[0] {
		t.Error("facts sharing a code should share the bound concept")
	}
}

func TestName(t *testing.T) {
	r := NewReader("/var/lib/worlds/precis.mw")
	if got := r.Name(); got != "PRECIS" {
		t.Errorf("Name() = %q, want %q", got, "PRECIS")
	}
}

func TestPopulateFailFast(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown concept type",
			content: "CONCEPT sală -> BUILDING\n",
			wantErr: internalerr.ErrInvalidInput,
			wantMsg: "line 1",
		},
		{
			name:    "unknown user intent",
			content: "PREDICATE afla -> TELL_ME\n",
			wantErr: internalerr.ErrInvalidInput,
			wantMsg: "line 1",
		},
		{
			name:    "reference to undeclared concept",
			content: "REFERENCE sală 209 = C1\n",
			wantErr: internalerr.ErrNotFound,
			wantMsg: "line 1",
		},
		{
			name: "duplicate reference code",
			content: "CONCEPT sală -> LOCATION\n" +
				"REFERENCE sală 209 = C1\n" +
				"TIME marți = C1\n",
			wantErr: internalerr.ErrDuplicate,
			wantMsg: "line 3",
		},
		{
			name:    "fact with undeclared predicate",
			content: "TRUE afla C1\n",
			wantErr: internalerr.ErrNotFound,
			wantMsg: "line 1",
		},
		{
			name: "fact with undeclared code",
			content: "PREDICATE afla -> SAY_SOMETHING\n" +
				"TRUE afla C9\n",
			wantErr: internalerr.ErrNotFound,
			wantMsg: "line 2",
		},
		{
			name:    "malformed concept line",
			content: "CONCEPT sală LOCATION\n",
			wantErr: internalerr.ErrInvalidInput,
			wantMsg: "line 1",
		},
		{
			name:    "constant without code",
			content: "TIME marți, 8:00\n",
			wantErr: internalerr.ErrInvalidInput,
			wantMsg: "line 1",
		},
		{
			name:    "unrecognized statement",
			content: "FACT afla C1\n",
			wantErr: internalerr.ErrInvalidInput,
			wantMsg: "line 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := writeWorld(t, "bad.mw", tt.content)
			err := r.Populate(context.Background(), emptyUniverse(), nil)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Populate error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q lacks %q", err, tt.wantMsg)
			}
		})
	}
}

func TestPopulateSkipsCommentsAndBlanks(t *testing.T) {
	content := "# header comment\n\nCONCEPT sală -> LOCATION\n\n# trailing comment\n"
	r := writeWorld(t, "sparse.mw", content)
	if err := r.Populate(context.Background(), emptyUniverse(), nil); err != nil {
		t.Fatalf("Populate: %v", err)
	}
}

func TestPopulateMissingFile(t *testing.T) {
	r := NewReader(filepath.Join(t.TempDir(), "absent.mw"))
	if err := r.Populate(context.Background(), emptyUniverse(), nil); err == nil {
		t.Error("Populate of a missing file should fail")
	}
}
