package ro

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/discourse/pkg/discourse/internalerr"
	"github.com/cognicore/discourse/pkg/discourse/model"
	"github.com/cognicore/discourse/pkg/discourse/nlp"
)

// Processor is the Romanian text processor: it annotates utterances
// through an external service (memoized in the annotation cache) and mines
// the annotations for structured queries.
type Processor struct {
	client   model.Annotator
	cache    *nlp.AnnotationCache
	lex      nlp.Lexicon
	say      nlp.Sayings
	eq       model.Equivalencer
	log      *zap.Logger
	concepts []*model.Concept
}

var _ nlp.Processor = (*Processor)(nil)

// NewProcessor creates a Romanian processor. client performs the actual
// annotation calls; eq may be nil; a nil logger disables logging.
func NewProcessor(client model.Annotator, lex nlp.Lexicon, say nlp.Sayings, eq model.Equivalencer, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		client: client,
		cache:  nlp.NewAnnotationCache(),
		lex:    lex,
		say:    say,
		eq:     eq,
		log:    log,
	}
}

// Cache exposes the annotation cache for persistence.
func (p *Processor) Cache() *nlp.AnnotationCache { return p.cache }

// SetConcepts hands over the universe's bound concepts, consulted during
// query classification ("ce sală" asks for a location, not a definition).
func (p *Processor) SetConcepts(concepts []*model.Concept) {
	p.concepts = concepts
}

// CorrectText normalizes ASR/keyboard input before annotation: the ASCII
// diacritics convention is expanded and surrounding space dropped.
func (p *Processor) CorrectText(text string) string {
	return strings.TrimSpace(ExpandDiacritics(text))
}

// Annotate returns the annotation of a text, from the cache when possible.
func (p *Processor) Annotate(ctx context.Context, text string) ([]model.Token, error) {
	if toks, ok := p.cache.Get(text); ok {
		return toks, nil
	}
	toks, err := p.client.Annotate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("annotate %q: %w", text, err)
	}
	p.cache.Put(text, toks)
	return toks, nil
}

// AnalyzeQuery mines an annotated utterance for its conversational
// classification, action verb and verb arguments. The token slice is not
// modified; dependency marking happens on a private copy.
func (p *Processor) AnalyzeQuery(ctx context.Context, tokens []model.Token) (*model.Query, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty utterance: %w", internalerr.ErrInvalidInput)
	}

	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Form
	}
	if p.say.IsOpening(words) {
		return &model.Query{Type: model.Hello}, nil
	}
	if p.say.IsClosing(words) {
		return &model.Query{Type: model.Goodbye}, nil
	}

	toks := append([]model.Token(nil), tokens...)

	// The root of the sentence has to be a main verb.
	verbID := 0
	q := &model.Query{}
	for i, t := range toks {
		if t.Head == 0 && strings.HasPrefix(t.POS, "Vm") {
			q.ActionVerb = strings.ToLower(t.Lemma)
			verbID = i + 1
			break
		}
	}
	if verbID == 0 {
		return nil, fmt.Errorf("no action verb in %q: %w", strings.Join(words, " "), internalerr.ErrNotFound)
	}

	// Each nominal direct dependent of the verb spans one argument: the
	// whole dependency subtree under it, in sentence order.
	for j := range toks {
		if toks[j].Head != verbID || !p.lex.IsNounPOS(toks[j].POS) {
			continue
		}
		toks[j].ActionVerbDependent = true
		phrase := make([]model.Token, 0, 4)
		for _, idx := range treeUnder(toks, j+1) {
			phrase = append(phrase, toks[idx-1])
		}
		q.Arguments = append(q.Arguments, model.Argument{
			Tokens:     phrase,
			IsVariable: p.IsQueryVariable(phrase),
		})
	}

	// Skip non-interesting words at the beginning of the utterance.
	fti := 0
	for fti < len(toks) && p.lex.IsSkippablePOS(toks[fti].POS) {
		fti++
	}
	if fti >= len(toks)-1 {
		return nil, fmt.Errorf("utterance too short after %d leading particles: %w", fti, internalerr.ErrInvalidInput)
	}
	first, second := toks[fti], toks[fti+1]

	switch {
	case p.lex.IsCommandVerb(q.ActionVerb):
		q.Type = model.Command
	case first.Lemma == "cine":
		q.Type = model.PersonQuery
	case first.Lemma == "ce":
		q.Type = p.classifyWhat(ctx, second)
	case first.Lemma == "unde":
		q.Type = model.LocationQuery
	case first.Lemma == "când":
		q.Type = model.TimeQuery
	case first.Lemma == "cum":
		q.Type = model.How
	default:
		q.Type = model.YesNo
	}
	return q, nil
}

// classifyWhat refines a "ce ..." question: "ce sală" is really a location
// question when "sală" names a LOCATION concept of the universe; plain
// "ce este X" stays a definition question.
func (p *Processor) classifyWhat(ctx context.Context, second model.Token) model.QueryType {
	if !p.lex.IsPureNounPOS(second.POS) {
		return model.What
	}
	for _, c := range p.concepts {
		if c.Type() == model.Word || !c.IsThisConcept(ctx, second.Lemma, p.eq) {
			continue
		}
		switch c.Type() {
		case model.Person:
			return model.PersonQuery
		case model.Location:
			return model.LocationQuery
		case model.Time:
			return model.TimeQuery
		}
	}
	return model.What
}

// IsQueryVariable reports whether a token span stands for the missing
// information the user asks about: a wh-word, possibly behind a
// preposition, or a lone bare noun ("ce sală", "unde", "laboratorul?").
func (p *Processor) IsQueryVariable(tokens []model.Token) bool {
	if len(tokens) == 0 {
		return false
	}
	first := 0
	if strings.HasPrefix(tokens[0].POS, "S") {
		// Drop a leading preposition ("în ce sală").
		first = 1
		if len(tokens) < 2 {
			return false
		}
	}
	pos := tokens[first].POS
	if len(pos) >= 2 && pos[1] == 'w' {
		return true
	}
	if len(tokens) == 1 && (pos[0] == 'N' || pos[0] == 'Y' || pos[0] == 'M') {
		return true
	}
	return false
}

// treeUnder collects the 1-based indexes of the dependency subtree rooted
// at root, breadth-first over an explicit worklist, returned in sentence
// order.
func treeUnder(toks []model.Token, root int) []int {
	visited := make(map[int]bool, len(toks))
	queue := []int{root}
	var result []int
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		if visited[h] {
			continue
		}
		visited[h] = true
		result = append(result, h)
		for i, t := range toks {
			if t.Head == h && !visited[i+1] {
				queue = append(queue, i+1)
			}
		}
	}
	sort.Ints(result)
	return result
}
