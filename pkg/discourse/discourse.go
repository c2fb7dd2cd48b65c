// Package discourse is the dialogue engine facade: it loads a micro-world
// fact base, runs the turn-based conversation loop over it and manages the
// resource caches bracketing the conversation's lifetime.
package discourse

import (
	"context"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/cognicore/discourse/internal/relate"
	"github.com/cognicore/discourse/pkg/discourse/config"
	"github.com/cognicore/discourse/pkg/discourse/distance"
	"github.com/cognicore/discourse/pkg/discourse/microworld"
	"github.com/cognicore/discourse/pkg/discourse/model"
	"github.com/cognicore/discourse/pkg/discourse/nlp"
	"github.com/cognicore/discourse/pkg/discourse/nlp/ro"
	"github.com/cognicore/discourse/pkg/discourse/store"
	"github.com/cognicore/discourse/pkg/discourse/store/flatfile"
	"github.com/cognicore/discourse/pkg/discourse/store/sqlite"
	"github.com/cognicore/discourse/pkg/discourse/universe"
	"github.com/cognicore/discourse/pkg/discourse/wordnet"
)

// Options configures a Manager instance. Processor, Lexicon and Sayings
// are required; the rest defaults sensibly.
type Options struct {
	Processor nlp.Processor
	Lexicon   nlp.Lexicon
	Sayings   nlp.Sayings

	// WordNet backs the equivalence oracle when Equivalence is nil.
	WordNet     wordnet.WordNet
	Equivalence *wordnet.Equivalence

	// Distance defaults to an engine with the default cache size.
	Distance *distance.Engine

	// Cache enables cache persistence; nil disables it.
	Cache store.CacheStore

	Logger *zap.Logger
}

// Manager is the main entry point of the dialogue engine: one instance per
// conversation, turn-based and single-threaded. Each DoConversation call
// completes fully, including any blocking calls to the external services,
// before the next one is accepted.
type Manager struct {
	proc  nlp.Processor
	lex   nlp.Lexicon
	say   nlp.Sayings
	eq    *wordnet.Equivalence
	dist  *distance.Engine
	cache store.CacheStore
	log   *zap.Logger

	uni    *universe.Universe
	mwName string
	state  *DialogueState
}

// New creates a Manager with the given dependencies.
func New(opts Options) *Manager {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	eq := opts.Equivalence
	if eq == nil {
		eq = wordnet.NewEquivalence(opts.WordNet, log)
	}
	dist := opts.Distance
	if dist == nil {
		dist = distance.New(0)
	}
	return &Manager{
		proc:  opts.Processor,
		lex:   opts.Lexicon,
		say:   opts.Sayings,
		eq:    eq,
		dist:  dist,
		cache: opts.Cache,
		log:   log,
	}
}

// NewFromConfig assembles a Romanian assistant from configuration: RELATE
// service clients, the Romanian language resources and the configured
// cache backend.
func NewFromConfig(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	wn := &relate.WordNet{BaseURL: cfg.WordNet.URL}
	eq := wordnet.NewEquivalence(wn, log)
	lex := ro.NewLexicon(cfg.Lexicon.ExtraFunctionalWords)
	say := ro.NewSayings(cfg.Sayings.ExtraOpenings, cfg.Sayings.ExtraClosings)
	proc := ro.NewProcessor(&relate.Annotator{BaseURL: cfg.Annotation.URL}, lex, say, eq, log)

	var (
		cache store.CacheStore
		err   error
	)
	switch cfg.Cache.Backend {
	case config.BackendFlatfile:
		cache = flatfile.New(cfg.Cache.AnnotationsPath, cfg.Cache.EquivalencesPath)
	case config.BackendSQLite:
		cache, err = sqlite.Open(ctx, cfg.Cache.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open cache database: %w", err)
		}
	}

	return New(Options{
		Processor:   proc,
		Lexicon:     lex,
		Sayings:     say,
		WordNet:     wn,
		Equivalence: eq,
		Distance:    distance.New(cfg.DistanceCacheSize),
		Cache:       cache,
		Logger:      log,
	}), nil
}

// Close releases the cache store, if any. Pending cache contents are not
// flushed; call FlushCaches first.
func (m *Manager) Close() error {
	if m.cache == nil {
		return nil
	}
	return m.cache.Close()
}

// Behaviour is what the dialogue engine produces for the actuating system
// once a turn fully resolves: the classified user intent plus a payload.
// The payload is always a concept reference from the micro-world and only
// means something to the client that authored the fact base (e.g. "sala
// 209" having a coordinate on the robot's internal map).
type Behaviour struct {
	Intent  model.UserIntent
	Payload string
}

func (b *Behaviour) String() string {
	return "User wants: " + b.Intent.String() + "\nExtra info: " + b.Payload + "\n"
}

// DialogueState is the outcome of one conversation turn.
type DialogueState struct {
	// TurnID identifies this turn in logs and transcripts.
	TurnID string

	// Reply is the robot's response; each line goes to the TTS module
	// separately.
	Reply []string

	// QueryType is the classification of the user's utterance.
	QueryType model.QueryType

	// Predicate is the fact matched closest to the user's input, kept
	// pending for context recovery on the next turn.
	Predicate *model.Predicate

	// Behaviour is set once the turn fully resolved the user's request.
	Behaviour *Behaviour
}

// Done reports whether this turn produced an actionable behaviour.
func (s *DialogueState) Done() bool { return s.Behaviour != nil }

// LoadMicroworld builds the universe of discourse from a .mw file and
// hands its concepts to the query analyzer.
func (m *Manager) LoadMicroworld(ctx context.Context, path string) error {
	reader := microworld.NewReader(path)
	uni := m.NewUniverse()
	if err := reader.Populate(ctx, uni, m.proc); err != nil {
		return err
	}
	m.SetUniverse(reader.Name(), uni)
	return nil
}

// NewUniverse creates an empty universe sharing this manager's distance
// engine, equivalence oracle and lexicon, for programmatic fact-base
// assembly. Install it with SetUniverse once populated.
func (m *Manager) NewUniverse() *universe.Universe {
	return universe.New(m.dist, m.eq, m.lex)
}

// SetUniverse installs a universe of discourse under the given name. Any
// pending dialogue state is dropped.
func (m *Manager) SetUniverse(name string, uni *universe.Universe) {
	m.uni = uni
	m.mwName = name
	m.state = nil
	m.proc.SetConcepts(uni.Concepts())
}

// MicroworldName returns the name of the loaded micro-world.
func (m *Manager) MicroworldName() string { return m.mwName }

// ConceptsAsString renders the universe's bound concepts, one per line.
func (m *Manager) ConceptsAsString() string {
	if m.uni == nil {
		return ""
	}
	lines := make([]string, 0, len(m.uni.Concepts()))
	for _, c := range m.uni.Concepts() {
		lines = append(lines, c.String())
	}
	return strings.Join(lines, "\n")
}

// PredicatesAsString renders the universe's true predicates, one per line.
func (m *Manager) PredicatesAsString() string {
	if m.uni == nil {
		return ""
	}
	lines := make([]string, 0, len(m.uni.Predicates()))
	for _, p := range m.uni.Predicates() {
		lines = append(lines, p.String())
	}
	return strings.Join(lines, "\n")
}

// DoConversation processes one textual user input and returns the new
// dialogue state. Matching never hard-fails: analysis errors and missing
// facts all land on a graceful conversational fallback.
func (m *Manager) DoConversation(ctx context.Context, userInput string) *DialogueState {
	text := m.proc.CorrectText(userInput)

	tokens, err := m.proc.Annotate(ctx, text)
	var q *model.Query
	if err == nil {
		q, err = m.proc.AnalyzeQuery(ctx, tokens)
	}
	if err != nil {
		m.log.Warn("query analysis failed",
			zap.String("input", userInput),
			zap.Error(err))
		m.state = m.says(model.Unknown, m.say.DontKnowLines())
		return m.state
	}

	switch q.Type {
	case model.Hello:
		m.state = m.says(q.Type, m.say.OpeningLines())
		return m.state
	case model.Goodbye:
		m.state = m.says(q.Type, m.say.ClosingLines())
		return m.state
	}

	if m.uni == nil {
		m.log.Warn("conversation started without a loaded micro-world")
		m.state = m.says(q.Type, m.say.DontKnowLines())
		return m.state
	}

	pm := m.uni.ResolveQuery(ctx, q)
	if pm == nil {
		// The fact base knows nothing about this action verb.
		m.state = m.says(q.Type, m.say.DontKnowLines())
		return m.state
	}

	if pm.Valid && pm.SaidArgument >= 0 {
		m.state = m.informed(q.Type, pm)
		return m.state
	}

	if pending := m.pendingPredicate(); pending != nil {
		// The query was too thin on its own; retry against the predicate
		// matched on a previous turn.
		if cm := m.uni.ResolveQueryInContext(ctx, q, pending); cm != nil {
			m.state = m.informed(q.Type, cm)
			return m.state
		}
		m.state = m.says(q.Type, m.say.DontKnowLines())
		return m.state
	}

	// A predicate matched by verb but no argument resolved and there is no
	// context to fall back on: ask for a rephrase and keep the predicate
	// pending so the next turn can build on it.
	m.state = m.says(q.Type, m.say.DidntUnderstandLines())
	m.state.Predicate = pm.Predicate
	return m.state
}

// FlushCaches persists the annotation and equivalence caches wholesale.
// A no-op without a configured cache store.
func (m *Manager) FlushCaches(ctx context.Context) error {
	if m.cache == nil {
		return nil
	}
	if cp, ok := m.proc.(interface{ Cache() *nlp.AnnotationCache }); ok {
		if err := m.cache.SaveAnnotations(ctx, cp.Cache().Entries()); err != nil {
			return fmt.Errorf("flush annotation cache: %w", err)
		}
	}
	if err := m.cache.SaveEquivalences(ctx, m.eq.Entries()); err != nil {
		return fmt.Errorf("flush equivalence cache: %w", err)
	}
	return nil
}

// LoadCaches primes the annotation and equivalence caches from the cache
// store. A no-op without one.
func (m *Manager) LoadCaches(ctx context.Context) error {
	if m.cache == nil {
		return nil
	}
	if cp, ok := m.proc.(interface{ Cache() *nlp.AnnotationCache }); ok {
		entries, err := m.cache.LoadAnnotations(ctx)
		if err != nil {
			return fmt.Errorf("load annotation cache: %w", err)
		}
		cp.Cache().Prime(entries)
	}
	entries, err := m.cache.LoadEquivalences(ctx)
	if err != nil {
		return fmt.Errorf("load equivalence cache: %w", err)
	}
	m.eq.Prime(entries)
	return nil
}

func (m *Manager) pendingPredicate() *model.Predicate {
	if m.state == nil {
		return nil
	}
	return m.state.Predicate
}

// says builds the state for a fixed reply; any pending predicate is
// dropped.
func (m *Manager) says(qt model.QueryType, lines []string) *DialogueState {
	return &DialogueState{
		TurnID:    ulid.Make().String(),
		QueryType: qt,
		Reply:     append([]string(nil), lines...),
	}
}

// informed builds the state for a resolved query: the reply is the matched
// argument's reference and the behaviour is ready for the actuating
// system.
func (m *Manager) informed(qt model.QueryType, pm *model.Match) *DialogueState {
	ref := pm.Predicate.Arguments()[pm.SaidArgument].Reference()
	return &DialogueState{
		TurnID:    ulid.Make().String(),
		QueryType: qt,
		Reply:     []string{ref},
		Predicate: pm.Predicate,
		Behaviour: &Behaviour{Intent: pm.Predicate.Intent(), Payload: ref},
	}
}
