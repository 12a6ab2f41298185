package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/cognivore/imposterzero/internal/game/abilities"
	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/rules"
	"github.com/cognivore/imposterzero/internal/game/state"
	"go.uber.org/zap"
)

// Config holds the tunable rules of a match.
type Config struct {
	HandSize int
	Scoring  rules.ScoringConfig
}

// DefaultConfig deals nine cards and scores with rules.DefaultScoring.
func DefaultConfig() Config {
	return Config{HandSize: 9, Scoring: rules.DefaultScoring()}
}

// Validate checks the config against the deck of v.
func (c Config) Validate(v cards.Variant) error {
	if c.HandSize < 1 {
		return fmt.Errorf("hand size must be positive, got %d", c.HandSize)
	}
	if need := 2*c.HandSize + 1; need > v.DeckSize() {
		return fmt.Errorf("hand size %d needs %d cards, variant %s has %d", c.HandSize, need, v.Name, v.DeckSize())
	}
	return c.Scoring.Validate()
}

// Options configure a new Engine.
type Options struct {
	Registry *abilities.Registry
	Variant  cards.Variant
	Config   Config
	Seed     uint64
	Logger   *zap.Logger
}

// Engine owns the authoritative state of one match. It is not safe for
// concurrent use; Manager serialises access.
type Engine struct {
	registry *abilities.Registry
	variant  cards.Variant
	config   Config
	seed     uint64
	rng      *rand.Rand
	logger   *zap.Logger

	state   *state.GameState
	events  []Event
	actions []Record
}

// Record is one applied action, enough to replay the match.
type Record struct {
	Actor  int
	Action Action
}

// NewEngine creates a match in SignatureSelection.
func NewEngine(names [2]string, opts Options) (*Engine, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("engine needs a registry")
	}
	if opts.Variant.Name == "" {
		opts.Variant = cards.Standard()
	}
	if opts.Config.HandSize == 0 {
		opts.Config = DefaultConfig()
	}
	if err := opts.Config.Validate(opts.Variant); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := opts.Registry.Validate(opts.Variant); err != nil {
		return nil, err
	}
	if len(opts.Variant.SignaturePool) < SignatureCount {
		return nil, fmt.Errorf("variant %s pool has %d names, need %d", opts.Variant.Name, len(opts.Variant.SignaturePool), SignatureCount)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		registry: opts.Registry,
		variant:  opts.Variant,
		config:   opts.Config,
		seed:     opts.Seed,
		rng:      rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		logger:   logger,
		state:    state.New(names),
	}
	e.state.Deck = opts.Variant.DeckCards()
	e.state.Current = state.NoIndex
	e.state.TrueKing = e.rng.IntN(2)
	e.appendMessages([]string{fmt.Sprintf("%s and %s sit down to play", names[0], names[1])})
	e.appendSnapshot()
	return e, nil
}

// Seq is the number of events in the log.
func (e *Engine) Seq() int { return len(e.events) }

// State returns a deep copy of the authoritative state.
func (e *Engine) State() *state.GameState { return e.state.Clone() }

// Variant returns the card variant of the match.
func (e *Engine) Variant() cards.Variant { return e.variant }

// Registry returns the shared ability registry.
func (e *Engine) Registry() *abilities.Registry { return e.registry }

// Seed returns the seed the match was created with.
func (e *Engine) Seed() uint64 { return e.seed }

// Records returns the applied actions in order.
func (e *Engine) Records() []Record { return append([]Record(nil), e.actions...) }

// LegalActions enumerates the actions viewer may submit right now.
func (e *Engine) LegalActions(viewer int) []Action {
	if viewer < 0 || viewer > 1 {
		return nil
	}
	return legalActions(e.registry, e.variant, e.state, viewer)
}

// Apply validates and applies one action for actor. On any error the state
// and the log are left exactly as they were.
func (e *Engine) Apply(actor, expectedSeq int, a Action) error {
	if expectedSeq != len(e.events) {
		return &SequenceMismatchError{Expected: expectedSeq, Actual: len(e.events)}
	}
	if actor < 0 || actor > 1 {
		return invalidf("actor %d out of range", actor)
	}
	if a == nil {
		return invalidf("nil action")
	}
	if err := validate(e.registry, e.variant, e.state, actor, a); err != nil {
		return err
	}
	legal := legalActions(e.registry, e.variant, e.state, actor)
	if !containsAction(legal, a) {
		return illegal(a, e.illegalReason(actor, a))
	}

	next := e.state.Clone()
	t := &transition{
		registry: e.registry,
		variant:  e.variant,
		config:   e.config,
		rng:      e.rng,
		st:       next,
	}
	if err := t.apply(actor, a); err != nil {
		return e.violation(actor, a, err)
	}
	if err := next.CheckInvariants(e.variant); err != nil {
		return e.violation(actor, a, err)
	}
	if err := checkTransition(e.state, next, e.config.Scoring); err != nil {
		return e.violation(actor, a, err)
	}

	e.state = next
	e.actions = append(e.actions, Record{Actor: actor, Action: a})
	for _, ev := range t.out {
		ev.Seq = len(e.events)
		e.events = append(e.events, ev)
	}
	e.appendSnapshot()
	e.logger.Debug("action applied",
		zap.Int("actor", actor),
		zap.Stringer("action", a),
		zap.Stringer("phase", e.state.Phase),
		zap.Stringer("step", e.state.Step),
		zap.Int("seq", len(e.events)),
	)
	return nil
}

func (e *Engine) violation(actor int, a Action, err error) error {
	var iv *InvariantViolation
	if !errors.As(err, &iv) {
		iv = &InvariantViolation{Err: err}
	}
	e.logger.DPanic("invariant violation, state discarded",
		zap.Int("actor", actor),
		zap.Stringer("action", a),
		zap.Error(iv),
	)
	return iv
}

func (e *Engine) illegalReason(actor int, a Action) string {
	st := e.state
	if r, ok := a.(React); ok && st.Step == state.StepReaction {
		if cand, ok := st.Pending.Current(); ok && cand.Card == r.Card && st.Pending.Responder() == actor {
			return fmt.Sprintf("%s is not in hand", r.Card)
		}
	}
	if f, ok := a.(FlipKing); ok {
		p := st.Player(actor)
		switch {
		case p.KingFlipped:
			return fmt.Sprintf("%s: king already flipped this round", f)
		case p.Successor == nil:
			return fmt.Sprintf("%s: no successor", f)
		}
	}
	return fmt.Sprintf("not legal in %s/%s", st.Phase, st.Step)
}

func (e *Engine) appendMessages(msgs []string) {
	for _, m := range msgs {
		e.events = append(e.events, Event{Seq: len(e.events), Kind: EventMessage, Text: m})
	}
}

func (e *Engine) appendSnapshot() {
	e.events = append(e.events, Event{Seq: len(e.events), Kind: EventNewState, snapshot: e.state.Clone()})
}

// Events renders the log from cursor for viewer.
func (e *Engine) Events(viewer, cursor int) ([]ViewEvent, error) {
	if viewer < 0 || viewer > 1 {
		return nil, invalidf("viewer %d out of range", viewer)
	}
	if cursor < 0 || cursor > len(e.events) {
		return nil, invalidf("cursor %d out of range [0, %d]", cursor, len(e.events))
	}
	out := make([]ViewEvent, 0, len(e.events)-cursor)
	for _, ev := range e.events[cursor:] {
		ve := ViewEvent{Seq: ev.Seq, Kind: ev.Kind, Text: ev.Text}
		if ev.Kind == EventNewState {
			board := RenderBoard(e.registry, ev.snapshot, viewer)
			status := statusOf(ev.snapshot, viewer)
			ve.Board = &board
			ve.Status = &status
			ve.Actions = legalActions(e.registry, e.variant, ev.snapshot, viewer)
		}
		out = append(out, ve)
	}
	return out, nil
}

// Board renders the current state for viewer.
func (e *Engine) Board(viewer int) Board {
	return RenderBoard(e.registry, e.state, viewer)
}

// Status summarises whose move it is for viewer.
func (e *Engine) Status(viewer int) Status {
	return statusOf(e.state, viewer)
}
