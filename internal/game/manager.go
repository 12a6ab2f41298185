package game

import (
	"sort"
	"sync"
	"time"

	"github.com/cognivore/imposterzero/internal/game/abilities"
	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// session is one match plus the lock that makes it single-writer.
type session struct {
	mu        sync.Mutex
	engine    *Engine
	createdAt time.Time
}

// GameInfo summarises a running match.
type GameInfo struct {
	ID        string
	Players   [2]string
	Round     int
	Seq       int
	Finished  bool
	CreatedAt time.Time
}

// Manager owns every match in the process. The registry is shared
// read-only by all of them.
type Manager struct {
	logger   *zap.Logger
	registry *abilities.Registry
	variant  cards.Variant
	config   Config

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewManager creates a manager. A nil logger is replaced with a no-op one.
func NewManager(registry *abilities.Registry, variant cards.Variant, cfg Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		logger:   logger,
		registry: registry,
		variant:  variant,
		config:   cfg,
		sessions: make(map[string]*session),
	}
}

// CreateGame starts a new match and returns its id.
func (m *Manager) CreateGame(names [2]string, seed uint64) (string, error) {
	id := uuid.NewString()
	engine, err := NewEngine(names, Options{
		Registry: m.registry,
		Variant:  m.variant,
		Config:   m.config,
		Seed:     seed,
		Logger:   m.logger.With(zap.String("game_id", id)),
	})
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.sessions[id] = &session{engine: engine, createdAt: time.Now()}
	m.mu.Unlock()

	m.logger.Info("game created",
		zap.String("game_id", id),
		zap.String("player0", names[0]),
		zap.String("player1", names[1]),
		zap.Uint64("seed", seed),
	)
	return id, nil
}

func (m *Manager) session(id string) (*session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{GameID: id}
	}
	return s, nil
}

// ListLegalActions returns the actions viewer may submit now.
func (m *Manager) ListLegalActions(id string, viewer int) ([]Action, error) {
	s, err := m.session(id)
	if err != nil {
		return nil, err
	}
	if viewer < 0 || viewer > 1 {
		return nil, invalidf("viewer %d out of range", viewer)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.LegalActions(viewer), nil
}

// ApplyAction submits an action against the expected sequence count.
func (m *Manager) ApplyAction(id string, actor, expectedSeq int, a Action) error {
	s, err := m.session(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.Apply(actor, expectedSeq, a); err != nil {
		m.logger.Info("action rejected",
			zap.String("game_id", id),
			zap.Int("actor", actor),
			zap.Stringer("action", a),
			zap.String("code", CodeOf(err)),
			zap.Error(err),
		)
		return err
	}
	if s.engine.state.Phase == state.PhaseGameOver {
		m.logger.Info("game finished",
			zap.String("game_id", id),
			zap.Int("winner", s.engine.state.Winner),
			zap.Int("rounds", s.engine.state.Round),
		)
	}
	return nil
}

// Events returns the log from cursor rendered for viewer.
func (m *Manager) Events(id string, viewer, cursor int) ([]ViewEvent, error) {
	s, err := m.session(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Events(viewer, cursor)
}

// Seq returns the current sequence count of a match.
func (m *Manager) Seq(id string) (int, error) {
	s, err := m.session(id)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Seq(), nil
}

// Board renders the current board of a match for viewer.
func (m *Manager) Board(id string, viewer int) (Board, Status, error) {
	s, err := m.session(id)
	if err != nil {
		return Board{}, Status{}, err
	}
	if viewer < 0 || viewer > 1 {
		return Board{}, Status{}, invalidf("viewer %d out of range", viewer)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Board(viewer), s.engine.Status(viewer), nil
}

// Replay exports the seed and action log of a match.
func (m *Manager) Replay(id string) (*Replay, error) {
	s, err := m.session(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewReplay(id, s.engine), nil
}

// RemoveGame drops a match.
func (m *Manager) RemoveGame(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return &NotFoundError{GameID: id}
	}
	delete(m.sessions, id)
	m.logger.Info("game removed", zap.String("game_id", id))
	return nil
}

// Count returns the number of running matches.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Games lists running matches, oldest first.
func (m *Manager) Games() []GameInfo {
	m.mu.RLock()
	all := make(map[string]*session, len(m.sessions))
	for id, s := range m.sessions {
		all[id] = s
	}
	m.mu.RUnlock()

	out := make([]GameInfo, 0, len(all))
	for id, s := range all {
		s.mu.Lock()
		st := s.engine.state
		out = append(out, GameInfo{
			ID:        id,
			Players:   [2]string{st.Players[0].Name, st.Players[1].Name},
			Round:     st.Round,
			Seq:       s.engine.Seq(),
			Finished:  st.Winner >= 0,
			CreatedAt: s.createdAt,
		})
		s.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
