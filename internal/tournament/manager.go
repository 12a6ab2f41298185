package tournament

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cognivore/imposterzero/internal/bot"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TournamentState represents the state of a tournament
type TournamentState int

const (
	TournamentStateWaiting TournamentState = iota
	TournamentStateInProgress
	TournamentStateFinished
)

func (s TournamentState) String() string {
	switch s {
	case TournamentStateWaiting:
		return "WAITING"
	case TournamentStateInProgress:
		return "IN_PROGRESS"
	case TournamentStateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// Match points awarded per pairing.
const (
	winPoints  = 3
	drawPoints = 1
)

// Player is a bot entrant.
type Player struct {
	Name      string
	Policy    string
	Points    int
	Wins      int
	Losses    int
	Draws     int
	Byes      int
	Opponents []string
}

// Pairing is one match of a round.
type Pairing struct {
	Player1     string
	Player2     string
	Winner      string
	Player1Wins int
	Player2Wins int
	Reported    bool
}

// Round represents a tournament round
type Round struct {
	Number   int
	Pairings []*Pairing
	Bye      string
	Finished bool
}

// PlayerSnapshot captures tournament player data for external use.
type PlayerSnapshot struct {
	Name   string
	Policy string
	Points int
	Wins   int
	Losses int
	Draws  int
	Byes   int
}

// PairingSnapshot captures pairing data for external use.
type PairingSnapshot struct {
	Player1     string
	Player2     string
	Winner      string
	Player1Wins int
	Player2Wins int
}

// RoundSnapshot captures round data for external use.
type RoundSnapshot struct {
	Number   int
	Finished bool
	Bye      string
	Pairings []PairingSnapshot
}

// TournamentSnapshot captures a consistent view of a tournament.
type TournamentSnapshot struct {
	ID           string
	Name         string
	State        TournamentState
	Standings    []PlayerSnapshot
	Rounds       []RoundSnapshot
	CurrentRound int
	NumRounds    int
	WinsRequired int
	CreateTime   time.Time
	StartTime    *time.Time
	EndTime      *time.Time
}

// Tournament is a Swiss event between bot policies. Each pairing is a
// first-to-WinsRequired match.
type Tournament struct {
	ID           string
	Name         string
	State        TournamentState
	Players      map[string]*Player
	PlayerOrder  []string
	Rounds       []*Round
	CurrentRound int
	NumRounds    int
	WinsRequired int
	CreateTime   time.Time
	StartTime    *time.Time
	EndTime      *time.Time
	mu           sync.RWMutex
}

// NewTournament creates a new tournament
func NewTournament(name string, numRounds, winsRequired int) *Tournament {
	return &Tournament{
		ID:           uuid.New().String(),
		Name:         name,
		State:        TournamentStateWaiting,
		Players:      make(map[string]*Player),
		NumRounds:    numRounds,
		WinsRequired: winsRequired,
		CreateTime:   time.Now(),
	}
}

// AddPlayer enters a bot under name, playing with the named policy.
func (t *Tournament) AddPlayer(name, policy string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.State != TournamentStateWaiting {
		return fmt.Errorf("tournament already started")
	}
	if name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, exists := t.Players[name]; exists {
		return fmt.Errorf("player %s already joined", name)
	}
	if _, err := bot.NewPolicy(policy, 0); err != nil {
		return err
	}

	t.Players[name] = &Player{Name: name, Policy: policy}
	t.PlayerOrder = append(t.PlayerOrder, name)
	return nil
}

// RemovePlayer removes a player before the start.
func (t *Tournament) RemovePlayer(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.State != TournamentStateWaiting {
		return fmt.Errorf("tournament already started")
	}
	if _, exists := t.Players[name]; !exists {
		return fmt.Errorf("player %s not found", name)
	}
	delete(t.Players, name)
	for i, n := range t.PlayerOrder {
		if n == name {
			t.PlayerOrder = append(t.PlayerOrder[:i], t.PlayerOrder[i+1:]...)
			break
		}
	}
	return nil
}

// GetPlayerCount returns the number of players
func (t *Tournament) GetPlayerCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.Players)
}

// GetState returns the current tournament state
func (t *Tournament) GetState() TournamentState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.State
}

// Start transitions the tournament into progress and creates the first round.
func (t *Tournament) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.State != TournamentStateWaiting {
		return fmt.Errorf("tournament already started")
	}
	if len(t.Players) < 2 {
		return fmt.Errorf("not enough players")
	}
	if t.NumRounds < 1 || t.WinsRequired < 1 {
		return fmt.Errorf("rounds and wins required must be positive")
	}

	now := time.Now()
	t.StartTime = &now
	t.State = TournamentStateInProgress
	t.nextRound()
	return nil
}

// CreateRound pairs the next round once the current one is finished.
func (t *Tournament) CreateRound() (*Round, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.State != TournamentStateInProgress {
		return nil, fmt.Errorf("tournament is %s", t.State)
	}
	if cur := t.Rounds[len(t.Rounds)-1]; !cur.Finished {
		return nil, fmt.Errorf("round %d is not finished", cur.Number)
	}
	if t.CurrentRound >= t.NumRounds {
		return nil, fmt.Errorf("all %d rounds played", t.NumRounds)
	}
	return t.nextRound(), nil
}

func (t *Tournament) nextRound() *Round {
	t.CurrentRound++
	round := &Round{Number: t.CurrentRound}
	round.Pairings, round.Bye = t.generatePairings()
	round.Finished = len(round.Pairings) == 0
	t.Rounds = append(t.Rounds, round)
	return round
}

// standing returns players by points, then wins, then entry order.
func (t *Tournament) standing() []*Player {
	players := make([]*Player, 0, len(t.PlayerOrder))
	for _, name := range t.PlayerOrder {
		players = append(players, t.Players[name])
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Points != players[j].Points {
			return players[i].Points > players[j].Points
		}
		return players[i].Wins > players[j].Wins
	})
	return players
}

// generatePairings pairs neighbours in the standings, skipping rematches
// when another opponent is available. With an odd field the lowest ranked
// player without a bye sits out and scores a win.
func (t *Tournament) generatePairings() ([]*Pairing, string) {
	active := t.standing()

	bye := ""
	if len(active)%2 == 1 {
		idx := len(active) - 1
		for i := len(active) - 1; i >= 0; i-- {
			if active[i].Byes == 0 {
				idx = i
				break
			}
		}
		p := active[idx]
		p.Points += winPoints
		p.Wins++
		p.Byes++
		bye = p.Name
		active = append(active[:idx:idx], active[idx+1:]...)
	}

	var pairings []*Pairing
	for len(active) > 1 {
		first := active[0]
		pick := 1
		for i := 1; i < len(active); i++ {
			if !contains(first.Opponents, active[i].Name) {
				pick = i
				break
			}
		}
		second := active[pick]
		first.Opponents = append(first.Opponents, second.Name)
		second.Opponents = append(second.Opponents, first.Name)
		pairings = append(pairings, &Pairing{Player1: first.Name, Player2: second.Name})
		active = append(active[1:pick], active[pick+1:]...)
	}
	return pairings, bye
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// RecordMatchResult records the result of a match
func (t *Tournament) RecordMatchResult(roundNum int, player1, player2 string, player1Wins, player2Wins int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if roundNum <= 0 || roundNum > len(t.Rounds) {
		return fmt.Errorf("invalid round number %d", roundNum)
	}
	round := t.Rounds[roundNum-1]

	for _, pairing := range round.Pairings {
		if pairing.Player1 == player2 && pairing.Player2 == player1 {
			player1, player2 = player2, player1
			player1Wins, player2Wins = player2Wins, player1Wins
		}
		if pairing.Player1 != player1 || pairing.Player2 != player2 {
			continue
		}
		if pairing.Reported {
			return fmt.Errorf("round %d %s vs %s already reported", roundNum, player1, player2)
		}
		pairing.Player1Wins = player1Wins
		pairing.Player2Wins = player2Wins
		pairing.Reported = true

		p1, p2 := t.Players[player1], t.Players[player2]
		switch {
		case player1Wins > player2Wins:
			pairing.Winner = player1
			p1.Wins++
			p1.Points += winPoints
			p2.Losses++
		case player2Wins > player1Wins:
			pairing.Winner = player2
			p2.Wins++
			p2.Points += winPoints
			p1.Losses++
		default:
			p1.Draws++
			p1.Points += drawPoints
			p2.Draws++
			p2.Points += drawPoints
		}

		round.Finished = true
		for _, p := range round.Pairings {
			if !p.Reported {
				round.Finished = false
			}
		}
		if round.Finished && round.Number == t.NumRounds {
			now := time.Now()
			t.EndTime = &now
			t.State = TournamentStateFinished
		}
		return nil
	}
	return fmt.Errorf("pairing %s vs %s not found in round %d", player1, player2, roundNum)
}

// Snapshot returns a consistent copy of the tournament state.
func (t *Tournament) Snapshot() TournamentSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	standings := make([]PlayerSnapshot, 0, len(t.PlayerOrder))
	for _, player := range t.standing() {
		standings = append(standings, PlayerSnapshot{
			Name:   player.Name,
			Policy: player.Policy,
			Points: player.Points,
			Wins:   player.Wins,
			Losses: player.Losses,
			Draws:  player.Draws,
			Byes:   player.Byes,
		})
	}

	rounds := make([]RoundSnapshot, 0, len(t.Rounds))
	for _, r := range t.Rounds {
		pairings := make([]PairingSnapshot, 0, len(r.Pairings))
		for _, p := range r.Pairings {
			pairings = append(pairings, PairingSnapshot{
				Player1:     p.Player1,
				Player2:     p.Player2,
				Winner:      p.Winner,
				Player1Wins: p.Player1Wins,
				Player2Wins: p.Player2Wins,
			})
		}
		rounds = append(rounds, RoundSnapshot{
			Number:   r.Number,
			Finished: r.Finished,
			Bye:      r.Bye,
			Pairings: pairings,
		})
	}

	return TournamentSnapshot{
		ID:           t.ID,
		Name:         t.Name,
		State:        t.State,
		Standings:    standings,
		Rounds:       rounds,
		CurrentRound: t.CurrentRound,
		NumRounds:    t.NumRounds,
		WinsRequired: t.WinsRequired,
		CreateTime:   t.CreateTime,
		StartTime:    cloneTime(t.StartTime),
		EndTime:      cloneTime(t.EndTime),
	}
}

func cloneTime(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	cp := *src
	return &cp
}

// ParseEntrants reads "name:policy,name:policy". A bare policy name is
// entered as "<policy>-<position>".
func ParseEntrants(list string) ([][2]string, error) {
	var out [][2]string
	for i, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, policy, ok := strings.Cut(part, ":")
		if !ok {
			policy = name
			name = fmt.Sprintf("%s-%d", policy, i+1)
		}
		out = append(out, [2]string{strings.TrimSpace(name), strings.TrimSpace(policy)})
	}
	if len(out) < 2 {
		return nil, fmt.Errorf("need at least two entrants, got %q", list)
	}
	return out, nil
}

// Manager manages tournaments
type Manager struct {
	tournaments map[string]*Tournament
	mu          sync.RWMutex
	logger      *zap.Logger
}

// NewManager creates a new tournament manager
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		tournaments: make(map[string]*Tournament),
		logger:      logger,
	}
}

// CreateTournament creates a new tournament
func (m *Manager) CreateTournament(name string, numRounds, winsRequired int) *Tournament {
	m.mu.Lock()
	defer m.mu.Unlock()

	tournament := NewTournament(name, numRounds, winsRequired)
	m.tournaments[tournament.ID] = tournament

	m.logger.Info("tournament created",
		zap.String("tournament_id", tournament.ID),
		zap.String("name", name),
		zap.Int("rounds", numRounds),
		zap.Int("wins_required", winsRequired),
	)
	return tournament
}

// GetTournament retrieves a tournament by ID
func (m *Manager) GetTournament(tournamentID string) (*Tournament, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tournament, ok := m.tournaments[tournamentID]
	return tournament, ok
}

// RemoveTournament removes a tournament
func (m *Manager) RemoveTournament(tournamentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tournaments, tournamentID)
	m.logger.Info("tournament removed", zap.String("tournament_id", tournamentID))
}

// GetActiveTournamentCount returns the count of active tournaments
func (m *Manager) GetActiveTournamentCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, tournament := range m.tournaments {
		if tournament.GetState() != TournamentStateFinished {
			count++
		}
	}
	return count
}
