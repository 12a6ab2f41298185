package game

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cognivore/imposterzero/internal/game/abilities"
	"github.com/cognivore/imposterzero/internal/game/cards"
	"go.uber.org/zap"
)

func init() {
	gob.Register(ChooseSignatures{})
	gob.Register(ChooseFirstPlayer{})
	gob.Register(Recruit{})
	gob.Register(Recommission{})
	gob.Register(ChangeKingFacet{})
	gob.Register(EndMuster{})
	gob.Register(ChooseSuccessor{})
	gob.Register(ChooseSquire{})
	gob.Register(PlayCard{})
	gob.Register(FlipKing{})
	gob.Register(React{})
	gob.Register(Decline{})
}

const replayVersion = 1

// Replay is everything needed to reproduce a match: the seed, the rules
// and every applied action in order.
type Replay struct {
	GameID   string
	Players  [2]string
	Seed     uint64
	Variant  cards.Variant
	Config   Config
	Records  []Record
	Checksum string
}

// NewReplay captures the replay of a running engine.
func NewReplay(gameID string, e *Engine) *Replay {
	st := e.state
	return &Replay{
		GameID:   gameID,
		Players:  [2]string{st.Players[0].Name, st.Players[1].Name},
		Seed:     e.seed,
		Variant:  e.variant,
		Config:   e.config,
		Records:  e.Records(),
		Checksum: Checksum(st),
	}
}

// Size returns the number of recorded actions.
func (r *Replay) Size() int { return len(r.Records) }

// Play rebuilds the match by re-applying every record and checks that the
// final state matches the recorded checksum.
func (r *Replay) Play(reg *abilities.Registry, logger *zap.Logger) (*Engine, error) {
	e, err := NewEngine(r.Players, Options{
		Registry: reg,
		Variant:  r.Variant,
		Config:   r.Config,
		Seed:     r.Seed,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	for i, rec := range r.Records {
		if err := e.Apply(rec.Actor, e.Seq(), rec.Action); err != nil {
			return nil, fmt.Errorf("replay step %d (%s): %w", i, rec.Action, err)
		}
	}
	if r.Checksum != "" {
		if got := Checksum(e.state); got != r.Checksum {
			return nil, fmt.Errorf("replay diverged: checksum %s, recorded %s", got, r.Checksum)
		}
	}
	return e, nil
}

// replayMetadata heads a saved replay file.
type replayMetadata struct {
	GameID    string
	Timestamp time.Time
	Version   int
}

// SaveToFile writes the replay as gzip-compressed gob to directory.
func (r *Replay) SaveToFile(directory string) (string, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	filename := filepath.Join(directory, r.GameID+".replay")
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	zw := gzip.NewWriter(file)
	enc := gob.NewEncoder(zw)
	meta := replayMetadata{GameID: r.GameID, Timestamp: time.Now(), Version: replayVersion}
	if err := enc.Encode(&meta); err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("failed to encode replay: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to flush replay: %w", err)
	}
	return filename, nil
}

// LoadReplayFromFile reads a replay written by SaveToFile.
func LoadReplayFromFile(directory, gameID string) (*Replay, error) {
	file, err := os.Open(filepath.Join(directory, gameID+".replay"))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer zr.Close()

	dec := gob.NewDecoder(zr)
	var meta replayMetadata
	if err := dec.Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if meta.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", meta.Version)
	}
	var r Replay
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &r, nil
}
