package game

import (
	"fmt"

	"github.com/cognivore/imposterzero/internal/game/state"
)

// EventKind distinguishes log entries.
type EventKind int

const (
	EventMessage EventKind = iota
	EventNewState
)

func (k EventKind) String() string {
	if k == EventNewState {
		return "NEW_STATE"
	}
	return "MESSAGE"
}

func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *EventKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "MESSAGE":
		*k = EventMessage
	case "NEW_STATE":
		*k = EventNewState
	default:
		return fmt.Errorf("unknown event kind %q", b)
	}
	return nil
}

// Event is one entry of the append-only log. A NewState entry keeps the
// full state and is rendered per viewer on read.
type Event struct {
	Seq      int
	Kind     EventKind
	Text     string
	snapshot *state.GameState
}

// ViewEvent is an Event as seen by one viewer.
type ViewEvent struct {
	Seq     int
	Kind    EventKind
	Text    string
	Board   *Board
	Status  *Status
	Actions []Action
}
