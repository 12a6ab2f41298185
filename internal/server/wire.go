package server

import (
	"encoding/json"
	"fmt"

	"github.com/cognivore/imposterzero/internal/game"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// WireAction is a tagged action on the wire. Payload is the JSON of the
// concrete action named by Type.
type WireAction struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WireEvent is one rendered log entry.
type WireEvent struct {
	Seq     int            `json:"seq"`
	Kind    game.EventKind `json:"kind"`
	Text    string         `json:"text,omitempty"`
	Board   *game.Board    `json:"board,omitempty"`
	Status  *game.Status   `json:"status,omitempty"`
	Actions []WireAction   `json:"actions,omitempty"`
}

type CreateGameRequest struct {
	Players [2]string `json:"players"`
	Seed    uint64    `json:"seed"`
}

type CreateGameResponse struct {
	GameID string `json:"game_id"`
	Seq    int    `json:"seq"`
}

type ListActionsRequest struct {
	GameID string `json:"game_id"`
	Viewer int    `json:"viewer"`
}

type ListActionsResponse struct {
	Seq     int          `json:"seq"`
	Actions []WireAction `json:"actions"`
}

type ApplyActionRequest struct {
	GameID      string     `json:"game_id"`
	Actor       int        `json:"actor"`
	ExpectedSeq int        `json:"expected_seq"`
	Action      WireAction `json:"action"`
}

type ApplyActionResponse struct {
	Seq int `json:"seq"`
}

type EventsRequest struct {
	GameID string `json:"game_id"`
	Viewer int    `json:"viewer"`
	Cursor int    `json:"cursor"`
}

type EventsResponse struct {
	Events   []WireEvent            `json:"events"`
	Next     int                    `json:"next"`
	ServedAt *timestamppb.Timestamp `json:"served_at,omitempty"`
}

type GetBoardRequest struct {
	GameID string `json:"game_id"`
	Viewer int    `json:"viewer"`
}

type GetBoardResponse struct {
	Seq    int         `json:"seq"`
	Board  game.Board  `json:"board"`
	Status game.Status `json:"status"`
}

type ListGamesRequest struct{}

// GameSummary is one running match in ListGames.
type GameSummary struct {
	GameID    string                 `json:"game_id"`
	Players   [2]string              `json:"players"`
	Round     int                    `json:"round"`
	Seq       int                    `json:"seq"`
	Finished  bool                   `json:"finished"`
	CreatedAt *timestamppb.Timestamp `json:"created_at"`
}

type ListGamesResponse struct {
	Games []GameSummary `json:"games"`
}

type GetServerStateRequest struct{}

type GetServerStateResponse struct {
	ActiveGames     int                    `json:"active_games"`
	NumberOfThreads int                    `json:"number_of_threads"`
	ServerVersion   string                 `json:"server_version"`
	ServerTime      *timestamppb.Timestamp `json:"server_time"`
}

// EncodeAction tags a for the wire.
func EncodeAction(a game.Action) (WireAction, error) {
	var tag string
	switch a.(type) {
	case game.ChooseSignatures:
		tag = "ChooseSignatures"
	case game.ChooseFirstPlayer:
		tag = "ChooseFirstPlayer"
	case game.Recruit:
		tag = "Recruit"
	case game.Recommission:
		tag = "Recommission"
	case game.ChangeKingFacet:
		tag = "ChangeKingFacet"
	case game.EndMuster:
		tag = "EndMuster"
	case game.ChooseSuccessor:
		tag = "ChooseSuccessor"
	case game.ChooseSquire:
		tag = "ChooseSquire"
	case game.PlayCard:
		tag = "PlayCard"
	case game.FlipKing:
		tag = "FlipKing"
	case game.React:
		tag = "React"
	case game.Decline:
		tag = "Decline"
	default:
		return WireAction{}, fmt.Errorf("unknown action type %T", a)
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return WireAction{}, fmt.Errorf("encode %s: %w", tag, err)
	}
	return WireAction{Type: tag, Payload: payload}, nil
}

// DecodeAction restores the concrete action of w.
func DecodeAction(w WireAction) (game.Action, error) {
	switch w.Type {
	case "ChooseSignatures":
		return decodeInto[game.ChooseSignatures](w)
	case "ChooseFirstPlayer":
		return decodeInto[game.ChooseFirstPlayer](w)
	case "Recruit":
		return decodeInto[game.Recruit](w)
	case "Recommission":
		return decodeInto[game.Recommission](w)
	case "ChangeKingFacet":
		return decodeInto[game.ChangeKingFacet](w)
	case "EndMuster":
		return game.EndMuster{}, nil
	case "ChooseSuccessor":
		return decodeInto[game.ChooseSuccessor](w)
	case "ChooseSquire":
		return decodeInto[game.ChooseSquire](w)
	case "PlayCard":
		return decodeInto[game.PlayCard](w)
	case "FlipKing":
		return game.FlipKing{}, nil
	case "React":
		return decodeInto[game.React](w)
	case "Decline":
		return game.Decline{}, nil
	default:
		return nil, &game.ValidationError{Reason: fmt.Sprintf("unknown action type %q", w.Type)}
	}
}

func decodeInto[A game.Action](w WireAction) (game.Action, error) {
	var a A
	if len(w.Payload) == 0 {
		return nil, &game.ValidationError{Reason: w.Type + " needs a payload"}
	}
	if err := json.Unmarshal(w.Payload, &a); err != nil {
		return nil, &game.ValidationError{Reason: fmt.Sprintf("malformed %s payload: %v", w.Type, err)}
	}
	return a, nil
}

func encodeActions(actions []game.Action) ([]WireAction, error) {
	out := make([]WireAction, 0, len(actions))
	for _, a := range actions {
		w, err := EncodeAction(a)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func encodeEvents(events []game.ViewEvent) ([]WireEvent, error) {
	out := make([]WireEvent, 0, len(events))
	for _, ev := range events {
		actions, err := encodeActions(ev.Actions)
		if err != nil {
			return nil, err
		}
		out = append(out, WireEvent{
			Seq:     ev.Seq,
			Kind:    ev.Kind,
			Text:    ev.Text,
			Board:   ev.Board,
			Status:  ev.Status,
			Actions: actions,
		})
	}
	return out, nil
}
