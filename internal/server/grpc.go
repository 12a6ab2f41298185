package server

import (
	"context"
	"net"
	"runtime"

	"github.com/cognivore/imposterzero/internal/game"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// courtServer implements CourtServer on top of a game.Manager.
type courtServer struct {
	games         *game.Manager
	maxGames      int
	serverVersion string
	logger        *zap.Logger
}

// NewCourtServer creates the Court service. maxGames <= 0 means unlimited.
func NewCourtServer(games *game.Manager, maxGames int, serverVersion string, logger *zap.Logger) CourtServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &courtServer{
		games:         games,
		maxGames:      maxGames,
		serverVersion: serverVersion,
		logger:        logger,
	}
}

// CreateGame seats two players at a new match
func (s *courtServer) CreateGame(ctx context.Context, req *CreateGameRequest) (*CreateGameResponse, error) {
	for i, name := range req.Players {
		if name == "" {
			return nil, status.Errorf(codes.InvalidArgument, "player %d name is required", i)
		}
	}
	if s.maxGames > 0 && s.games.Count() >= s.maxGames {
		return nil, status.Errorf(codes.ResourceExhausted, "server is hosting the maximum of %d games", s.maxGames)
	}

	id, err := s.games.CreateGame(req.Players, req.Seed)
	if err != nil {
		return nil, toStatus(err)
	}
	seq, err := s.games.Seq(id)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Debug("game created over rpc",
		zap.String("game_id", id),
		zap.String("host", extractHostFromContext(ctx)),
	)
	return &CreateGameResponse{GameID: id, Seq: seq}, nil
}

// ListActions returns the actions a viewer may submit now
func (s *courtServer) ListActions(ctx context.Context, req *ListActionsRequest) (*ListActionsResponse, error) {
	if req.GameID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "game_id is required")
	}
	seq, err := s.games.Seq(req.GameID)
	if err != nil {
		return nil, toStatus(err)
	}
	actions, err := s.games.ListLegalActions(req.GameID, req.Viewer)
	if err != nil {
		return nil, toStatus(err)
	}
	wire, err := encodeActions(actions)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &ListActionsResponse{Seq: seq, Actions: wire}, nil
}

// ApplyAction submits one action against the expected sequence count
func (s *courtServer) ApplyAction(ctx context.Context, req *ApplyActionRequest) (*ApplyActionResponse, error) {
	if req.GameID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "game_id is required")
	}
	a, err := DecodeAction(req.Action)
	if err != nil {
		return nil, toStatus(err)
	}
	if err := s.games.ApplyAction(req.GameID, req.Actor, req.ExpectedSeq, a); err != nil {
		return nil, toStatus(err)
	}
	seq, err := s.games.Seq(req.GameID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ApplyActionResponse{Seq: seq}, nil
}

// Events returns the log from a cursor, rendered for the viewer
func (s *courtServer) Events(ctx context.Context, req *EventsRequest) (*EventsResponse, error) {
	if req.GameID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "game_id is required")
	}
	events, err := s.games.Events(req.GameID, req.Viewer, req.Cursor)
	if err != nil {
		return nil, toStatus(err)
	}
	wire, err := encodeEvents(events)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	next := req.Cursor
	if len(wire) > 0 {
		next = wire[len(wire)-1].Seq + 1
	}
	return &EventsResponse{Events: wire, Next: next, ServedAt: timestamppb.Now()}, nil
}

// GetBoard renders the current board for the viewer
func (s *courtServer) GetBoard(ctx context.Context, req *GetBoardRequest) (*GetBoardResponse, error) {
	if req.GameID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "game_id is required")
	}
	seq, err := s.games.Seq(req.GameID)
	if err != nil {
		return nil, toStatus(err)
	}
	board, st, err := s.games.Board(req.GameID, req.Viewer)
	if err != nil {
		return nil, toStatus(err)
	}
	return &GetBoardResponse{Seq: seq, Board: board, Status: st}, nil
}

// ListGames lists running matches
func (s *courtServer) ListGames(ctx context.Context, req *ListGamesRequest) (*ListGamesResponse, error) {
	infos := s.games.Games()
	out := make([]GameSummary, 0, len(infos))
	for _, info := range infos {
		out = append(out, GameSummary{
			GameID:    info.ID,
			Players:   info.Players,
			Round:     info.Round,
			Seq:       info.Seq,
			Finished:  info.Finished,
			CreatedAt: timestamppb.New(info.CreatedAt),
		})
	}
	return &ListGamesResponse{Games: out}, nil
}

// GetServerState returns server state information
func (s *courtServer) GetServerState(ctx context.Context, req *GetServerStateRequest) (*GetServerStateResponse, error) {
	return &GetServerStateResponse{
		ActiveGames:     s.games.Count(),
		NumberOfThreads: runtime.NumGoroutine(),
		ServerVersion:   s.serverVersion,
		ServerTime:      timestamppb.Now(),
	}, nil
}

func extractHostFromContext(ctx context.Context) string {
	if p, ok := peer.FromContext(ctx); ok && p.Addr != net.Addr(nil) {
		if host, _, err := net.SplitHostPort(p.Addr.String()); err == nil {
			return host
		}
		return p.Addr.String()
	}
	return "unknown"
}
