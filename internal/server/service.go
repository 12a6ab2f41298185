package server

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "imposter.v1.Court"

// CourtServer is the server API of the Court service.
type CourtServer interface {
	CreateGame(context.Context, *CreateGameRequest) (*CreateGameResponse, error)
	ListActions(context.Context, *ListActionsRequest) (*ListActionsResponse, error)
	ApplyAction(context.Context, *ApplyActionRequest) (*ApplyActionResponse, error)
	Events(context.Context, *EventsRequest) (*EventsResponse, error)
	GetBoard(context.Context, *GetBoardRequest) (*GetBoardResponse, error)
	ListGames(context.Context, *ListGamesRequest) (*ListGamesResponse, error)
	GetServerState(context.Context, *GetServerStateRequest) (*GetServerStateResponse, error)
}

func method(name string) string { return "/" + ServiceName + "/" + name }

// unary adapts a typed handler to grpc.MethodHandler.
func unary[Req, Resp any](name string, call func(CourtServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CourtServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(CourtServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// CourtServiceDesc describes the Court service for grpc.Server.
var CourtServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CourtServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateGame", CourtServer.CreateGame),
		unary("ListActions", CourtServer.ListActions),
		unary("ApplyAction", CourtServer.ApplyAction),
		unary("Events", CourtServer.Events),
		unary("GetBoard", CourtServer.GetBoard),
		unary("ListGames", CourtServer.ListGames),
		unary("GetServerState", CourtServer.GetServerState),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "imposter/v1/court.proto",
}

// RegisterCourtServer registers srv on s.
func RegisterCourtServer(s grpc.ServiceRegistrar, srv CourtServer) {
	s.RegisterService(&CourtServiceDesc, srv)
}

// CourtClient calls the Court service using the JSON codec.
type CourtClient struct {
	cc grpc.ClientConnInterface
}

// NewCourtClient wraps cc.
func NewCourtClient(cc grpc.ClientConnInterface) *CourtClient {
	return &CourtClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *CourtClient, name string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, method(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CourtClient) CreateGame(ctx context.Context, in *CreateGameRequest, opts ...grpc.CallOption) (*CreateGameResponse, error) {
	return invoke[CreateGameResponse](ctx, c, "CreateGame", in, opts)
}

func (c *CourtClient) ListActions(ctx context.Context, in *ListActionsRequest, opts ...grpc.CallOption) (*ListActionsResponse, error) {
	return invoke[ListActionsResponse](ctx, c, "ListActions", in, opts)
}

func (c *CourtClient) ApplyAction(ctx context.Context, in *ApplyActionRequest, opts ...grpc.CallOption) (*ApplyActionResponse, error) {
	return invoke[ApplyActionResponse](ctx, c, "ApplyAction", in, opts)
}

func (c *CourtClient) Events(ctx context.Context, in *EventsRequest, opts ...grpc.CallOption) (*EventsResponse, error) {
	return invoke[EventsResponse](ctx, c, "Events", in, opts)
}

func (c *CourtClient) GetBoard(ctx context.Context, in *GetBoardRequest, opts ...grpc.CallOption) (*GetBoardResponse, error) {
	return invoke[GetBoardResponse](ctx, c, "GetBoard", in, opts)
}

func (c *CourtClient) ListGames(ctx context.Context, in *ListGamesRequest, opts ...grpc.CallOption) (*ListGamesResponse, error) {
	return invoke[ListGamesResponse](ctx, c, "ListGames", in, opts)
}

func (c *CourtClient) GetServerState(ctx context.Context, in *GetServerStateRequest, opts ...grpc.CallOption) (*GetServerStateResponse, error) {
	return invoke[GetServerStateResponse](ctx, c, "GetServerState", in, opts)
}
