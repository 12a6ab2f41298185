package server

import (
	"errors"

	"github.com/cognivore/imposterzero/internal/game"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// statusCode maps a rejection code to the gRPC code clients see.
func statusCode(code string) codes.Code {
	switch code {
	case game.CodeValidation:
		return codes.InvalidArgument
	case game.CodeIllegalMove:
		return codes.FailedPrecondition
	case game.CodeSequenceMismatch:
		return codes.Aborted
	case game.CodeNotFound:
		return codes.NotFound
	case game.CodeInvariant:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

// toStatus converts an engine error into a gRPC status error. The stable
// rejection code travels as the status message prefix.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	var c game.Coder
	if !errors.As(err, &c) {
		return status.Error(codes.Internal, err.Error())
	}
	return status.Errorf(statusCode(c.Code()), "%s: %s", c.Code(), err.Error())
}
