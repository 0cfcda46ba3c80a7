package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/filemeta/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var codeTable = []struct {
	err  error
	code codes.Code
}{
	{common.ErrFileNotFound, codes.NotFound},
	{common.ErrUploadNotFound, codes.NotFound},
	{common.ErrFileExistsWithSameName, codes.AlreadyExists},
	{common.ErrKeyAlreadyExists, codes.AlreadyExists},
	{common.ErrIDInvalid, codes.InvalidArgument},
	{common.ErrValidation, codes.InvalidArgument},
	{common.ErrParentNotFolder, codes.FailedPrecondition},
	{common.ErrInvalidMove, codes.FailedPrecondition},
	{common.ErrQuotaExceeded, codes.ResourceExhausted},
	{common.ErrQuotaContention, codes.Aborted},
	{context.Canceled, codes.Canceled},
	{context.DeadlineExceeded, codes.DeadlineExceeded},
}

func codeOf(err error) codes.Code {
	for _, e := range codeTable {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return codes.Internal
}

// statusError converts a service error into a gRPC status carrying an
// ErrorInfo detail with the stable reason. Internal errors are logged and
// reported without their cause.
func (s *GRPCServer) statusError(ctx context.Context, err error) error {
	code := codeOf(err)
	msg := err.Error()
	if code == codes.Internal {
		s.logger.Error(ctx, "request failed", "error", err)
		msg = common.ErrorInternal.Error()
	}

	st := status.New(code, msg)
	detailed, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: common.Reason(err),
		Domain: common.ErrorDomain,
	})
	if derr != nil {
		return st.Err()
	}
	return detailed.Err()
}
