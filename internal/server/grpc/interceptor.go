package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/filemeta/internal/common"
	"github.com/dmitrijs2005/filemeta/internal/logging"
	"github.com/dmitrijs2005/filemeta/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const callerKey ctxKey = "caller"

const healthPrefix = "/grpc.health.v1.Health/"

// CallerFromContext returns the token subject of the current call.
func CallerFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(callerKey).(string)
	return v, ok
}

// accessTokenInterceptor requires a valid service token on every call
// except health checks. It is a no-op when no secret is configured.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if len(s.jwtSecret) == 0 || strings.HasPrefix(info.FullMethod, healthPrefix) {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		s.logger.Warn(ctx, "rejected call without token", "method", info.FullMethod)
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	caller, err := auth.SubjectFromToken(accessToken, s.jwtSecret)
	if err != nil {
		s.logger.Warn(ctx, "rejected call with bad token", "method", info.FullMethod, "error", err)
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	ctx = context.WithValue(ctx, callerKey, caller)
	ctx = logging.ContextWith(ctx, "caller", caller)

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	ctx = logging.ContextWith(ctx, "method", info.FullMethod)

	start := time.Now()
	resp, err := handler(ctx, req)

	args := []any{
		"duration", time.Since(start),
		"code", status.Code(err).String(),
	}

	if err != nil && status.Code(err) == codes.Internal {
		s.logger.Error(ctx, "request", args...)
	} else {
		s.logger.Info(ctx, "request", args...)
	}

	return resp, err
}
