package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/filemeta/internal/common"
	"github.com/dmitrijs2005/filemeta/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// helper to build server
func newTestServer(secret string) *GRPCServer {
	return NewGRPCServer("", nopLogger{}, &fakeFiles{}, &fakeUploads{}, &fakeQuotas{}, secret)
}

func withToken(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_NoSecret_AllowsWithoutToken(t *testing.T) {
	s := newTestServer("")

	info := &grpc.UnaryServerInfo{FullMethod: "/file.FileService/GetFileByID"}
	handlerCalled := false

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handlerCalled {
		t.Fatal("handler was not called")
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
}

func TestInterceptor_HealthExempt(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	}

	if _, err := s.accessTokenInterceptor(context.Background(), nil, info, h); err != nil {
		t.Fatalf("health check must not require a token, got %v", err)
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: "/file.FileService/GetFileByID"}
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler must not be called")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	st, _ := status.FromError(err)
	if st.Code() != codes.Unauthenticated || st.Message() != "missing token" {
		t.Fatalf("unexpected status: %v", st)
	}
}

func TestInterceptor_InvalidToken(t *testing.T) {
	s := newTestServer("secret")

	other, err := auth.GenerateToken("svc", []byte("other"), time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong secret", other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &grpc.UnaryServerInfo{FullMethod: "/quota.QuotaService/UpdateQuota"}
			h := func(ctx context.Context, req interface{}) (interface{}, error) {
				return nil, errors.New("handler must not be called")
			}

			_, err := s.accessTokenInterceptor(withToken(tt.token), nil, info, h)
			st, _ := status.FromError(err)
			if st.Code() != codes.Unauthenticated || st.Message() != "invalid token" {
				t.Fatalf("unexpected status: %v", st)
			}
		})
	}
}

func TestInterceptor_ValidToken_SetsCaller(t *testing.T) {
	s := newTestServer("secret")

	token, err := auth.GenerateToken("upload-service", []byte("secret"), time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	info := &grpc.UnaryServerInfo{FullMethod: "/file.FileService/CreateUpload"}
	var caller string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		caller, _ = CallerFromContext(ctx)
		return "ok", nil
	}

	if _, err := s.accessTokenInterceptor(withToken(token), nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caller != "upload-service" {
		t.Fatalf("caller = %q, want upload-service", caller)
	}
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := newTestServer("")

	info := &grpc.UnaryServerInfo{FullMethod: "/file.FileService/DeleteFile"}
	want := status.Error(codes.NotFound, "file not found")
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, want
	}

	_, err := s.loggingInterceptor(context.Background(), nil, info, h)
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
