// Package client is a typed gRPC client for the filemeta services.
//
// GRPCClient manages one connection, attaches a service token to every call
// through an interceptor and maps gRPC statuses back to sentinel errors:
// ErrUnavailable and ErrUnauthorized for transport conditions, and the
// common.Err* values for domain failures reported with an ErrorInfo detail.
package client
