package service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// fakeServerStream is a minimal grpc.ServerStream for driving a service
// method without a real network connection, in the style of the
// teacher's MockLogStreamServer/MockLogStreamClient (see
// teacher-reference/agent_log_test.go.orig): SendMsg accepts and discards
// every message instead of writing it to a wire, and the per-test
// collectors that embed it record what their Send methods receive.
type fakeServerStream struct {
	ctx context.Context
}

func (s *fakeServerStream) SetHeader(metadata.MD) error  { return nil }
func (s *fakeServerStream) SendHeader(metadata.MD) error { return nil }
func (s *fakeServerStream) SetTrailer(metadata.MD)       {}
func (s *fakeServerStream) Context() context.Context     { return s.ctx }
func (s *fakeServerStream) SendMsg(m interface{}) error  { return nil }
func (s *fakeServerStream) RecvMsg(m interface{}) error  { return nil }

var _ grpc.ServerStream = (*fakeServerStream)(nil)

// contextWithToken attaches an "authorization" request-metadata entry,
// mirroring how grpc-gateway/grpc clients present a bearer token.
func contextWithToken(token string) context.Context {
	if token == "" {
		return context.Background()
	}
	md := metadata.Pairs("authorization", token)
	return metadata.NewIncomingContext(context.Background(), md)
}
