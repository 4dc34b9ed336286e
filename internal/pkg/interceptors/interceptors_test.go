package interceptors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/jcmexdev/storefront/internal/pkg/interceptors/constants"
)

func TestTraceServerInterceptor_CopiesMetadata(t *testing.T) {
	md := metadata.Pairs(constants.HeaderXRequestId, "req-1", constants.HeaderXIdempotencyKey, "idem-1")
	ctx := metadata.NewIncomingContext(context.Background(), md)

	var seenReq, seenIdem string
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		seenReq = GetMetadataValue(ctx, constants.HeaderXRequestId)
		seenIdem = GetMetadataValue(ctx, constants.HeaderXIdempotencyKey)
		return "ok", nil
	}

	resp, err := TraceServerInterceptor()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/test/Method"}, handler)
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "req-1", seenReq)
	assert.Equal(t, "idem-1", seenIdem)
}

func TestUnaryClientInterceptor_PropagatesRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")

	var outgoing metadata.MD
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		outgoing, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}

	err := UnaryClientInterceptor()(ctx, "/test/Method", nil, nil, nil, invoker)
	assert.NoError(t, err)
	assert.Equal(t, []string{"req-42"}, outgoing.Get(constants.HeaderXRequestId))
}

func TestGetMetadataValue_Missing(t *testing.T) {
	assert.Empty(t, GetMetadataValue(context.Background(), constants.HeaderXRequestId))
}
