package interceptors

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/jcmexdev/storefront/internal/pkg/interceptors/constants"
)

// WithRequestID stores an HTTP request id so outgoing gRPC calls carry it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constants.ContextKeyRequestID, id)
}

// UnaryClientInterceptor forwards the request id held in ctx as outgoing
// metadata.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		if id := GetMetadataValue(ctx, constants.HeaderXRequestId); id != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, constants.HeaderXRequestId, id)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// GetMetadataValue looks key up in the context values set by the
// interceptors, then in incoming and outgoing gRPC metadata.
func GetMetadataValue(ctx context.Context, key string) string {
	if v, ok := ctx.Value(contextKeyFor(key)).(string); ok && v != "" {
		return v
	}

	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(key); len(ids) > 0 {
			return ids[0]
		}
	}

	if md, ok := metadata.FromOutgoingContext(ctx); ok {
		if ids := md.Get(key); len(ids) > 0 {
			return ids[0]
		}
	}
	return ""
}

func contextKeyFor(key string) any {
	switch key {
	case constants.HeaderXRequestId:
		return constants.ContextKeyRequestID
	case constants.HeaderXIdempotencyKey:
		return constants.ContextKeyIdempotencyKey
	}
	return key
}
