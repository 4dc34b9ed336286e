package middlewares

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/storefront/internal/pkg/interceptors"
	"github.com/jcmexdev/storefront/internal/pkg/interceptors/constants"
)

// AttachTracingMetadata copies the chi request id and the idempotency key
// header into the context, where handlers and the gRPC client interceptor
// pick them up.
func AttachTracingMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := interceptors.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
		if key := r.Header.Get(constants.HeaderXIdempotencyKey); key != "" {
			ctx = context.WithValue(ctx, constants.ContextKeyIdempotencyKey, key)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdempotencyKey returns the key stored by AttachTracingMetadata.
func IdempotencyKey(ctx context.Context) string {
	key, _ := ctx.Value(constants.ContextKeyIdempotencyKey).(string)
	return key
}
