package sagalog

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo returns the ids of the span active in ctx, or empty
// strings when there is none.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{TraceID: sc.TraceID().String(), SpanID: sc.SpanID().String()}
}

// NewEntry builds an entry stamped with the trace of ctx.
func NewEntry(ctx context.Context, sagaID, orderID string, status Status, step, payload string, errs []string) *Entry {
	ti := ExtractTraceInfo(ctx)

	errJSON := "[]"
	if len(errs) > 0 {
		if b, err := json.Marshal(errs); err == nil {
			errJSON = string(b)
		}
	}

	return &Entry{
		SagaID:    sagaID,
		OrderID:   orderID,
		Status:    status,
		Step:      step,
		Payload:   payload,
		Errors:    errJSON,
		TraceID:   ti.TraceID,
		SpanID:    ti.SpanID,
		UpdatedAt: time.Now().UTC(),
	}
}
