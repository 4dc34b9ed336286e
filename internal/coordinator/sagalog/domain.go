// Package sagalog records every checkout run as an append-only audit trail.
// Each row carries the trace and span ids that were active when it was
// written, so a failed checkout can be found in the tracing backend.
package sagalog

import "time"

type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusStepDone     Status = "STEP_DONE"
	StatusCompensating Status = "COMPENSATING"
	StatusCompleted    Status = "COMPLETED"
	StatusFailed       Status = "FAILED"
)

// Entry is one row of the checkout log.
type Entry struct {
	// SagaID identifies one checkout run. The order id is not known until
	// the order row exists, so it is logged separately.
	SagaID  string
	OrderID string
	Status  Status
	Step    string
	// Payload is the JSON request summary, written on STARTED only.
	Payload string
	// Errors is a JSON array of failure messages.
	Errors    string
	TraceID   string
	SpanID    string
	UpdatedAt time.Time
}
