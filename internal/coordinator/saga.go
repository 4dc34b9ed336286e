package coordinator

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/storefront/internal/coordinator/sagalog"
)

// Step is a single unit of work in a saga. Compensate undoes Execute and is
// only called for steps whose Execute succeeded.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// OrderIDer is implemented by steps that learn the order id, so later log
// entries can carry it.
type OrderIDer interface {
	OrderID() string
}

// Orchestrator runs Steps in order and compensates the completed ones in
// reverse when a step fails.
type Orchestrator struct {
	sagaID string
	steps  []Step
	log    sagalog.Repository
	tracer trace.Tracer
}

// NewOrchestrator builds an orchestrator for one run. repo may be nil.
func NewOrchestrator(sagaID string, repo sagalog.Repository, steps ...Step) *Orchestrator {
	return &Orchestrator{
		sagaID: sagaID,
		steps:  steps,
		log:    repo,
		tracer: otel.Tracer("coordinator"),
	}
}

// Start runs the steps. payload is stored with the STARTED entry.
func (o *Orchestrator) Start(ctx context.Context, payload string) error {
	ctx, span := o.tracer.Start(ctx, "saga "+o.sagaID)
	defer span.End()

	o.record(ctx, sagalog.StatusStarted, "", payload, nil)

	var done []Step
	for _, step := range o.steps {
		if err := o.execute(ctx, step); err != nil {
			slog.WarnContext(ctx, "saga step failed, compensating",
				"saga_id", o.sagaID, "step", step.Name(), "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, step.Name()+" failed")

			errs := append([]string{step.Name() + ": " + err.Error()}, o.rollback(ctx, done)...)
			o.record(ctx, sagalog.StatusFailed, step.Name(), "", errs)
			return err
		}
		done = append(done, step)
		o.record(ctx, sagalog.StatusStepDone, step.Name(), "", nil)
	}

	o.record(ctx, sagalog.StatusCompleted, "", "", nil)
	slog.InfoContext(ctx, "saga completed", "saga_id", o.sagaID, "order_id", o.orderID())
	return nil
}

func (o *Orchestrator) execute(ctx context.Context, step Step) error {
	ctx, span := o.tracer.Start(ctx, step.Name())
	defer span.End()

	if err := step.Execute(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// rollback compensates steps in LIFO order and returns the compensation
// failures.
func (o *Orchestrator) rollback(ctx context.Context, steps []Step) []string {
	var failures []string
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		o.record(ctx, sagalog.StatusCompensating, step.Name(), "", nil)
		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to compensate step",
				"saga_id", o.sagaID, "step", step.Name(), "error", err)
			failures = append(failures, "compensate "+step.Name()+": "+err.Error())
		}
	}
	return failures
}

func (o *Orchestrator) orderID() string {
	for _, step := range o.steps {
		if s, ok := step.(OrderIDer); ok && s.OrderID() != "" {
			return s.OrderID()
		}
	}
	return ""
}

// record appends to the checkout log. Log failures never fail the saga.
func (o *Orchestrator) record(ctx context.Context, status sagalog.Status, step, payload string, errs []string) {
	if o.log == nil {
		return
	}
	entry := sagalog.NewEntry(ctx, o.sagaID, o.orderID(), status, step, payload, errs)
	if err := o.log.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to write checkout log", "saga_id", o.sagaID, "status", status, "error", err)
	}
}
