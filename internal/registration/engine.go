// Package registration implements the capacity-bounded registration engine
// shared by course enrollment, hostel booking, and event registration. Each
// domain instantiates an Engine over its own resource store and audit
// actions; the admission and waitlist semantics live here exactly once.
package registration

import (
	"context"
	"errors"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"campusdesk/internal/audit"
	"campusdesk/internal/platform/metrics"
	dErrors "campusdesk/pkg/domain-errors"
	"campusdesk/pkg/platform/sentinel"
	"campusdesk/pkg/requestcontext"
)

// Auditor records successful mutations. Emission is best-effort and must
// never fail the registration.
type Auditor interface {
	Emit(ctx context.Context, actor string, action audit.Action, details map[string]string)
}

// Checkpointer persists state after a completed mutation, best-effort.
type Checkpointer interface {
	Checkpoint(ctx context.Context)
}

// Config parameterizes an engine instance per domain.
type Config struct {
	// Domain labels metrics and traces, e.g. "enrollment".
	Domain string
	// ResourceKey names the resource in audit details and error messages,
	// e.g. "course".
	ResourceKey string
	// AdmitAction and WaitlistAction are the audit actions recorded on
	// admission and on waitlisting.
	AdmitAction    audit.Action
	WaitlistAction audit.Action
	// AllowWaitlist queues students when the resource is full. When false a
	// full resource yields OutcomeFull instead.
	AllowWaitlist bool
}

// Engine applies the registration rules to one resource store.
type Engine struct {
	store   Store
	cfg     Config
	auditor Auditor
	persist Checkpointer
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithAuditor wires the audit publisher.
func WithAuditor(a Auditor) Option {
	return func(e *Engine) { e.auditor = a }
}

// WithCheckpointer wires the persistence port.
func WithCheckpointer(c Checkpointer) Option {
	return func(e *Engine) { e.persist = c }
}

// WithMetrics wires outcome counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New constructs an engine over the given store.
func New(store Store, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		cfg:    cfg,
		tracer: otel.Tracer("campusdesk/registration"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store exposes the underlying resource store for read-side endpoints.
func (e *Engine) Store() Store { return e.store }

// Register attempts to give studentID a slot on resourceID.
//
// The decision and the mutation run as one critical section under the
// resource's lock, so len(Holders) <= Capacity holds under concurrent calls.
// Duplicate calls are idempotent: an existing holder gets
// OutcomeAlreadyRegistered, an already queued student OutcomeAlreadyWaitlisted,
// and neither mutates state.
func (e *Engine) Register(ctx context.Context, resourceID, studentID string) (Result, error) {
	ctx, span := e.tracer.Start(ctx, "registration.Register",
		trace.WithAttributes(
			attribute.String("registration.domain", e.cfg.Domain),
			attribute.String("registration.resource_id", resourceID),
		))
	defer span.End()

	if studentID == "" {
		return Result{}, dErrors.New(dErrors.CodeValidation, "student_id is required")
	}
	if resourceID == "" {
		return Result{}, dErrors.New(dErrors.CodeValidation, e.cfg.ResourceKey+"_id is required")
	}

	now := requestcontext.Now(ctx)

	var result Result
	_, err := e.store.Execute(ctx, resourceID, func(r *Resource) error {
		switch {
		case r.HasHolder(studentID):
			result = Result{Outcome: OutcomeAlreadyRegistered}

		case r.CanAdmit() == nil:
			r.ApplyAdmission(studentID)
			result = Result{Outcome: OutcomeAdmitted}

		case !e.cfg.AllowWaitlist:
			result = Result{Outcome: OutcomeFull}

		default:
			if pos, ok := r.WaitlistPosition(studentID); ok {
				result = Result{Outcome: OutcomeAlreadyWaitlisted, Position: pos}
				return nil
			}
			pos := r.ApplyEnqueue(studentID, now)
			result = Result{Outcome: OutcomeWaitlisted, Position: pos}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Result{}, dErrors.Wrap(err, dErrors.CodeNotFound, e.cfg.ResourceKey+" not found")
		}
		return Result{}, dErrors.Wrap(err, dErrors.CodeInternal, "registration failed")
	}

	span.SetAttributes(attribute.String("registration.outcome", string(result.Outcome)))
	if e.metrics != nil {
		e.metrics.IncrementRegistration(e.cfg.Domain, string(result.Outcome))
	}

	// Side effects stay outside the critical section.
	if result.Outcome.Mutated() {
		if e.auditor != nil {
			action := e.cfg.AdmitAction
			details := map[string]string{e.cfg.ResourceKey: resourceID}
			if result.Outcome == OutcomeWaitlisted {
				action = e.cfg.WaitlistAction
				details["position"] = strconv.Itoa(result.Position)
			}
			e.auditor.Emit(ctx, studentID, action, details)
		}
		if e.persist != nil {
			e.persist.Checkpoint(ctx)
		}
	}

	return result, nil
}
