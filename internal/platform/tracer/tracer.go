// Package tracer provides a small tracing abstraction for the status service.
//
// The service depends on the Tracer and Span interfaces only; OTelTracer
// adapts them to OpenTelemetry and NoopTracer keeps tests free of exporters.
package tracer

import (
	"context"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, marking it failed when err is non-nil.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
//
//	ctx, span := t.Start(ctx, tracer.SpanStatusRespond,
//	    tracer.String(tracer.AttrReferenceHash, privacy.HashReference(ref)),
//	)
//	defer span.End(nil)
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Span names.
const (
	SpanStatusRespond = "statuscheck.respond"
)

// Attribute keys.
const (
	AttrReferenceHash    = "disclosure_ref.hash"
	AttrMethod           = "http.method"
	AttrOutcome          = "statuscheck.outcome"
	AttrStatusCode       = "http.status_code"
	AttrValidationErrors = "statuscheck.validation_errors"
)

// Event names.
const (
	EventValidationFailed = "validation.failed"
)
