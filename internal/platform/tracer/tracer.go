// Package tracer defines a thin tracing seam so services do not depend on
// OpenTelemetry APIs directly.
package tracer

import "context"

// Attribute is a key/value pair attached to a span.
type Attribute struct {
	Key   string
	Value any
}

// String builds a string attribute.
func String(key, value string) Attribute { return Attribute{Key: key, Value: value} }

// Int64 builds an int64 attribute.
func Int64(key string, value int64) Attribute { return Attribute{Key: key, Value: value} }

// Float64 builds a float64 attribute.
func Float64(key string, value float64) Attribute { return Attribute{Key: key, Value: value} }

// Span is an in-flight traced operation.
type Span interface {
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer starts spans.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Noop returns a tracer that records nothing. Used in tests and when tracing
// is not configured.
func Noop() Tracer { return noopTracer{} }

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error)                      {}
func (noopSpan) SetAttributes(...Attribute)     {}
func (noopSpan) AddEvent(string, ...Attribute)  {}
