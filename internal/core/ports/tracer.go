package ports

import "context"

// Span represents one traced phase of a build.
type Span interface {
	// RecordError attaches the error to the span.
	RecordError(err error)
	// End completes the span.
	End()
}

// Tracer creates spans around build phases.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start begins a span with the given name and returns a context
	// carrying it.
	Start(ctx context.Context, name string) (context.Context, Span)
}
