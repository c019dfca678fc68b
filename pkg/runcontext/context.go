// Package runcontext provides context accessors for run-scoped values.
//
// A validation run is tagged with an ID and a start time when the pipeline
// begins. Components read them for log correlation without taking them as
// explicit parameters.
//
//	ctx = runcontext.WithRunID(ctx, uuid.NewString())
//	runID := runcontext.RunID(ctx)
package runcontext

import (
	"context"
	"time"
)

type (
	runIDKey     struct{}
	startedAtKey struct{}
)

// RunID retrieves the run identifier from the context.
// Returns "" if not set.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRunID injects a run identifier into the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// StartedAt retrieves the run start time from the context.
// Falls back to time.Now() when the run did not record one.
func StartedAt(ctx context.Context) time.Time {
	if t, ok := ctx.Value(startedAtKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithStartedAt injects the run start time into the context.
func WithStartedAt(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startedAtKey{}, t)
}
