package types

import "context"

// contextKey is used for storing values in context.Context.
type contextKey string

const (
	keyRunID   contextKey = "run_id"
	keyTrialID contextKey = "trial_id"
)

// WithRunID adds the run ID to context, for log correlation across every
// trial in a batch.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, keyRunID, runID)
}

// RunID extracts the run ID from context.
func RunID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyRunID).(string)
	return v, ok && v != ""
}

// WithTrialID adds the trial ID to context, for log correlation across the
// agent calls that make up one trial.
func WithTrialID(ctx context.Context, trialID string) context.Context {
	return context.WithValue(ctx, keyTrialID, trialID)
}

// TrialID extracts the trial ID from context.
func TrialID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyTrialID).(string)
	return v, ok && v != ""
}
