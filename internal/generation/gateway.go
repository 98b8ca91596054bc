package generation

import "context"

// Options are the per-call generation knobs. Call sites vary them: the
// turn path uses a higher creativity budget than the echo path.
type Options struct {
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

// TurnOptions is the generation budget for opening, intermediate and
// closing turns.
func TurnOptions() Options {
	return Options{Temperature: 0.88, TopP: 0.9, MaxOutputTokens: 700}
}

// EchoOptions is the lower budget used by the unbounded seed's
// single-shot echo flow.
func EchoOptions() Options {
	return Options{Temperature: 0.7, TopP: 0.8, MaxOutputTokens: 300}
}

// ImageOptions is the budget for the cover-image wrapper endpoint.
func ImageOptions() Options {
	return Options{Temperature: 0.9, TopP: 0.95, MaxOutputTokens: 2048}
}

// Gateway sends a rendered prompt to the external completion endpoint
// and returns the raw reply text. Implementations own retry, backoff and
// the hard request timeout; failures are classified with the sentinel
// errors in this package.
type Gateway interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}
