package generation

import "errors"

// Classified failures surfaced by the model gateway. The orchestrator
// maps each kind to a distinct user-facing message, so they must stay
// distinguishable with errors.Is.
var (
	// ErrTimeout is returned when the completion call exceeds the
	// gateway's hard request timeout, including time spent in retries.
	ErrTimeout = errors.New("model request took too long")

	// ErrUpstream is returned for transport-level failures: network
	// errors, non-retryable HTTP statuses, or retryable statuses that
	// exhausted the retry budget.
	ErrUpstream = errors.New("model endpoint request failed")

	// ErrMalformedResponse is returned when the endpoint answered
	// successfully but the envelope lacks the expected
	// candidate/content/parts shape. Distinct from transport failures
	// so the caller can choose the right fallback message.
	ErrMalformedResponse = errors.New("malformed response from model endpoint")

	// ErrContentBlocked is returned when the model refuses the prompt
	// on safety grounds. Never retried.
	ErrContentBlocked = errors.New("content blocked by model safety filters")

	// ErrInvalidConfig is returned when the gateway configuration is
	// incomplete at construction time.
	ErrInvalidConfig = errors.New("invalid gateway configuration")
)
