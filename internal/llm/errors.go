package llm

import "errors"

var (
	// ErrUnavailable indicates the model server is unreachable.
	ErrUnavailable = errors.New("llm server unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response was empty or could not be
	// parsed into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrMissingAPIKey indicates a hosted provider was selected without a key.
	ErrMissingAPIKey = errors.New("api key is not configured")

	// ErrRejected indicates the provider refused the request (bad key,
	// unknown model, invalid parameters). Retrying will not help.
	ErrRejected = errors.New("llm provider rejected the request")
)
