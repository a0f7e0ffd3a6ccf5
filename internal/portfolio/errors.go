package portfolio

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument signals that parsing succeeded but the document carried
// no extractable text, e.g. a scanned image. The generator is never invoked
// in that case.
var ErrEmptyDocument = errors.New("no extractable text in document")

// CredentialError reports a missing credential or one the generation
// service rejected. UserSupplied distinguishes a key the user typed in from
// the system default, so the caller can render an actionable message.
type CredentialError struct {
	UserSupplied bool
	Err          error
}

func (e *CredentialError) Error() string {
	if e.Err == nil {
		return "generation credential missing"
	}
	return fmt.Sprintf("generation credential rejected: %v", e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// QuotaError reports that rate limiting persisted past the retry budget.
type QuotaError struct {
	Attempts int
	Err      error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("generation quota exceeded after %d attempts: %v", e.Attempts, e.Err)
}

func (e *QuotaError) Unwrap() error { return e.Err }

// ParseError reports that the service's response could not be coerced into
// the expected JSON shape. Raw keeps the offending response so prompt drift
// stays diagnosable.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse generation response: %v; raw response: %s", e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UpstreamError wraps any other failure from the generation service.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation service error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
