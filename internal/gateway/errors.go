package gateway

import "fmt"

// Kind discriminates gateway failures. Every kind maps to a distinct
// in-conversation apology so a failed exchange stays visible to the farmer.
type Kind int

const (
	// KindRateLimited is a 429 from the inference endpoint.
	KindRateLimited Kind = iota + 1
	// KindQuotaExhausted is a 402; billing action is needed upstream.
	KindQuotaExhausted
	// KindUnavailable covers any other non-2xx, transport failures and
	// malformed completion bodies.
	KindUnavailable
	// KindMisconfigured means the server-side credential is missing. Fatal
	// for the request only; the conversation stays usable.
	KindMisconfigured
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindQuotaExhausted:
		return "quota_exhausted"
	case KindMisconfigured:
		return "misconfigured"
	default:
		return "unavailable"
	}
}

// Error is a typed gateway failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("gateway %s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying transport error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Apology is the assistant-voiced text appended to the conversation when
// this error occurs.
func (e *Error) Apology() string {
	switch e.Kind {
	case KindRateLimited:
		return "Sorry, rate limits exceeded. Please try again later."
	case KindQuotaExhausted:
		return "Sorry, the assistant's usage quota is exhausted. Please ask the site operator to add funds to the AI workspace."
	case KindMisconfigured:
		return "Sorry, the assistant is not set up correctly. Please contact support."
	default:
		return "Sorry, I encountered an error. Please try again."
	}
}
