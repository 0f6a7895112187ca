package fetcher

import (
	"errors"
	"fmt"
)

// Kind categorizes a fetch failure. Raw transport errors never cross
// the fetcher boundary; every failure is translated into an *Error.
type Kind int

const (
	// KindInvalidRequest means the request itself could not be built.
	KindInvalidRequest Kind = iota
	// KindTransport covers connectivity failures, timeouts and cancellation.
	KindTransport
	// KindHTTPStatus is a non-2xx response from the backend.
	KindHTTPStatus
	// KindInvalidShape means the payload matched none of the recognized forms.
	KindInvalidShape
	// KindParse means the payload was recognized but could not be decoded.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid request"
	case KindTransport:
		return "transport failure"
	case KindHTTPStatus:
		return "http status error"
	case KindInvalidShape:
		return "invalid response shape"
	case KindParse:
		return "parse failure"
	}
	return "unknown"
}

// Error is the typed failure returned by every fetcher operation.
type Error struct {
	Kind       Kind
	StatusCode int    // set for KindHTTPStatus
	Message    string // human-readable, safe to surface to the UI
	Details    string // optional server-provided or wrapped detail
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsKind reports whether err is a fetcher Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == kind
}

// apiErrorBody is the structured error payload some backend responses carry.
type apiErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
}
