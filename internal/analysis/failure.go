package analysis

import (
	"errors"
	"fmt"
)

// FallbackHint is shown when the service gave no usable explanation.
const FallbackHint = "Check backend server is running & CORS."

// Kind classifies a failed submission.
type Kind int

const (
	// KindUnknown covers every failure that is neither a transport nor a
	// server error, such as an unreadable success body.
	KindUnknown Kind = iota
	// KindNetwork means the request never reached the service or timed out.
	KindNetwork
	// KindServer means the service answered with a non-2xx status.
	KindServer
	// KindCanceled means the caller canceled the submission.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Failure is the structured error returned by Client.Analyze.
type Failure struct {
	Kind      Kind
	Status    int    // HTTP status for KindServer
	Body      string // Raw response body for KindServer, if any
	RequestID string
	Err       error
}

func (f *Failure) Error() string {
	switch f.Kind {
	case KindServer:
		body := f.Body
		if body == "" {
			body = FallbackHint
		}
		return fmt.Sprintf("Backend error (%d). %s", f.Status, body)
	case KindNetwork:
		if f.Err != nil {
			return fmt.Sprintf("Could not reach the analysis service (%v). %s", f.Err, FallbackHint)
		}
		return "Could not reach the analysis service. " + FallbackHint
	case KindCanceled:
		return "Analysis request was canceled"
	default:
		if f.Err != nil {
			return "Something went wrong: " + f.Err.Error()
		}
		return "Something went wrong"
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Retryable reports whether resending the same record may succeed.
// Only transport failures are retried.
func (f *Failure) Retryable() bool {
	return f.Kind == KindNetwork
}

// AsFailure converts any error into a *Failure, wrapping foreign errors as
// KindUnknown.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: KindUnknown, Err: err}
}
