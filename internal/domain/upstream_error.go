package domain

import "fmt"

// UpstreamErrorKind classifies a failed upstream call.
type UpstreamErrorKind string

const (
	// UpstreamNetwork means no response was received at all.
	UpstreamNetwork UpstreamErrorKind = "network"
	// UpstreamClientRejected means the upstream answered with a 4xx status.
	UpstreamClientRejected UpstreamErrorKind = "client_rejected"
	// UpstreamServerFault means the upstream answered with a 5xx status.
	UpstreamServerFault UpstreamErrorKind = "server_fault"
	// UpstreamMalformed means a response arrived but failed schema expectations.
	UpstreamMalformed UpstreamErrorKind = "malformed"
)

// UpstreamError is the typed result of a failed upstream call. Status and
// Body are zero/empty for UpstreamNetwork.
type UpstreamError struct {
	Kind   UpstreamErrorKind
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	switch e.Kind {
	case UpstreamNetwork:
		return fmt.Sprintf("upstream unreachable: %v", e.Err)
	case UpstreamMalformed:
		if e.Err != nil {
			return fmt.Sprintf("malformed upstream response: %v", e.Err)
		}
		return "malformed upstream response"
	default:
		return fmt.Sprintf("upstream returned status %d", e.Status)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Retryable reports whether the caller may retry the same request with
// backoff. Client rejections and malformed responses require a changed
// input, not a retry.
func (e *UpstreamError) Retryable() bool {
	return e.Kind == UpstreamNetwork || e.Kind == UpstreamServerFault
}
