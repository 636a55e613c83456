package domain

// LinkState is the lifecycle state of one external-account link attempt.
type LinkState string

const (
	LinkStateInitiated LinkState = "initiated"
	LinkStatePending   LinkState = "pending"
	LinkStateCompleted LinkState = "completed"
	LinkStateExpired   LinkState = "expired"
	LinkStateFailed    LinkState = "failed"
)

// Terminal reports whether the state admits no further transitions. A
// session in a terminal state must be discarded and linking restarted.
func (s LinkState) Terminal() bool {
	return s == LinkStateExpired || s == LinkStateFailed
}

// DeviceGrant holds the three values the external provider hands out when a
// device-authorization attempt starts. All fields are required.
type DeviceGrant struct {
	DeviceCode      string
	UserCode        string
	VerificationURI string
}

// LinkingSession tracks one in-progress external-account link attempt. The
// caller owns it; the gateway holds no copy between requests.
type LinkingSession struct {
	ID              string
	DeviceCode      string
	UserCode        string
	VerificationURI string
	State           LinkState
	Snapshot        *LinkedAccountSnapshot
}

// Require returns ErrInvalidState unless the session is in one of the given
// states. Flow operations call this before any network activity.
func (s *LinkingSession) Require(states ...LinkState) error {
	for _, state := range states {
		if s.State == state {
			return nil
		}
	}
	return ErrInvalidState
}

// LinkedAccountSnapshot is a read-only projection of the external account at
// confirmation time. Immutable after creation.
type LinkedAccountSnapshot struct {
	ID             string
	SuggestedName  string
	CosmeticCounts map[string]int
}

// PollOutcome is the result of one check against the external provider.
type PollOutcome string

const (
	PollOutcomeAuthorized PollOutcome = "authorized"
	PollOutcomePending    PollOutcome = "pending"
)
