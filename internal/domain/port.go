package domain

import "context"

// LinkProvider drives the external provider's device-authorization grant.
type LinkProvider interface {
	// RequestDeviceCode starts a link attempt and returns the grant values.
	RequestDeviceCode(ctx context.Context, cred UpstreamCredential) (DeviceGrant, error)
	// CheckAuthorization asks the provider whether the human has completed
	// the external step. ErrLinkExpired signals the grant lapsed.
	CheckAuthorization(ctx context.Context, cred UpstreamCredential, deviceCode string) (PollOutcome, error)
	// VerifyLink re-verifies a completed link server-side.
	VerifyLink(ctx context.Context, cred UpstreamCredential) error
}

// AccountReader reads the linked external account's state.
type AccountReader interface {
	GetLinkedSnapshot(ctx context.Context, cred UpstreamCredential) (*LinkedAccountSnapshot, error)
	AddAthenaIDs(ctx context.Context, cred UpstreamCredential, ids []string) error
}

// RoleResolver resolves the caller's current role from the upstream service.
type RoleResolver interface {
	ResolveRole(ctx context.Context, cred UpstreamCredential) (Role, error)
}

// OTPSender requests a one-time password email from the upstream service.
type OTPSender interface {
	SendOTP(ctx context.Context, email string) error
}

// TokenIssuer generates signed backend tokens for downstream consumption.
type TokenIssuer interface {
	IssueBackendToken(subject string, role Role) (string, error)
}

// AttemptRegistry tracks the newest device code per credential. Used only
// under the supersede link policy; the independent policy never consults it.
type AttemptRegistry interface {
	Record(credentialKey, deviceCode string)
	Latest(credentialKey string) (string, bool)
	Flush()
}
