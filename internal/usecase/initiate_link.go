package usecase

import (
	"context"
	"log/slog"

	"link-hub/internal/domain"

	"github.com/google/uuid"
)

// LinkPolicy decides how a new Initiate interacts with link attempts that
// are still pending for the same credential.
type LinkPolicy string

const (
	// PolicyIndependent lets concurrent attempts run unrelated to each other.
	PolicyIndependent LinkPolicy = "independent"
	// PolicySupersede invalidates older pending attempts for the same
	// credential; polling a superseded device code fails locally.
	PolicySupersede LinkPolicy = "supersede"
)

// InitiateLink starts a device-authorization attempt against the external
// provider and hands the resulting session to the caller.
type InitiateLink struct {
	provider domain.LinkProvider
	policy   LinkPolicy
	registry domain.AttemptRegistry
	logger   *slog.Logger
}

// NewInitiateLink creates the initiate usecase. The registry may be nil when
// the policy is PolicyIndependent.
func NewInitiateLink(p domain.LinkProvider, policy LinkPolicy, r domain.AttemptRegistry, l *slog.Logger) *InitiateLink {
	return &InitiateLink{provider: p, policy: policy, registry: r, logger: l}
}

// Execute requests a device code and returns a Pending session owned by the
// caller. Initiation is itself an authenticated action, so the composed
// credential is required up front.
func (uc *InitiateLink) Execute(ctx context.Context, cred domain.UpstreamCredential) (*domain.LinkingSession, error) {
	grant, err := uc.provider.RequestDeviceCode(ctx, cred)
	if err != nil {
		uc.logger.WarnContext(ctx, "device code request failed", "error", err)
		return nil, err
	}

	session := &domain.LinkingSession{
		ID:              uuid.NewString(),
		DeviceCode:      grant.DeviceCode,
		UserCode:        grant.UserCode,
		VerificationURI: grant.VerificationURI,
		State:           domain.LinkStatePending,
	}

	if uc.policy == PolicySupersede && uc.registry != nil {
		uc.registry.Record(credentialKey(cred), session.DeviceCode)
	}

	uc.logger.InfoContext(ctx, "link attempt initiated", "link_session_id", session.ID)
	return session, nil
}
