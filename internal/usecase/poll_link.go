package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"

	"link-hub/internal/domain"
)

// credentialKey derives the registry key for a credential. The raw session
// fragment never leaves the process through the registry.
func credentialKey(cred domain.UpstreamCredential) string {
	sum := sha256.Sum256([]byte(cred.SessionFragment()))
	return hex.EncodeToString(sum[:])
}

// attemptSuperseded reports whether the session's device code was displaced
// by a newer Initiate under the supersede policy.
func attemptSuperseded(policy LinkPolicy, registry domain.AttemptRegistry, cred domain.UpstreamCredential, session *domain.LinkingSession) bool {
	if policy != PolicySupersede || registry == nil {
		return false
	}
	latest, ok := registry.Latest(credentialKey(cred))
	return ok && latest != session.DeviceCode
}

// PollLink performs one caller-driven check of a pending link attempt. The
// gateway never polls on its own; cadence and give-up are the caller's.
type PollLink struct {
	provider domain.LinkProvider
	policy   LinkPolicy
	registry domain.AttemptRegistry
	logger   *slog.Logger
}

// NewPollLink creates the poll usecase.
func NewPollLink(p domain.LinkProvider, policy LinkPolicy, r domain.AttemptRegistry, l *slog.Logger) *PollLink {
	return &PollLink{provider: p, policy: policy, registry: r, logger: l}
}

// Execute advances the session by one poll. The session must be Pending;
// anything else is rejected locally before any network call.
func (uc *PollLink) Execute(ctx context.Context, cred domain.UpstreamCredential, session *domain.LinkingSession) error {
	if err := session.Require(domain.LinkStatePending); err != nil {
		return err
	}
	if err := uc.checkSuperseded(cred, session); err != nil {
		return err
	}

	outcome, err := uc.provider.CheckAuthorization(ctx, cred, session.DeviceCode)
	if err != nil {
		if errors.Is(err, domain.ErrLinkExpired) {
			session.State = domain.LinkStateExpired
			return err
		}
		session.State = domain.LinkStateFailed
		uc.logger.WarnContext(ctx, "link poll failed", "link_session_id", session.ID, "error", err)
		return err
	}

	if outcome == domain.PollOutcomePending {
		return nil
	}

	session.State = domain.LinkStateCompleted
	uc.logger.InfoContext(ctx, "link authorized", "link_session_id", session.ID)
	return nil
}

// checkSuperseded rejects polls on device codes displaced by a newer
// Initiate under the supersede policy.
func (uc *PollLink) checkSuperseded(cred domain.UpstreamCredential, session *domain.LinkingSession) error {
	if attemptSuperseded(uc.policy, uc.registry, cred, session) {
		session.State = domain.LinkStateFailed
		return domain.ErrLinkSuperseded
	}
	return nil
}
