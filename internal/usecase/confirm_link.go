package usecase

import (
	"context"
	"errors"
	"log/slog"

	"link-hub/internal/domain"
)

// ConfirmLink re-verifies an authorized link server-side and attaches the
// linked-account snapshot to the session. Idempotent after success: a second
// call re-verifies and returns the identical snapshot.
type ConfirmLink struct {
	provider domain.LinkProvider
	accounts domain.AccountReader
	policy   LinkPolicy
	registry domain.AttemptRegistry
	logger   *slog.Logger
}

// NewConfirmLink creates the confirm usecase.
func NewConfirmLink(p domain.LinkProvider, a domain.AccountReader, policy LinkPolicy, r domain.AttemptRegistry, l *slog.Logger) *ConfirmLink {
	return &ConfirmLink{provider: p, accounts: a, policy: policy, registry: r, logger: l}
}

// Execute confirms the link. The session must be Completed; a grant that
// lapsed between poll-success and confirm surfaces as ErrLinkExpired and
// moves the session to Expired. A device code displaced by a newer Initiate
// under the supersede policy is rejected before any network call.
func (uc *ConfirmLink) Execute(ctx context.Context, cred domain.UpstreamCredential, session *domain.LinkingSession) (*domain.LinkedAccountSnapshot, error) {
	if err := session.Require(domain.LinkStateCompleted); err != nil {
		return nil, err
	}
	if attemptSuperseded(uc.policy, uc.registry, cred, session) {
		session.State = domain.LinkStateFailed
		return nil, domain.ErrLinkSuperseded
	}

	if err := uc.provider.VerifyLink(ctx, cred); err != nil {
		if errors.Is(err, domain.ErrLinkExpired) {
			session.State = domain.LinkStateExpired
			uc.logger.InfoContext(ctx, "link expired before confirmation", "link_session_id", session.ID)
		}
		return nil, err
	}

	if session.Snapshot == nil {
		snapshot, err := uc.accounts.GetLinkedSnapshot(ctx, cred)
		if err != nil {
			return nil, err
		}
		session.Snapshot = snapshot
	}

	return session.Snapshot, nil
}
