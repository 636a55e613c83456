package usecase

import (
	"context"
	"log/slog"

	"link-hub/internal/domain"
)

// FetchSnapshot retrieves the linked-account projection for a confirmed
// link, independently of the confirm step.
type FetchSnapshot struct {
	accounts domain.AccountReader
	logger   *slog.Logger
}

// NewFetchSnapshot creates the snapshot usecase.
func NewFetchSnapshot(a domain.AccountReader, l *slog.Logger) *FetchSnapshot {
	return &FetchSnapshot{accounts: a, logger: l}
}

// Execute fetches the snapshot. The session must be Completed.
func (uc *FetchSnapshot) Execute(ctx context.Context, cred domain.UpstreamCredential, session *domain.LinkingSession) (*domain.LinkedAccountSnapshot, error) {
	if err := session.Require(domain.LinkStateCompleted); err != nil {
		return nil, err
	}

	snapshot, err := uc.accounts.GetLinkedSnapshot(ctx, cred)
	if err != nil {
		uc.logger.WarnContext(ctx, "snapshot fetch failed", "link_session_id", session.ID, "error", err)
		return nil, err
	}
	return snapshot, nil
}
