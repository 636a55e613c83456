package usecase

import (
	"context"
	"log/slog"
	"strings"

	"link-hub/internal/domain"
)

// AttachIdentifiers appends identifiers to the linked account's recognized
// set. Input is validated locally before any network call.
type AttachIdentifiers struct {
	accounts domain.AccountReader
	logger   *slog.Logger
}

// NewAttachIdentifiers creates the attach usecase.
func NewAttachIdentifiers(a domain.AccountReader, l *slog.Logger) *AttachIdentifiers {
	return &AttachIdentifiers{accounts: a, logger: l}
}

// Execute attaches the identifiers. The list must be non-empty and contain
// no blank entries.
func (uc *AttachIdentifiers) Execute(ctx context.Context, cred domain.UpstreamCredential, ids []string) error {
	if len(ids) == 0 {
		return domain.ErrNoIdentifiers
	}
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return domain.ErrNoIdentifiers
		}
	}

	if err := uc.accounts.AddAthenaIDs(ctx, cred, ids); err != nil {
		uc.logger.WarnContext(ctx, "attach identifiers failed", "count", len(ids), "error", err)
		return err
	}

	uc.logger.InfoContext(ctx, "identifiers attached", "count", len(ids))
	return nil
}
