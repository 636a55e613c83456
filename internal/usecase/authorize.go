package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"link-hub/internal/domain"
)

// Authorize is the role gate for privileged operations. It composes the
// caller's credential, re-resolves the role from upstream on every call and
// denies by default when resolution fails.
type Authorize struct {
	resolver domain.RoleResolver
	logger   *slog.Logger
}

// NewAuthorize creates the authorization usecase.
func NewAuthorize(r domain.RoleResolver, l *slog.Logger) *Authorize {
	return &Authorize{resolver: r, logger: l}
}

// Execute checks that the caller holds one of the allowed roles and returns
// the resolved role on success. No network call is made when the credential
// cannot be composed.
func (uc *Authorize) Execute(ctx context.Context, store domain.CredentialStore, allowed ...domain.Role) (domain.Role, error) {
	cred, err := domain.ComposeFrom(store)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	role, err := uc.resolver.ResolveRole(ctx, cred)
	if err != nil {
		uc.logger.WarnContext(ctx, "role resolution failed, denying", "error", err)
		return "", err
	}

	if !role.In(allowed...) {
		return "", domain.ErrForbidden
	}
	return role, nil
}
