package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"link-hub/internal/domain"
)

// SessionResult holds the data returned by GetSession.
type SessionResult struct {
	Role         domain.Role
	BackendToken string
}

// GetSession resolves the caller's role and issues a signed backend token
// for downstream services. The role in the result is a display hint for the
// frontend; privileged routes always go through Authorize again.
type GetSession struct {
	resolver domain.RoleResolver
	token    domain.TokenIssuer
	logger   *slog.Logger
}

// NewGetSession creates the session usecase.
func NewGetSession(r domain.RoleResolver, t domain.TokenIssuer, l *slog.Logger) *GetSession {
	return &GetSession{resolver: r, token: t, logger: l}
}

// Execute composes the credential, resolves the role and issues the token.
func (uc *GetSession) Execute(ctx context.Context, store domain.CredentialStore) (*SessionResult, error) {
	cred, err := domain.ComposeFrom(store)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	role, err := uc.resolver.ResolveRole(ctx, cred)
	if err != nil {
		return nil, err
	}

	backendToken, err := uc.token.IssueBackendToken(credentialKey(cred), role)
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to issue backend token", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenGeneration, err)
	}

	return &SessionResult{Role: role, BackendToken: backendToken}, nil
}
