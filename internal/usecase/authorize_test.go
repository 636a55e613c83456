package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"link-hub/internal/domain"

	"github.com/stretchr/testify/assert"
)

func sellerStore() *fakeStore {
	return &fakeStore{
		fragments: domain.CredentialFragments{Session: "s1", Token: "t1"},
		present:   true,
	}
}

func TestAuthorize_ApprovesAllowedRoles(t *testing.T) {
	for _, allowed := range []domain.Role{domain.RoleSeller, domain.RoleAdmin} {
		t.Run(string(allowed), func(t *testing.T) {
			resolver := &mockResolver{role: allowed}

			uc := NewAuthorize(resolver, slog.Default())
			role, err := uc.Execute(context.Background(), sellerStore(), domain.RoleSeller, domain.RoleAdmin)

			assert.NoError(t, err)
			assert.Equal(t, allowed, role)
		})
	}
}

func TestAuthorize_DeniesBuyer(t *testing.T) {
	resolver := &mockResolver{role: domain.RoleBuyer}

	uc := NewAuthorize(resolver, slog.Default())
	_, err := uc.Execute(context.Background(), sellerStore(), domain.RoleSeller, domain.RoleAdmin)

	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestAuthorize_MissingCredential(t *testing.T) {
	resolver := &mockResolver{role: domain.RoleAdmin}

	uc := NewAuthorize(resolver, slog.Default())
	_, err := uc.Execute(context.Background(), &fakeStore{}, domain.RoleSeller, domain.RoleAdmin)

	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
	assert.Zero(t, resolver.calls, "no upstream call without a composed credential")
}

func TestAuthorize_ResolutionFailureDenies(t *testing.T) {
	resolver := &mockResolver{err: domain.ErrRoleResolution}

	uc := NewAuthorize(resolver, slog.Default())
	role, err := uc.Execute(context.Background(), sellerStore(), domain.RoleSeller, domain.RoleAdmin)

	assert.Empty(t, role)
	assert.True(t, errors.Is(err, domain.ErrRoleResolution))
}

func TestAuthorize_ResolvesEveryCall(t *testing.T) {
	resolver := &mockResolver{role: domain.RoleSeller}
	store := sellerStore()

	uc := NewAuthorize(resolver, slog.Default())
	_, err := uc.Execute(context.Background(), store, domain.RoleSeller)
	assert.NoError(t, err)
	_, err = uc.Execute(context.Background(), store, domain.RoleSeller)
	assert.NoError(t, err)

	assert.Equal(t, 2, resolver.calls, "role is never cached across calls")
}

func TestGetSession_IssuesBackendToken(t *testing.T) {
	resolver := &mockResolver{role: domain.RoleSeller}
	issuer := &mockIssuer{token: "signed-token"}

	uc := NewGetSession(resolver, issuer, slog.Default())
	result, err := uc.Execute(context.Background(), sellerStore())

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleSeller, result.Role)
	assert.Equal(t, "signed-token", result.BackendToken)
}

func TestGetSession_MissingCredential(t *testing.T) {
	uc := NewGetSession(&mockResolver{}, &mockIssuer{}, slog.Default())
	_, err := uc.Execute(context.Background(), &fakeStore{})

	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
}

func TestGetSession_TokenFailure(t *testing.T) {
	resolver := &mockResolver{role: domain.RoleBuyer}
	issuer := &mockIssuer{err: errors.New("weak secret")}

	uc := NewGetSession(resolver, issuer, slog.Default())
	_, err := uc.Execute(context.Background(), sellerStore())

	assert.True(t, errors.Is(err, domain.ErrTokenGeneration))
}

func TestSendOTP_Success(t *testing.T) {
	sender := &mockSender{}

	uc := NewSendOTP(sender, slog.Default())
	err := uc.Execute(context.Background(), "user@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", sender.lastEmail)
}

func TestSendOTP_InvalidEmail(t *testing.T) {
	sender := &mockSender{}

	uc := NewSendOTP(sender, slog.Default())
	err := uc.Execute(context.Background(), "not-an-email")

	assert.True(t, errors.Is(err, domain.ErrInvalidEmail))
	assert.Zero(t, sender.calls)
}
