package usecase

import (
	"context"
	"testing"

	"link-hub/internal/domain"

	"github.com/stretchr/testify/require"
)

// mockProvider implements domain.LinkProvider for testing.
type mockProvider struct {
	grant        domain.DeviceGrant
	grantErr     error
	outcome      domain.PollOutcome
	outcomeErr   error
	verifyErr    error
	grantCalls   int
	checkCalls   int
	verifyCalls  int
	lastDeviceCd string
}

func (m *mockProvider) RequestDeviceCode(_ context.Context, _ domain.UpstreamCredential) (domain.DeviceGrant, error) {
	m.grantCalls++
	return m.grant, m.grantErr
}

func (m *mockProvider) CheckAuthorization(_ context.Context, _ domain.UpstreamCredential, deviceCode string) (domain.PollOutcome, error) {
	m.checkCalls++
	m.lastDeviceCd = deviceCode
	return m.outcome, m.outcomeErr
}

func (m *mockProvider) VerifyLink(_ context.Context, _ domain.UpstreamCredential) error {
	m.verifyCalls++
	return m.verifyErr
}

// mockAccounts implements domain.AccountReader for testing.
type mockAccounts struct {
	snapshot      *domain.LinkedAccountSnapshot
	snapshotErr   error
	addErr        error
	snapshotCalls int
	addCalls      int
	lastIDs       []string
}

func (m *mockAccounts) GetLinkedSnapshot(_ context.Context, _ domain.UpstreamCredential) (*domain.LinkedAccountSnapshot, error) {
	m.snapshotCalls++
	return m.snapshot, m.snapshotErr
}

func (m *mockAccounts) AddAthenaIDs(_ context.Context, _ domain.UpstreamCredential, ids []string) error {
	m.addCalls++
	m.lastIDs = ids
	return m.addErr
}

// mockResolver implements domain.RoleResolver for testing.
type mockResolver struct {
	role  domain.Role
	err   error
	calls int
}

func (m *mockResolver) ResolveRole(_ context.Context, _ domain.UpstreamCredential) (domain.Role, error) {
	m.calls++
	return m.role, m.err
}

// mockIssuer implements domain.TokenIssuer for testing.
type mockIssuer struct {
	token string
	err   error
}

func (m *mockIssuer) IssueBackendToken(_ string, _ domain.Role) (string, error) {
	return m.token, m.err
}

// mockSender implements domain.OTPSender for testing.
type mockSender struct {
	err       error
	calls     int
	lastEmail string
}

func (m *mockSender) SendOTP(_ context.Context, email string) error {
	m.calls++
	m.lastEmail = email
	return m.err
}

// memRegistry implements domain.AttemptRegistry for testing.
type memRegistry struct {
	entries map[string]string
}

func newMemRegistry() *memRegistry {
	return &memRegistry{entries: make(map[string]string)}
}

func (r *memRegistry) Record(key, deviceCode string) { r.entries[key] = deviceCode }

func (r *memRegistry) Latest(key string) (string, bool) {
	code, ok := r.entries[key]
	return code, ok
}

func (r *memRegistry) Flush() { r.entries = make(map[string]string) }

// fakeStore implements domain.CredentialStore for testing.
type fakeStore struct {
	fragments domain.CredentialFragments
	present   bool
}

func (s *fakeStore) Get() (domain.CredentialFragments, bool) { return s.fragments, s.present }
func (s *fakeStore) Set(f domain.CredentialFragments)        { s.fragments, s.present = f, true }
func (s *fakeStore) Clear()                                  { s.present = false }

func testCredential(t *testing.T) domain.UpstreamCredential {
	t.Helper()
	cred, err := domain.ComposeCredential(domain.CredentialFragments{Session: "s1", Token: "t1"})
	require.NoError(t, err)
	return cred
}
