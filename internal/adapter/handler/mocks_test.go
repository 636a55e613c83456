package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"link-hub/internal/domain"
	"link-hub/internal/infrastructure/cookie"

	"github.com/labstack/echo/v4"
)

// mockProvider implements domain.LinkProvider for testing.
type mockProvider struct {
	grant      domain.DeviceGrant
	grantErr   error
	outcome    domain.PollOutcome
	outcomeErr error
	verifyErr  error
	checkCalls int
}

func (m *mockProvider) RequestDeviceCode(_ context.Context, _ domain.UpstreamCredential) (domain.DeviceGrant, error) {
	return m.grant, m.grantErr
}

func (m *mockProvider) CheckAuthorization(_ context.Context, _ domain.UpstreamCredential, _ string) (domain.PollOutcome, error) {
	m.checkCalls++
	return m.outcome, m.outcomeErr
}

func (m *mockProvider) VerifyLink(_ context.Context, _ domain.UpstreamCredential) error {
	return m.verifyErr
}

// mockAccounts implements domain.AccountReader for testing.
type mockAccounts struct {
	snapshot    *domain.LinkedAccountSnapshot
	snapshotErr error
	addErr      error
	addCalls    int
}

func (m *mockAccounts) GetLinkedSnapshot(_ context.Context, _ domain.UpstreamCredential) (*domain.LinkedAccountSnapshot, error) {
	return m.snapshot, m.snapshotErr
}

func (m *mockAccounts) AddAthenaIDs(_ context.Context, _ domain.UpstreamCredential, _ []string) error {
	m.addCalls++
	return m.addErr
}

// mockResolver implements domain.RoleResolver for testing.
type mockResolver struct {
	role domain.Role
	err  error
}

func (m *mockResolver) ResolveRole(_ context.Context, _ domain.UpstreamCredential) (domain.Role, error) {
	return m.role, m.err
}

// mockSender implements domain.OTPSender for testing.
type mockSender struct {
	err   error
	calls int
}

func (m *mockSender) SendOTP(_ context.Context, _ string) error {
	m.calls++
	return m.err
}

// mockIssuer implements domain.TokenIssuer for testing.
type mockIssuer struct {
	token string
	err   error
}

func (m *mockIssuer) IssueBackendToken(_ string, _ domain.Role) (string, error) {
	return m.token, m.err
}

// testStores binds the real cookie store with test settings.
func testStores() StoreFactory {
	cfg := cookie.Config{
		SessionName: "session",
		TokenName:   "access_token",
		TTL:         time.Hour,
	}
	return func(c echo.Context) domain.CredentialStore {
		return cookie.NewStore(c, cfg)
	}
}

// newTestContext builds an echo context, optionally carrying a JSON body
// and valid credential cookies.
func newTestContext(method, target, body string, withCreds bool) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if withCreds {
		req.AddCookie(&http.Cookie{Name: "session", Value: "s1"})
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "t1"})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
