package handler

import (
	"log/slog"
	"net/http"
	"testing"

	"link-hub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthHandler(sender *mockSender) *AuthHandler {
	return NewAuthHandler(usecase.NewSendOTP(sender, slog.Default()), testStores())
}

func TestHandleSendOTP_Success(t *testing.T) {
	sender := &mockSender{}
	h := newAuthHandler(sender)

	c, rec := newTestContext(http.MethodPost, "/auth/otp", `{"email":"user@example.com"}`, false)
	require.NoError(t, h.HandleSendOTP(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, sender.calls)
}

func TestHandleSendOTP_InvalidEmail(t *testing.T) {
	sender := &mockSender{}
	h := newAuthHandler(sender)

	c, _ := newTestContext(http.MethodPost, "/auth/otp", `{"email":"nope"}`, false)
	err := h.HandleSendOTP(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Zero(t, sender.calls)
}

func TestHandleSetSession_StoresBothFragments(t *testing.T) {
	h := newAuthHandler(&mockSender{})

	c, rec := newTestContext(http.MethodPut, "/auth/session", `{"session":"s1","token":"t1"}`, false)
	require.NoError(t, h.HandleSetSession(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	byName := map[string]*http.Cookie{}
	for _, ck := range cookies {
		byName[ck.Name] = ck
	}
	require.Contains(t, byName, "session")
	require.Contains(t, byName, "access_token")
	assert.Equal(t, "s1", byName["session"].Value)
	assert.Equal(t, "t1", byName["access_token"].Value)
	assert.True(t, byName["session"].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, byName["session"].SameSite)
}

func TestHandleSetSession_RejectsPartialCredential(t *testing.T) {
	h := newAuthHandler(&mockSender{})

	for _, body := range []string{
		`{"session":"s1"}`,
		`{"token":"t1"}`,
		`{}`,
	} {
		c, _ := newTestContext(http.MethodPut, "/auth/session", body, false)
		err := h.HandleSetSession(c)

		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	}
}

func TestHandleClearSession_ExpiresCookies(t *testing.T) {
	h := newAuthHandler(&mockSender{})

	c, rec := newTestContext(http.MethodDelete, "/auth/session", "", true)
	require.NoError(t, h.HandleClearSession(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	for _, ck := range rec.Result().Cookies() {
		assert.Less(t, ck.MaxAge, 0, "cookie %s should be expired", ck.Name)
	}
}
