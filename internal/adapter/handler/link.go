package handler

import (
	"net/http"

	"link-hub/internal/domain"
	"link-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// StoreFactory binds a credential store to one request context.
type StoreFactory func(c echo.Context) domain.CredentialStore

// LinkHandler exposes the device-authorization linking flow. The linking
// session travels in the request and response bodies; the server keeps no
// copy between calls.
type LinkHandler struct {
	initiate *usecase.InitiateLink
	poll     *usecase.PollLink
	confirm  *usecase.ConfirmLink
	snapshot *usecase.FetchSnapshot
	attach   *usecase.AttachIdentifiers
	gate     *usecase.Authorize
	stores   StoreFactory
}

// NewLinkHandler creates the linking handler.
func NewLinkHandler(
	initiate *usecase.InitiateLink,
	poll *usecase.PollLink,
	confirm *usecase.ConfirmLink,
	snapshot *usecase.FetchSnapshot,
	attach *usecase.AttachIdentifiers,
	gate *usecase.Authorize,
	stores StoreFactory,
) *LinkHandler {
	return &LinkHandler{
		initiate: initiate,
		poll:     poll,
		confirm:  confirm,
		snapshot: snapshot,
		attach:   attach,
		gate:     gate,
		stores:   stores,
	}
}

// wireSession is the caller-held linking session on the wire.
type wireSession struct {
	ID              string `json:"id"`
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	State           string `json:"state"`
}

// wireSnapshot is the linked-account projection on the wire.
type wireSnapshot struct {
	ID             string         `json:"id"`
	SuggestedName  string         `json:"suggested_name"`
	CosmeticCounts map[string]int `json:"cosmetic_counts"`
}

// linkResponse carries the updated session and, once confirmed, the snapshot.
type linkResponse struct {
	LinkSession wireSession   `json:"link_session"`
	Snapshot    *wireSnapshot `json:"snapshot,omitempty"`
}

func fromDomainSession(s *domain.LinkingSession) wireSession {
	return wireSession{
		ID:              s.ID,
		DeviceCode:      s.DeviceCode,
		UserCode:        s.UserCode,
		VerificationURI: s.VerificationURI,
		State:           string(s.State),
	}
}

func (w wireSession) toDomain() *domain.LinkingSession {
	return &domain.LinkingSession{
		ID:              w.ID,
		DeviceCode:      w.DeviceCode,
		UserCode:        w.UserCode,
		VerificationURI: w.VerificationURI,
		State:           domain.LinkState(w.State),
	}
}

func fromDomainSnapshot(s *domain.LinkedAccountSnapshot) *wireSnapshot {
	if s == nil {
		return nil
	}
	return &wireSnapshot{
		ID:             s.ID,
		SuggestedName:  s.SuggestedName,
		CosmeticCounts: s.CosmeticCounts,
	}
}

// credential composes the caller's credential for this request.
func (h *LinkHandler) credential(c echo.Context) (domain.UpstreamCredential, error) {
	return domain.ComposeFrom(h.stores(c))
}

// HandleInitiate processes POST /link/initiate.
func (h *LinkHandler) HandleInitiate(c echo.Context) error {
	ctx := c.Request().Context()

	cred, err := h.credential(c)
	if err != nil {
		return mapDomainError(err)
	}

	session, err := h.initiate.Execute(ctx, cred)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, linkResponse{LinkSession: fromDomainSession(session)})
}

// pollRequest carries the caller-held session back to the gateway.
type pollRequest struct {
	LinkSession wireSession `json:"link_session"`
}

// HandlePoll processes POST /link/poll. One caller-driven check; the state
// in the response tells the caller whether to keep polling.
func (h *LinkHandler) HandlePoll(c echo.Context) error {
	ctx := c.Request().Context()

	var req pollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cred, err := h.credential(c)
	if err != nil {
		return mapDomainError(err)
	}

	session := req.LinkSession.toDomain()
	if err := h.poll.Execute(ctx, cred, session); err != nil {
		// A terminal transition still hands the updated session back so the
		// caller can tell "start over" from "retry".
		if session.State.Terminal() {
			return c.JSON(mapDomainError(err).Code, linkResponse{LinkSession: fromDomainSession(session)})
		}
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, linkResponse{LinkSession: fromDomainSession(session)})
}

// HandleConfirm processes POST /link/confirm.
func (h *LinkHandler) HandleConfirm(c echo.Context) error {
	ctx := c.Request().Context()

	var req pollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cred, err := h.credential(c)
	if err != nil {
		return mapDomainError(err)
	}

	session := req.LinkSession.toDomain()
	snapshot, err := h.confirm.Execute(ctx, cred, session)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, linkResponse{
		LinkSession: fromDomainSession(session),
		Snapshot:    fromDomainSnapshot(snapshot),
	})
}

// HandleSnapshot processes GET /link/snapshot. Seller-only.
func (h *LinkHandler) HandleSnapshot(c echo.Context) error {
	ctx := c.Request().Context()
	store := h.stores(c)

	if _, err := h.gate.Execute(ctx, store, domain.RoleSeller, domain.RoleAdmin); err != nil {
		return mapDomainError(err)
	}

	cred, err := domain.ComposeFrom(store)
	if err != nil {
		return mapDomainError(err)
	}

	// The standalone snapshot route serves confirmed links only; the caller
	// asserts that by not carrying session state here.
	session := &domain.LinkingSession{State: domain.LinkStateCompleted}
	snapshot, err := h.snapshot.Execute(ctx, cred, session)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, fromDomainSnapshot(snapshot))
}

// attachRequest is the body for POST /link/identifiers.
type attachRequest struct {
	AthenaIDs []string `json:"athena_ids"`
}

// HandleAttach processes POST /link/identifiers. Seller-only.
func (h *LinkHandler) HandleAttach(c echo.Context) error {
	ctx := c.Request().Context()
	store := h.stores(c)

	var req attachRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if _, err := h.gate.Execute(ctx, store, domain.RoleSeller, domain.RoleAdmin); err != nil {
		return mapDomainError(err)
	}

	cred, err := domain.ComposeFrom(store)
	if err != nil {
		return mapDomainError(err)
	}

	if err := h.attach.Execute(ctx, cred, req.AthenaIDs); err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
