package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"link-hub/internal/domain"
)

// MarketplaceGateway is the typed client for the marketplace upstream.
// Implements domain.LinkProvider, domain.AccountReader, domain.RoleResolver
// and domain.OTPSender.
type MarketplaceGateway struct {
	client *Client
}

// NewMarketplaceGateway creates a marketplace gateway for the given base URL.
func NewMarketplaceGateway(baseURL string, timeout time.Duration) *MarketplaceGateway {
	return &MarketplaceGateway{client: NewClient(baseURL, timeout)}
}

const expiredErrorBody = "link expired"

// errorBody is the upstream's generic error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// bodySignalsExpiry reports whether an upstream body carries the provider's
// "link expired" marker.
func bodySignalsExpiry(body []byte) bool {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(eb.Error), expiredErrorBody)
}

// mapExpiry converts upstream rejections whose body carries the expiry
// marker into ErrLinkExpired; everything else passes through unchanged.
func mapExpiry(err error) error {
	var ue *domain.UpstreamError
	if errors.As(err, &ue) && bodySignalsExpiry([]byte(ue.Body)) {
		return fmt.Errorf("%w: %w", domain.ErrLinkExpired, err)
	}
	return err
}

// deviceGrantResponse is the /get_link success shape.
type deviceGrantResponse struct {
	UserCode        string `json:"user_code"`
	DeviceCode      string `json:"device_code"`
	VerificationURI string `json:"verification_uri"`
}

// RequestDeviceCode starts a device-authorization attempt via GET /get_link.
func (g *MarketplaceGateway) RequestDeviceCode(ctx context.Context, cred domain.UpstreamCredential) (domain.DeviceGrant, error) {
	resp, err := g.client.Do(ctx, http.MethodGet, "/get_link", &cred, nil)
	if err != nil {
		return domain.DeviceGrant{}, err
	}

	var grant deviceGrantResponse
	if err := resp.Decode(&grant); err != nil {
		return domain.DeviceGrant{}, err
	}

	if grant.DeviceCode == "" || grant.UserCode == "" || grant.VerificationURI == "" {
		return domain.DeviceGrant{}, &domain.UpstreamError{
			Kind:   domain.UpstreamMalformed,
			Status: resp.Status,
			Body:   string(resp.Body),
			Err:    errors.New("device grant missing required field"),
		}
	}

	return domain.DeviceGrant{
		DeviceCode:      grant.DeviceCode,
		UserCode:        grant.UserCode,
		VerificationURI: grant.VerificationURI,
	}, nil
}

// checkAuthRequest is the /check_auth request shape.
type checkAuthRequest struct {
	DeviceCode string `json:"device_code"`
}

// CheckAuthorization polls the provider via POST /check_auth. 202 means the
// human has not finished the external step yet.
func (g *MarketplaceGateway) CheckAuthorization(ctx context.Context, cred domain.UpstreamCredential, deviceCode string) (domain.PollOutcome, error) {
	resp, err := g.client.Do(ctx, http.MethodPost, "/check_auth", &cred, checkAuthRequest{DeviceCode: deviceCode})
	if err != nil {
		return "", mapExpiry(err)
	}

	if resp.Status == http.StatusAccepted {
		return domain.PollOutcomePending, nil
	}
	// The provider reports a lapsed grant in a 200 body as well.
	if bodySignalsExpiry(resp.Body) {
		return "", domain.ErrLinkExpired
	}
	return domain.PollOutcomeAuthorized, nil
}

// VerifyLink re-verifies the completed link via GET /verify_epic.
func (g *MarketplaceGateway) VerifyLink(ctx context.Context, cred domain.UpstreamCredential) error {
	resp, err := g.client.Do(ctx, http.MethodGet, "/verify_epic", &cred, nil)
	if err != nil {
		return mapExpiry(err)
	}

	// The provider reports a lapsed grant in a 200 body as well.
	if bodySignalsExpiry(resp.Body) {
		return domain.ErrLinkExpired
	}
	return nil
}

// picksResponse is the /seller/get_picks success shape.
type picksResponse struct {
	ID             string `json:"id"`
	SuggestedName  string `json:"suggested_name"`
	SkinsCount     int    `json:"skins_count"`
	BackpacksCount int    `json:"backpacks_count"`
	EmotesCount    int    `json:"emotes_count"`
	PickaxesCount  int    `json:"pickaxes_count"`
	GliderCount    int    `json:"glider_count"`
}

// GetLinkedSnapshot retrieves the linked account projection via
// GET /seller/get_picks. A missing identifier is a malformed response.
func (g *MarketplaceGateway) GetLinkedSnapshot(ctx context.Context, cred domain.UpstreamCredential) (*domain.LinkedAccountSnapshot, error) {
	resp, err := g.client.Do(ctx, http.MethodGet, "/seller/get_picks", &cred, nil)
	if err != nil {
		return nil, err
	}

	var picks picksResponse
	if err := resp.Decode(&picks); err != nil {
		return nil, err
	}

	if picks.ID == "" {
		return nil, &domain.UpstreamError{
			Kind:   domain.UpstreamMalformed,
			Status: resp.Status,
			Body:   string(resp.Body),
			Err:    errors.New("snapshot missing account identifier"),
		}
	}

	return &domain.LinkedAccountSnapshot{
		ID:            picks.ID,
		SuggestedName: picks.SuggestedName,
		CosmeticCounts: map[string]int{
			"skins":     picks.SkinsCount,
			"backpacks": picks.BackpacksCount,
			"emotes":    picks.EmotesCount,
			"pickaxes":  picks.PickaxesCount,
			"gliders":   picks.GliderCount,
		},
	}, nil
}

// addAthenaIDsRequest is the /seller/add_athena_ids request shape.
type addAthenaIDsRequest struct {
	AthenaIDs []string `json:"athena_ids"`
}

// AddAthenaIDs appends identifiers to the linked account's recognized set.
func (g *MarketplaceGateway) AddAthenaIDs(ctx context.Context, cred domain.UpstreamCredential, ids []string) error {
	_, err := g.client.Do(ctx, http.MethodPost, "/seller/add_athena_ids", &cred, addAthenaIDsRequest{AthenaIDs: ids})
	return err
}

// roleResponse is the /user/get_role success shape.
type roleResponse struct {
	Role string `json:"role"`
}

// ResolveRole fetches the caller's current role via GET /user/get_role.
func (g *MarketplaceGateway) ResolveRole(ctx context.Context, cred domain.UpstreamCredential) (domain.Role, error) {
	resp, err := g.client.Do(ctx, http.MethodGet, "/user/get_role", &cred, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRoleResolution, err)
	}

	var rr roleResponse
	if err := resp.Decode(&rr); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRoleResolution, err)
	}

	role, err := domain.ParseRole(rr.Role)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRoleResolution, err)
	}
	return role, nil
}

// sendOTPRequest is the /send_otp request shape.
type sendOTPRequest struct {
	Email string `json:"email"`
}

// SendOTP requests a one-time password email. No credential required.
func (g *MarketplaceGateway) SendOTP(ctx context.Context, email string) error {
	_, err := g.client.Do(ctx, http.MethodPost, "/send_otp", nil, sendOTPRequest{Email: email})
	return err
}
