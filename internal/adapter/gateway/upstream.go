package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"link-hub/internal/domain"
)

// Client is a minimal JSON client for the marketplace upstream with tuned
// HTTP transport. Safe for concurrent use; it holds no per-request state.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Response is a successful (2xx) upstream answer.
type Response struct {
	Status int
	Body   []byte
}

// NewClient creates an upstream client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Do issues one request against the upstream. A nil credential sends an
// unauthenticated request; a non-nil credential attaches the session cookie
// and the bearer header together, built from the same composed value so the
// pair is all-or-nothing. Failures come back as *domain.UpstreamError.
func (c *Client) Do(ctx context.Context, method, path string, cred *domain.UpstreamCredential, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cred != nil {
		req.Header.Set("Cookie", "session="+cred.SessionFragment())
		req.Header.Set("Authorization", "Bearer "+cred.TokenFragment())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Kind: domain.UpstreamNetwork, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Kind: domain.UpstreamNetwork, Err: err}
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, &domain.UpstreamError{
			Kind:   domain.UpstreamServerFault,
			Status: resp.StatusCode,
			Body:   string(payload),
		}
	case resp.StatusCode >= 400:
		return nil, &domain.UpstreamError{
			Kind:   domain.UpstreamClientRejected,
			Status: resp.StatusCode,
			Body:   string(payload),
		}
	}

	return &Response{Status: resp.StatusCode, Body: payload}, nil
}

// Decode unmarshals the response body into v, classifying failures as
// malformed responses.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &domain.UpstreamError{
			Kind:   domain.UpstreamMalformed,
			Status: r.Status,
			Body:   string(r.Body),
			Err:    err,
		}
	}
	return nil
}
