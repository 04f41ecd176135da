package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"driveguard/internal/assessment"
)

// Client fetches licence snapshots for a licence number. Implementations:
// the HTTP client below, the Redis read-through Cache, and the
// deterministic Mock for dev mode.
type Client interface {
	FetchLicence(ctx context.Context, licenceNumber string) (*assessment.LicenceRecord, error)
}

// HTTPClient talks to the licensing registry's JSON API with bearer-key
// auth. Timeouts and error normalization live here so the assessment
// service only ever sees the taxonomy in errors.go.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

type ClientOption func(*HTTPClient)

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.client = client
	}
}

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchLicence retrieves and normalizes the snapshot for one licence number.
func (c *HTTPClient) FetchLicence(ctx context.Context, licenceNumber string) (*assessment.LicenceRecord, error) {
	endpoint := fmt.Sprintf("%s/v1/licences/%s", c.baseURL, url.PathEscape(licenceNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newClientError(ErrorInternal, "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, newClientError(ErrorTimeout, "registry request timed out", err)
		}
		return nil, newClientError(ErrorOutage, "registry unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return nil, newClientError(ErrorNotFound, "no record for licence number", nil)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, newClientError(ErrorAuthentication, "registry rejected API key", nil)
	case resp.StatusCode >= 500:
		return nil, newClientError(ErrorOutage, fmt.Sprintf("registry returned %d", resp.StatusCode), nil)
	default:
		return nil, newClientError(ErrorBadData, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, newClientError(ErrorOutage, "read response body", err)
	}

	var snapshot snapshotResponse
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return nil, newClientError(ErrorBadData, "malformed registry response", err)
	}

	record := normalize(snapshot, c.logger)
	return &record, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
