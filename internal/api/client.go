// Package api implements the SecureAPI client used to fetch properties and
// their revenue summaries.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"github.com/rshade/propfocus/internal/logging"
	"github.com/rshade/propfocus/internal/property"
)

// Header names exchanged with the service.
const (
	HeaderRequestID  = "X-Request-ID"
	HeaderAPIVersion = "X-API-Version"

	propertiesPath = "/api/properties"
	// maxErrorBody caps how much of an error response is read into APIError.Message.
	maxErrorBody = 4096
)

// Config configures a Client.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MinVersion string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithClock replaces time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client talks to the SecureAPI service.
type Client struct {
	baseURL    *url.URL
	token      string
	http       *http.Client
	minVersion *semver.Constraints
	now        func() time.Time
}

// New creates a Client. It fails when the base URL or minimum version are invalid.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing api base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base URL %q must be absolute", cfg.BaseURL)
	}

	c := &Client{
		baseURL: base,
		token:   cfg.Token,
		http:    &http.Client{Timeout: cfg.Timeout},
		now:     time.Now,
	}
	if cfg.MinVersion != "" {
		c.minVersion, err = semver.NewConstraint(cfg.MinVersion)
		if err != nil {
			return nil, fmt.Errorf("parsing minimum api version %q: %w", cfg.MinVersion, err)
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetProperties fetches the property list envelope.
func (c *Client) GetProperties(ctx context.Context) (*property.ListResponse, error) {
	var resp property.ListResponse
	if err := c.getJSON(ctx, propertiesPath, nil, &resp); err != nil {
		return nil, fmt.Errorf("get properties: %w", err)
	}
	return &resp, nil
}

// GetRevenueSummary fetches the revenue summary for one property. An empty
// period lets the server pick the current month.
func (c *Client) GetRevenueSummary(
	ctx context.Context,
	propertyID, period string,
) (*property.RevenueSummary, error) {
	if propertyID == "" {
		return nil, errors.New("get revenue summary: property id is required")
	}
	var query url.Values
	if period != "" {
		query = url.Values{"period": []string{period}}
	}

	var summary property.RevenueSummary
	path := propertiesPath + "/" + url.PathEscape(propertyID) + "/revenue"
	if err := c.getJSON(ctx, path, query, &summary); err != nil {
		return nil, fmt.Errorf("get revenue summary for %s: %w", propertyID, err)
	}
	if summary.PropertyID == "" {
		summary.PropertyID = propertyID
	}
	return &summary, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.checkToken(); err != nil {
		return err
	}

	u := *c.baseURL
	u.Path += path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log := logging.FromContext(ctx)
	log.Debug().Ctx(ctx).
		Str("component", "api").
		Str("request_id", requestID).
		Str("url", u.String()).
		Msg("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.checkVersion(ctx, resp.Header.Get(HeaderAPIVersion))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, body, requestID)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// checkVersion logs a warning when the server reports a version outside the
// configured constraint. The response is still used.
func (c *Client) checkVersion(ctx context.Context, reported string) {
	if c.minVersion == nil || reported == "" {
		return
	}
	log := logging.FromContext(ctx)
	v, err := semver.NewVersion(reported)
	if err != nil {
		log.Warn().Ctx(ctx).Str("component", "api").Str("version", reported).Msg("unparseable api version")
		return
	}
	if !c.minVersion.Check(v) {
		log.Warn().Ctx(ctx).
			Str("component", "api").
			Str("version", v.String()).
			Str("required", c.minVersion.String()).
			Msg("api version outside supported range")
	}
}
