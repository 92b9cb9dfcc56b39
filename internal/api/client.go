// Package api provides the authenticated HTTP client shared by the DFX and
// LOCK backend clients. Every call resolves a bearer token from a
// SessionProvider, issues exactly one request and maps non-2xx responses to
// *APIError. A 401 drops the stored session.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/R3E-Network/wallet_layer/internal/metrics"
	"github.com/R3E-Network/wallet_layer/pkg/logger"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = 8 << 20
	sessionDropTimeout  = 5 * time.Second

	// RequestIDHeader carries a per-call id for log correlation.
	RequestIDHeader = "X-Request-ID"
)

// Config configures the client.
type Config struct {
	// DFXBaseURL is the base URL of the DFX backend, e.g. https://api.dfx.swiss/v1.
	DFXBaseURL string
	// LOCKBaseURL is the base URL of the LOCK staking backend.
	LOCKBaseURL string
	// HTTPClient executes requests. When nil a client with Timeout is used.
	HTTPClient *http.Client
	// Timeout applies to the default HTTP client. Defaults to 30s.
	Timeout time.Duration
	// MaxBodyBytes caps response bodies. Defaults to 8 MiB.
	MaxBodyBytes int64
	// RequestsPerSecond enables a client-side rate limit when positive.
	RequestsPerSecond float64
	// Burst is the limiter burst size. Defaults to 1.
	Burst int
	// Logger receives request logs. Defaults to a discarding logger.
	Logger *logger.Logger
	// DisableMetrics turns off Prometheus recording.
	DisableMetrics bool
}

// Client performs authenticated round trips against the DFX and LOCK backends.
// It is safe for concurrent use.
type Client struct {
	baseURLs     map[Domain]string
	httpClient   *http.Client
	sessions     SessionProvider
	limiter      *rate.Limiter
	maxBodyBytes int64
	log          *logger.Logger
	metrics      bool
}

// New creates a client. sessions is consulted on every call.
func New(cfg Config, sessions SessionProvider) (*Client, error) {
	if sessions == nil {
		return nil, fmt.Errorf("api: session provider is required")
	}

	dfxURL, err := normalizeBaseURL("DFXBaseURL", cfg.DFXBaseURL)
	if err != nil {
		return nil, err
	}
	lockURL, err := normalizeBaseURL("LOCKBaseURL", cfg.LOCKBaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	return &Client{
		baseURLs: map[Domain]string{
			DomainDFX:  dfxURL,
			DomainLOCK: lockURL,
		},
		httpClient:   httpClient,
		sessions:     sessions,
		limiter:      limiter,
		maxBodyBytes: maxBodyBytes,
		log:          log.Named("api"),
		metrics:      !cfg.DisableMetrics,
	}, nil
}

func normalizeBaseURL(name, raw string) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return "", fmt.Errorf("api: %s is required", name)
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("api: %s must be a valid URL", name)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("api: %s scheme must be http or https", name)
	}
	return base, nil
}

// BaseURL returns the configured base URL for domain.
func (c *Client) BaseURL(domain Domain) string {
	return c.baseURLs[domain]
}

// Do performs req and decodes a 2xx JSON body into out. An empty or
// unparsable success body leaves out untouched and returns nil. out may be nil.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	body, err := c.roundTrip(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || !isJSON(body) {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Op: "decode", Err: err}
	}
	return nil
}

// Fetch performs req and returns the decoded JSON value, or nil when the
// success body is empty or unparsable.
func (c *Client) Fetch(ctx context.Context, req Request) (any, error) {
	body, err := c.roundTrip(ctx, req)
	if err != nil {
		return nil, err
	}
	if !isJSON(body) {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, nil
	}
	return v, nil
}

func isJSON(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && json.Valid(trimmed)
}

// roundTrip issues exactly one request and returns the body of a 2xx response.
func (c *Client) roundTrip(ctx context.Context, req Request) ([]byte, error) {
	method, err := req.method()
	if err != nil {
		return nil, err
	}
	base, ok := c.baseURLs[req.Domain]
	if !ok {
		return nil, fmt.Errorf("api: unknown domain %s", req.Domain)
	}
	payload, contentType, err := req.body()
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Op: "rate limit", Err: err}
		}
	}

	session, err := c.sessions.Session(ctx, req.WithoutJWT, req.Domain)
	if err != nil {
		return nil, &TransportError{Op: "session", Err: err}
	}

	endpoint := req.target(base)
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set(RequestIDHeader, requestID)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	// An absent session still sends the header, with an empty value.
	httpReq.Header.Set("Authorization", bearer(session.AccessToken))

	log := c.log.WithFields(map[string]interface{}{
		"domain":     req.Domain.String(),
		"request_id": requestID,
	})
	log.Infof("fetch %s %s", method, req.Path)

	var done func()
	if c.metrics {
		done = metrics.TrackInFlight(req.Domain.String())
	}
	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if done != nil {
		done()
	}
	if err != nil {
		c.record(req, method, 0, start)
		log.WithError(err).Warn("fetch failed")
		return nil, &TransportError{Op: "send", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	c.record(req, method, resp.StatusCode, start)
	if err != nil {
		return nil, &TransportError{Op: "read", Err: err}
	}
	if int64(len(body)) > c.maxBodyBytes {
		log.WithField("status", resp.StatusCode).Warnf("fetch %s %s: body exceeds %d bytes", method, req.Path, c.maxBodyBytes)
		if resp.StatusCode == http.StatusUnauthorized {
			c.dropSession(ctx)
		}
		return nil, &TransportError{Op: "read", Err: ErrBodyTooLarge}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	apiErr := newAPIError(resp.StatusCode, body)
	log.WithField("status", apiErr.StatusCode).Warnf("fetch %s %s rejected: %s", method, req.Path, apiErr.Message)
	if apiErr.Unauthorized() {
		c.dropSession(ctx)
	}
	return nil, apiErr
}

// dropSession deletes the stored session after a 401. Its own failure is
// logged and never replaces the backend error.
func (c *Client) dropSession(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sessionDropTimeout)
	defer cancel()

	err := c.sessions.DeleteSession(ctx)
	if c.metrics {
		metrics.RecordSessionDeletion(err == nil)
	}
	if err != nil {
		c.log.WithError(err).Error("delete session after unauthorized response")
	}
}

func (c *Client) record(req Request, method string, status int, start time.Time) {
	if !c.metrics {
		return
	}
	metrics.RecordRequest(req.Domain.String(), method, req.Path, status, time.Since(start))
}

func bearer(token string) string {
	if token == "" {
		return ""
	}
	return "Bearer " + token
}
