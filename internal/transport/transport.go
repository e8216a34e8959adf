// Package transport implements the HTTP request pipeline of the Mochow
// client: header construction, request signing, the retry loop and
// response/error parsing. It owns the pooled connection and sends one
// logical request to completion.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/hupe1980/mochow/auth"
	"github.com/hupe1980/mochow/model"
	"github.com/hupe1980/mochow/retry"
)

// Header names used by the request pipeline.
const (
	headerUserAgent     = "User-Agent"
	headerHost          = "Host"
	headerContentLength = "Content-Length"
	headerContentType   = "Content-Type"
	headerDate          = "x-bce-date"
)

// Request is one logical call to the service. The body, if any, is a
// buffered JSON byte slice; it is resent verbatim on every retry.
type Request struct {
	Method  string            // http.MethodPost or http.MethodDelete
	Path    string            // versioned path, e.g. "/v1/table"
	Params  map[string]string // query parameters; empty value renders as a bare key
	Headers map[string]string // extra headers; optional
	Body    []byte
}

// CallConfig carries the per-call effective configuration.
type CallConfig struct {
	Endpoint    string // host[:port]
	Protocol    string // "http" or "https"
	Credentials auth.Credentials
	Retry       retry.Policy
	Timeout     time.Duration
	UserAgent   string
}

// Client sends signed requests over a pooled HTTP connection and applies
// the retry policy. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a transport client. A nil httpClient falls back to a pooled
// client with default options; a nil logger discards debug output.
func New(httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = NewPooledHTTPClient(PoolOptions{})
	}
	if logger == nil {
		logger = slog.New(discardHandler{})
	}
	return &Client{httpClient: httpClient, logger: logger}
}

// Close releases the idle connections of the pool.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Do sends one logical request to completion, including retries, and
// returns the decoded response or a typed error. On exhausted or
// non-retryable failure the most recent error propagates unchanged.
func (c *Client) Do(ctx context.Context, req *Request, cfg *CallConfig) (*Response, error) {
	if req.Method != http.MethodPost && req.Method != http.MethodDelete {
		return nil, model.NewClientErrorf("http method %s not supported", req.Method)
	}
	if cfg.Endpoint == "" {
		return nil, model.NewClientError("endpoint not configured")
	}

	headers := make(map[string]string, len(req.Headers)+8)
	for k, v := range req.Headers {
		headers[k] = v
	}
	headers[headerUserAgent] = cfg.UserAgent
	headers[headerHost] = hostHeader(cfg.Endpoint, cfg.Protocol)
	headers[headerContentLength] = strconv.Itoa(len(req.Body))
	if len(req.Body) > 0 {
		headers[headerContentType] = "application/json"
	}
	_, autoDate := headers[headerDate]
	autoDate = !autoDate

	reqURL := requestURL(cfg, req)

	policy := cfg.Retry
	if policy == nil {
		policy = retry.NoRetryPolicy{}
	}

	var traces []string
	for attempt := 0; ; attempt++ {
		// The date header tracks the attempt time when auto-generated, and
		// the request is re-signed accordingly.
		if autoDate {
			headers[headerDate] = time.Now().UTC().Format("2006-01-02T15:04:05Z")
		}
		for k, v := range auth.Sign(cfg.Credentials) {
			headers[k] = v
		}

		resp, err := c.attempt(ctx, req, cfg, reqURL, headers)
		if err == nil {
			return resp, nil
		}

		traces = append(traces, fmt.Sprintf("attempt %d: %v", attempt, err))
		if !policy.ShouldRetry(err, attempt) {
			c.logger.Debug("unable to execute request",
				"method", req.Method, "url", reqURL,
				"retries", attempt, "errors", strings.Join(traces, "; "))
			return nil, err
		}

		delay := policy.DelayBeforeNextRetry(err, attempt)
		c.logger.Debug("retrying request",
			"method", req.Method, "url", reqURL,
			"attempt", attempt, "delay", delay, "error", err)
		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

func (c *Client) attempt(ctx context.Context, req *Request, cfg *CallConfig, reqURL string, headers map[string]string) (*Response, error) {
	if err := checkHeaders(headers); err != nil {
		return nil, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	// The body is a fresh reader over the original byte buffer on every
	// attempt, so retries resend identical bytes.
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, reqURL, body)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		if strings.EqualFold(k, headerHost) {
			httpReq.Host = v
			continue
		}
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	payload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Metadata:   metadataFromHeaders(httpResp.Header),
		Body:       payload,
	}
	c.logger.Debug("request done",
		"method", req.Method, "url", reqURL, "status", resp.StatusCode,
		"requestId", resp.RequestID())

	if err := parseError(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// requestURL assembles the full URL with the canonical query string.
// Operation discriminators are rendered as empty-valued parameters
// ("?upsert"), which the service requires verbatim.
func requestURL(cfg *CallConfig, req *Request) string {
	var sb strings.Builder
	sb.WriteString(cfg.Protocol)
	sb.WriteString("://")
	sb.WriteString(cfg.Endpoint)
	sb.WriteString(req.Path)
	if qs := canonicalQueryString(req.Params); qs != "" {
		sb.WriteByte('?')
		sb.WriteString(qs)
	}
	return sb.String()
}

func canonicalQueryString(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := params[k]; v != "" {
			parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(v))
		} else {
			parts = append(parts, url.QueryEscape(k))
		}
	}
	return strings.Join(parts, "&")
}

// hostHeader derives the Host header, appending the port only when it is
// not the protocol default.
func hostHeader(endpoint, protocol string) string {
	host, port, ok := strings.Cut(endpoint, ":")
	if !ok {
		return endpoint
	}
	if (protocol == "http" && port == "80") || (protocol == "https" && port == "443") {
		return host
	}
	return endpoint
}

// checkHeaders rejects header values containing a newline.
func checkHeaders(headers map[string]string) error {
	for k, v := range headers {
		if strings.ContainsAny(v, "\n") {
			return model.NewClientErrorf(`there should not be any "\n" in header[%s]: %s`, k, v)
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
