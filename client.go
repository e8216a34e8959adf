package mochow

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hupe1980/mochow/internal/transport"
	"github.com/hupe1980/mochow/model"
)

// Service paths, versioned per resource kind.
const (
	pathDatabase = "/v1/database"
	pathTable    = "/v1/table"
	pathRow      = "/v1/row"
	pathIndex    = "/v1/index"
)

// Client is the entry point of the SDK. It holds the signed transport
// and hands out Database handles. A Client is safe for concurrent use.
type Client struct {
	config    *Configuration
	protocol  string
	endpoint  string
	transport *transport.Client
	logger    *Logger
	metrics   MetricsCollector
}

// NewClient creates a client from the given configuration. The
// configuration is copied; later changes to it have no effect.
func NewClient(config *Configuration, optFns ...Option) (*Client, error) {
	if config == nil {
		return nil, NewClientError("configuration is nil")
	}
	cfg := config.clone()
	protocol, endpoint, err := cfg.validate()
	if err != nil {
		return nil, err
	}

	opts := applyOptions(optFns)

	httpClient := opts.httpClient
	if httpClient == nil {
		httpClient = transport.NewPooledHTTPClient(transport.PoolOptions{
			SendBufSize: cfg.SendBufSize,
			RecvBufSize: cfg.RecvBufSize,
			ProxyURL:    cfg.ProxyURL,
		})
	}

	return &Client{
		config:    cfg,
		protocol:  protocol,
		endpoint:  endpoint,
		transport: transport.New(httpClient, opts.logger.Logger),
		logger:    opts.logger,
		metrics:   opts.metricsCollector,
	}, nil
}

// Close releases idle pooled connections. The client remains usable
// afterwards; new connections are dialed on demand.
func (c *Client) Close() {
	c.transport.Close()
}

// CreateDatabase creates a database with the given name.
func (c *Client) CreateDatabase(ctx context.Context, database string, optFns ...CallOption) error {
	if database == "" {
		return NewClientError("database name is empty")
	}
	body := struct {
		Database string `json:"database"`
	}{Database: database}
	return c.send(ctx, "create", http.MethodPost, pathDatabase,
		map[string]string{"create": ""}, body, nil, optFns)
}

// ListDatabases returns the names of all databases.
func (c *Client) ListDatabases(ctx context.Context, optFns ...CallOption) ([]string, error) {
	var resp model.ListDatabasesResponse
	if err := c.send(ctx, "list", http.MethodPost, pathDatabase,
		map[string]string{"list": ""}, nil, &resp, optFns); err != nil {
		return nil, err
	}
	return resp.Databases, nil
}

// Database returns a handle for an existing database. The existence is
// verified against the service.
func (c *Client) Database(ctx context.Context, database string, optFns ...CallOption) (*Database, error) {
	names, err := c.ListDatabases(ctx, optFns...)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if name == database {
			return &Database{client: c, name: database}, nil
		}
	}
	return nil, NewClientErrorf("database %s not exist", database)
}

// DropDatabase deletes a database. The database must contain no tables.
func (c *Client) DropDatabase(ctx context.Context, database string, optFns ...CallOption) error {
	if database == "" {
		return NewClientError("database name is empty")
	}
	return c.send(ctx, "dropDatabase", http.MethodDelete, pathDatabase,
		map[string]string{"database": database}, nil, nil, optFns)
}

// send executes one logical call: marshal the body, run the transport
// retry loop with the per-call effective configuration and decode the
// response into out.
func (c *Client) send(ctx context.Context, operation, method, path string, params map[string]string, body, out any, optFns []CallOption) error {
	cfg := c.config
	if len(optFns) > 0 {
		cfg = cfg.clone()
		for _, fn := range optFns {
			if fn != nil {
				fn(cfg)
			}
		}
	}

	req := &transport.Request{
		Method: method,
		Path:   path,
		Params: params,
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.Body = payload
	}

	callCfg := &transport.CallConfig{
		Endpoint:    c.endpoint,
		Protocol:    c.protocol,
		Credentials: cfg.Credentials,
		Retry:       cfg.Retry,
		UserAgent:   cfg.UserAgent,
	}
	if cfg.ConnectionTimeout > 0 {
		callCfg.Timeout = cfg.ConnectionTimeout
	}

	start := time.Now()
	resp, err := c.transport.Do(ctx, req, callCfg)
	c.metrics.RecordRequest(operation, time.Since(start), err)

	var requestID string
	if resp != nil {
		requestID = resp.RequestID()
	}
	c.logger.LogRequest(ctx, operation, requestID, err)
	if err != nil {
		return err
	}

	if out != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return NewClientErrorf("decode %s response: %v", operation, err)
		}
	}
	return nil
}
