package mochow

import (
	"fmt"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/hupe1980/mochow/auth"
	"github.com/hupe1980/mochow/retry"
)

// Default transport settings applied by NewConfiguration.
const (
	DefaultConnectionTimeout = 50 * time.Second
	DefaultSendBufSize       = 1024 * 1024      // 1 MiB
	DefaultRecvBufSize       = 10 * 1024 * 1024 // 10 MiB
)

// Configuration carries the client-wide settings: endpoint, credentials,
// transport buffers and the retry policy. Zero fields are filled with
// defaults by NewClient.
type Configuration struct {
	// Credentials signs every outgoing request. Required.
	Credentials auth.Credentials

	// Endpoint is the service address, e.g. "http://127.0.0.1:5287".
	// A missing scheme defaults to http. Required.
	Endpoint string

	// ConnectionTimeout bounds each request attempt. Zero means
	// DefaultConnectionTimeout; a negative value disables the bound.
	ConnectionTimeout time.Duration

	// SendBufSize and RecvBufSize size the socket buffers of pooled
	// connections. Zero means the package defaults.
	SendBufSize int
	RecvBufSize int

	// Retry decides which failed attempts are resent and when. Nil means
	// a retry.BackOffPolicy with default settings.
	Retry retry.Policy

	// ProxyURL routes requests through an HTTP proxy when set.
	ProxyURL *url.URL

	// UserAgent overrides the default "mochow-sdk-go/<version>" agent.
	UserAgent string
}

// NewConfiguration creates a Configuration with package defaults for
// everything but the credentials and endpoint.
func NewConfiguration(credentials auth.Credentials, endpoint string) *Configuration {
	return &Configuration{
		Credentials:       credentials,
		Endpoint:          endpoint,
		ConnectionTimeout: DefaultConnectionTimeout,
		SendBufSize:       DefaultSendBufSize,
		RecvBufSize:       DefaultRecvBufSize,
		Retry:             retry.NewBackOffPolicy(),
	}
}

func (c *Configuration) clone() *Configuration {
	dup := *c
	return &dup
}

// validate fills defaults and splits the endpoint into protocol and
// host parts.
func (c *Configuration) validate() (protocol, hostPort string, err error) {
	if c.Credentials == nil {
		return "", "", NewClientError("credentials not configured")
	}
	if c.Endpoint == "" {
		return "", "", NewClientError("endpoint not configured")
	}

	endpoint := c.Endpoint
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", "", NewClientErrorf("invalid endpoint %q: %v", c.Endpoint, err)
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return "", "", NewClientErrorf("invalid endpoint protocol %q", u.Scheme)
	}
	if u.Host == "" {
		return "", "", NewClientErrorf("invalid endpoint %q: missing host", c.Endpoint)
	}

	if c.ConnectionTimeout == 0 {
		c.ConnectionTimeout = DefaultConnectionTimeout
	}
	if c.SendBufSize <= 0 {
		c.SendBufSize = DefaultSendBufSize
	}
	if c.RecvBufSize <= 0 {
		c.RecvBufSize = DefaultRecvBufSize
	}
	if c.Retry == nil {
		c.Retry = retry.NewBackOffPolicy()
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent()
	}
	return u.Scheme, u.Host, nil
}

func defaultUserAgent() string {
	return fmt.Sprintf("mochow-sdk-go/%s/%s/%s", Version, runtime.GOOS, runtime.GOARCH)
}
