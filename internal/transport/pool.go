package transport

import (
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultMaxIdleConns        = 10
	defaultMaxIdleConnsPerHost = 10
	defaultDialTimeout         = 10 * time.Second
)

// PoolOptions configures the pooled HTTP client backing the transport.
type PoolOptions struct {
	SendBufSize int // socket write buffer, bytes; zero keeps the OS default
	RecvBufSize int // socket read buffer, bytes; zero keeps the OS default
	ProxyURL    *url.URL
	DialTimeout time.Duration
}

// NewPooledHTTPClient builds an HTTP client with connection reuse and
// TCP keepalive probing enabled on platforms that support it.
func NewPooledHTTPClient(opts PoolOptions) *http.Client {
	dialTimeout := opts.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}
	dialer := &net.Dialer{
		Timeout: dialTimeout,
		Control: controlSocket,
	}

	tr := &http.Transport{
		DialContext:         dialer.DialContext,
		MaxIdleConns:        defaultMaxIdleConns,
		MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
		WriteBufferSize:     opts.SendBufSize,
		ReadBufferSize:      opts.RecvBufSize,
	}
	if opts.ProxyURL != nil {
		tr.Proxy = http.ProxyURL(opts.ProxyURL)
	}

	return &http.Client{Transport: tr}
}
