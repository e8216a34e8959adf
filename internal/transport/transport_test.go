package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/mochow/auth"
	"github.com/hupe1980/mochow/model"
	"github.com/hupe1980/mochow/retry"
)

func testCallConfig(server *httptest.Server) *CallConfig {
	endpoint := strings.TrimPrefix(server.URL, "http://")
	return &CallConfig{
		Endpoint:    endpoint,
		Protocol:    "http",
		Credentials: auth.New("root", "secret"),
		Retry:       retry.NoRetryPolicy{},
		Timeout:     5 * time.Second,
		UserAgent:   "mochow-sdk-go/test",
	}
}

func TestClient_Do_Success(t *testing.T) {
	var gotAuth, gotDate, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotDate = r.Header.Get("x-bce-date")
		gotQuery = r.URL.RawQuery

		w.Header().Set("X-Bce-Request-Id", "req-42")
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"code":0,"msg":"success"}`))
	}))
	defer server.Close()

	client := New(server.Client(), nil)
	resp, err := client.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/v1/row",
		Params: map[string]string{"upsert": "", "database": "doc"},
		Body:   []byte(`{"database":"doc"}`),
	}, testCallConfig(server))
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "req-42", resp.RequestID())
	require.Equal(t, "abc", resp.Metadata["etag"])
	require.JSONEq(t, `{"code":0,"msg":"success"}`, string(resp.Body))

	require.Equal(t, "Bearer account=root&api_key=secret", gotAuth)
	require.NotEmpty(t, gotDate)
	// Params are sorted; the operation discriminator renders as a bare key.
	require.Equal(t, "database=doc&upsert", gotQuery)
}

func TestClient_Do_ServerErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Bce-Request-Id", "req-7")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 69, "msg": "table not exist"})
	}))
	defer server.Close()

	client := New(server.Client(), nil)
	_, err := client.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/v1/table",
		Params: map[string]string{"desc": ""},
	}, testCallConfig(server))
	require.Error(t, err)

	se, ok := model.AsServerError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, se.StatusCode)
	require.Equal(t, model.TableNotExist, se.Code)
	require.Equal(t, "table not exist", se.Msg)
	require.Equal(t, "req-7", se.RequestID)
}

func TestClient_Do_ServerErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(server.Client(), nil)
	_, err := client.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/v1/row",
	}, testCallConfig(server))
	require.Error(t, err)

	se, ok := model.AsServerError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadGateway, se.StatusCode)
	require.Equal(t, http.StatusText(http.StatusBadGateway), se.Msg)
}

func TestClient_Do_RetriesTransientThenGivesUp(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testCallConfig(server)
	cfg.Retry = &retry.BackOffPolicy{
		MaxErrorRetry: 2,
		MaxDelay:      10 * time.Millisecond,
		BaseInterval:  time.Millisecond,
	}

	client := New(server.Client(), nil)
	_, err := client.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/v1/row",
		Body:   []byte(`{"rows":[]}`),
	}, cfg)
	require.Error(t, err)

	// The raw last error propagates unchanged.
	se, ok := model.AsServerError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusServiceUnavailable, se.StatusCode)

	// Initial attempt plus MaxErrorRetry retries, then stop.
	require.Equal(t, int32(3), attempts.Load())
}

func TestClient_Do_RecoversAfterRetry(t *testing.T) {
	var attempts atomic.Int32
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(payload))

		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"code":0,"msg":"success"}`))
	}))
	defer server.Close()

	cfg := testCallConfig(server)
	cfg.Retry = &retry.BackOffPolicy{
		MaxErrorRetry: 3,
		MaxDelay:      10 * time.Millisecond,
		BaseInterval:  time.Millisecond,
	}

	client := New(server.Client(), nil)
	resp, err := client.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/v1/row",
		Body:   []byte(`{"rows":[{"id":"a"}]}`),
	}, cfg)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The buffered body is resent verbatim on the retry.
	require.Equal(t, int32(2), attempts.Load())
	require.Equal(t, bodies[0], bodies[1])
}

func TestClient_Do_ClientErrorNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":2,"msg":"invalid parameter"}`))
	}))
	defer server.Close()

	cfg := testCallConfig(server)
	cfg.Retry = retry.NewBackOffPolicy()

	client := New(server.Client(), nil)
	_, err := client.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/v1/row",
	}, cfg)
	require.Error(t, err)
	require.Equal(t, int32(1), attempts.Load())
}

func TestClient_Do_UnsupportedMethod(t *testing.T) {
	client := New(http.DefaultClient, nil)
	_, err := client.Do(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/v1/row",
	}, &CallConfig{Endpoint: "localhost:5287", Protocol: "http"})
	require.Error(t, err)

	_, ok := model.AsClientError(err)
	require.True(t, ok)
}

func TestClient_Do_RejectsNewlineHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer server.Close()

	client := New(server.Client(), nil)
	_, err := client.Do(context.Background(), &Request{
		Method:  http.MethodPost,
		Path:    "/v1/row",
		Headers: map[string]string{"x-custom": "bad\nvalue"},
	}, testCallConfig(server))
	require.Error(t, err)

	_, ok := model.AsClientError(err)
	require.True(t, ok)
}

func TestCanonicalQueryString(t *testing.T) {
	require.Equal(t, "", canonicalQueryString(nil))
	require.Equal(t, "search", canonicalQueryString(map[string]string{"search": ""}))
	require.Equal(t, "database=my%20db&table=t1",
		canonicalQueryString(map[string]string{"table": "t1", "database": "my db"}))
}

func TestHostHeader(t *testing.T) {
	require.Equal(t, "db.example.com", hostHeader("db.example.com", "http"))
	require.Equal(t, "db.example.com", hostHeader("db.example.com:80", "http"))
	require.Equal(t, "db.example.com", hostHeader("db.example.com:443", "https"))
	require.Equal(t, "db.example.com:5287", hostHeader("db.example.com:5287", "http"))
}

func TestMetadataFromHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("X-Bce-Request-Id", "req-1")
	h.Set("ETag", `"v1"`)
	h.Set("Content-Type", "application/json")

	meta := metadataFromHeaders(h)
	require.Equal(t, "req-1", meta["bce-request-id"])
	require.Equal(t, "v1", meta["etag"])
	require.Equal(t, "application/json", meta["content-type"])
}
