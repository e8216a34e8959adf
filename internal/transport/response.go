package transport

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hupe1980/mochow/model"
)

const metadataRequestID = "bce-request-id"

// Response is the decoded outcome of a successful call. Metadata holds
// the normalized response headers.
type Response struct {
	StatusCode int
	Metadata   map[string]string
	Body       []byte
}

// RequestID returns the server-assigned request id, if present.
func (r *Response) RequestID() string {
	return r.Metadata[metadataRequestID]
}

// metadataFromHeaders normalizes response headers: keys are lowercased,
// the "x-bce-" prefix collapses to "bce-", and the ETag value is
// unquoted.
func metadataFromHeaders(h http.Header) map[string]string {
	meta := make(map[string]string, len(h))
	for k, vs := range h {
		if len(vs) == 0 {
			continue
		}
		key := strings.ToLower(k)
		key = strings.Replace(key, "x-bce-", "bce-", 1)
		val := vs[0]
		if key == "etag" {
			val = strings.Trim(val, `"`)
		}
		meta[key] = val
	}
	return meta
}

// parseError maps a non-2xx response to a typed error. The service
// reports failures as a JSON body with "code" and "msg"; responses
// without a parsable body fall back to the HTTP status text.
func parseError(resp *Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode < 200 {
		return model.NewClientErrorf("can not handle 1xx http status code %d", resp.StatusCode)
	}

	serverErr := &model.ServerError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.RequestID(),
	}
	var body struct {
		Code model.ServerErrCode `json:"code"`
		Msg  string              `json:"msg"`
	}
	if len(resp.Body) > 0 && json.Unmarshal(resp.Body, &body) == nil && body.Msg != "" {
		serverErr.Code = body.Code
		serverErr.Msg = body.Msg
	} else {
		serverErr.Msg = http.StatusText(resp.StatusCode)
	}
	return serverErr
}
