package mochow

import "github.com/hupe1980/mochow/model"

// Error types are defined in the model package and re-exported here so
// callers usually only import the root package.
type (
	// ClientError reports a mistake detected before or without reaching
	// the service, such as invalid arguments. It is never retried.
	ClientError = model.ClientError

	// ServerError reports a failure returned by the service, carrying
	// the HTTP status, the service error code and the request id.
	ServerError = model.ServerError

	// ServerErrCode enumerates the service error codes.
	ServerErrCode = model.ServerErrCode
)

// NewClientError creates a ClientError with the given message.
func NewClientError(msg string) *ClientError { return model.NewClientError(msg) }

// NewClientErrorf creates a ClientError with a formatted message.
func NewClientErrorf(format string, args ...any) *ClientError {
	return model.NewClientErrorf(format, args...)
}

// AsServerError unwraps err into a ServerError, if it is one.
func AsServerError(err error) (*ServerError, bool) { return model.AsServerError(err) }

// AsClientError unwraps err into a ClientError, if it is one.
func AsClientError(err error) (*ClientError, bool) { return model.AsClientError(err) }

// IsServerErrCode reports whether err is a ServerError with the given code.
func IsServerErrCode(err error, code ServerErrCode) bool {
	return model.IsServerErrCode(err, code)
}
