package model

import (
	"errors"
	"fmt"
)

// ServerErrCode is the fixed error code enumeration returned in the
// "code" field of an error response body.
type ServerErrCode int

const (
	InternalError    ServerErrCode = 1
	InvalidParameter ServerErrCode = 2

	InvalidHTTPURL      ServerErrCode = 10
	InvalidHTTPHeader   ServerErrCode = 11
	InvalidHTTPBody     ServerErrCode = 12
	MissSSLCertificates ServerErrCode = 13

	UserNotExist         ServerErrCode = 20
	UserAlreadyExist     ServerErrCode = 21
	RoleNotExist         ServerErrCode = 22
	RoleAlreadyExist     ServerErrCode = 23
	AuthenticationFailed ServerErrCode = 24
	PermissionDenied     ServerErrCode = 25

	DBNotExist      ServerErrCode = 50
	DBAlreadyExist  ServerErrCode = 51
	DBTooManyTables ServerErrCode = 52
	DBNotEmpty      ServerErrCode = 53

	InvalidTableSchema          ServerErrCode = 60
	InvalidPartitionParameters  ServerErrCode = 61
	TableTooManyFields          ServerErrCode = 62
	TableTooManyFamilies        ServerErrCode = 63
	TableTooManyPrimaryKeys     ServerErrCode = 64
	TableTooManyPartitionKeys   ServerErrCode = 65
	TableTooManyVectorFields    ServerErrCode = 66
	TableTooManyIndexes         ServerErrCode = 67
	DynamicSchemaError          ServerErrCode = 68
	TableNotExist               ServerErrCode = 69
	TableAlreadyExist           ServerErrCode = 70
	InvalidTableState           ServerErrCode = 71
	TableNotReady               ServerErrCode = 72
	AliasNotExist               ServerErrCode = 73
	AliasAlreadyExist           ServerErrCode = 74

	FieldNotExist        ServerErrCode = 80
	FieldAlreadyExist    ServerErrCode = 81
	VectorFieldNotExist  ServerErrCode = 82

	InvalidIndexSchema ServerErrCode = 90
	IndexNotExist      ServerErrCode = 91
	IndexAlreadyExist  ServerErrCode = 92
	IndexDuplicated    ServerErrCode = 93
	InvalidIndexState  ServerErrCode = 94

	PrimaryKeyDuplicated ServerErrCode = 100
	RowKeyNotFound       ServerErrCode = 101
)

// ClientError reports a malformed call detected on the client side:
// a missing required parameter, a closed connection, an unsupported HTTP
// method, or a mismatched search-request variant. It is never retried.
type ClientError struct {
	msg string
}

// NewClientError creates a ClientError with the given message.
func NewClientError(msg string) *ClientError {
	return &ClientError{msg: msg}
}

// NewClientErrorf creates a ClientError with a formatted message.
func NewClientErrorf(format string, args ...any) *ClientError {
	return &ClientError{msg: fmt.Sprintf(format, args...)}
}

func (e *ClientError) Error() string { return e.msg }

// ServerError reports a non-2xx response from the Mochow service, carrying
// the decoded error code and message plus request metadata.
type ServerError struct {
	StatusCode int
	Code       ServerErrCode
	Msg        string
	RequestID  string
}

func (e *ServerError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("mochow: server error: status=%d code=%d msg=%q requestId=%s",
			e.StatusCode, e.Code, e.Msg, e.RequestID)
	}
	return fmt.Sprintf("mochow: server error: status=%d code=%d msg=%q", e.StatusCode, e.Code, e.Msg)
}

// AsServerError unwraps err into a *ServerError if possible.
func AsServerError(err error) (*ServerError, bool) {
	var se *ServerError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsClientError unwraps err into a *ClientError if possible.
func AsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsServerErrCode reports whether err is a ServerError carrying the given code.
func IsServerErrCode(err error, code ServerErrCode) bool {
	se, ok := AsServerError(err)
	return ok && se.Code == code
}
