// Package auth provides the credentials and request signing used to
// authorize Mochow API calls.
//
// Signing is a pure function of the credentials: it dispatches on the
// credential variant and produces bearer-style header values. No canonical
// request or date-based HMAC scheme is involved.
package auth

import "fmt"

// Header names emitted by the signer.
const (
	HeaderAuthorization           = "Authorization"
	HeaderAppBuilderAuthorization = "X-Appbuilder-Authorization"
)

// Credentials supplies the identity used to authorize requests.
// Implementations are immutable once constructed.
type Credentials interface {
	// AuthHeaders returns the authorization header key/value pairs for one
	// request. The result is deterministic for a given credential value.
	AuthHeaders() map[string]string
}

// APIKeyCredentials authorizes requests with an account name and API key.
type APIKeyCredentials struct {
	account string
	apiKey  string
}

// New creates APIKeyCredentials for the given account and API key.
func New(account, apiKey string) *APIKeyCredentials {
	return &APIKeyCredentials{account: account, apiKey: apiKey}
}

// Account returns the account name.
func (c *APIKeyCredentials) Account() string { return c.account }

// AuthHeaders returns the bearer authorization header.
func (c *APIKeyCredentials) AuthHeaders() map[string]string {
	return map[string]string{
		HeaderAuthorization: fmt.Sprintf("Bearer account=%s&api_key=%s", c.account, c.apiKey),
	}
}

// AppBuilderCredentials authorizes requests coming through the AppBuilder
// service: the regular account/API key pair plus a secondary bearer token.
type AppBuilderCredentials struct {
	account string
	apiKey  string
	token   string
}

// NewAppBuilder creates AppBuilderCredentials with the given account,
// API key and AppBuilder token.
func NewAppBuilder(account, apiKey, token string) *AppBuilderCredentials {
	return &AppBuilderCredentials{account: account, apiKey: apiKey, token: token}
}

// Account returns the account name.
func (c *AppBuilderCredentials) Account() string { return c.account }

// AuthHeaders returns the bearer authorization header plus the AppBuilder
// token header.
func (c *AppBuilderCredentials) AuthHeaders() map[string]string {
	return map[string]string{
		HeaderAuthorization:           fmt.Sprintf("Bearer account=%s&api_key=%s", c.account, c.apiKey),
		HeaderAppBuilderAuthorization: fmt.Sprintf("Bearer %s", c.token),
	}
}

// Sign produces the authorization headers for the given credentials.
// It is a pure function: no I/O, no mutation of its inputs.
func Sign(c Credentials) map[string]string {
	if c == nil {
		return map[string]string{}
	}
	return c.AuthHeaders()
}
