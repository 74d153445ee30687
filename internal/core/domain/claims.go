package domain

import "errors"

// ErrIdentityUnavailable signals that the identity service could not be
// reached or answered outside its contract. The gateway maps it to the same
// rejection as an invalid token so internal topology is not leaked.
var ErrIdentityUnavailable = errors.New("identity service unavailable")

// Trust headers injected by the gateway. Services behind the gateway treat
// their presence as proof of authentication and never re-validate tokens.
const (
	HeaderUsername = "x-username"
	HeaderRole     = "x-role"
	HeaderClientID = "x-client-id"
)

// SessionClaims is the identity assertion returned by login and validate.
// Token carries the signed JWT: freshly minted by login, echoed back
// unchanged by validate. Role and ClientID always reflect the credential
// store at resolution time, not the values frozen into the token.
type SessionClaims struct {
	Token    string
	Username string
	Role     string
	ClientID *int64
	UserID   int64
}
