package common

// AuthHeaderName is the HTTP header carrying the session token. Clients
// send the raw signed token as the header value, without a scheme prefix.
const AuthHeaderName = "Authorization"

// Role values stored on user records and embedded in session tokens. Only
// RoleAdmin is ever checked by the authorization gate.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
