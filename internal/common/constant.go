// Package common contains shared constants and sentinel errors used across
// the beswan client components.
package common

// AuthHeaderName is the HTTP header carrying the bearer token on
// authenticated requests.
const AuthHeaderName = "Authorization"

// RequestIDHeaderName carries a client-generated id so a failed call can be
// correlated with backend logs.
const RequestIDHeaderName = "X-Request-Id"
