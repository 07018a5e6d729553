package common

// AccessTokenHeaderName is the HTTP header that carries the access token
// on authenticated requests. Login also echoes the issued token back to
// the client in this header.
const AccessTokenHeaderName = "auth-token"
