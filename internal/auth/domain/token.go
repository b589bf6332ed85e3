package domain

import "time"

// TokenPair is what a successful login returns: the short-lived signed access
// token and the opaque refresh token. The refresh plaintext crosses the wire
// exactly once, here; the store only ever sees its fingerprint.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type,omitempty"` // "Bearer"
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}
