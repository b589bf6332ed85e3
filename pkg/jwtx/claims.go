package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens.
// Short-lived on purpose; refresh tokens carry the longer session.
const DefaultAccessTokenTTL = 15 * time.Minute

// Claims are the access-token claims shared across the service. Keep changes
// additive so previously issued tokens stay parseable.
type Claims struct {
	jwt.RegisteredClaims

	// Email is the login handle of the subject account.
	Email string `json:"email,omitempty"`

	// Roles carries the subject's role names ("Admin", "User"). Role gating
	// happens wherever the token is verified, so the names ride along in the
	// token itself.
	Roles []string `json:"roles,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for an access token.
func NewAccessClaims(
	subject, email string,
	roles []string,
	ttl time.Duration,
	issuer, audience string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email: email,
		Roles: roles,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. It also
// guarantees two tokens minted within the same second differ.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
