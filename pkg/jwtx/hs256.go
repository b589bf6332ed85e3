package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum accepted HS256 secret length in bytes.
// Anything shorter than the hash output weakens the MAC.
const MinSecretLength = 32

// Signer mints signed access tokens.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates an access token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256Signer signs tokens with a symmetric secret supplied at process start.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HS256 signer. The secret must be at least
// MinSecretLength bytes.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &HS256Signer{secret: secret}, nil
}

// Sign produces a compact JWT for the given claims.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyOptions captures the expectations enforced during verification.
type VerifyOptions struct {
	// Issuer the token must carry. Empty means "don't care".
	Issuer string

	// Audience the token must contain. Empty means "don't care".
	Audience string

	// Leeway tolerates small clock skew when validating exp/nbf.
	Leeway time.Duration
}

// HS256Verifier checks signature, lifetime, issuer and audience with the same
// symmetric secret used for signing.
type HS256Verifier struct {
	secret []byte
	opts   VerifyOptions
}

// NewVerifierHS256 creates a verifier for tokens minted by NewSignerHS256.
func NewVerifierHS256(secret []byte, opts VerifyOptions) (*HS256Verifier, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &HS256Verifier{secret: secret, opts: opts}, nil
}

// Verify parses and validates a compact JWT, returning its claims.
func (v *HS256Verifier) Verify(tokenString string) (Claims, error) {
	parseOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.opts.Leeway),
	}
	if v.opts.Issuer != "" {
		parseOpts = append(parseOpts, jwt.WithIssuer(v.opts.Issuer))
	}
	if v.opts.Audience != "" {
		parseOpts = append(parseOpts, jwt.WithAudience(v.opts.Audience))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, parseOpts...)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}

	return claims, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuer
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrAudience
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return err
	}
}
