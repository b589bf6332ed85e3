package service

import "errors"

// Sentinel errors returned by the services. Callers branch on these with
// errors.Is; anything else is an unexpected persistence or crypto failure.
var (
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrRefreshExpired     = errors.New("refresh_token_expired")
	ErrAccountNotFound    = errors.New("account_not_found")
	ErrWeakPassword       = errors.New("weak_password")
	ErrTooManyAttempts    = errors.New("too_many_attempts")

	ErrClientEmailTaken = errors.New("client_email_taken")
	ErrClientNotFound   = errors.New("client_not_found")
)
