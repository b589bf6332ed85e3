package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jmcarb/clienthub/internal/auth/domain"
	"github.com/jmcarb/clienthub/internal/auth/store"
	"github.com/jmcarb/clienthub/pkg/cryptox"
	"github.com/jmcarb/clienthub/pkg/idx"
	"github.com/jmcarb/clienthub/pkg/jwtx"
	"github.com/jmcarb/clienthub/pkg/ratex"
	"github.com/jmcarb/clienthub/pkg/slogx"
)

const (
	// DefaultMinPasswordLength is enforced on registration, ahead of the store.
	DefaultMinPasswordLength = 8

	// DefaultRefreshTTL is the fixed refresh-token lifetime: two days from
	// issuance, not sliding.
	DefaultRefreshTTL = 48 * time.Hour
)

// SessionService owns the credential and session lifecycle: registration,
// login, access-token refresh, refresh-token revocation, current-user lookup,
// and account deletion.
//
// Each account holds a single refresh slot. Login overwrites it (discarding
// any prior refresh token), Refresh reads it without rotating, Revoke clears
// it. Expiry is enforced lazily on Refresh/Revoke; there is no background
// sweep.
type SessionService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Principals PrincipalResolver

	// LoginThrottle rate-limits login attempts per email. Nil disables
	// throttling (tests).
	LoginThrottle *ratex.KeyedLimiter

	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// MinPasswordLen defaults to DefaultMinPasswordLength when zero.
	MinPasswordLen int
}

// Registration is the result of a successful Register call. An access token
// is minted immediately, but no refresh token: registering alone does not
// start a session.
type Registration struct {
	Account     domain.AccountSummary
	AccessToken string
}

// Session is the result of a successful Login call.
type Session struct {
	Account domain.AccountSummary
	Tokens  domain.TokenPair
}

// Refreshed is the result of a successful Refresh call. The refresh token is
// not rotated, so only a new access token comes back.
type Refreshed struct {
	Account     domain.AccountSummary
	AccessToken string
}

// Register creates an account with role User and returns its public
// projection plus a fresh access token.
func (s *SessionService) Register(ctx context.Context, email, password string) (Registration, error) {
	now := time.Now()
	email = normalizeEmail(email)

	minLen := s.MinPasswordLen
	if minLen <= 0 {
		minLen = DefaultMinPasswordLength
	}
	if len(password) < minLen {
		return Registration{}, ErrWeakPassword
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return Registration{}, err
	}

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, account); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		return tx.Accounts().AddRole(ctx, account.ID, domain.RoleUser)
	})
	if err != nil {
		return Registration{}, err
	}
	account.Roles = []string{domain.RoleUser}

	accessToken, err := s.signAccess(account, now)
	if err != nil {
		return Registration{}, err
	}

	slogx.FromContext(ctx).Info("account registered", slog.String("account_id", account.ID))

	return Registration{
		Account:     account.Summary(),
		AccessToken: accessToken,
	}, nil
}

// Login verifies credentials and starts a session: a new access token plus a
// new refresh token whose fingerprint overwrites the account's refresh slot.
// Any previously issued refresh token stops working as a side effect.
//
// Unknown email and wrong password both fail with ErrInvalidCredentials so
// responses cannot be used to enumerate accounts.
func (s *SessionService) Login(ctx context.Context, email, password string) (Session, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)
	email = normalizeEmail(email)

	if s.LoginThrottle != nil && !s.LoginThrottle.Allow(email) {
		l.Warn("login throttled", slog.String("email", email))
		return Session{}, ErrTooManyAttempts
	}

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		l.Info("login password verification failed", slog.String("account_id", account.ID))
		return Session{}, ErrInvalidCredentials
	}

	accessToken, err := s.signAccess(account, now)
	if err != nil {
		return Session{}, err
	}

	refreshOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return Session{}, err
	}
	refreshFP := cryptox.FingerprintToken(refreshOpaque)
	refreshExpiry := now.Add(s.refreshTTL())

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().SetRefreshToken(ctx, account.ID, &refreshFP, &refreshExpiry); err != nil {
			return err
		}
		return tx.Accounts().SetLastLogin(ctx, account.ID, now)
	})
	if err != nil {
		return Session{}, err
	}

	l.Info("login succeeded", slog.String("account_id", account.ID))

	return Session{
		Account: account.Summary(),
		Tokens: domain.TokenPair{
			AccessToken:      accessToken,
			RefreshToken:     refreshOpaque,
			TokenType:        "Bearer",
			RefreshExpiresAt: refreshExpiry,
		},
	}, nil
}

// Refresh exchanges a still-valid refresh token for a new access token. The
// refresh token is deliberately not rotated: the same token keeps working
// until its original expiry or until a Revoke or re-Login discards it.
func (s *SessionService) Refresh(ctx context.Context, refreshOpaque string) (Refreshed, error) {
	now := time.Now()

	account, err := s.lookupByRefreshToken(ctx, refreshOpaque, now)
	if err != nil {
		return Refreshed{}, err
	}

	accessToken, err := s.signAccess(account, now)
	if err != nil {
		return Refreshed{}, err
	}

	return Refreshed{
		Account:     account.Summary(),
		AccessToken: accessToken,
	}, nil
}

// Revoke invalidates the refresh token by clearing the account's refresh
// slot. A second Revoke with the same token fails with ErrInvalidRefresh
// since the fingerprint no longer matches anything.
func (s *SessionService) Revoke(ctx context.Context, refreshOpaque string) error {
	now := time.Now()

	account, err := s.lookupByRefreshToken(ctx, refreshOpaque, now)
	if err != nil {
		return err
	}

	if err := s.Store.Accounts().SetRefreshToken(ctx, account.ID, nil, nil); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("refresh token revoked", slog.String("account_id", account.ID))
	return nil
}

// CurrentUser returns the public projection of the calling principal's
// account. No new token is minted here.
func (s *SessionService) CurrentUser(ctx context.Context) (domain.CurrentUser, error) {
	p, ok := s.Principals.Resolve(ctx)
	if !ok || p.AccountID == "" {
		return domain.CurrentUser{}, ErrAccountNotFound
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, p.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.CurrentUser{}, ErrAccountNotFound
		}
		return domain.CurrentUser{}, err
	}

	return domain.CurrentUser{
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
	}, nil
}

// Delete permanently removes the account row. Role membership cascades and
// the refresh slot dies with the row; nothing else to clean up.
func (s *SessionService) Delete(ctx context.Context, accountID string) error {
	err := s.Store.Accounts().DeleteAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	slogx.FromContext(ctx).Info("account deleted", slog.String("account_id", accountID))
	return nil
}

// lookupByRefreshToken resolves a refresh-token plaintext to its account and
// enforces expiry. Shared by Refresh and Revoke.
func (s *SessionService) lookupByRefreshToken(ctx context.Context, refreshOpaque string, now time.Time) (domain.Account, error) {
	fp := cryptox.FingerprintToken(refreshOpaque)

	account, err := s.Store.Accounts().GetAccountByRefreshTokenHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrInvalidRefresh
		}
		return domain.Account{}, err
	}

	if account.RefreshTokenExpiry == nil {
		return domain.Account{}, ErrInvalidRefresh
	}
	if account.RefreshTokenExpiry.Before(now) {
		return domain.Account{}, ErrRefreshExpired
	}

	return account, nil
}

func (s *SessionService) signAccess(a domain.Account, now time.Time) (string, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	claims := jwtx.NewAccessClaims(a.ID, a.Email, a.Roles, ttl, s.Issuer, s.Audience, now)
	return s.Signer.Sign(claims)
}

func (s *SessionService) refreshTTL() time.Duration {
	if s.RefreshTTL == 0 {
		return DefaultRefreshTTL
	}
	return s.RefreshTTL
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
