package domain

import "time"

// Role names known to the system. Every self-registered account gets RoleUser;
// the seeded admin account gets RoleAdmin.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Account is the identity of a principal. PasswordHash is argon2id encoded
// and must never leave the store/service boundary.
//
// RefreshTokenHash and RefreshTokenExpiry form the account's single refresh
// slot: both nil (no live session) or both set (one live refresh token).
// A new login overwrites the slot, which silently invalidates the previous
// refresh token.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Roles        []string

	RefreshTokenHash   *string
	RefreshTokenExpiry *time.Time

	CreatedAt   time.Time
	LastLoginAt *time.Time
	UpdatedAt   time.Time
}

// HasRole reports whether the account holds the named role.
func (a Account) HasRole(name string) bool {
	for _, r := range a.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// AccountSummary is the public projection of an account: what callers may
// see. No hashes, no refresh state.
type AccountSummary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary returns the public projection of the account.
func (a Account) Summary() AccountSummary {
	return AccountSummary{
		ID:        a.ID,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

// CurrentUser is the projection returned for "who am I" lookups.
type CurrentUser struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
