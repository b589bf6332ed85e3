package store

import (
	"context"
	"errors"
	"time"

	"github.com/jmcarb/clienthub/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement it. Sub-repositories keep concerns separate and make
// it obvious which operations a service touches.
type Store interface {
	Accounts() Accounts
	Roles() Roles
	Clients() Clients

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connections.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Accounts persists principal identities, role membership, and each
// account's single refresh-token slot.
type Accounts interface {
	// GetAccountByID returns an account with its roles loaded.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail looks up the login handle. Matching is
	// case-insensitive per schema.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// GetAccountByRefreshTokenHash finds the account owning a refresh-token
	// fingerprint. Used by refresh and revoke.
	GetAccountByRefreshTokenHash(ctx context.Context, hash string) (domain.Account, error)

	// CreateAccount inserts a new account (id assigned by the app via ULID).
	// Returns ErrAlreadyExists on an email collision.
	CreateAccount(ctx context.Context, a domain.Account) error

	// AddRole grants the named role to the account. Granting a role the
	// account already holds is a no-op.
	AddRole(ctx context.Context, accountID, roleName string) error

	// SetRefreshToken overwrites the refresh slot. Hash and expiry must be
	// both nil (clear) or both non-nil (set); anything else is a programming
	// error and is rejected.
	SetRefreshToken(ctx context.Context, accountID string, hash *string, expiresAt *time.Time) error

	// SetLastLogin stamps the most recent successful login. CreatedAt is
	// immutable; login time lives in its own column.
	SetLastLogin(ctx context.Context, accountID string, at time.Time) error

	// DeleteAccount permanently removes the account row. Role membership
	// cascades; the refresh slot dies with the row.
	DeleteAccount(ctx context.Context, accountID string) error
}

// Roles persists the role catalogue ("Admin", "User").
type Roles interface {
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// CreateRole inserts a role. Returns ErrAlreadyExists on a name collision.
	CreateRole(ctx context.Context, r domain.Role) error

	ListRoles(ctx context.Context) ([]domain.Role, error)
}

// Clients persists customer records. Deletion is soft: flagged rows are
// excluded from reads but retained.
type Clients interface {
	// CreateClient inserts a record. Returns ErrAlreadyExists on an email
	// collision.
	CreateClient(ctx context.Context, c domain.ClientRecord) error

	GetClientByID(ctx context.Context, id string) (domain.ClientRecord, error)
	GetClientByEmail(ctx context.Context, email string) (domain.ClientRecord, error)

	// UpdateClient replaces the mutable fields of an existing record.
	UpdateClient(ctx context.Context, c domain.ClientRecord) error

	// SoftDeleteClient flags the record as deleted without removing the row.
	SoftDeleteClient(ctx context.Context, id string) error

	// ListClients returns one page of non-deleted records matching the
	// filter, plus the total match count.
	ListClients(ctx context.Context, page, pageSize int, filter domain.ClientFilter) ([]domain.ClientRecord, int, error)
}
