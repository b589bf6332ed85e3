//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jmcarb/clienthub/internal/auth/domain"
	"github.com/jmcarb/clienthub/internal/auth/store"
	"github.com/jmcarb/clienthub/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Run with: go test -tags integration ./internal/auth/store/drivers/postgres/
// Requires a local Docker daemon.

func newIntegrationStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("clienthub_test"),
		tcpostgres.WithUsername("clienthub"),
		tcpostgres.WithPassword("clienthub"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	st, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Ping(ctx))
	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	st := newIntegrationStore(t)

	now := time.Now().UTC()

	t.Run("account lifecycle with refresh slot", func(t *testing.T) {
		account := domain.Account{
			ID:           idx.New().String(),
			Email:        "alice@example.com",
			PasswordHash: "argon2id-hash",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		require.NoError(t, st.Accounts().CreateAccount(ctx, account))

		dup := account
		dup.ID = idx.New().String()
		dup.Email = "ALICE@example.com"
		require.ErrorIs(t, st.Accounts().CreateAccount(ctx, dup), store.ErrAlreadyExists)

		byEmail, err := st.Accounts().GetAccountByEmail(ctx, "Alice@Example.com")
		require.NoError(t, err)
		require.Equal(t, account.ID, byEmail.ID)

		hash := "refresh-fingerprint"
		expiry := now.Add(48 * time.Hour)
		require.NoError(t, st.Accounts().SetRefreshToken(ctx, account.ID, &hash, &expiry))

		byHash, err := st.Accounts().GetAccountByRefreshTokenHash(ctx, hash)
		require.NoError(t, err)
		require.Equal(t, account.ID, byHash.ID)

		require.NoError(t, st.Accounts().SetRefreshToken(ctx, account.ID, nil, nil))
		_, err = st.Accounts().GetAccountByRefreshTokenHash(ctx, hash)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, st.Accounts().DeleteAccount(ctx, account.ID))
	})

	t.Run("roles and membership", func(t *testing.T) {
		require.NoError(t, st.Roles().CreateRole(ctx, domain.Role{ID: idx.New().String(), Name: domain.RoleUser, CreatedAt: now}))

		account := domain.Account{
			ID:           idx.New().String(),
			Email:        "bob@example.com",
			PasswordHash: "argon2id-hash",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		require.NoError(t, st.Accounts().CreateAccount(ctx, account))
		require.NoError(t, st.Accounts().AddRole(ctx, account.ID, domain.RoleUser))
		require.NoError(t, st.Accounts().AddRole(ctx, account.ID, domain.RoleUser))

		loaded, err := st.Accounts().GetAccountByID(ctx, account.ID)
		require.NoError(t, err)
		require.Equal(t, []string{domain.RoleUser}, loaded.Roles)
	})

	t.Run("client soft delete and listing", func(t *testing.T) {
		c := domain.ClientRecord{
			ID:        idx.New().String(),
			LongName:  "Maria Gomez",
			Age:       41,
			Gender:    "F",
			Email:     "maria@example.com",
			State:     "Cordoba",
			Phone:     "+54 351 555 0000",
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, st.Clients().CreateClient(ctx, c))

		clients, total, err := st.Clients().ListClients(ctx, 1, 10, domain.ClientFilter{Name: "maria"})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Len(t, clients, 1)

		require.NoError(t, st.Clients().SoftDeleteClient(ctx, c.ID))

		_, err = st.Clients().GetClientByID(ctx, c.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, total, err = st.Clients().ListClients(ctx, 1, 10, domain.ClientFilter{})
		require.NoError(t, err)
		require.Zero(t, total)
	})

	t.Run("transaction rollback", func(t *testing.T) {
		account := domain.Account{
			ID:           idx.New().String(),
			Email:        "tx@example.com",
			PasswordHash: "argon2id-hash",
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		err := st.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Accounts().CreateAccount(ctx, account); err != nil {
				return err
			}
			return context.Canceled
		})
		require.Error(t, err)

		_, err = st.Accounts().GetAccountByID(ctx, account.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
