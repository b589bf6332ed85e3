package service

import (
	"context"
	"testing"

	"github.com/jmcarb/clienthub/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestSeedRun(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	seed := &SeedService{
		Store:         st,
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin-password",
	}

	require.NoError(t, seed.Run(ctx))

	t.Run("creates both roles", func(t *testing.T) {
		roles, err := st.Roles().ListRoles(ctx)
		require.NoError(t, err)

		names := make([]string, 0, len(roles))
		for _, r := range roles {
			names = append(names, r.Name)
		}
		require.ElementsMatch(t, []string{domain.RoleAdmin, domain.RoleUser}, names)
	})

	t.Run("creates the admin account with role Admin", func(t *testing.T) {
		account, err := st.Accounts().GetAccountByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		require.True(t, account.HasRole(domain.RoleAdmin))
		require.NotEqual(t, "admin-password", account.PasswordHash)
	})

	t.Run("admin can log in with the seeded password", func(t *testing.T) {
		svc := newSessionService(t, st)
		session, err := svc.Login(ctx, "admin@example.com", "admin-password")
		require.NoError(t, err)
		require.Equal(t, "admin@example.com", session.Account.Email)
	})

	t.Run("running again changes nothing", func(t *testing.T) {
		account, err := st.Accounts().GetAccountByEmail(ctx, "admin@example.com")
		require.NoError(t, err)

		require.NoError(t, seed.Run(ctx))

		again, err := st.Accounts().GetAccountByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		require.Equal(t, account.ID, again.ID)

		roles, err := st.Roles().ListRoles(ctx)
		require.NoError(t, err)
		require.Len(t, roles, 2)
	})
}

func TestSeedRunWithoutAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	seed := &SeedService{Store: st}
	require.NoError(t, seed.Run(ctx))

	roles, err := st.Roles().ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
}
