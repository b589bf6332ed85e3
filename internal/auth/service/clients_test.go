package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jmcarb/clienthub/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func testClient(email string) domain.ClientRecord {
	nationality := "Argentinian"
	return domain.ClientRecord{
		LongName:     "Juan Perez",
		Age:          34,
		Gender:       "M",
		Email:        email,
		Nationality:  &nationality,
		State:        "Buenos Aires",
		Phone:        "+54 11 5555 0000",
		CanDrive:     true,
		WearsGlasses: false,
		IsDiabetic:   false,
	}
}

func TestClientLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ClientService{Store: st}

	t.Run("register and fetch", func(t *testing.T) {
		created, err := svc.RegisterClient(ctx, testClient("juan@example.com"))
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		require.False(t, created.Deleted)

		byID, err := svc.GetClient(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "Juan Perez", byID.LongName)

		byEmail, err := svc.GetClientByEmail(ctx, "JUAN@example.com")
		require.NoError(t, err)
		require.Equal(t, created.ID, byEmail.ID)
	})

	t.Run("duplicate email fails", func(t *testing.T) {
		_, err := svc.RegisterClient(ctx, testClient("dup@example.com"))
		require.NoError(t, err)

		_, err = svc.RegisterClient(ctx, testClient("dup@example.com"))
		require.ErrorIs(t, err, ErrClientEmailTaken)
	})

	t.Run("update replaces mutable fields", func(t *testing.T) {
		created, err := svc.RegisterClient(ctx, testClient("update@example.com"))
		require.NoError(t, err)

		created.LongName = "Juan P. Perez"
		created.WearsGlasses = true
		other := "hypertension"
		created.OtherDiseases = &other

		updated, err := svc.UpdateClient(ctx, created)
		require.NoError(t, err)
		require.Equal(t, "Juan P. Perez", updated.LongName)
		require.True(t, updated.WearsGlasses)
		require.NotNil(t, updated.OtherDiseases)
		require.Equal(t, "hypertension", *updated.OtherDiseases)
	})

	t.Run("update of unknown client fails", func(t *testing.T) {
		missing := testClient("missing@example.com")
		missing.ID = "missing"
		_, err := svc.UpdateClient(ctx, missing)
		require.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("soft delete hides the record", func(t *testing.T) {
		created, err := svc.RegisterClient(ctx, testClient("gone@example.com"))
		require.NoError(t, err)

		require.NoError(t, svc.RemoveClient(ctx, created.ID))

		_, err = svc.GetClient(ctx, created.ID)
		require.ErrorIs(t, err, ErrClientNotFound)

		// Deleting again fails: the row is already hidden.
		require.ErrorIs(t, svc.RemoveClient(ctx, created.ID), ErrClientNotFound)
	})
}

func TestListClients(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ClientService{Store: st}

	for i := 0; i < 5; i++ {
		c := testClient(fmt.Sprintf("client%d@example.com", i))
		c.LongName = fmt.Sprintf("Client %d", i)
		_, err := svc.RegisterClient(ctx, c)
		require.NoError(t, err)
	}

	special := testClient("maria@example.com")
	special.LongName = "Maria Gomez"
	created, err := svc.RegisterClient(ctx, special)
	require.NoError(t, err)

	t.Run("paginates with total count", func(t *testing.T) {
		page, err := svc.ListClients(ctx, 1, 4, domain.ClientFilter{})
		require.NoError(t, err)
		require.Len(t, page.Clients, 4)
		require.Equal(t, 6, page.TotalCount)

		rest, err := svc.ListClients(ctx, 2, 4, domain.ClientFilter{})
		require.NoError(t, err)
		require.Len(t, rest.Clients, 2)
		require.Equal(t, 6, rest.TotalCount)
	})

	t.Run("filters by name", func(t *testing.T) {
		page, err := svc.ListClients(ctx, 1, 10, domain.ClientFilter{Name: "Maria"})
		require.NoError(t, err)
		require.Len(t, page.Clients, 1)
		require.Equal(t, "Maria Gomez", page.Clients[0].LongName)
	})

	t.Run("filters by email", func(t *testing.T) {
		page, err := svc.ListClients(ctx, 1, 10, domain.ClientFilter{Email: "maria@"})
		require.NoError(t, err)
		require.Len(t, page.Clients, 1)
		require.Equal(t, "maria@example.com", page.Clients[0].Email)
	})

	t.Run("clamps paging inputs", func(t *testing.T) {
		page, err := svc.ListClients(ctx, 0, 0, domain.ClientFilter{})
		require.NoError(t, err)
		require.Equal(t, 1, page.Page)
		require.Equal(t, defaultPageSize, page.PageSize)
	})

	t.Run("excludes soft-deleted records", func(t *testing.T) {
		require.NoError(t, svc.RemoveClient(ctx, created.ID))

		page, err := svc.ListClients(ctx, 1, 10, domain.ClientFilter{})
		require.NoError(t, err)
		require.Equal(t, 5, page.TotalCount)
		for _, c := range page.Clients {
			require.NotEqual(t, created.ID, c.ID)
		}
	})
}
