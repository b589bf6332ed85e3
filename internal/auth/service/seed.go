package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jmcarb/clienthub/internal/auth/domain"
	"github.com/jmcarb/clienthub/internal/auth/store"
	"github.com/jmcarb/clienthub/pkg/cryptox"
	"github.com/jmcarb/clienthub/pkg/idx"
	"github.com/jmcarb/clienthub/pkg/slogx"
)

// SeedService makes sure the role catalogue and the distinguished admin
// account exist. Run is idempotent: anything already present is skipped, so
// it is safe to call on every startup.
type SeedService struct {
	Store store.Store

	// AdminEmail and AdminPassword configure the seeded admin account. When
	// AdminEmail is empty, only the roles are seeded.
	AdminEmail    string
	AdminPassword string
}

// Run seeds roles Admin and User, then the admin account.
func (s *SeedService) Run(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	for _, name := range []string{domain.RoleAdmin, domain.RoleUser} {
		if err := s.ensureRole(ctx, name); err != nil {
			return err
		}
	}

	if s.AdminEmail == "" {
		l.Info("no admin email configured, skipping admin seed")
		return nil
	}

	return s.ensureAdmin(ctx)
}

func (s *SeedService) ensureRole(ctx context.Context, name string) error {
	_, err := s.Store.Roles().GetRoleByName(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	err = s.Store.Roles().CreateRole(ctx, domain.Role{
		ID:        idx.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// Another instance seeded it first.
		return nil
	}
	return err
}

func (s *SeedService) ensureAdmin(ctx context.Context) error {
	l := slogx.FromContext(ctx)
	email := normalizeEmail(s.AdminEmail)

	_, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := cryptox.HashPassword(s.AdminPassword)
	if err != nil {
		return err
	}

	now := time.Now()
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
				return nil
			}
			return err
		}
		return tx.Accounts().AddRole(ctx, account.ID, domain.RoleAdmin)
	})
	if err != nil {
		return err
	}

	l.Info("admin account seeded", slog.String("account_id", account.ID))
	return nil
}
