package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jmcarb/clienthub/internal/auth/domain"
	"github.com/jmcarb/clienthub/internal/auth/store"
	"github.com/jmcarb/clienthub/pkg/idx"
	"github.com/jmcarb/clienthub/pkg/slogx"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ClientService manages customer records. It sits next to the session core
// rather than inside it: accounts authenticate, client records are the data
// those accounts manage. Client deletion is soft, unlike account deletion.
type ClientService struct {
	Store store.Store
}

// RegisterClient inserts a new client record. The email must be unique among
// non-deleted records.
func (s *ClientService) RegisterClient(ctx context.Context, c domain.ClientRecord) (domain.ClientRecord, error) {
	now := time.Now()

	c.ID = idx.New().String()
	c.Email = normalizeEmail(c.Email)
	c.Deleted = false
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.Store.Clients().CreateClient(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.ClientRecord{}, ErrClientEmailTaken
		}
		return domain.ClientRecord{}, err
	}

	slogx.FromContext(ctx).Info("client registered", slog.String("client_id", c.ID))
	return c, nil
}

// GetClient returns the client record by id. Soft-deleted records are not
// visible.
func (s *ClientService) GetClient(ctx context.Context, id string) (domain.ClientRecord, error) {
	c, err := s.Store.Clients().GetClientByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ClientRecord{}, ErrClientNotFound
		}
		return domain.ClientRecord{}, err
	}
	return c, nil
}

// GetClientByEmail returns the client record by email.
func (s *ClientService) GetClientByEmail(ctx context.Context, email string) (domain.ClientRecord, error) {
	c, err := s.Store.Clients().GetClientByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ClientRecord{}, ErrClientNotFound
		}
		return domain.ClientRecord{}, err
	}
	return c, nil
}

// UpdateClient replaces the mutable fields of an existing record.
func (s *ClientService) UpdateClient(ctx context.Context, c domain.ClientRecord) (domain.ClientRecord, error) {
	c.Email = normalizeEmail(c.Email)

	if err := s.Store.Clients().UpdateClient(ctx, c); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.ClientRecord{}, ErrClientNotFound
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.ClientRecord{}, ErrClientEmailTaken
		}
		return domain.ClientRecord{}, err
	}

	return s.GetClient(ctx, c.ID)
}

// RemoveClient flags the record as deleted. The row is retained; subsequent
// reads and listings no longer see it.
func (s *ClientService) RemoveClient(ctx context.Context, id string) error {
	if err := s.Store.Clients().SoftDeleteClient(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}

	slogx.FromContext(ctx).Info("client removed", slog.String("client_id", id))
	return nil
}

// ListClients returns one page of non-deleted records. Page numbers start at
// 1; out-of-range paging inputs are clamped rather than rejected.
func (s *ClientService) ListClients(ctx context.Context, page, pageSize int, filter domain.ClientFilter) (domain.ClientPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	clients, total, err := s.Store.Clients().ListClients(ctx, page, pageSize, filter)
	if err != nil {
		return domain.ClientPage{}, err
	}

	return domain.ClientPage{
		Clients:    clients,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}
