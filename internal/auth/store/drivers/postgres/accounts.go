package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmcarb/clienthub/internal/auth/domain"
	"github.com/jmcarb/clienthub/internal/auth/store"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, email, password_hash, refresh_token_hash, refresh_token_expiry,
	created_at, last_login_at, updated_at`

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return r.scanAccount(ctx, row)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE lower(email) = lower($1)`, email)
	return r.scanAccount(ctx, row)
}

func (r *accountsRepo) GetAccountByRefreshTokenHash(ctx context.Context, hash string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE refresh_token_hash = $1`, hash)
	return r.scanAccount(ctx, row)
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, password_hash, refresh_token_hash, refresh_token_expiry,
			created_at, last_login_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Email, a.PasswordHash,
		optionalString(a.RefreshTokenHash), optionalTime(a.RefreshTokenExpiry),
		a.CreatedAt.UTC(), optionalTime(a.LastLoginAt), a.UpdatedAt.UTC(),
	)
	return mapErr(err)
}

func (r *accountsRepo) AddRole(ctx context.Context, accountID, roleName string) error {
	var roleID string
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM roles WHERE name = $1`, roleName).Scan(&roleID)
	if err != nil {
		return mapErr(err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO account_roles (account_id, role_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		accountID, roleID,
	)
	return mapErr(err)
}

func (r *accountsRepo) SetRefreshToken(ctx context.Context, accountID string, hash *string, expiresAt *time.Time) error {
	if (hash == nil) != (expiresAt == nil) {
		return fmt.Errorf("postgres: refresh hash and expiry must be set or cleared together")
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts
		SET refresh_token_hash = $1, refresh_token_expiry = $2, updated_at = $3
		WHERE id = $4`,
		optionalString(hash), optionalTime(expiresAt), time.Now().UTC(), accountID,
	)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *accountsRepo) SetLastLogin(ctx context.Context, accountID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET last_login_at = $1, updated_at = $2 WHERE id = $3`,
		at.UTC(), time.Now().UTC(), accountID,
	)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, accountID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, accountID)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *accountsRepo) scanAccount(ctx context.Context, row *sql.Row) (domain.Account, error) {
	var (
		a             domain.Account
		refreshHash   sql.NullString
		refreshExpiry sql.NullTime
		lastLogin     sql.NullTime
	)
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &refreshHash, &refreshExpiry,
		&a.CreatedAt, &lastLogin, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapErr(err)
	}

	a.RefreshTokenHash = nullStringPtr(refreshHash)
	a.RefreshTokenExpiry = nullTimePtr(refreshExpiry)
	a.LastLoginAt = nullTimePtr(lastLogin)

	roles, err := r.loadRoles(ctx, a.ID)
	if err != nil {
		return domain.Account{}, err
	}
	a.Roles = roles

	return a, nil
}

func (r *accountsRepo) loadRoles(ctx context.Context, accountID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.name
		FROM roles r
		JOIN account_roles ar ON ar.role_id = r.id
		WHERE ar.account_id = $1
		ORDER BY r.name`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// requireRow converts a zero-row update/delete into store.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
