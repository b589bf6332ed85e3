package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmcarb/clienthub/internal/auth/domain"
)

type clientsRepo struct {
	db dbtx
}

const clientColumns = `id, long_name, age, gender, email, nationality, state, phone,
	can_drive, wears_glasses, is_diabetic, other_diseases, deleted, created_at, updated_at`

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.ClientRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, long_name, age, gender, email, nationality, state, phone,
			can_drive, wears_glasses, is_diabetic, other_diseases, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		c.ID, c.LongName, c.Age, c.Gender, c.Email, optionalString(c.Nationality),
		c.State, c.Phone, c.CanDrive, c.WearsGlasses, c.IsDiabetic,
		optionalString(c.OtherDiseases), c.Deleted, c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
	return mapErr(err)
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.ClientRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1 AND NOT deleted`, id)
	return scanClient(row)
}

func (r *clientsRepo) GetClientByEmail(ctx context.Context, email string) (domain.ClientRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE lower(email) = lower($1) AND NOT deleted`, email)
	return scanClient(row)
}

func (r *clientsRepo) UpdateClient(ctx context.Context, c domain.ClientRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET long_name = $1, age = $2, gender = $3, email = $4, nationality = $5, state = $6,
			phone = $7, can_drive = $8, wears_glasses = $9, is_diabetic = $10,
			other_diseases = $11, updated_at = $12
		WHERE id = $13 AND NOT deleted`,
		c.LongName, c.Age, c.Gender, c.Email, optionalString(c.Nationality), c.State,
		c.Phone, c.CanDrive, c.WearsGlasses, c.IsDiabetic,
		optionalString(c.OtherDiseases), time.Now().UTC(), c.ID,
	)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *clientsRepo) SoftDeleteClient(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE clients SET deleted = TRUE, updated_at = $1 WHERE id = $2 AND NOT deleted`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *clientsRepo) ListClients(ctx context.Context, page, pageSize int, filter domain.ClientFilter) ([]domain.ClientRecord, int, error) {
	where := ` WHERE NOT deleted`
	args := []any{}
	if filter.Name != "" {
		args = append(args, filter.Name)
		where += fmt.Sprintf(` AND long_name ILIKE '%%' || $%d || '%%'`, len(args))
	}
	if filter.Email != "" {
		args = append(args, filter.Email)
		where += fmt.Sprintf(` AND email ILIKE '%%' || $%d || '%%'`, len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clients`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := `SELECT ` + clientColumns + ` FROM clients` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var clients []domain.ClientRecord
	for rows.Next() {
		c, err := scanClientRows(rows)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}
	return clients, total, rows.Err()
}

func scanClient(row *sql.Row) (domain.ClientRecord, error) {
	var (
		c             domain.ClientRecord
		nationality   sql.NullString
		otherDiseases sql.NullString
	)
	err := row.Scan(
		&c.ID, &c.LongName, &c.Age, &c.Gender, &c.Email, &nationality, &c.State, &c.Phone,
		&c.CanDrive, &c.WearsGlasses, &c.IsDiabetic, &otherDiseases, &c.Deleted,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.ClientRecord{}, mapErr(err)
	}
	c.Nationality = nullStringPtr(nationality)
	c.OtherDiseases = nullStringPtr(otherDiseases)
	return c, nil
}

func scanClientRows(rows *sql.Rows) (domain.ClientRecord, error) {
	var (
		c             domain.ClientRecord
		nationality   sql.NullString
		otherDiseases sql.NullString
	)
	err := rows.Scan(
		&c.ID, &c.LongName, &c.Age, &c.Gender, &c.Email, &nationality, &c.State, &c.Phone,
		&c.CanDrive, &c.WearsGlasses, &c.IsDiabetic, &otherDiseases, &c.Deleted,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.ClientRecord{}, err
	}
	c.Nationality = nullStringPtr(nationality)
	c.OtherDiseases = nullStringPtr(otherDiseases)
	return c, nil
}
