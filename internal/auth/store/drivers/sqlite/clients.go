package sqlite

import (
	"context"
	"database/sql"
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.LongName, c.Age, c.Gender, c.Email, optionalString(c.Nationality),
		c.State, c.Phone, c.CanDrive, c.WearsGlasses, c.IsDiabetic,
		optionalString(c.OtherDiseases), c.Deleted, c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
	return mapErr(err)
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.ClientRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ? AND deleted = 0`, id)
	return scanClient(row)
}

func (r *clientsRepo) GetClientByEmail(ctx context.Context, email string) (domain.ClientRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE email = ? AND deleted = 0`, email)
	return scanClient(row)
}

func (r *clientsRepo) UpdateClient(ctx context.Context, c domain.ClientRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET long_name = ?, age = ?, gender = ?, email = ?, nationality = ?, state = ?,
			phone = ?, can_drive = ?, wears_glasses = ?, is_diabetic = ?,
			other_diseases = ?, updated_at = ?
		WHERE id = ? AND deleted = 0`,
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
		UPDATE clients SET deleted = 1, updated_at = ? WHERE id = ? AND deleted = 0`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *clientsRepo) ListClients(ctx context.Context, page, pageSize int, filter domain.ClientFilter) ([]domain.ClientRecord, int, error) {
	where := ` WHERE deleted = 0`
	args := []any{}
	if filter.Name != "" {
		where += ` AND long_name LIKE '%' || ? || '%'`
		args = append(args, filter.Name)
	}
	if filter.Email != "" {
		where += ` AND email LIKE '%' || ? || '%'`
		args = append(args, filter.Email)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clients`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + clientColumns + ` FROM clients` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)

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
