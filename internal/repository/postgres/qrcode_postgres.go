package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"

	"pydenweb/internal/model"
	"pydenweb/internal/repository"
)

// listLimit caps every listing regardless of filter.
const listLimit = 200

// QRCodePostgres is a PostgreSQL implementation of repository.QRCodeRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// Uniqueness of (type, external_id) and public_id is enforced by the schema's
// unique constraints, so concurrent creates resolve at the database.
type QRCodePostgres struct {
	db *sql.DB
}

// NewQRCodePostgres creates a new QRCodePostgres repository.
func NewQRCodePostgres(db *sql.DB) *QRCodePostgres {
	return &QRCodePostgres{db: db}
}

var _ repository.QRCodeRepository = (*QRCodePostgres)(nil)

// Create inserts a new QR record and returns the stored row.
// A unique-constraint violation is translated to repository.ErrDuplicate.
func (r *QRCodePostgres) Create(ctx context.Context, rec *model.QRCode) (*model.QRCode, error) {
	const q = `
		INSERT INTO qrcodes (type, description, external_id, public_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, type, description, external_id, public_id, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		rec.Type,
		rec.Description,
		rec.ExternalID,
		rec.PublicID,
	)
	var out model.QRCode
	if err := row.Scan(
		&out.ID,
		&out.Type,
		&out.Description,
		&out.ExternalID,
		&out.PublicID,
		&out.CreatedAt,
	); err != nil {
		if IsUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return &out, nil
}

// List returns records matching the filter, newest first, at most 200 rows.
func (r *QRCodePostgres) List(ctx context.Context, f repository.ListFilter) ([]model.QRCode, error) {
	q := `
		SELECT id, type, description, external_id, public_id, created_at
		FROM qrcodes
	`
	var (
		conds []string
		args  []any
	)
	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, "type = $1")
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		p := placeholder(len(args))
		conds = append(conds, "(description LIKE "+p+" OR external_id LIKE "+p+" OR public_id::text LIKE "+p+")")
	}
	if len(conds) > 0 {
		q += " WHERE " + conds[0]
		if len(conds) > 1 {
			q += " AND " + conds[1]
		}
	}
	q += " ORDER BY id DESC LIMIT " + placeholder(len(args)+1)
	args = append(args, listLimit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.QRCode, 0)
	for rows.Next() {
		var rec model.QRCode
		if err := rows.Scan(
			&rec.ID,
			&rec.Type,
			&rec.Description,
			&rec.ExternalID,
			&rec.PublicID,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// FindByPublicID fetches a single record by its public identifier.
func (r *QRCodePostgres) FindByPublicID(ctx context.Context, publicID string) (*model.QRCode, error) {
	const q = `
		SELECT id, type, description, external_id, public_id, created_at
		FROM qrcodes
		WHERE public_id = $1
	`
	row := r.db.QueryRowContext(ctx, q, publicID)
	var rec model.QRCode
	if err := row.Scan(
		&rec.ID,
		&rec.Type,
		&rec.Description,
		&rec.ExternalID,
		&rec.PublicID,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsNoRowsError reports whether err means the query matched no rows.
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
