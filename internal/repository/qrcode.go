package repository

import (
	"context"
	"errors"

	"pydenweb/internal/model"
)

// ErrDuplicate is returned by Create when a uniqueness constraint is violated,
// either (type, external_id) or public_id. The check-and-insert is atomic at
// the database: concurrent identical creates cannot both succeed.
var ErrDuplicate = errors.New("record already exists")

// ListFilter narrows a listing. Zero values mean no filtering.
type ListFilter struct {
	// Type restricts results to one canonical document type.
	Type string
	// Search substring-matches against description, external_id and public_id.
	Search string
}

// QRCodeRepository defines data access for issued QR records using SQL queries only.
// No business logic here — strictly persistence operations.
type QRCodeRepository interface {
	// Create inserts a new record and returns it with DB-assigned fields
	// (id, created_at). Uniqueness violations surface as ErrDuplicate.
	Create(ctx context.Context, rec *model.QRCode) (*model.QRCode, error)

	// List returns records matching the filter, newest first, capped at 200.
	List(ctx context.Context, f ListFilter) ([]model.QRCode, error)

	// FindByPublicID returns the record identified by publicID.
	// sql.ErrNoRows passes through when the record does not exist.
	FindByPublicID(ctx context.Context, publicID string) (*model.QRCode, error)
}

// UserRepository defines data access for admin accounts.
type UserRepository interface {
	// FindByEmail returns the user with the given email.
	// sql.ErrNoRows passes through when no such user exists.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create inserts a new user and returns it with DB-assigned fields.
	Create(ctx context.Context, u *model.User) (*model.User, error)
}
