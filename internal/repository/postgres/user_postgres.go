package postgres

import (
	"context"
	"database/sql"

	"pydenweb/internal/model"
	"pydenweb/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// FindByEmail fetches a single user by email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`
	row := r.db.QueryRowContext(ctx, q, email)
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, email, password_hash, role, created_at
	`
	role := u.Role
	if role == "" {
		role = "admin"
	}
	row := r.db.QueryRowContext(ctx, q, u.Email, u.PasswordHash, role)
	var out model.User
	if err := row.Scan(
		&out.ID,
		&out.Email,
		&out.PasswordHash,
		&out.Role,
		&out.CreatedAt,
	); err != nil {
		if IsUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return &out, nil
}
