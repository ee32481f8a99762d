package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-course-tracker/internal/model"
)

const uniqueViolationCode = "23505"

const userColumns = `id, username, email, password_hash, first_name, last_name, profile_picture, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user. Uniqueness of username and email is enforced by
// the database constraints so a losing concurrent insert fails cleanly
// instead of racing a pre-check.
func (r *UserRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, first_name, last_name)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if conflictErr := mapUniqueViolation(err); conflictErr != nil {
			return model.User{}, conflictErr
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// FindByLogin looks a user up by username or email, whichever matches the
// identifier. The stored hash is included for credential verification.
func (r *UserRepository) FindByLogin(ctx context.Context, identifier string) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1`,
		strings.TrimSpace(identifier)).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.ProfilePicture, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by login: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.ProfilePicture, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// ExistsByID backs the liveness check on resource-owning routes: a token can
// outlive its account.
func (r *UserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

// UpdateProfile merges the supplied fields over the stored row; nil fields
// keep their prior value. An email collision surfaces as the unique
// constraint firing inside the same statement, so the row is never left
// half-updated.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, fields model.UpdateProfileRequest) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`UPDATE users
		 SET first_name = COALESCE($1, first_name),
		     last_name = COALESCE($2, last_name),
		     email = COALESCE($3, email),
		     profile_picture = COALESCE($4, profile_picture),
		     updated_at = now()
		 WHERE id = $5
		 RETURNING `+userColumns,
		fields.FirstName, fields.LastName, fields.Email, fields.ProfilePicture, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.ProfilePicture, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		if conflictErr := mapUniqueViolation(err); conflictErr != nil {
			return model.User{}, conflictErr
		}
		return model.User{}, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return nil
	}

	switch pgErr.ConstraintName {
	case "users_username_key":
		return model.ErrUsernameTaken
	case "users_email_key":
		return model.ErrEmailTaken
	}
	return nil
}
