package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// Repo is the user account repository.
type Repo struct {
	db *sql.DB
}

// New creates a user repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create stores a new user. A duplicate email maps to
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u domain.User) error {
	allergies, err := json.Marshal(u.Allergies)
	if err != nil {
		return fmt.Errorf("marshal allergies: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (id, first_name, email, password_hash, allergies, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.FirstName, u.Email, u.PasswordHash, string(allergies), u.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", u.Email, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByEmail fetches a user by email. Missing maps to domain.ErrNotFound.
func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, email, password_hash, allergies, created_at
		FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// GetByID fetches a user by identifier. Missing maps to domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, email, password_hash, allergies, created_at
		FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var allergies string
	var createdAt time.Time
	err := row.Scan(&u.ID, &u.FirstName, &u.Email, &u.PasswordHash, &allergies, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("scan user: %w", err)
	}
	if err := json.Unmarshal([]byte(allergies), &u.Allergies); err != nil {
		return domain.User{}, fmt.Errorf("unmarshal allergies: %w", err)
	}
	u.CreatedAt = createdAt
	return u, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
