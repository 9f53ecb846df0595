package user

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/chop-n-shop/pantry/internal/db/sqlite"
	"github.com/chop-n-shop/pantry/internal/domain"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store.DB())
}

func sampleUser() domain.User {
	return domain.User{
		ID:           "u1",
		FirstName:    "Ada",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$hash",
		Allergies:    []string{"peanuts"},
		CreatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateAndGetByEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u := sampleUser()
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != u.ID || got.FirstName != u.FirstName || got.PasswordHash != u.PasswordHash {
		t.Errorf("got %+v, want %+v", got, u)
	}
	if !reflect.DeepEqual(got.Allergies, u.Allergies) {
		t.Errorf("got allergies %v, want %v", got.Allergies, u.Allergies)
	}
	if !got.CreatedAt.Equal(u.CreatedAt) {
		t.Errorf("got created_at %v, want %v", got.CreatedAt, u.CreatedAt)
	}
}

func TestGetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleUser()); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Email != "ada@example.com" {
		t.Errorf("got email %q, want %q", got.Email, "ada@example.com")
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleUser()); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := sampleUser()
	dup.ID = "u2"
	err := repo.Create(ctx, dup)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("got %v, want ErrAlreadyExists", err)
	}
}

func TestGet_Missing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetByEmail(ctx, "ghost@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get by email: got %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByID(ctx, "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get by id: got %v, want ErrNotFound", err)
	}
}
