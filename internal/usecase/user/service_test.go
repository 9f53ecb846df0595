package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/chop-n-shop/pantry/internal/domain"
)

type mockRepo struct {
	users map[string]domain.User // keyed by email
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: map[string]domain.User{}}
}

func (m *mockRepo) Create(_ context.Context, u domain.User) error {
	if _, exists := m.users[u.Email]; exists {
		return domain.ErrAlreadyExists
	}
	m.users[u.Email] = u
	return nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := m.users[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func newTestService(repo Repository) *Service {
	return New(repo, "test-secret-at-least-32-characters!!", time.Hour)
}

func TestRegister(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	u, err := svc.Register(context.Background(), "Ada", " Ada@Example.COM ", "hunter22", []string{"peanuts"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if u.ID == "" {
		t.Error("expected generated user ID")
	}
	if u.Email != "ada@example.com" {
		t.Errorf("expected normalized email, got %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Error("expected password hash stripped from the returned user")
	}

	stored := repo.users["ada@example.com"]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")) != nil {
		t.Error("stored hash does not verify the password")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "pw1", nil); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "pw2", nil)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestLoginAndVerifyToken(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter22", nil)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	token, u, err := svc.Login(ctx, "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if u.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, u.ID)
	}
	if u.PasswordHash != "" {
		t.Error("expected password hash stripped from the returned user")
	}

	userID, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if userID != registered.ID {
		t.Errorf("token subject = %s, expected %s", userID, registered.ID)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter22", nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "ada@example.com", "wrong"},
		{"unknown email", "nobody@example.com", "hunter22"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestVerifyToken_Invalid(t *testing.T) {
	svc := newTestService(newMockRepo())

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.VerifyToken(tt.token)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	repo := newMockRepo()
	issuer := newTestService(repo)
	verifier := New(repo, "a-completely-different-signing-secret", time.Hour)
	ctx := context.Background()

	if _, err := issuer.Register(ctx, "Ada", "ada@example.com", "hunter22", nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	token, _, err := issuer.Login(ctx, "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := verifier.VerifyToken(token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong secret, got %v", err)
	}
}
