// Package user handles account registration, login, and session tokens.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// Claims is the JWT payload for an authenticated session.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service manages accounts and issues HS256 session tokens.
type Service struct {
	repo   Repository
	secret []byte
	ttl    time.Duration
}

// New creates a user service.
func New(repo Repository, secret string, ttl time.Duration) *Service {
	return &Service{repo: repo, secret: []byte(secret), ttl: ttl}
}

// Register creates an account with a bcrypt password hash. A duplicate
// email surfaces as domain.ErrAlreadyExists.
func (s *Service) Register(
	ctx context.Context, firstName, email, password string, allergies []string,
) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(firstName),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Allergies:    allergies,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	u.PasswordHash = ""
	return u, nil
}

// Login verifies the password and returns a signed session token. Both an
// unknown email and a wrong password map to domain.ErrInvalidCredentials;
// the caller never learns which check failed.
func (s *Service) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.User{}, domain.ErrInvalidCredentials
		}
		return "", domain.User{}, fmt.Errorf("get user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", domain.User{}, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return "", domain.User{}, err
	}

	u.PasswordHash = ""
	return token, u, nil
}

// Get returns an account by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	u.PasswordHash = ""
	return u, nil
}

// VerifyToken validates a session token and returns the user ID it was
// issued for. Any parse, signature, or expiry failure maps to
// domain.ErrInvalidCredentials.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidCredentials
	}
	return claims.Subject, nil
}

func (s *Service) issueToken(u domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
