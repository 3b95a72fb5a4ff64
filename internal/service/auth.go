package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerline/ledgerline/internal/config"
	"github.com/ledgerline/ledgerline/internal/domain"
)

// UserStore is the slice of the persistence layer the verifier needs.
// *repository.UserRepo satisfies it.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Verify checks a login submission against the stored bcrypt hash. It
// returns nil for a malformed email, a short password, an unknown email and
// a wrong password alike, so the caller cannot enumerate accounts. Malformed
// credentials never reach the store.
func (s *AuthService) Verify(ctx context.Context, email, password string) (*domain.Identity, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, nil
	}
	if len(password) < config.MinPasswordLength {
		return nil, nil
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}

	identity := user.Identity()
	return &identity, nil
}

// HashPassword produces the bcrypt digest stored in place of a plaintext
// password.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
