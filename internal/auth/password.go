package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/homegame/internal/models"
	"github.com/mmynk/homegame/internal/storage"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrEmailExists        = errors.New("email already registered")
)

// UserStorage is the subset of storage the authenticator reads and writes.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordAuthenticator authenticates with bcrypt-hashed passwords.
type PasswordAuthenticator struct {
	users UserStorage
	cost  int
}

// NewPasswordAuthenticator creates a password authenticator over users.
func NewPasswordAuthenticator(users UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{users: users, cost: bcrypt.DefaultCost}
}

// ValidateCredential enforces the minimum password length.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Register hashes the password and stores a new user.
// Emails are compared case-insensitively.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, displayName, credential string) (*models.User, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}
	email = normalizeEmail(email)

	existing, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(email, strings.TrimSpace(displayName), string(hash))
	if err := a.users.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate checks the password against the stored hash.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.User, error) {
	user, err := a.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
