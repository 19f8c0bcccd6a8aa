package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/errors"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/repository"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/pkg/auth"
)

// AuthUseCase gates access behind a workspace PIN. The PIN is hashed at
// construction; successful entry authorizes the user permanently.
type AuthUseCase struct {
	users   repository.UserRepository
	hasher  auth.PinHasher
	pinHash string
}

// NewAuthUseCase constructs AuthUseCase, hashing the configured PIN.
func NewAuthUseCase(users repository.UserRepository, hasher auth.PinHasher, pin string) (*AuthUseCase, error) {
	if pin == "" {
		return nil, fmt.Errorf("bot PIN must not be empty")
	}
	hash, err := hasher.Hash(pin)
	if err != nil {
		return nil, fmt.Errorf("hash pin: %w", err)
	}
	return &AuthUseCase{users: users, hasher: hasher, pinHash: hash}, nil
}

// SubmitPIN validates the entered PIN and records the user as authorized.
func (u *AuthUseCase) SubmitPIN(ctx context.Context, userID int64, pin string) error {
	if err := u.hasher.Compare(u.pinHash, pin); err != nil {
		return domainErrors.ErrUnauthorized
	}
	return u.users.Authorize(ctx, userID)
}

// IsAuthorized reports whether the user already passed PIN entry.
func (u *AuthUseCase) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	return u.users.IsAuthorized(ctx, userID)
}
