// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"helios/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
// The repository layer returns it instead of leaking driver-level not-found errors.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// Create persists a new account, including its academic profile when attached.
	// A unique-constraint violation surfaces as the matching Conflict domain error;
	// the store constraint is the final arbiter for uniqueness races.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves a single account by its unique ID, profile included.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUsername retrieves a single account by its exact username.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// FindByEmail retrieves a single account by its exact email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindAll returns every account, newest first.
	FindAll(ctx context.Context) ([]*entity.Account, error)

	// FindPage returns a bounded page of accounts, newest first.
	FindPage(ctx context.Context, skip, limit int) ([]*entity.Account, error)

	// UsernameExists reports whether an account with the username exists.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists reports whether an account with the email exists.
	EmailExists(ctx context.Context, email string) (bool, error)

	// Update persists the current state of an already-loaded account and,
	// when attached, its academic profile.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes the account and cascades to its owned academic profile.
	Delete(ctx context.Context, id uuid.UUID) error
}
