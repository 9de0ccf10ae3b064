package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/account-service/internal/models"
)

// ErrAccountNotFound is returned when no record matches the lookup.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository manages one role collection. Implementations load the
// collection, mutate it, and persist it back in full; there is no partial
// update and no cross-writer locking. Two near-simultaneous Inserts from
// different clients can therefore both pass an ExistsByEmail check, which
// is an accepted property of the store model.
type AccountRepository interface {
	// List returns the collection in insertion order.
	List(ctx context.Context) ([]*models.Account, error)

	// FindByEmail returns the record with the given email, or
	// ErrAccountNotFound.
	FindByEmail(ctx context.Context, email string) (*models.Account, error)

	// FindByCredentials returns the record matching both email and
	// password exactly, or ErrAccountNotFound.
	FindByCredentials(ctx context.Context, email, password string) (*models.Account, error)

	// ExistsByEmail reports whether any record carries the email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Insert appends a record to the collection.
	Insert(ctx context.Context, account *models.Account) error

	// Update replaces the record with the same email.
	Update(ctx context.Context, account *models.Account) error
}

// SessionRepository persists the authenticated flag ("true" or absent) the
// navigation chrome reads.
type SessionRepository interface {
	SetAuthenticated(ctx context.Context) error
	ClearAuthenticated(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
}

// Repository aggregates the role-indexed account repositories.
type Repository interface {
	// Accounts returns the repository for one role collection.
	Accounts(role models.Role) AccountRepository

	Teachers() AccountRepository
	Donors() AccountRepository

	Sessions() SessionRepository

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}
