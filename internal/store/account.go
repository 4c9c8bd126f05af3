package store

import (
	"context"
	"database/sql"

	"github.com/ecomstack/account-api/internal/domain"
	"github.com/google/uuid"
)

// AccountStore defines the interface for account data persistence.
type AccountStore interface {
	// GetByID retrieves an account by its unique ID.
	// The lookup is unconditional: inactive accounts are returned too.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// GetByUsername retrieves an account by its username, mirroring the
	// GetByID semantics (no filtering by active state).
	// Returns ErrAccountNotFound if the account does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)

	// ExistsByUsername reports whether any account, active or not, holds
	// the given username.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether any account, active or not, holds the
	// given email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindAllActive returns all accounts with IsActive=true as a fully
	// materialized slice. The slice is never nil; order is determined by
	// the store.
	FindAllActive(ctx context.Context) ([]*domain.Account, error)

	// CountActive returns the number of accounts with IsActive=true.
	CountActive(ctx context.Context) (int64, error)

	// Save persists the account. When the account's ID is unset it inserts
	// a new record, assigning the ID and CreatedAt; otherwise it rewrites
	// the existing record. UpdatedAt is refreshed on every save.
	// Returns ErrUsernameExists or ErrEmailExists if the storage layer's
	// unique constraints reject the write, and ErrAccountNotFound when an
	// update targets a missing record.
	Save(ctx context.Context, account *domain.Account) error

	// WithTx returns a new AccountStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) AccountStore
}
