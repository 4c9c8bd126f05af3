package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ecomstack/account-api/internal/domain"
	"github.com/ecomstack/account-api/internal/store"
	"github.com/google/uuid"
)

// RegisterParams carries the data for a new account registration.
// FirstName, LastName and PhoneNumber are optional display fields.
type RegisterParams struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// UpdateParams carries a partial profile update. A nil field means "leave
// unchanged"; a non-nil field replaces the stored value. Only the three
// display fields can be changed: username, email, password and the active
// flag are never touched by an update, regardless of input.
type UpdateParams struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

// AccountService provides account lifecycle operations: registration,
// lookup, partial profile update, and soft deactivation.
type AccountService interface {
	// Register creates a new active account. The username is checked for
	// uniqueness before the email, so when both collide the reported
	// conflict is deterministic (username wins). Returns
	// store.ErrUsernameExists or store.ErrEmailExists on conflict; no
	// record is written on any failure path.
	Register(ctx context.Context, params RegisterParams) (*domain.Account, error)

	// GetByID retrieves an account by ID regardless of active state.
	// Returns store.ErrAccountNotFound if no such account exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// GetByUsername retrieves an account by username regardless of active
	// state, mirroring GetByID semantics.
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)

	// ListActive returns all currently active accounts as a fully
	// materialized slice, in store-determined order.
	ListActive(ctx context.Context) ([]*domain.Account, error)

	// Update applies a partial update to the account's display fields and
	// returns the post-update representation.
	// Returns store.ErrAccountNotFound if no such account exists.
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*domain.Account, error)

	// Deactivate sets the account inactive. Idempotent: deactivating an
	// already-inactive account succeeds and re-persists the same state.
	// Returns store.ErrAccountNotFound if no such account exists.
	Deactivate(ctx context.Context, id uuid.UUID) error

	// CountActive returns the number of currently active accounts.
	CountActive(ctx context.Context) (int64, error)
}

// AccountServiceImpl implements the AccountService interface.
type AccountServiceImpl struct {
	accountStore store.AccountStore
	db           *sql.DB
	logger       *slog.Logger
}

// NewAccountService creates a new AccountService. The db handle is used to
// scope each mutating operation to its own transaction; it may be nil in
// tests that exercise the service against a purely in-memory store.
func NewAccountService(accountStore store.AccountStore, db *sql.DB, logger *slog.Logger) *AccountServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}

	return &AccountServiceImpl{
		accountStore: accountStore,
		db:           db,
		logger:       logger.With(slog.String("component", "account_service")),
	}
}

// Ensure AccountServiceImpl implements AccountService
var _ AccountService = (*AccountServiceImpl)(nil)

// Register creates a new active account after checking that neither the
// username nor the email is already taken. The pre-checks run before any
// write, so failure paths leave no partial state. The store's unique
// constraints remain the backstop against a concurrent registration that
// slips between check and insert.
func (s *AccountServiceImpl) Register(ctx context.Context, params RegisterParams) (*domain.Account, error) {
	account, err := domain.NewAccount(
		params.Username,
		params.Email,
		params.Password,
		params.FirstName,
		params.LastName,
		params.PhoneNumber,
	)
	if err != nil {
		s.logger.Warn("invalid registration data",
			"error", err,
			"username", params.Username)
		return nil, err
	}

	err = s.inTransaction(ctx, func(ctx context.Context, txStore store.AccountStore) error {
		// Username is checked first so a request duplicating both values
		// always reports the username conflict.
		usernameTaken, err := txStore.ExistsByUsername(ctx, params.Username)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if usernameTaken {
			return store.ErrUsernameExists
		}

		emailTaken, err := txStore.ExistsByEmail(ctx, params.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if emailTaken {
			return store.ErrEmailExists
		}

		return txStore.Save(ctx, account)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("registration rejected, duplicate value",
				"error", err,
				"username", params.Username)
		} else {
			s.logger.Error("failed to register account",
				"error", err,
				"username", params.Username)
		}
		return nil, err
	}

	s.logger.Info("account registered",
		"account_id", account.ID,
		"username", account.Username)

	return account, nil
}

// GetByID retrieves an account by ID. Inactive accounts are returned too;
// the lookup is unconditional.
func (s *AccountServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	account, err := s.accountStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			s.logger.Debug("account not found", "account_id", id)
		} else {
			s.logger.Error("failed to retrieve account",
				"error", err,
				"account_id", id)
		}
		return nil, err
	}

	return account, nil
}

// GetByUsername retrieves an account by username, unconditionally.
func (s *AccountServiceImpl) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	account, err := s.accountStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			s.logger.Debug("account not found", "username", username)
		} else {
			s.logger.Error("failed to retrieve account by username",
				"error", err,
				"username", username)
		}
		return nil, err
	}

	return account, nil
}

// ListActive returns all active accounts.
func (s *AccountServiceImpl) ListActive(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accountStore.FindAllActive(ctx)
	if err != nil {
		s.logger.Error("failed to list active accounts", "error", err)
		return nil, err
	}

	return accounts, nil
}

// Update applies the supplied display-field changes to the account and
// persists the result. Fields left nil in params are not modified; the
// account's identity fields and active flag pass through untouched.
func (s *AccountServiceImpl) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*domain.Account, error) {
	var updated *domain.Account

	err := s.inTransaction(ctx, func(ctx context.Context, txStore store.AccountStore) error {
		account, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if params.FirstName != nil {
			account.FirstName = *params.FirstName
		}
		if params.LastName != nil {
			account.LastName = *params.LastName
		}
		if params.PhoneNumber != nil {
			account.PhoneNumber = *params.PhoneNumber
		}

		if err := txStore.Save(ctx, account); err != nil {
			return err
		}

		updated = account
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			s.logger.Debug("attempted to update missing account", "account_id", id)
		} else {
			s.logger.Error("failed to update account",
				"error", err,
				"account_id", id)
		}
		return nil, err
	}

	s.logger.Info("account updated", "account_id", id)

	return updated, nil
}

// Deactivate sets the account inactive and persists it. Repeating the call
// on an already-inactive account succeeds and rewrites the same state.
func (s *AccountServiceImpl) Deactivate(ctx context.Context, id uuid.UUID) error {
	err := s.inTransaction(ctx, func(ctx context.Context, txStore store.AccountStore) error {
		account, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		account.Deactivate()

		return txStore.Save(ctx, account)
	})
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			s.logger.Debug("attempted to deactivate missing account", "account_id", id)
		} else {
			s.logger.Error("failed to deactivate account",
				"error", err,
				"account_id", id)
		}
		return err
	}

	s.logger.Info("account deactivated", "account_id", id)

	return nil
}

// CountActive returns the number of active accounts. With no mutation in
// flight this equals the length of ListActive's result.
func (s *AccountServiceImpl) CountActive(ctx context.Context) (int64, error) {
	count, err := s.accountStore.CountActive(ctx)
	if err != nil {
		s.logger.Error("failed to count active accounts", "error", err)
		return 0, err
	}

	return count, nil
}

// inTransaction runs fn against a transaction-scoped store so each mutating
// operation appears atomic. When no db handle is configured (in-memory
// stores in tests), fn runs directly against the injected store, which is
// expected to provide its own per-call atomicity.
func (s *AccountServiceImpl) inTransaction(ctx context.Context, fn func(ctx context.Context, txStore store.AccountStore) error) error {
	if s.db == nil {
		return fn(ctx, s.accountStore)
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.accountStore.WithTx(tx))
	})
}
