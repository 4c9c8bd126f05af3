package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/ecomstack/account-api/internal/domain"
	"github.com/ecomstack/account-api/internal/platform/logger"
	"github.com/ecomstack/account-api/internal/store"
	"github.com/google/uuid"
)

// PostgresAccountStore implements the store.AccountStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAccountStore creates a new PostgreSQL implementation of the
// AccountStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresAccountStore(db store.DBTX, logger *slog.Logger) *PostgresAccountStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

// Ensure PostgresAccountStore implements store.AccountStore interface
var _ store.AccountStore = (*PostgresAccountStore)(nil)

const accountColumns = `id, username, email, password, first_name, last_name, phone_number, is_active, created_at, updated_at`

// scanAccount reads one account row from a row scanner.
func scanAccount(row interface{ Scan(dest ...any) error }) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.Password,
		&account.FirstName,
		&account.LastName,
		&account.PhoneNumber,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByID implements store.AccountStore.GetByID
// It retrieves an account by its unique ID regardless of active state.
// Returns store.ErrAccountNotFound if the account does not exist.
func (s *PostgresAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving account by ID", slog.String("account_id", id.String()))

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
	`

	account, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("account not found", slog.String("account_id", id.String()))
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to get account by ID",
			slog.String("error", err.Error()),
			slog.String("account_id", id.String()))
		return nil, err
	}

	return account, nil
}

// GetByUsername implements store.AccountStore.GetByUsername
// It retrieves an account by username regardless of active state.
// Returns store.ErrAccountNotFound if the account does not exist.
func (s *PostgresAccountStore) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving account by username", slog.String("username", username))

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE username = $1
	`

	account, err := scanAccount(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("account not found", slog.String("username", username))
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to get account by username",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}

	return account, nil
}

// ExistsByUsername implements store.AccountStore.ExistsByUsername
func (s *PostgresAccountStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		log.Error("failed to check username existence",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return false, err
	}

	return exists, nil
}

// ExistsByEmail implements store.AccountStore.ExistsByEmail
func (s *PostgresAccountStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		log.Error("failed to check email existence",
			slog.String("error", err.Error()),
			slog.String("email", email))
		return false, err
	}

	return exists, nil
}

// FindAllActive implements store.AccountStore.FindAllActive
// It returns all accounts with is_active=true.
// Returns an empty slice if no accounts match.
func (s *PostgresAccountStore) FindAllActive(ctx context.Context) ([]*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE is_active = TRUE
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query active accounts",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	accounts := []*domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			log.Error("failed to scan account row",
				slog.String("error", err.Error()))
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found active accounts", slog.Int("count", len(accounts)))
	return accounts, nil
}

// CountActive implements store.AccountStore.CountActive
func (s *PostgresAccountStore) CountActive(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT COUNT(*) FROM accounts WHERE is_active = TRUE`

	var count int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		log.Error("failed to count active accounts",
			slog.String("error", err.Error()))
		return 0, err
	}

	return count, nil
}

// Save implements store.AccountStore.Save
// It inserts the account when its ID is unset, assigning the ID and
// CreatedAt, and rewrites the existing record otherwise. UpdatedAt is
// refreshed on every save.
// Returns store.ErrUsernameExists or store.ErrEmailExists when the
// table's unique constraints reject the write, and
// store.ErrAccountNotFound when an update targets a missing record.
func (s *PostgresAccountStore) Save(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		log.Warn("account validation failed during save",
			slog.String("error", err.Error()),
			slog.String("username", account.Username))
		return err
	}

	now := time.Now().UTC()

	if account.ID == uuid.Nil {
		return s.insert(ctx, log, account, now)
	}
	return s.update(ctx, log, account, now)
}

func (s *PostgresAccountStore) insert(ctx context.Context, log *slog.Logger, account *domain.Account, now time.Time) error {
	account.ID = uuid.New()
	account.CreatedAt = now
	account.UpdatedAt = now

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		account.ID,
		account.Username,
		account.Email,
		account.Password,
		account.FirstName,
		account.LastName,
		account.PhoneNumber,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		// Reset the assigned identity so a retried save inserts again.
		account.ID = uuid.Nil

		if mapped := mapUniqueViolation(err); mapped != nil {
			log.Warn("unique constraint violation during account creation",
				slog.String("error", err.Error()),
				slog.String("username", account.Username))
			return mapped
		}

		log.Error("failed to create account",
			slog.String("error", err.Error()),
			slog.String("username", account.Username))
		return err
	}

	log.Info("account created successfully",
		slog.String("account_id", account.ID.String()),
		slog.String("username", account.Username))
	return nil
}

func (s *PostgresAccountStore) update(ctx context.Context, log *slog.Logger, account *domain.Account, now time.Time) error {
	account.UpdatedAt = now

	query := `
		UPDATE accounts
		SET username = $1, email = $2, password = $3, first_name = $4,
		    last_name = $5, phone_number = $6, is_active = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		account.Username,
		account.Email,
		account.Password,
		account.FirstName,
		account.LastName,
		account.PhoneNumber,
		account.IsActive,
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			log.Warn("unique constraint violation during account update",
				slog.String("error", err.Error()),
				slog.String("account_id", account.ID.String()))
			return mapped
		}

		log.Error("failed to update account",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("account not found for update",
			slog.String("account_id", account.ID.String()))
		return store.ErrAccountNotFound
	}

	log.Info("account updated successfully",
		slog.String("account_id", account.ID.String()))
	return nil
}

// WithTx implements store.AccountStore.WithTx
// It returns a new store bound to the given transaction.
func (s *PostgresAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return &PostgresAccountStore{
		db:     tx,
		logger: s.logger,
	}
}
