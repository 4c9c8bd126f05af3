package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/ecomstack/account-api/internal/domain"
	"github.com/ecomstack/account-api/internal/store"
	"github.com/google/uuid"
)

// MockAccountStore implements store.AccountStore for testing.
// The default implementation is an in-memory store guarded by a mutex, so
// each call is atomic and the unique constraints hold even under
// concurrent Save calls, mirroring the backstop behavior of the real
// storage layer.
type MockAccountStore struct {
	// Function fields for customizable behavior
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByUsernameFn    func(ctx context.Context, username string) (*domain.Account, error)
	ExistsByUsernameFn func(ctx context.Context, username string) (bool, error)
	ExistsByEmailFn    func(ctx context.Context, email string) (bool, error)
	FindAllActiveFn    func(ctx context.Context) ([]*domain.Account, error)
	CountActiveFn      func(ctx context.Context) (int64, error)
	SaveFn             func(ctx context.Context, account *domain.Account) error

	mu       sync.Mutex
	accounts map[uuid.UUID]*domain.Account

	// SaveError forces every default Save to fail with the given error.
	SaveError error
}

// NewMockAccountStore creates a new mock store with initialized defaults.
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{
		accounts: make(map[uuid.UUID]*domain.Account),
	}
}

// Ensure MockAccountStore implements store.AccountStore
var _ store.AccountStore = (*MockAccountStore)(nil)

// Seed inserts an account directly, bypassing uniqueness checks.
// Intended for test setup only.
func (m *MockAccountStore) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	copied := *account
	m.accounts[account.ID] = &copied
}

// GetByID implements the AccountStore interface.
func (m *MockAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	account, exists := m.accounts[id]
	if !exists {
		return nil, store.ErrAccountNotFound
	}

	copied := *account
	return &copied, nil
}

// GetByUsername implements the AccountStore interface.
func (m *MockAccountStore) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, account := range m.accounts {
		if account.Username == username {
			copied := *account
			return &copied, nil
		}
	}

	return nil, store.ErrAccountNotFound
}

// ExistsByUsername implements the AccountStore interface.
func (m *MockAccountStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.ExistsByUsernameFn != nil {
		return m.ExistsByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, account := range m.accounts {
		if account.Username == username {
			return true, nil
		}
	}

	return false, nil
}

// ExistsByEmail implements the AccountStore interface.
func (m *MockAccountStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFn != nil {
		return m.ExistsByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, account := range m.accounts {
		if account.Email == email {
			return true, nil
		}
	}

	return false, nil
}

// FindAllActive implements the AccountStore interface.
// Results are ordered by creation time for deterministic assertions.
func (m *MockAccountStore) FindAllActive(ctx context.Context) ([]*domain.Account, error) {
	if m.FindAllActiveFn != nil {
		return m.FindAllActiveFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	active := []*domain.Account{}
	for _, account := range m.accounts {
		if account.IsActive {
			copied := *account
			active = append(active, &copied)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})

	return active, nil
}

// CountActive implements the AccountStore interface.
func (m *MockAccountStore) CountActive(ctx context.Context) (int64, error) {
	if m.CountActiveFn != nil {
		return m.CountActiveFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, account := range m.accounts {
		if account.IsActive {
			count++
		}
	}

	return count, nil
}

// Save implements the AccountStore interface.
// The default implementation enforces the username and email unique
// constraints the way the database does, so a concurrent duplicate insert
// fails with the same typed error even when the caller's pre-checks raced.
func (m *MockAccountStore) Save(ctx context.Context, account *domain.Account) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, account)
	}

	if m.SaveError != nil {
		return m.SaveError
	}

	if err := account.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, existing := range m.accounts {
		if id == account.ID {
			continue
		}
		if existing.Username == account.Username {
			return store.ErrUsernameExists
		}
		if existing.Email == account.Email {
			return store.ErrEmailExists
		}
	}

	now := time.Now().UTC()
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
		account.CreatedAt = now
	} else if _, exists := m.accounts[account.ID]; !exists {
		return store.ErrAccountNotFound
	}
	account.UpdatedAt = now

	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

// WithTx implements the AccountStore interface. The mock has no
// transactions; it returns itself.
func (m *MockAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return m
}
