package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// Account represents a registered account of the e-commerce platform.
// A zero ID marks an account that has not been persisted yet; the store
// assigns the ID on first save and it is immutable afterwards.
type Account struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	// Password is the credential exactly as supplied at registration.
	// It is stored unhashed. This is a known hardening gap inherited from
	// the reference behavior, not a design feature; hashing it would
	// change the persisted contract.
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAccount creates a new active Account with the given registration data.
// The ID is left unset; the store assigns it when the account is saved.
// Returns an error if validation fails.
func NewAccount(username, email, password, firstName, lastName, phoneNumber string) (*Account, error) {
	account := &Account{
		Username:    username,
		Email:       email,
		Password:    password,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phoneNumber,
		IsActive:    true,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks if the Account has valid data.
// Returns an error if any required field is missing.
func (a *Account) Validate() error {
	if a.Username == "" {
		return ErrEmptyUsername
	}

	if a.Email == "" {
		return ErrEmptyEmail
	}

	if a.Password == "" {
		return ErrEmptyPassword
	}

	return nil
}

// Deactivate marks the account inactive. The transition is monotonic:
// nothing in the domain ever sets IsActive back to true, and deactivating
// an already-inactive account leaves it unchanged.
func (a *Account) Deactivate() {
	a.IsActive = false
}
