package api

import (
	"time"

	"github.com/ecomstack/account-api/internal/domain"
	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the account registration endpoint.
type RegisterRequest struct {
	Username    string `json:"username"     validate:"required"`
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

// UpdateAccountRequest defines the payload for the partial-update endpoint.
// Pointer fields distinguish "absent, leave unchanged" from an explicitly
// supplied value.
type UpdateAccountRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
}

// AccountResponse is the account representation returned by every endpoint.
// The stored credential is never included.
type AccountResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewAccountResponse builds the API representation of a domain account.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID,
		Username:    account.Username,
		Email:       account.Email,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		PhoneNumber: account.PhoneNumber,
		IsActive:    account.IsActive,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
}

// NewAccountListResponse builds the API representation of a list of
// accounts. The result is never nil so an empty set serializes as [].
func NewAccountListResponse(accounts []*domain.Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, NewAccountResponse(account))
	}
	return responses
}
