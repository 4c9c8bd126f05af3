package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecomstack/account-api/internal/api"
	"github.com/ecomstack/account-api/internal/domain"
	"github.com/ecomstack/account-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"account not found", store.ErrAccountNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", store.ErrAccountNotFound), http.StatusNotFound},
		{"username exists", store.ErrUsernameExists, http.StatusConflict},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"empty username", domain.ErrEmptyUsername, http.StatusBadRequest},
		{"empty email", domain.ErrEmptyEmail, http.StatusBadRequest},
		{"unexpected error", assert.AnError, http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, api.MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"account not found", store.ErrAccountNotFound, "Account not found"},
		{"username exists", store.ErrUsernameExists, "Username already exists"},
		{"email exists", store.ErrEmailExists, "Email already exists"},
		{"unexpected error", assert.AnError, "An unexpected error occurred"},
		{"nil error", nil, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, api.GetSafeErrorMessage(tt.err))
		})
	}
}

// TestGetSafeErrorMessageDoesNotLeakInternals guards against raw driver
// errors reaching clients through the sanitized message.
func TestGetSafeErrorMessageDoesNotLeakInternals(t *testing.T) {
	t.Parallel()

	internal := fmt.Errorf("pq: connection refused on host db-internal:5432")
	msg := api.GetSafeErrorMessage(internal)

	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "db-internal")
}
