package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomstack/account-api/internal/domain"
)

func TestNewAccount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid account",
			username: "alice",
			email:    "alice@example.com",
			password: "pw",
			wantErr:  nil,
		},
		{
			name:     "empty username",
			username: "",
			email:    "alice@example.com",
			password: "pw",
			wantErr:  domain.ErrEmptyUsername,
		},
		{
			name:     "empty email",
			username: "alice",
			email:    "",
			password: "pw",
			wantErr:  domain.ErrEmptyEmail,
		},
		{
			name:     "empty password",
			username: "alice",
			email:    "alice@example.com",
			password: "",
			wantErr:  domain.ErrEmptyPassword,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			account, err := domain.NewAccount(tt.username, tt.email, tt.password, "", "", "")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, account)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.username, account.Username)
			assert.Equal(t, tt.email, account.Email)
			assert.True(t, account.IsActive, "new accounts must start active")
			assert.Equal(t, uuid.Nil, account.ID, "ID is assigned by the store, not the domain")
		})
	}
}

func TestNewAccountKeepsOptionalFields(t *testing.T) {
	t.Parallel()

	account, err := domain.NewAccount("bob", "bob@example.com", "pw", "Bob", "Jones", "555-0100")
	require.NoError(t, err)

	assert.Equal(t, "Bob", account.FirstName)
	assert.Equal(t, "Jones", account.LastName)
	assert.Equal(t, "555-0100", account.PhoneNumber)
}

func TestDeactivate(t *testing.T) {
	t.Parallel()

	account, err := domain.NewAccount("carol", "carol@example.com", "pw", "", "", "")
	require.NoError(t, err)
	require.True(t, account.IsActive)

	account.Deactivate()
	assert.False(t, account.IsActive)

	// Repeated deactivation leaves the flag false.
	account.Deactivate()
	assert.False(t, account.IsActive)
}
