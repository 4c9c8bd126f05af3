package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomstack/account-api/internal/mocks"
	"github.com/ecomstack/account-api/internal/service"
	"github.com/ecomstack/account-api/internal/store"
)

func newTestService(t *testing.T) (*service.AccountServiceImpl, *mocks.MockAccountStore) {
	t.Helper()

	accountStore := mocks.NewMockAccountStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewAccountService(accountStore, nil, logger), accountStore
}

func registerParams(username, email string) service.RegisterParams {
	return service.RegisterParams{
		Username: username,
		Email:    email,
		Password: "pw",
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("successful registration persists an active account", func(t *testing.T) {
		t.Parallel()
		svc, accountStore := newTestService(t)

		account, err := svc.Register(ctx, service.RegisterParams{
			Username:    "alice",
			Email:       "alice@x.com",
			Password:    "pw",
			FirstName:   "Alice",
			PhoneNumber: "555-0100",
		})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, account.ID, "store must assign an ID")
		assert.True(t, account.IsActive)
		assert.Equal(t, "Alice", account.FirstName)

		// After a successful registration both existence checks hold.
		taken, err := accountStore.ExistsByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = accountStore.ExistsByEmail(ctx, "alice@x.com")
		require.NoError(t, err)
		assert.True(t, taken)
	})

	t.Run("duplicate username is rejected regardless of email", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		_, err := svc.Register(ctx, registerParams("alice", "alice@x.com"))
		require.NoError(t, err)

		_, err = svc.Register(ctx, registerParams("alice", "bob@x.com"))
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})

	t.Run("duplicate email with fresh username is rejected", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		_, err := svc.Register(ctx, registerParams("alice", "alice@x.com"))
		require.NoError(t, err)

		_, err = svc.Register(ctx, registerParams("bob", "alice@x.com"))
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("username conflict wins when both values are duplicated", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		_, err := svc.Register(ctx, registerParams("alice", "alice@x.com"))
		require.NoError(t, err)

		_, err = svc.Register(ctx, registerParams("alice", "alice@x.com"))
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})

	t.Run("no record is written on a failure path", func(t *testing.T) {
		t.Parallel()
		svc, accountStore := newTestService(t)

		_, err := svc.Register(ctx, registerParams("alice", "alice@x.com"))
		require.NoError(t, err)

		_, err = svc.Register(ctx, registerParams("alice", "second@x.com"))
		require.Error(t, err)

		taken, err := accountStore.ExistsByEmail(ctx, "second@x.com")
		require.NoError(t, err)
		assert.False(t, taken, "rejected registration must leave no partial state")
	})

	t.Run("missing username fails validation before any store call", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		_, err := svc.Register(ctx, registerParams("", "alice@x.com"))
		assert.Error(t, err)
	})
}

func TestRegisterConcurrentDuplicateUsername(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	// Two registrations race on the same username. The pre-checks may both
	// pass, but the store's uniqueness backstop must reject one insert:
	// exactly one success, never two.
	const attempts = 2
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, service.RegisterParams{
				Username: "alice",
				Email:    uuid.NewString() + "@x.com",
				Password: "pw",
			})
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case store.IsDuplicateError(err):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one concurrent registration may succeed")
	assert.Equal(t, 1, duplicates)

	count, err := svc.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	account, err := svc.Register(ctx, registerParams("alice", "alice@x.com"))
	require.NoError(t, err)

	t.Run("existing account", func(t *testing.T) {
		got, err := svc.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("missing account", func(t *testing.T) {
		_, err := svc.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})

	t.Run("inactive account is still returned", func(t *testing.T) {
		require.NoError(t, svc.Deactivate(ctx, account.ID))

		got, err := svc.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})
}

func TestGetByUsername(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	account, err := svc.Register(ctx, registerParams("alice", "alice@x.com"))
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, account.ID))

	// Lookup by username mirrors GetByID: no active-state filtering.
	got, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
	assert.False(t, got.IsActive)

	_, err = svc.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	strPtr := func(s string) *string { return &s }

	t.Run("only supplied fields change", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		account, err := svc.Register(ctx, service.RegisterParams{
			Username:  "alice",
			Email:     "alice@x.com",
			Password:  "pw",
			FirstName: "Alice",
			LastName:  "Smith",
		})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, account.ID, service.UpdateParams{
			PhoneNumber: strPtr("555-0199"),
		})
		require.NoError(t, err)

		assert.Equal(t, "555-0199", updated.PhoneNumber)
		assert.Equal(t, "Alice", updated.FirstName, "absent fields stay unchanged")
		assert.Equal(t, "Smith", updated.LastName)
		assert.Equal(t, "alice", updated.Username)
		assert.Equal(t, "alice@x.com", updated.Email)
		assert.True(t, updated.IsActive)
	})

	t.Run("all fields absent is a no-op on the profile", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		account, err := svc.Register(ctx, service.RegisterParams{
			Username:  "bob",
			Email:     "bob@x.com",
			Password:  "pw",
			FirstName: "Bob",
		})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, account.ID, service.UpdateParams{})
		require.NoError(t, err)

		assert.Equal(t, account.ID, updated.ID)
		assert.Equal(t, "Bob", updated.FirstName)
		assert.Equal(t, "bob", updated.Username)
	})

	t.Run("empty string clears a field", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		account, err := svc.Register(ctx, service.RegisterParams{
			Username:  "carol",
			Email:     "carol@x.com",
			Password:  "pw",
			FirstName: "Carol",
		})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, account.ID, service.UpdateParams{
			FirstName: strPtr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "", updated.FirstName)
	})

	t.Run("missing account", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		_, err := svc.Update(ctx, uuid.New(), service.UpdateParams{
			FirstName: strPtr("Nobody"),
		})
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})
}

func TestDeactivate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	account, err := svc.Register(ctx, registerParams("alice", "alice@x.com"))
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, account.ID))

	got, err := svc.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active, "deactivated account must disappear from the active listing")

	// Idempotent: a second deactivation succeeds and leaves the flag false.
	require.NoError(t, svc.Deactivate(ctx, account.ID))

	got, err = svc.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, svc.Deactivate(ctx, uuid.New()), store.ErrAccountNotFound)
}

func TestListActiveAndCountActive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	usernames := []string{"alice", "bob", "carol"}
	ids := make([]uuid.UUID, 0, len(usernames))
	for _, username := range usernames {
		account, err := svc.Register(ctx, registerParams(username, username+"@x.com"))
		require.NoError(t, err)
		ids = append(ids, account.ID)
	}

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	count, err := svc.CountActive(ctx)
	require.NoError(t, err)

	assert.Len(t, active, 3)
	assert.Equal(t, int64(len(active)), count, "count must agree with the listing length")

	require.NoError(t, svc.Deactivate(ctx, ids[1]))

	active, err = svc.ListActive(ctx)
	require.NoError(t, err)
	count, err = svc.CountActive(ctx)
	require.NoError(t, err)

	assert.Len(t, active, 2)
	assert.Equal(t, int64(2), count)
	for _, account := range active {
		assert.NotEqual(t, ids[1], account.ID)
	}
}

// TestLifecycleScenario walks the reference scenario end to end:
// register, duplicate rejection, lookup, deactivation, empty listing.
func TestLifecycleScenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	alice, err := svc.Register(ctx, registerParams("alice", "alice@x.com"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, alice.ID)
	assert.True(t, alice.IsActive)

	_, err = svc.Register(ctx, registerParams("alice", "bob@x.com"))
	assert.ErrorIs(t, err, store.ErrUsernameExists)

	got, err := svc.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	require.NoError(t, svc.Deactivate(ctx, alice.ID))

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	count, err := svc.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

// TestStoreFailurePropagation verifies that unexpected store errors are
// passed through untyped rather than masked or retried.
func TestStoreFailurePropagation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	accountStore := mocks.NewMockAccountStore()
	accountStore.ExistsByUsernameFn = func(ctx context.Context, username string) (bool, error) {
		return false, assert.AnError
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewAccountService(accountStore, nil, logger)

	_, err := svc.Register(ctx, registerParams("alice", "alice@x.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, store.IsDuplicateError(err))
	assert.False(t, store.IsNotFoundError(err))
}
