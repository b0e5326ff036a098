package rental_test

import (
	"context"
	"testing"
	"time"

	rental "github.com/goliatone/go-rental"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func hashedAccount(t *testing.T, password string) *rental.Account {
	t.Helper()
	hash, err := rental.HashPassword(password)
	require.NoError(t, err)
	return &rental.Account{
		ID:           uuid.New(),
		Name:         "Owner",
		Email:        "owner@example.com",
		PasswordHash: hash,
		Role:         rental.RoleLandlord,
	}
}

func TestVerifyIdentityHappyPath(t *testing.T) {
	store := &MockAccounts{}
	account := hashedAccount(t, "s3cretpass")

	store.On("GetByEmail", mock.Anything, "owner@example.com").Return(account, nil).Once()
	store.On("TrackSuccessfulLogin", mock.Anything, account).Return(nil).Once()

	provider := rental.NewAccountProvider(store)

	identity, err := provider.VerifyIdentity(context.Background(), "owner@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, account.ID.String(), identity.ID())
	assert.Equal(t, rental.RoleLandlord, identity.Role())
	store.AssertExpectations(t)
}

func TestVerifyIdentityWrongPasswordTracksAttempt(t *testing.T) {
	store := &MockAccounts{}
	account := hashedAccount(t, "s3cretpass")

	store.On("GetByEmail", mock.Anything, "owner@example.com").Return(account, nil).Once()
	store.On("TrackAttemptedLogin", mock.Anything, account).Return(nil).Once()

	provider := rental.NewAccountProvider(store)

	_, err := provider.VerifyIdentity(context.Background(), "owner@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, rental.ErrMismatchedHashAndPassword)
	store.AssertExpectations(t)
}

func TestVerifyIdentityUnknownEmailIndistinguishable(t *testing.T) {
	store := &MockAccounts{}

	store.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, repositoryNotFound()).Once()

	provider := rental.NewAccountProvider(store)

	_, err := provider.VerifyIdentity(context.Background(), "nobody@example.com", "whatever")
	require.Error(t, err)
	assert.ErrorIs(t, err, rental.ErrMismatchedHashAndPassword)
}

func TestVerifyIdentityCoolDownBlocksAfterTooManyAttempts(t *testing.T) {
	store := &MockAccounts{}
	account := hashedAccount(t, "s3cretpass")
	recent := time.Now().Add(-time.Hour)
	account.LoginAttempts = rental.MaxLoginAttempts + 1
	account.LoginAttemptAt = &recent

	store.On("GetByEmail", mock.Anything, "owner@example.com").Return(account, nil).Once()

	provider := rental.NewAccountProvider(store)

	_, err := provider.VerifyIdentity(context.Background(), "owner@example.com", "s3cretpass")
	require.Error(t, err)
	assert.ErrorIs(t, err, rental.ErrTooManyLoginAttempts)
	store.AssertNotCalled(t, "TrackSuccessfulLogin", mock.Anything, mock.Anything)
}

func TestVerifyIdentityCoolDownExpiresAfterPeriod(t *testing.T) {
	store := &MockAccounts{}
	account := hashedAccount(t, "s3cretpass")
	old := time.Now().Add(-48 * time.Hour)
	account.LoginAttempts = rental.MaxLoginAttempts + 3
	account.LoginAttemptAt = &old

	store.On("GetByEmail", mock.Anything, "owner@example.com").Return(account, nil).Once()
	store.On("TrackSuccessfulLogin", mock.Anything, account).Return(nil).Once()

	provider := rental.NewAccountProvider(store)

	_, err := provider.VerifyIdentity(context.Background(), "owner@example.com", "s3cretpass")
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestVerifyIdentityRejectsPasswordlessAccount(t *testing.T) {
	store := &MockAccounts{}
	account := &rental.Account{
		ID:    uuid.New(),
		Email: "owner@example.com",
		Role:  rental.RoleLandlord,
	}

	store.On("GetByEmail", mock.Anything, "owner@example.com").Return(account, nil).Once()

	provider := rental.NewAccountProvider(store)

	_, err := provider.VerifyIdentity(context.Background(), "owner@example.com", "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, rental.ErrMismatchedHashAndPassword)
}

func TestVerifyIdentityRejectsUnknownRole(t *testing.T) {
	store := &MockAccounts{}
	account := hashedAccount(t, "s3cretpass")
	account.Role = "ADMIN"

	store.On("GetByEmail", mock.Anything, "owner@example.com").Return(account, nil).Once()
	store.On("TrackSuccessfulLogin", mock.Anything, account).Return(nil).Once()

	provider := rental.NewAccountProvider(store)

	_, err := provider.VerifyIdentity(context.Background(), "owner@example.com", "s3cretpass")
	require.Error(t, err)
	richErr := requireRichError(t, err)
	assert.Equal(t, "INVALID_ROLE", richErr.TextCode)
}
