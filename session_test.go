package rental_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	rental "github.com/goliatone/go-rental"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionObject(t *testing.T) {
	accountID := uuid.New().String()
	now := time.Now()

	session := &rental.SessionObject{
		AccountID:      accountID,
		AccountRole:    rental.RoleLandlord,
		Email:          "owner@example.com",
		Name:           "Owner",
		Issuer:         "test-issuer",
		IssuedAt:       &now,
		ExpirationDate: &now,
	}

	assert.Equal(t, accountID, session.GetAccountID())

	accountUUID, err := session.GetAccountUUID()
	assert.NoError(t, err)
	assert.Equal(t, accountID, accountUUID.String())

	assert.Equal(t, rental.RoleLandlord, session.GetRole())
	assert.Equal(t, "owner@example.com", session.GetEmail())
	assert.Equal(t, "Owner", session.GetName())
	assert.Equal(t, &now, session.GetIssuedAt())
	assert.Equal(t, &now, session.GetExpiration())

	stringRep := session.String()
	assert.Contains(t, stringRep, accountID)
	assert.Contains(t, stringRep, "LANDLORD")
	assert.Contains(t, stringRep, "test-issuer")
}

func TestSessionFromTokenRoundTrip(t *testing.T) {
	ts := rental.NewTokenService([]byte("test-key"), 24, "test-issuer", nil, nil)

	identity := rental.NewIdentityFromAccount(&rental.Account{
		ID:    uuid.New(),
		Name:  "Renter",
		Email: "renter@example.com",
		Role:  rental.RoleTenant,
	})

	token, err := ts.Generate(identity)
	require.NoError(t, err)

	auther := testAuther(t, "test-key", "test-issuer")
	session, err := auther.SessionFromToken(token)
	require.NoError(t, err)

	assert.Equal(t, identity.ID(), session.GetAccountID())
	assert.Equal(t, rental.RoleTenant, session.GetRole())
	assert.Equal(t, "renter@example.com", session.GetEmail())
	assert.Equal(t, "Renter", session.GetName())
}

func TestSessionFromTokenRejectsUnknownRole(t *testing.T) {
	now := time.Now()
	claims := &rental.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Subject:   uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		AccountRole: "ADMIN",
	}

	ts := rental.NewTokenService([]byte("test-key"), 24, "test-issuer", nil, nil)
	token, err := ts.SignClaims(claims)
	require.NoError(t, err)

	auther := testAuther(t, "test-key", "test-issuer")
	_, err = auther.SessionFromToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, rental.ErrUnableToMapClaims)
}
