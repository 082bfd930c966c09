package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arifrhmanh/toko-kayu-app/models"
)

func testUser() *models.User {
	return &models.User{
		ID:          "3f2a1b00-0000-0000-0000-000000000001",
		Username:    "budi2024",
		Role:        models.RoleCustomer,
		NamaLengkap: "Budi Santoso",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	user := testUser()

	token, err := GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, models.RoleCustomer, claims.Role)
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	user := testUser()

	refresh, err := GenerateRefreshToken(user)
	require.NoError(t, err)

	// Secret berbeda, token refresh tidak boleh lolos verifikasi access.
	_, err = VerifyAccessToken(refresh)
	assert.Error(t, err)

	claims, err := VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := VerifyAccessToken("bukan.token.jwt")
	assert.Error(t, err)

	_, err = VerifyAccessToken("")
	assert.Error(t, err)
}
