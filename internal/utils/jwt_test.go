package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken("secret", userID, "seller", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsedID, role, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
	assert.Equal(t, "seller", role)
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", uuid.New(), "customer", -time.Minute)
	require.NoError(t, err)

	_, _, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", uuid.New(), "customer", time.Hour)
	require.NoError(t, err)

	_, _, err = ParseToken("rotated-secret", token)
	assert.Error(t, err)
}

func TestTokenMalformed(t *testing.T) {
	_, _, err := ParseToken("secret", "not-a-token")
	assert.Error(t, err)
}
