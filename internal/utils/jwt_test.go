package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediconnect-server/internal/models"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("507f1f77bcf86cd799439011", "jane@example.com", models.RoleDoctor, "Dr. Jane Doe", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, models.RoleDoctor, claims.Role)
	assert.Equal(t, "Dr. Jane Doe", claims.Name)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("id", "a@b.c", models.RolePatient, "A", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken("id", "a@b.c", models.RolePatient, "A", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.Error(t, err)
}

func TestGenerateTokenMissingSecret(t *testing.T) {
	_, err := GenerateToken("id", "a@b.c", models.RoleAdmin, "A", "", time.Hour)
	assert.Error(t, err)
}
