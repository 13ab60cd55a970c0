package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewJWTManager("test-secret", "concierge-backend")

	token, err := m.GenerateToken("staff@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", claims.Email)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", "concierge-backend")
	verifier := NewJWTManager("secret-b", "concierge-backend")

	token, err := issuer.GenerateToken("staff@example.com", time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", "concierge-backend")

	token, err := m.GenerateToken("staff@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	m := NewJWTManager("test-secret", "concierge-backend")

	_, err := m.ValidateToken("not-a-token")
	assert.Error(t, err)
}
