package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", 30)

	tokenString, err := m.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	userID, err := m.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tokenString, err := NewManager("secret-a", 30).Issue("user-123")
	require.NoError(t, err)

	_, err = NewManager("secret-b", 30).Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", 30)

	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	m := &Manager{secret: []byte("test-secret"), expiry: -time.Hour}

	tokenString, err := m.Issue("user-123")
	require.NoError(t, err)

	_, err = m.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
