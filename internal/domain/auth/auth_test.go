package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	return NewService(DefaultConfig("test-secret"), hash)
}

func TestLogin_IssuesValidToken(t *testing.T) {
	svc := newTestService(t)

	token, expiresAt, err := svc.Login("correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "workspace", claims.Subject)
	assert.Equal(t, "otomatik-quote", claims.Issuer)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.Login("wrong")
	assert.Error(t, err)
}

func TestLogin_Disabled(t *testing.T) {
	svc := NewService(DefaultConfig("test-secret"), "")
	assert.False(t, svc.Enabled())
	_, _, err := svc.Login("anything")
	assert.Error(t, err)
}

func TestValidateToken_RejectsForeignSecret(t *testing.T) {
	svc := newTestService(t)
	token, _, err := svc.Login("correct horse")
	require.NoError(t, err)

	other := NewService(DefaultConfig("other-secret"), "")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
