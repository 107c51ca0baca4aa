package auth

import (
	"testing"
	"time"

	"github.com/dkurganov/guestgate/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminToken_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateAdminToken(secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, VerifyAdminToken(token, secret))
}

func TestAdminToken_WrongSecret(t *testing.T) {
	token, err := GenerateAdminToken([]byte("secret-a"), time.Minute)
	require.NoError(t, err)

	assert.ErrorIs(t, VerifyAdminToken(token, []byte("secret-b")), common.ErrInvalidToken)
}

func TestAdminToken_Expired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateAdminToken(secret, -time.Minute)
	require.NoError(t, err)

	assert.ErrorIs(t, VerifyAdminToken(token, secret), common.ErrInvalidToken)
}

func TestAdminToken_Garbage(t *testing.T) {
	assert.ErrorIs(t, VerifyAdminToken("not.a.token", []byte("test-secret")), common.ErrInvalidToken)
}
