// server/internal/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	Init("test-secret", "1h")

	token, err := GenerateJWT("64f000000000000000000001", "donor@example.com", "donor")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", claims.UserID)
	assert.Equal(t, "donor@example.com", claims.Email)
	assert.Equal(t, "donor", claims.Role)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	Init("secret-one", "1h")
	token, err := GenerateJWT("u1", "a@b.c", "donor")
	require.NoError(t, err)

	Init("secret-two", "1h")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestInitKeepsTTLOnBadDuration(t *testing.T) {
	tokenTTL = 24 * time.Hour
	Init("test-secret", "not-a-duration")
	assert.Equal(t, 24*time.Hour, tokenTTL)

	Init("test-secret", "90m")
	assert.Equal(t, 90*time.Minute, tokenTTL)
}
