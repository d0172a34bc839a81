package session

import (
	"context"
	"testing"
	"time"

	"vitrine/config"
	deliverycontext "vitrine/internal/delivery/context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test_session_secret_very_long_for_testing"

func jwtTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Session = &config.SessionConfig{
		Provider:  "jwt",
		JWTSecret: testJWTSecret,
	}

	return cfg
}

func signedSessionToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func ctxWithBearer(token string) context.Context {
	return deliverycontext.WithCredentials(context.Background(), deliverycontext.Credentials{
		Authorization: "Bearer " + token,
	})
}

func TestJWTProvider_ResolvesSubject(t *testing.T) {
	provider, err := NewJWTProvider(jwtTestConfig())
	require.NoError(t, err)

	tokenString := signedSessionToken(t, testJWTSecret, jwt.MapClaims{
		"sub":   "u1",
		"email": "a@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	subject, err := provider.CurrentSubject(ctxWithBearer(tokenString))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject.Email)
	assert.Equal(t, "u1", subject.ID)
}

func TestJWTProvider_DeniesWithoutCredentials(t *testing.T) {
	provider, err := NewJWTProvider(jwtTestConfig())
	require.NoError(t, err)

	subject, err := provider.CurrentSubject(context.Background())
	assert.Error(t, err)
	assert.Nil(t, subject)
}

func TestJWTProvider_DeniesWrongSecret(t *testing.T) {
	provider, err := NewJWTProvider(jwtTestConfig())
	require.NoError(t, err)

	tokenString := signedSessionToken(t, "some_other_secret", jwt.MapClaims{
		"sub":   "u1",
		"email": "a@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	subject, err := provider.CurrentSubject(ctxWithBearer(tokenString))
	assert.Error(t, err)
	assert.Nil(t, subject)
}

func TestJWTProvider_DeniesExpiredSession(t *testing.T) {
	provider, err := NewJWTProvider(jwtTestConfig())
	require.NoError(t, err)

	tokenString := signedSessionToken(t, testJWTSecret, jwt.MapClaims{
		"sub":   "u1",
		"email": "a@x.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})

	subject, err := provider.CurrentSubject(ctxWithBearer(tokenString))
	assert.Error(t, err)
	assert.Nil(t, subject)
}

func TestJWTProvider_DeniesMissingIdentityClaims(t *testing.T) {
	provider, err := NewJWTProvider(jwtTestConfig())
	require.NoError(t, err)

	tokenString := signedSessionToken(t, testJWTSecret, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	subject, err := provider.CurrentSubject(ctxWithBearer(tokenString))
	assert.Error(t, err)
	assert.Nil(t, subject)
}
