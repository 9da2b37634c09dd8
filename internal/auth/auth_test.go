package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/yard-telemetry/internal/config"
)

func TestNewService_APIKey(t *testing.T) {
	service, err := NewService(config.Config{
		ESAuthScheme: config.AuthSchemeAPIKey,
		ESAPIKey:     "c2VjcmV0",
	})
	assert.NoError(t, err)
	assert.NotNil(t, service)

	key, value, err := service.Header()
	assert.NoError(t, err)
	assert.Equal(t, "Authorization", key)
	assert.Equal(t, "ApiKey c2VjcmV0", value)
}

func TestNewService_MissingAPIKey(t *testing.T) {
	_, err := NewService(config.Config{ESAuthScheme: config.AuthSchemeAPIKey})
	assert.Error(t, err)
	assert.Equal(t, ErrMissingAPIKey, err)
}

func TestNewService_MissingJWTSecret(t *testing.T) {
	_, err := NewService(config.Config{ESAuthScheme: config.AuthSchemeBearer})
	assert.Error(t, err)
	assert.Equal(t, ErrMissingJWTSecret, err)
}

func TestNewService_UnknownScheme(t *testing.T) {
	_, err := NewService(config.Config{ESAuthScheme: "basic"})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestService_NoneSchemeSendsNoHeader(t *testing.T) {
	service, err := NewService(config.Config{ESAuthScheme: config.AuthSchemeNone})
	require.NoError(t, err)

	key, value, err := service.Header()
	assert.NoError(t, err)
	assert.Empty(t, key)
	assert.Empty(t, value)
}

func TestService_BearerTokenClaims(t *testing.T) {
	service, err := NewService(config.Config{
		ESAuthScheme: config.AuthSchemeBearer,
		ESJWTSecret:  "test-secret",
		ESJWTTTL:     time.Hour,
	})
	require.NoError(t, err)

	key, value, err := service.Header()
	require.NoError(t, err)
	assert.Equal(t, "Authorization", key)
	require.True(t, len(value) > len("Bearer "))

	// Token must verify against the same secret
	raw := value[len("Bearer "):]
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "yard-telemetry", claims["sub"])

	// Check expiration window
	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	now := time.Now().Unix()
	assert.Greater(t, int64(exp), now)
	assert.LessOrEqual(t, int64(exp), now+int64(time.Hour.Seconds())+1)
}

func TestService_BearerTokenReused(t *testing.T) {
	service, err := NewService(config.Config{
		ESAuthScheme: config.AuthSchemeBearer,
		ESJWTSecret:  "test-secret",
		ESJWTTTL:     time.Hour,
	})
	require.NoError(t, err)

	_, first, err := service.Header()
	require.NoError(t, err)
	_, second, err := service.Header()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestService_BearerTokenRenewedNearExpiry(t *testing.T) {
	service, err := NewService(config.Config{
		ESAuthScheme: config.AuthSchemeBearer,
		ESJWTSecret:  "test-secret",
		ESJWTTTL:     time.Hour,
	})
	require.NoError(t, err)

	_, _, err = service.Header()
	require.NoError(t, err)

	// Force the cached token inside the renewal margin
	service.tokenExpiry = time.Now().Add(10 * time.Second)
	service.token = "stale"

	_, value, err := service.Header()
	require.NoError(t, err)
	assert.NotEqual(t, "Bearer stale", value)
	assert.True(t, service.tokenExpiry.After(time.Now().Add(30*time.Minute)))
}

func TestNewService_DefaultTTL(t *testing.T) {
	service, err := NewService(config.Config{
		ESAuthScheme: config.AuthSchemeBearer,
		ESJWTSecret:  "test-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, service.tokenExp)
}
