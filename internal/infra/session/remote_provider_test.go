package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"vitrine/config"
	deliverycontext "vitrine/internal/delivery/context"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remoteTestConfig(endpoint string) *config.Config {
	cfg := &config.Config{}
	cfg.Session = &config.SessionConfig{
		Provider: "remote",
		Endpoint: endpoint,
	}

	return cfg
}

func ctxWithCookie(cookie string) context.Context {
	return deliverycontext.WithCredentials(context.Background(), deliverycontext.Credentials{
		Cookie: cookie,
	})
}

func TestRemoteProvider_ResolvesSubject(t *testing.T) {
	var forwardedCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwardedCookie = r.Header.Get("Cookie")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"$id":"u1","email":"a@x.com","name":"Alice"}`))
	}))
	defer server.Close()

	provider, err := NewRemoteProvider(remoteTestConfig(server.URL))
	require.NoError(t, err)

	subject, err := provider.CurrentSubject(ctxWithCookie("a_session=abc"))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject.Email)
	assert.Equal(t, "u1", subject.ID)
	assert.Equal(t, "a_session=abc", forwardedCookie)
}

func TestRemoteProvider_DeniesWithoutCredentials(t *testing.T) {
	provider, err := NewRemoteProvider(remoteTestConfig("http://localhost:1"))
	require.NoError(t, err)

	subject, err := provider.CurrentSubject(context.Background())
	assert.Error(t, err)
	assert.Nil(t, subject)
}

func TestRemoteProvider_DeniesOnUnauthorizedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	provider, err := NewRemoteProvider(remoteTestConfig(server.URL))
	require.NoError(t, err)

	subject, err := provider.CurrentSubject(ctxWithCookie("a_session=expired"))
	assert.Error(t, err)
	assert.Nil(t, subject)
}

func TestRemoteProvider_DeniesOnMissingIdentityFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Alice"}`))
	}))
	defer server.Close()

	provider, err := NewRemoteProvider(remoteTestConfig(server.URL))
	require.NoError(t, err)

	subject, err := provider.CurrentSubject(ctxWithCookie("a_session=abc"))
	assert.Error(t, err)
	assert.Nil(t, subject)
}
