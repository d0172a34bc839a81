package token

import (
	"testing"
	"time"

	"vitrine/config"
	"vitrine/internal/domain/entity"
	"vitrine/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Download = &config.DownloadConfig{
		Secret: "test_download_secret_very_long_for_testing",
		TTL:    15 * time.Minute,
	}

	return cfg
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)

	subject := &entity.Subject{Email: "a@x.com", ID: "u1"}
	tokenString, expiresAt := svc.Issue("f1", "o1", subject)
	assert.NotEmpty(t, tokenString)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 2*time.Second)

	result := svc.Validate(tokenString, subject)
	assert.True(t, result.Valid)
	assert.Equal(t, "f1", result.FileID)
	assert.Equal(t, "o1", result.OrderID)
	assert.Empty(t, result.Kind)
	assert.Empty(t, result.Message)
}

func TestTokenService_DeterministicIssuance(t *testing.T) {
	issued := time.UnixMilli(1_700_000_000_000)
	svc, err := NewWithClock(testConfig(), fixedClock(issued))
	require.NoError(t, err)

	subject := &entity.Subject{Email: "a@x.com", ID: "u1"}
	first, _ := svc.Issue("f1", "o1", subject)
	second, _ := svc.Issue("f1", "o1", subject)

	// Pure function of inputs plus clock: same instant, same token.
	assert.Equal(t, first, second)
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	issued := time.UnixMilli(1_700_000_000_000)
	cfg := testConfig()
	subject := &entity.Subject{Email: "a@x.com", ID: "u1"}

	issuer, err := NewWithClock(cfg, fixedClock(issued))
	require.NoError(t, err)
	tokenString, expiresAt := issuer.Issue("f1", "o1", subject)
	require.Equal(t, issued.Add(15*time.Minute), expiresAt)

	tests := []struct {
		name     string
		at       time.Time
		valid    bool
		wantKind service.ErrorKind
	}{
		{name: "one ms before expiry", at: issued.Add(15*time.Minute - time.Millisecond), valid: true},
		{name: "exactly at expiry", at: issued.Add(15 * time.Minute), valid: true},
		{name: "one ms past expiry", at: issued.Add(15*time.Minute + time.Millisecond), valid: false, wantKind: service.KindExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator, err := NewWithClock(cfg, fixedClock(tt.at))
			require.NoError(t, err)

			result := validator.Validate(tokenString, subject)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.Equal(t, tt.wantKind, result.Kind)
			}
		})
	}
}

func TestTokenService_OwnershipEnforcement(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)

	owner := &entity.Subject{Email: "a@x.com", ID: "u1"}
	tokenString, _ := svc.Issue("f1", "o1", owner)

	t.Run("different email", func(t *testing.T) {
		result := svc.Validate(tokenString, &entity.Subject{Email: "b@y.com", ID: "u1"})
		assert.False(t, result.Valid)
		assert.Equal(t, service.KindOwnershipMismatch, result.Kind)
		assert.Contains(t, result.Message, "not authorized")
	})

	t.Run("different id", func(t *testing.T) {
		result := svc.Validate(tokenString, &entity.Subject{Email: "a@x.com", ID: "u2"})
		assert.False(t, result.Valid)
		assert.Equal(t, service.KindSessionMismatch, result.Kind)
	})

	t.Run("different email and id reports ownership first", func(t *testing.T) {
		result := svc.Validate(tokenString, &entity.Subject{Email: "b@y.com", ID: "u2"})
		assert.False(t, result.Valid)
		assert.Equal(t, service.KindOwnershipMismatch, result.Kind)
	})

	t.Run("nil subject", func(t *testing.T) {
		result := svc.Validate(tokenString, nil)
		assert.False(t, result.Valid)
		assert.Equal(t, service.KindOwnershipMismatch, result.Kind)
	})
}

func TestTokenService_TamperDetection(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)

	subject := &entity.Subject{Email: "a@x.com", ID: "u1"}
	tokenString, _ := svc.Issue("f1", "o1", subject)

	tamper := []struct {
		name   string
		mutate func(p *entity.TokenPayload)
	}{
		{name: "fileId", mutate: func(p *entity.TokenPayload) { p.FileID = "f2" }},
		{name: "orderId", mutate: func(p *entity.TokenPayload) { p.OrderID = "o2" }},
		{name: "expiresAt", mutate: func(p *entity.TokenPayload) { p.ExpiresAt += 60_000 }},
		{name: "issuedAt", mutate: func(p *entity.TokenPayload) { p.IssuedAt -= 60_000 }},
	}

	for _, tt := range tamper {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := decodePayload(tokenString)
			require.NoError(t, err)

			tt.mutate(payload)
			forged := encodePayload(payload)

			result := svc.Validate(forged, subject)
			assert.False(t, result.Valid)
			assert.Equal(t, service.KindSignatureMismatch, result.Kind)
		})
	}
}

func TestTokenService_TamperedIdentityFailsBeforeSignature(t *testing.T) {
	// Rewriting the bound identity moves the token out of the caller's hands
	// before the signature is ever checked.
	svc, err := New(testConfig())
	require.NoError(t, err)

	subject := &entity.Subject{Email: "a@x.com", ID: "u1"}
	tokenString, _ := svc.Issue("f1", "o1", subject)

	payload, err := decodePayload(tokenString)
	require.NoError(t, err)
	payload.SubjectEmail = "b@y.com"
	forged := encodePayload(payload)

	result := svc.Validate(forged, subject)
	assert.False(t, result.Valid)
	assert.Equal(t, service.KindOwnershipMismatch, result.Kind)
}

func TestTokenService_MalformedToken(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)

	subject := &entity.Subject{Email: "a@x.com", ID: "u1"}

	for _, bad := range []string{"not-base64!!", "", "aGVsbG8=", "e30="} {
		result := svc.Validate(bad, subject)
		assert.False(t, result.Valid, "input %q", bad)
		assert.Equal(t, service.KindMalformedToken, result.Kind, "input %q", bad)
		assert.Equal(t, "Invalid token format", result.Message, "input %q", bad)
	}
}

func TestTokenService_ExpiryCheckedBeforeOwnership(t *testing.T) {
	issued := time.UnixMilli(1_700_000_000_000)
	cfg := testConfig()
	owner := &entity.Subject{Email: "a@x.com", ID: "u1"}

	issuer, err := NewWithClock(cfg, fixedClock(issued))
	require.NoError(t, err)
	tokenString, _ := issuer.Issue("f1", "o1", owner)

	validator, err := NewWithClock(cfg, fixedClock(issued.Add(16*time.Minute)))
	require.NoError(t, err)

	// An expired token presented by the wrong account reports the expiry.
	result := validator.Validate(tokenString, &entity.Subject{Email: "b@y.com", ID: "u2"})
	assert.Equal(t, service.KindExpired, result.Kind)
}

func TestTokenService_SecretMismatch(t *testing.T) {
	subject := &entity.Subject{Email: "a@x.com", ID: "u1"}

	issuer, err := New(testConfig())
	require.NoError(t, err)
	tokenString, _ := issuer.Issue("f1", "o1", subject)

	otherCfg := testConfig()
	otherCfg.Download.Secret = "a_completely_different_secret"
	validator, err := New(otherCfg)
	require.NoError(t, err)

	result := validator.Validate(tokenString, subject)
	assert.False(t, result.Valid)
	assert.Equal(t, service.KindSignatureMismatch, result.Kind)
}

func TestNew_RequiresSecretAndTTL(t *testing.T) {
	cfg := &config.Config{}
	_, err := New(cfg)
	assert.Error(t, err)

	cfg.Download = &config.DownloadConfig{Secret: "s"}
	_, err = New(cfg)
	assert.Error(t, err)
}
