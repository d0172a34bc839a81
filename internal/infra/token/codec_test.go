package token

import (
	"testing"

	"vitrine/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() *entity.TokenPayload {
	return &entity.TokenPayload{
		FileID:       "f1",
		OrderID:      "o1",
		SubjectEmail: "a@x.com",
		SubjectID:    "u1",
		ExpiresAt:    1_700_000_900_000,
		IssuedAt:     1_700_000_000_000,
		Signature:    "abc123",
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	encoded := encodePayload(samplePayload())

	decoded, err := decodePayload(encoded)
	require.NoError(t, err)
	assert.Equal(t, samplePayload(), decoded)
}

func TestCodec_IdempotentDecode(t *testing.T) {
	encoded := encodePayload(samplePayload())

	first, err := decodePayload(encoded)
	require.NoError(t, err)
	second, err := decodePayload(encoded)
	require.NoError(t, err)

	// No hidden randomness: decoding twice yields identical field values.
	assert.Equal(t, first, second)
}

func TestCodec_NonASCIIRoundTrip(t *testing.T) {
	p := samplePayload()
	p.SubjectEmail = "ünïcode@例え.jp"

	decoded, err := decodePayload(encodePayload(p))
	require.NoError(t, err)
	assert.Equal(t, p.SubjectEmail, decoded.SubjectEmail)
}

func TestCodec_SurroundingWhitespaceTolerated(t *testing.T) {
	encoded := "  " + encodePayload(samplePayload()) + "\n"

	decoded, err := decodePayload(encoded)
	require.NoError(t, err)
	assert.Equal(t, "f1", decoded.FileID)
}

func TestDecodePayload_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "not base64", token: "not-base64!!"},
		{name: "base64 of non-JSON", token: "aGVsbG8="},
		{name: "empty object", token: "e30="},
		{name: "empty string", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodePayload(tt.token)
			assert.Error(t, err)
		})
	}
}
