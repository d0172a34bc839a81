package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"vitrine/internal/domain/entity"

	"github.com/pkg/errors"
)

// encodePayload wraps the payload into the opaque token string: canonical
// JSON, UTF-8 encoded, base64. The result carries no confidentiality; anyone
// holding the token can decode every field.
func encodePayload(p *entity.TokenPayload) string {
	return base64.StdEncoding.EncodeToString([]byte(canonicalJSON(p)))
}

// decodePayload reverses encodePayload. Any failure to decode, or a payload
// missing its structural fields, is reported as a malformed token.
func decodePayload(token string) (*entity.TokenPayload, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return nil, errors.Wrap(err, "token is not valid base64")
	}

	var p entity.TokenPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errors.Wrap(err, "token payload is not valid JSON")
	}

	if p.FileID == "" || p.OrderID == "" || p.Signature == "" || p.ExpiresAt == 0 {
		return nil, errors.New("token payload is missing required fields")
	}

	return &p, nil
}
