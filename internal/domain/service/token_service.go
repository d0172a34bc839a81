package service

import (
	"time"

	"vitrine/internal/domain/entity"
)

// ErrorKind classifies why a download token failed validation.
type ErrorKind string

const (
	KindMalformedToken    ErrorKind = "malformed_token"
	KindExpired           ErrorKind = "expired"
	KindOwnershipMismatch ErrorKind = "ownership_mismatch"
	KindSessionMismatch   ErrorKind = "session_mismatch"
	KindSignatureMismatch ErrorKind = "signature_mismatch"
)

// ValidationResult is the structured outcome of validating a token string.
// Validation never panics or returns a Go error across this boundary; a
// failed check yields Valid=false with the failing Kind and a user-legible
// Message. On success FileID and OrderID carry the token's bound values.
type ValidationResult struct {
	Valid   bool
	FileID  string
	OrderID string
	Kind    ErrorKind
	Message string
}

// DownloadTokenService mints and validates the compact, signed, expiring
// capability tokens that gate access to purchased deliverables.
//
// The token is tamper-evident, not confidentiality-protected: its payload is
// recoverable by decoding, and the signature is a non-cryptographic checksum
// keyed by a shared secret. Validation checks run in a fixed order and fail
// fast: decode, expiry, bound email, bound id, signature.
type DownloadTokenService interface {
	// Issue mints a token binding (fileID, orderID) to the subject, expiring
	// a fixed TTL after issuance. Pure function of its inputs plus the clock.
	Issue(fileID, orderID string, subject *entity.Subject) (token string, expiresAt time.Time)

	// Validate decodes and checks a token string against the current subject.
	Validate(token string, subject *entity.Subject) ValidationResult

	// Decode recovers the raw payload without validating it. Used by
	// diagnostics and tests; callers must not trust the result.
	Decode(token string) (*entity.TokenPayload, error)

	// TTL returns the fixed issue-to-expiry duration.
	TTL() time.Duration
}
