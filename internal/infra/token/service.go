package token

import (
	"time"

	"vitrine/config"
	"vitrine/internal/domain/entity"
	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/domain/service"

	"github.com/pkg/errors"
)

// tokenService is the concrete implementation of DownloadTokenService.
// Tokens are never persisted and never renewable; expiry is the only
// invalidation mechanism, and a fresh token is minted per attempt.
type tokenService struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// New is the constructor for tokenService. The secret and the fixed TTL come
// from configuration so tests can inject deterministic values.
func New(cfg *config.Config) (service.DownloadTokenService, error) {
	if cfg.Download == nil || cfg.Download.Secret == "" {
		return nil, errors.New("download secret must be provided")
	}

	return NewWithClock(cfg, time.Now)
}

// NewWithClock builds a tokenService with an injected clock. Tests use this
// to pin issuance and validation times.
func NewWithClock(cfg *config.Config, now func() time.Time) (service.DownloadTokenService, error) {
	ttl := cfg.Download.TTL
	if ttl <= 0 {
		return nil, errors.New("download token ttl must be positive")
	}

	return &tokenService{
		secret: cfg.Download.Secret,
		ttl:    ttl,
		now:    now,
	}, nil
}

// Issue mints a token binding (fileID, orderID) to the subject. The returned
// string is re-derivable bit-for-bit by Validate given the same inputs and
// secret.
func (s *tokenService) Issue(fileID, orderID string, subject *entity.Subject) (string, time.Time) {
	issuedAt := s.now().UnixMilli()
	expiresAt := issuedAt + s.ttl.Milliseconds()

	signature := digest(digestInput{
		FileID:       fileID,
		OrderID:      orderID,
		SubjectEmail: subject.Email,
		SubjectID:    subject.ID,
		ExpiresAt:    expiresAt,
		IssuedAt:     issuedAt,
		Secret:       s.secret,
	})

	payload := &entity.TokenPayload{
		FileID:       fileID,
		OrderID:      orderID,
		SubjectEmail: subject.Email,
		SubjectID:    subject.ID,
		ExpiresAt:    expiresAt,
		IssuedAt:     issuedAt,
		Signature:    signature,
	}

	return encodePayload(payload), time.UnixMilli(expiresAt)
}

// Validate checks a token string against the current subject. Checks run in
// a fixed order and return on the first failure: decode, expiry, bound email,
// bound id, signature. The comparison is not constant-time; the digest is not
// a cryptographic boundary to begin with.
func (s *tokenService) Validate(token string, subject *entity.Subject) service.ValidationResult {
	payload, err := decodePayload(token)
	if err != nil {
		return invalid(service.KindMalformedToken, domainerrors.ErrMalformedToken.Message())
	}

	if payload.IsExpired(s.now()) {
		return invalid(service.KindExpired, domainerrors.ErrTokenExpired.Message())
	}

	if subject == nil || payload.SubjectEmail != subject.Email {
		return invalid(service.KindOwnershipMismatch, domainerrors.ErrOwnershipMismatch.Message())
	}

	if payload.SubjectID != subject.ID {
		return invalid(service.KindSessionMismatch, domainerrors.ErrSessionMismatch.Message())
	}

	expected := digest(digestInput{
		FileID:       payload.FileID,
		OrderID:      payload.OrderID,
		SubjectEmail: payload.SubjectEmail,
		SubjectID:    payload.SubjectID,
		ExpiresAt:    payload.ExpiresAt,
		IssuedAt:     payload.IssuedAt,
		Secret:       s.secret,
	})
	if expected != payload.Signature {
		return invalid(service.KindSignatureMismatch, domainerrors.ErrSignatureMismatch.Message())
	}

	return service.ValidationResult{
		Valid:   true,
		FileID:  payload.FileID,
		OrderID: payload.OrderID,
	}
}

// Decode recovers the raw payload without validating it.
func (s *tokenService) Decode(token string) (*entity.TokenPayload, error) {
	return decodePayload(token)
}

// TTL returns the fixed issue-to-expiry duration.
func (s *tokenService) TTL() time.Duration {
	return s.ttl
}

func invalid(kind service.ErrorKind, message string) service.ValidationResult {
	return service.ValidationResult{
		Kind:    kind,
		Message: message,
	}
}
