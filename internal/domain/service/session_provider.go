package service

import (
	"context"

	"vitrine/internal/domain/entity"
)

// SessionProvider resolves the authenticated identity behind the current
// request, delegating to the auth collaborator's "who am I" endpoint (or a
// local bearer-token verifier). Implementations return an error whenever no
// subject can be resolved; callers must treat that as "deny download".
type SessionProvider interface {
	CurrentSubject(ctx context.Context) (*entity.Subject, error)
}
