// Package session provides concrete implementations of the current-subject
// lookup behind download authorization.
package session

import (
	"context"
	"strings"

	"vitrine/config"
	deliverycontext "vitrine/internal/delivery/context"
	"vitrine/internal/domain/entity"
	"vitrine/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// jwtProvider resolves the subject from a locally verified HS256 bearer
// token. Used for first-party deployments where the service shares a signing
// secret with the auth issuer instead of calling out to a hosted endpoint.
type jwtProvider struct {
	secret string
}

// NewJWTProvider is the constructor for jwtProvider.
func NewJWTProvider(cfg *config.Config) (service.SessionProvider, error) {
	if cfg.Session == nil || cfg.Session.JWTSecret == "" {
		return nil, errors.New("session jwt secret must be provided")
	}

	return &jwtProvider{secret: cfg.Session.JWTSecret}, nil
}

// CurrentSubject validates the bearer token carried on the request context
// and extracts the bound identity. Any failure means "no subject": callers
// treat it as deny.
func (p *jwtProvider) CurrentSubject(ctx context.Context) (*entity.Subject, error) {
	creds := deliverycontext.GetCredentials(ctx)
	if creds.Authorization == "" {
		return nil, errors.New("authorization header is missing")
	}

	tokenString := strings.TrimPrefix(creds.Authorization, "Bearer ")
	if tokenString == creds.Authorization {
		return nil, errors.New("authorization header is not a bearer token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(p.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Wrap(err, "invalid or expired session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("failed to parse session token claims")
	}

	email, _ := claims["email"].(string)
	id, _ := claims["sub"].(string)
	if email == "" || id == "" {
		return nil, errors.New("session token is missing identity claims")
	}

	return &entity.Subject{Email: email, ID: id}, nil
}
