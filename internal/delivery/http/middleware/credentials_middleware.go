package middleware

import (
	deliverycontext "vitrine/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// CredentialsMiddleware lifts the caller's raw Authorization and Cookie
// headers onto the request context, where the session provider reads them to
// resolve "who am I" on the caller's behalf. The service never stores these
// values; they live only for the request.
type CredentialsMiddleware struct{}

// NewCredentialsMiddleware creates a new credentials-forwarding middleware
func NewCredentialsMiddleware() *CredentialsMiddleware {
	return &CredentialsMiddleware{}
}

// Process copies the caller's session material into the request context.
func (m *CredentialsMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		creds := deliverycontext.Credentials{
			Authorization: c.Request().Header.Get(echo.HeaderAuthorization),
			Cookie:        c.Request().Header.Get("Cookie"),
		}

		ctx := deliverycontext.WithCredentials(c.Request().Context(), creds)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
