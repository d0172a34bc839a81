package context

import "context"

// KeyCredentials is the key for storing forwarded caller credentials in context.
const KeyCredentials ContextKey = "credentials"

// Credentials carries the caller's live session material through the request
// context so the session provider can resolve "who am I" on their behalf.
// The raw values are forwarded verbatim and never logged.
type Credentials struct {
	// Authorization is the raw Authorization header, e.g. "Bearer <jwt>".
	Authorization string
	// Cookie is the raw Cookie header for cookie-based BaaS sessions.
	Cookie string
}

// WithCredentials returns a new context carrying the caller's credentials.
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, KeyCredentials, creds)
}

// GetCredentials extracts forwarded credentials from the context.
// The zero value means the caller presented none.
func GetCredentials(ctx context.Context) Credentials {
	if creds, ok := ctx.Value(KeyCredentials).(Credentials); ok {
		return creds
	}

	return Credentials{}
}
