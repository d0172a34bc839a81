// Package constants holds shared domain-level constants.
package constants

// Pub/Sub provider selection.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Session provider selection.
const (
	// SessionProviderRemote resolves the subject through the hosted auth
	// collaborator's "who am I" endpoint, forwarding the caller's credentials.
	SessionProviderRemote = "remote"
	// SessionProviderJWT resolves the subject from a locally verified bearer token.
	SessionProviderJWT = "jwt"
)
