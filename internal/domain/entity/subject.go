// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// Subject is the authenticated identity a download token is bound to.
// Both fields come from the session provider and must match the token's
// bound identity exactly before any file is released.
type Subject struct {
	Email string // The account email at the auth provider.
	ID    string // The provider's unique user id.
}
