// Package delivery defines the contract every transport front end satisfies.
package delivery

import "context"

// Delivery is a serving surface (HTTP today). The fx app collects all
// deliveries and serves each on its own goroutine.
type Delivery interface {
	Serve(ctx context.Context) error
}
