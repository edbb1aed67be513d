// Package delivery defines the contract every transport front-end fulfils.
package delivery

import "context"

// Delivery is a long-running server owned by the application lifecycle.
type Delivery interface {
	// Serve blocks until the server stops or fails to start.
	Serve(ctx context.Context) error
}
