// Package delivery defines the contract every inbound adapter (HTTP server,
// background worker) fulfils so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running inbound adapter.
type Delivery interface {
	// Serve runs the adapter until it fails or is shut down.
	Serve(ctx context.Context) error
}
