// Package delivery defines the inbound transports of the service.
package delivery

import "context"

// Delivery is a long-running inbound server (HTTP today). Serve blocks until
// the server stops or the context is cancelled.
type Delivery interface {
	Serve(ctx context.Context) error
}
