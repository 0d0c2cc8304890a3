// Package delivery defines the contract every transport surface fulfils.
package delivery

import "context"

// Delivery is a long-running transport server started by the application
// container.
type Delivery interface {
	Serve(ctx context.Context) error
}
