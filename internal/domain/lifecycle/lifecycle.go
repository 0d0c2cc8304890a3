// Package lifecycle holds shared process lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of transports and detection
// resources.
const DefaultTimeout = 10 * time.Second
