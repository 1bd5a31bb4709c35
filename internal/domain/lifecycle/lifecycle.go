// Package lifecycle holds shared constants for application start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown hook execution.
const DefaultTimeout = 30 * time.Second
