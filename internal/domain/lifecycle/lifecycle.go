// Package lifecycle holds shared constants for process startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful start and stop of long-lived resources
// (HTTP server shutdown, database ping).
const DefaultTimeout = 10 * time.Second
