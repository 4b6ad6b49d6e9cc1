// Package lifecycle holds shared timing constants for fx start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single start or stop hook, such as the database ping or the HTTP shutdown.
const DefaultTimeout = 10 * time.Second
