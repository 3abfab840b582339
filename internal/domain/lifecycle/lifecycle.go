// Package lifecycle holds shared settings for component start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single OnStart ping or OnStop shutdown.
const DefaultTimeout = 10 * time.Second
