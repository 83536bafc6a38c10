package modkit

import (
	"time"

	"fixqueue/internal/platform/config"
	"fixqueue/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// Clock supplies "now" for age and inactivity math; nil means time.Now.
	// Tests inject a fixed clock for deterministic scoring
	Clock func() time.Time
}

// Now returns the current time via the injected clock
func (d Deps) Now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now().UTC()
}
