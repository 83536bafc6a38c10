// Package domain holds DTOs for the priority http and service contracts
package domain

import (
	"fixqueue/internal/core/priority"
	"fixqueue/internal/core/repair"
)

// UpdateInput carries an optional config override and an optional queue
// replacement. Both absent is a valid no-op that just returns the ranking
type UpdateInput struct {
	Config  *priority.Config `json:"config,omitempty"`
	Repairs *[]repair.Order  `json:"repairs,omitempty" validate:"omitempty,max=5000"`
}

// QueueOutput is the ranked queue plus the config that produced it
type QueueOutput struct {
	Config priority.Config   `json:"config"`
	Queue  []priority.Ranked `json:"queue"`
}
