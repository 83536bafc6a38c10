// Package domain holds DTOs for the inventory http and service contracts
package domain

import (
	"fixqueue/internal/core/inventory"
	"fixqueue/internal/core/priority"
	"fixqueue/internal/core/repair"
)

// SyncInput feeds the reservation walk: the repair queue, the stock
// snapshot, and an optional scoring config override for the walk order
type SyncInput struct {
	Repairs  []repair.Order        `json:"repairs" validate:"required"`
	Products []repair.ProductStock `json:"products" validate:"required"`
	Config   *priority.Config      `json:"config,omitempty"`
}

// SyncOutput carries reservations, the alerts raised along the way, and the
// priced materials report for the proposed reservations
type SyncOutput struct {
	Reservations []inventory.Reservation  `json:"reservations"`
	Alerts       []inventory.ReorderAlert `json:"alerts"`
	Report       inventory.CostReport     `json:"report"`
}

// AlertsInput is a bare stock scan with an optional threshold override
type AlertsInput struct {
	Products  []repair.ProductStock `json:"products" validate:"required"`
	Threshold int                   `json:"threshold,omitempty" validate:"omitempty,min=1"`
}

// AlertsOutput is the standalone reorder scan result
type AlertsOutput struct {
	Alerts []inventory.ReorderAlert `json:"alerts"`
}
