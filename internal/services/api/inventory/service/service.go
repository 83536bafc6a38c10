// Package service contains the inventory sync workflows
package service

import (
	"context"
	"time"

	"fixqueue/internal/core/inventory"
	"fixqueue/internal/core/priority"
	"fixqueue/internal/modkit"

	"fixqueue/internal/services/api/inventory/domain"
)

// Service defines the inventory service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the inventory service. Stateless: the working stock copy
// lives inside each reservation walk
type Svc struct {
	cfg       priority.Config
	threshold int

	clock func() time.Time
}

// New constructs the inventory service. The walk order uses the same
// ENGINE_* weights as the priority module; ENGINE_REORDER_THRESHOLD sets the
// fallback alert threshold
func New(deps modkit.Deps) *Svc {
	eng := deps.Cfg.Prefix("ENGINE_")
	d := priority.DefaultConfig()
	return &Svc{
		cfg: priority.Config{
			UrgencyWeight:    eng.MayFloat64("URGENCY_WEIGHT", d.UrgencyWeight),
			AgeWeight:        eng.MayFloat64("AGE_WEIGHT", d.AgeWeight),
			ComplexityWeight: eng.MayFloat64("COMPLEXITY_WEIGHT", d.ComplexityWeight),
			ValueWeight:      eng.MayFloat64("VALUE_WEIGHT", d.ValueWeight),
			MaxAgeHours:      eng.MayFloat64("MAX_AGE_HOURS", d.MaxAgeHours),
			MaxValue:         eng.MayFloat64("MAX_VALUE", d.MaxValue),
		}.Normalize(),
		threshold: eng.MayInt("REORDER_THRESHOLD", inventory.DefaultReorderThreshold),
		clock:     deps.Now,
	}
}

// Sync walks the queue in priority order and proposes reservations, alerts,
// and a priced report
func (s *Svc) Sync(ctx context.Context, in domain.SyncInput) (domain.SyncOutput, error) {
	cfg := s.cfg
	if in.Config != nil {
		cfg = cfg.Merge(*in.Config)
	}

	opts := inventory.Options{Priority: cfg, Threshold: s.threshold}
	reservations, alerts := inventory.SuggestReservations(in.Repairs, in.Products, opts, s.clock())

	return domain.SyncOutput{
		Reservations: reservations,
		Alerts:       alerts,
		Report:       inventory.BuildCostReport(reservations, in.Products, in.Repairs),
	}, nil
}

// Alerts scans a stock snapshot with no repair context
func (s *Svc) Alerts(ctx context.Context, in domain.AlertsInput) (domain.AlertsOutput, error) {
	threshold := in.Threshold
	if threshold <= 0 {
		threshold = s.threshold
	}
	return domain.AlertsOutput{Alerts: inventory.ReorderAlerts(in.Products, threshold)}, nil
}
