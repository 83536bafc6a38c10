// Package service contains the priority queue workflows
package service

import (
	"context"
	"sync"
	"time"

	"fixqueue/internal/core/priority"
	"fixqueue/internal/core/repair"
	"fixqueue/internal/modkit"
	perr "fixqueue/internal/platform/errors"

	"fixqueue/internal/services/api/priority/domain"
)

// Service defines the priority service contract
type Service interface {
	domain.ServicePort
}

// Svc holds the queue snapshot and scoring config behind a lock so
// concurrent requests see a consistent view. State is per-process, not
// module-global: tests and callers each construct their own instance
type Svc struct {
	mu    sync.RWMutex
	cfg   priority.Config
	queue []repair.Order

	now func() time.Time
}

// New constructs the priority service with weights seeded from ENGINE_* env
func New(deps modkit.Deps) *Svc {
	eng := deps.Cfg.Prefix("ENGINE_")
	d := priority.DefaultConfig()
	cfg := priority.Config{
		UrgencyWeight:    eng.MayFloat64("URGENCY_WEIGHT", d.UrgencyWeight),
		AgeWeight:        eng.MayFloat64("AGE_WEIGHT", d.AgeWeight),
		ComplexityWeight: eng.MayFloat64("COMPLEXITY_WEIGHT", d.ComplexityWeight),
		ValueWeight:      eng.MayFloat64("VALUE_WEIGHT", d.ValueWeight),
		MaxAgeHours:      eng.MayFloat64("MAX_AGE_HOURS", d.MaxAgeHours),
		MaxValue:         eng.MayFloat64("MAX_VALUE", d.MaxValue),
	}.Normalize()

	return &Svc{cfg: cfg, now: deps.Now}
}

// Update overlays non-zero config fields, replaces the queue when repairs is
// present, and returns the resulting ranking
func (s *Svc) Update(ctx context.Context, in domain.UpdateInput) (domain.QueueOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Config != nil {
		s.cfg = s.cfg.Merge(*in.Config)
	}
	if in.Repairs != nil {
		next := make([]repair.Order, len(*in.Repairs))
		copy(next, *in.Repairs)
		for i, o := range next {
			if o.ID == "" {
				return domain.QueueOutput{}, perr.Validationf("repairs[%d]: id is required", i)
			}
		}
		s.queue = next
	}

	return s.snapshotLocked(), nil
}

// Queue returns the current ranking without mutation
func (s *Svc) Queue(ctx context.Context) (domain.QueueOutput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(), nil
}

func (s *Svc) snapshotLocked() domain.QueueOutput {
	return domain.QueueOutput{
		Config: s.cfg,
		Queue:  priority.Rank(s.queue, s.cfg, s.now()),
	}
}
