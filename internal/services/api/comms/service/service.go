// Package service contains the communications workflows
package service

import (
	"context"
	"sync"
	"time"

	"fixqueue/internal/core/comms"
	"fixqueue/internal/modkit"
	perr "fixqueue/internal/platform/errors"

	"fixqueue/internal/services/api/comms/domain"
)

// Service defines the communications service contract
type Service interface {
	domain.ServicePort
}

// Svc owns the message store. The core store is not goroutine-safe, so all
// access goes through the service lock
type Svc struct {
	mu       sync.Mutex
	store    *comms.Store
	dispatch comms.Dispatcher

	dedupe bool
	clock  func() time.Time
}

// New constructs the communications service. ENGINE_REMINDER_DEDUPE turns on
// engine-side reminder idempotency; off by default the caller controls
// recurrence. Deep links are logged, not opened: the process has no desktop
func New(deps modkit.Deps) *Svc {
	log := deps.Log.With().Str("component", "comms").Logger()
	return &Svc{
		store: comms.NewStore(),
		dispatch: comms.URLDispatcher{Open: func(link string) error {
			log.Debug().Str("link", link).Msg("dispatch deep link")
			return nil
		}},
		dedupe: deps.Cfg.Prefix("ENGINE_").MayBool("REMINDER_DEDUPE", false),
		clock:  deps.Now,
	}
}

// Send expands placeholders from the repair, validates against the channel,
// and records the message. Validation failures come back as a failed
// message in the envelope, not as an HTTP error; only a missing repair id
// rejects the request outright
func (s *Svc) Send(ctx context.Context, in domain.SendInput) (domain.SendOutput, error) {
	if in.Repair.ID == "" {
		return domain.SendOutput{}, perr.Validationf("repair.id is required")
	}

	body := comms.ExpandTemplate(in.Content, comms.Vars(in.Repair))

	s.mu.Lock()
	defer s.mu.Unlock()
	m := comms.SendMessage(s.store, s.dispatch, in.Repair.ID, comms.Channel(in.Channel), body, s.clock())
	return domain.SendOutput{Message: m}, nil
}

// Remind runs one rule evaluation pass against the supplied repairs
func (s *Svc) Remind(ctx context.Context, in domain.RemindInput) (domain.RemindOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := comms.ScheduleReminders(
		in.Rules,
		in.Repairs,
		in.Templates,
		s.store,
		comms.ScheduleOptions{Dedupe: s.dedupe, Dispatcher: s.dispatch},
		s.clock(),
	)
	return domain.RemindOutput{Messages: msgs}, nil
}

// List returns everything the store holds, oldest first
func (s *Svc) List(ctx context.Context) (domain.ListOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ListOutput{Messages: s.store.Messages()}, nil
}
