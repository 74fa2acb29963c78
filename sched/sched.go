// Package sched turns cron schedules from the config into bus events,
// so the grid can flash an alert at fixed times of day without any
// external notifier running.
package sched

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/sersorrel/lp/events"
)

// Entry is one configured schedule. Action is "notify" for an alert or
// "redraw" for a plain refresh.
type Entry struct {
	Spec   string `json:"spec"`
	Action string `json:"action"`
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron *cron.Cron
	bus  *events.Bus
}

// NewScheduler registers every entry. An entry with a bad spec or an
// unknown action is an error; a config typo should be loud, not a
// schedule that silently never fires.
func NewScheduler(bus *events.Bus, entries []Entry) (*Scheduler, error) {
	s := &Scheduler{cron: cron.New(), bus: bus}
	for _, e := range entries {
		var event events.Event
		switch e.Action {
		case "notify":
			event = events.Event{Type: events.Notify}
		case "redraw":
			event = events.Event{Type: events.Redraw}
		default:
			return nil, fmt.Errorf("schedule %q: unknown action %q", e.Spec, e.Action)
		}
		if _, err := s.cron.AddFunc(e.Spec, func() {
			log.Debug().Str("spec", e.Spec).Str("action", e.Action).Msg("schedule fired")
			bus.Publish(event)
		}); err != nil {
			return nil, fmt.Errorf("schedule %q: %w", e.Spec, err)
		}
	}
	return s, nil
}

// Start begins the cron ticker.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron ticker.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
