package ui

import (
	"github.com/rs/zerolog/log"

	"github.com/sersorrel/lp/events"
	"github.com/sersorrel/lp/launchpad"
)

// Run drives the frame loop: wait for an event, wipe the frame buffer,
// run the widget tree, reconcile the result with the device. Returns
// when an Exit event is dequeued, without a final reconcile, so the
// caller can play a shutdown animation over whatever is on the grid.
func Run(bus *events.Bus, lp *launchpad.Session, root func(*Context)) {
	ctx := NewContext(lp, bus)
	grid := launchpad.Rect(11, 99)
	for {
		e := bus.Next()
		if e.Type == events.Exit {
			return
		}
		for _, key := range grid {
			ctx.FB[key] = launchpad.Color{}
		}
		ctx.Event = e
		root(ctx)
		if err := lp.Reconcile(ctx.FB); err != nil {
			log.Error().Err(err).Stringer("event", e.Type).Msg("frame reconcile incomplete")
		}
	}
}
