// lp turns a Launchpad Mini MK3 into a desk controller: a reactive
// widget grid with media controls, a toy piano, a palette browser, and
// an LED brightness panel, fed by MIDI input, external notifiers, and
// cron schedules.
package main

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"github.com/sersorrel/lp/animations"
	"github.com/sersorrel/lp/config"
	"github.com/sersorrel/lp/events"
	"github.com/sersorrel/lp/launchpad"
	"github.com/sersorrel/lp/notify"
	"github.com/sersorrel/lp/sched"
	"github.com/sersorrel/lp/synth"
	"github.com/sersorrel/lp/theme"
	"github.com/sersorrel/lp/ui"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	if cfg.LogLevel != "" {
		if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			zerolog.SetGlobalLevel(level)
		}
	}

	defer gomidi.CloseDriver()

	bus := events.NewBus()
	configureSignals(bus)

	session, err := launchpad.Connect(cfg.Port, func(msg launchpad.Message) {
		switch msg := msg.(type) {
		case launchpad.KeyDown:
			bus.Publish(events.Event{Type: events.KeyDown, Key: msg.Key})
		case launchpad.KeyUp:
			bus.Publish(events.Event{Type: events.KeyUp, Key: msg.Key})
		case launchpad.BrightnessReport:
			bus.Publish(events.Event{Type: events.Brightness, Brightness: msg.Brightness})
		case launchpad.ProgrammerModeReport:
			// echoed by the device on connect, nothing to do
		default:
			log.Debug().Msgf("ignoring device message %T", msg)
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to Launchpad")
	}
	defer session.Close()

	if cfg.NotifyAddr != "" {
		srv := notify.NewServer(bus, cfg.NotifyAddr)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				log.Error().Err(err).Msg("notify server failed")
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	if len(cfg.Schedules) > 0 {
		scheduler, err := sched.NewScheduler(bus, cfg.Schedules)
		if err != nil {
			log.Fatal().Err(err).Msg("could not set up schedules")
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	if cfg.WatchMedia {
		go watchMedia(bus)
	}

	go func() {
		for range time.Tick(10 * time.Second) {
			bus.Publish(events.Event{Type: events.Redraw})
		}
	}()

	voices := synth.New()
	if err := voices.Start(); err != nil {
		log.Warn().Err(err).Msg("audio unavailable")
	}

	if err := session.Apply(launchpad.SetAwake{Awake: true}); err != nil {
		log.Warn().Err(err).Msg("could not wake device")
	}
	if err := animations.Startup(session); err != nil {
		log.Error().Err(err).Msg("startup animation failed")
	}
	// presses made during the animation are stale, throw them away
	bus.Drain()
	bus.Publish(events.Event{Type: events.Redraw})

	playing := mediaPlaying()
	root := func(ctx *ui.Context) {
		if ctx.Event.Type == events.Media {
			playing = ctx.Event.Playing
		}
		if ctx.Event.Type == events.Notify {
			if err := animations.Alert(ctx.LP, 0); err != nil {
				log.Error().Err(err).Msg("alert animation failed")
			}
			ctx.Bus.Publish(events.Event{Type: events.Redraw})
		}

		if !ctx.Awake("awake", 19, theme.AwakeTeal) {
			return
		}
		switch ctx.Tabs("tab", 95, 4) {
		case 0:
			mute := ctx.Toggle("mute", 88, launchpad.Static(theme.TabIdle), launchpad.Static(theme.Alert))

			mediaColor := launchpad.Static(theme.MediaPaused)
			if playing {
				mediaColor = launchpad.Static(theme.MediaPlaying)
			}
			if ctx.Impulse("media", 58, mediaColor, mediaColor) {
				verb := "play"
				if playing {
					verb = "pause"
				}
				if err := exec.Command("playerctl", verb).Run(); err != nil {
					log.Warn().Err(err).Str("verb", verb).Msg("playerctl failed")
				}
			}

			pianoRow(ctx, voices, 0, 1, mute)
		case 1:
			page := ctx.Counter("palette-page", 93, 2)
			for i, key := range launchpad.Rect(11, 88) {
				color := uint8(page*64 + i)
				ctx.Info(key, launchpad.Static(color), strconv.Itoa(int(color)))
			}
		case 2:
			for row, mult := range []float64{0.5, 1, 2, 4} {
				pianoRow(ctx, voices, row, mult, false)
			}
		case 3:
			// "L D"
			for _, key := range []launchpad.Key{81, 71, 61, 51, 52, 86, 87, 76, 78, 66, 68, 56, 57} {
				ctx.StaticColor(key, launchpad.Static(theme.LetterPurple))
			}
			// "E"
			for _, key := range []launchpad.Key{83, 84, 85, 73, 74, 63, 53, 54, 55} {
				ctx.StaticColor(key, launchpad.Static(theme.LetterYellow))
			}
			ctx.LEDSlider("brightness", 31)
			ctx.ExitButton("exit", 18)
		}
	}

	ui.Run(bus, session, root)

	if err := animations.Shutdown(session); err != nil {
		log.Error().Err(err).Msg("shutdown animation failed")
	}
	session.Close()
}

// pianoRow lays a white-key row at 11+20*row and its black keys on the
// row above, feeding the synth voices keyed by position.
func pianoRow(ctx *ui.Context, voices *synth.Synth, row int, mult float64, mute bool) {
	base := launchpad.Key(row * 20)
	for i, freq := range synth.WhiteKeys {
		held := ctx.Holdable("piano-white", base+launchpad.Key(11+i),
			launchpad.Static(theme.PianoWhite), launchpad.Static(theme.PianoWhiteDn))
		voices.SetPressed(1000+row*100+i, freq*mult, held && !mute)
	}
	for i, freq := range synth.BlackKeys {
		if freq == 0 {
			continue
		}
		held := ctx.Holdable("piano-black", base+launchpad.Key(22+i),
			launchpad.Static(theme.PianoBlack), launchpad.Static(theme.PianoBlackDn))
		voices.SetPressed(2000+row*100+i, freq*mult, held && !mute)
	}
}

// configureSignals requests a clean exit on the first signal and
// forces one if teardown stalls or a second signal arrives.
func configureSignals(bus *events.Bus) {
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		log.Info().Msg("shutting down")
		bus.Publish(events.Event{Type: events.Exit})
		go func() {
			time.Sleep(5 * time.Second)
			log.Error().Msg("shutdown stalled, exiting hard")
			os.Exit(1)
		}()
		<-ch
		os.Exit(1)
	}()
}

// mediaPlaying asks playerctl for the current state once, for the
// first frame before any Media event has arrived.
func mediaPlaying() bool {
	out, err := exec.Command("playerctl", "status").Output()
	return err == nil && strings.TrimSpace(string(out)) == "Playing"
}

// watchMedia follows playerctl's status stream and republishes it as
// Media events.
func watchMedia(bus *events.Bus) {
	cmd := exec.Command("playerctl", "-F", "status")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Warn().Err(err).Msg("could not watch media status")
		return
	}
	if err := cmd.Start(); err != nil {
		log.Warn().Err(err).Msg("could not watch media status")
		return
	}
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		switch scanner.Text() {
		case "Playing":
			bus.Publish(events.Event{Type: events.Media, Playing: true})
		case "Paused", "Stopped":
			bus.Publish(events.Event{Type: events.Media, Playing: false})
		}
	}
	if err := cmd.Wait(); err != nil {
		log.Warn().Err(err).Msg("media watcher exited")
	}
}
