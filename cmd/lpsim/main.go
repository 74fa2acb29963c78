// lpsim runs the full stack against a virtual device in the terminal:
// the real codec, session, event bus, widget runtime, and animations,
// with keyboard presses standing in for pad presses.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sersorrel/lp/animations"
	"github.com/sersorrel/lp/events"
	"github.com/sersorrel/lp/launchpad"
	"github.com/sersorrel/lp/sim"
	"github.com/sersorrel/lp/synth"
	"github.com/sersorrel/lp/theme"
	"github.com/sersorrel/lp/ui"
)

type updateMsg struct{}

type doneMsg struct{}

// ListenForUpdates waits for the next device state change.
func ListenForUpdates(dev *sim.Device) tea.Cmd {
	return func() tea.Msg {
		<-dev.Updates()
		return updateMsg{}
	}
}

type Model struct {
	dev     *sim.Device
	bus     *events.Bus
	cursor  launchpad.Key
	holding map[launchpad.Key]bool
	snap    sim.Snapshot
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.dev)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.snap = m.dev.Snapshot()
		return m, ListenForUpdates(m.dev)
	case doneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		x, y := launchpad.KeyToCoords(m.cursor)
		switch msg.String() {
		case "q", "ctrl+c":
			m.bus.Publish(events.Event{Type: events.Exit})
			return m, nil
		case "up":
			if y < 9 {
				y++
			}
		case "down":
			if y > 1 {
				y--
			}
		case "left":
			if x > 1 {
				x--
			}
		case "right":
			if x < 9 {
				x++
			}
		case " ":
			m.dev.Press(m.cursor)
			m.dev.Release(m.cursor)
			return m, nil
		case "h":
			if m.holding[m.cursor] {
				delete(m.holding, m.cursor)
				m.dev.Release(m.cursor)
			} else {
				m.holding[m.cursor] = true
				m.dev.Press(m.cursor)
			}
			return m, nil
		case "n":
			m.bus.Publish(events.Event{Type: events.Notify})
			return m, nil
		}
		m.cursor = launchpad.CoordsToKey(x, y)
		return m, nil
	}
	return m, nil
}

var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))

func (m Model) View() string {
	s := m.snap
	out := sim.RenderGrid(s, m.cursor) + "\n\n"
	out += fmt.Sprintf("brightness %d  awake %v  programmer %v\n", s.Brightness, s.Awake, s.Programmer)
	if s.Text != "" {
		out += "text: " + s.Text + "\n"
	}
	out += dimStyle.Render("arrows move · space tap · h hold · n notify · q quit")
	return out
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	f, err := os.OpenFile("lpsim.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen, NoColor: true})
	}

	dev := sim.NewDevice()
	session := launchpad.NewSession(dev.Send)
	bus := events.NewBus()

	dev.OnMessage(func(msg launchpad.Message) {
		switch msg := msg.(type) {
		case launchpad.KeyDown:
			bus.Publish(events.Event{Type: events.KeyDown, Key: msg.Key})
		case launchpad.KeyUp:
			bus.Publish(events.Event{Type: events.KeyUp, Key: msg.Key})
		case launchpad.BrightnessReport:
			bus.Publish(events.Event{Type: events.Brightness, Brightness: msg.Brightness})
		}
	})

	voices := synth.New()
	if err := voices.Start(); err != nil {
		log.Warn().Err(err).Msg("audio unavailable")
	}

	p := tea.NewProgram(Model{
		dev:     dev,
		bus:     bus,
		cursor:  55,
		holding: make(map[launchpad.Key]bool),
		snap:    dev.Snapshot(),
	}, tea.WithAltScreen())

	go func() {
		if err := session.Apply(launchpad.SetProgrammerMode{Enabled: true}); err != nil {
			log.Error().Err(err).Msg("programmer mode failed")
		}
		if err := animations.Startup(session); err != nil {
			log.Error().Err(err).Msg("startup animation failed")
		}
		bus.Drain()
		bus.Publish(events.Event{Type: events.Redraw})

		ui.Run(bus, session, func(ctx *ui.Context) { root(ctx, voices) })

		if err := animations.Shutdown(session); err != nil {
			log.Error().Err(err).Msg("shutdown animation failed")
		}
		session.Close()
		p.Send(doneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// root is a demo tree exercising every widget kind.
func root(ctx *ui.Context, voices *synth.Synth) {
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
		ctx.Toggle("demo-toggle", 81, launchpad.Static(theme.TabIdle), launchpad.Static(theme.TabActive))
		pianoRow(ctx, voices, 0, 1)
	case 1:
		page := ctx.Counter("palette-page", 93, 2)
		for i, key := range launchpad.Rect(11, 88) {
			color := uint8(page*64 + i)
			ctx.Info(key, launchpad.Static(color), strconv.Itoa(int(color)))
		}
	case 2:
		for row, mult := range []float64{0.5, 1, 2, 4} {
			pianoRow(ctx, voices, row, mult)
		}
	case 3:
		ctx.LEDSlider("brightness", 31)
		ctx.ExitButton("exit", 18)
	}
}

func pianoRow(ctx *ui.Context, voices *synth.Synth, row int, mult float64) {
	base := launchpad.Key(row * 20)
	for i, freq := range synth.WhiteKeys {
		held := ctx.Holdable("piano-white", base+launchpad.Key(11+i),
			launchpad.Static(theme.PianoWhite), launchpad.Static(theme.PianoWhiteDn))
		voices.SetPressed(1000+row*100+i, freq*mult, held)
	}
	for i, freq := range synth.BlackKeys {
		if freq == 0 {
			continue
		}
		held := ctx.Holdable("piano-black", base+launchpad.Key(22+i),
			launchpad.Static(theme.PianoBlack), launchpad.Static(theme.PianoBlackDn))
		voices.SetPressed(2000+row*100+i, freq*mult, held)
	}
}
