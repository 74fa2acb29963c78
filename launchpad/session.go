package launchpad

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Session owns one connection to a device and tracks the color of
// every playable key, so Reconcile only transmits cells that changed.
type Session struct {
	send    func([]byte) error
	stop    func()
	sendBuf []byte
	batch   []KeyColor
	current [100]Color

	closeOnce sync.Once
}

// NewSession builds a session over a raw transmit function. The zero
// tracked state matches a freshly cleared device: every cell off.
func NewSession(send func([]byte) error) *Session {
	return &Session{
		send:    send,
		sendBuf: make([]byte, 0, 512),
		batch:   make([]KeyColor, 0, 81),
	}
}

// Connect opens the first MIDI in/out port pair whose name contains
// port (case-insensitive), switches the device to programmer mode, and
// delivers every decoded inbound message to onMessage on the driver's
// callback goroutine. onMessage must not block.
func Connect(port string, onMessage func(Message)) (*Session, error) {
	want := strings.ToLower(port)

	var in drivers.In
	for _, p := range gomidi.GetInPorts() {
		if strings.Contains(strings.ToLower(p.String()), want) {
			in = p
			break
		}
	}
	if in == nil {
		return nil, fmt.Errorf("no MIDI input matching %q", port)
	}
	var out drivers.Out
	for _, p := range gomidi.GetOutPorts() {
		if strings.Contains(strings.ToLower(p.String()), want) {
			out = p
			break
		}
	}
	if out == nil {
		return nil, fmt.Errorf("no MIDI output matching %q", port)
	}

	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", out.String(), err)
	}
	s := NewSession(func(data []byte) error {
		return send(gomidi.Message(data))
	})

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		decoded, err := Decode(msg.Bytes())
		if err != nil {
			log.Warn().Err(err).Msg("ignoring inbound MIDI")
			return
		}
		onMessage(decoded)
	}, gomidi.UseSysEx())
	if err != nil {
		return nil, fmt.Errorf("open input %q: %w", in.String(), err)
	}
	s.stop = stop

	if err := s.Apply(SetProgrammerMode{Enabled: true}); err != nil {
		stop()
		return nil, fmt.Errorf("enter programmer mode: %w", err)
	}
	return s, nil
}

// transmit encodes cmd into the session's reusable buffer and sends it.
func (s *Session) transmit(cmd Command) error {
	buf, err := Encode(cmd, s.sendBuf[:0])
	if err != nil {
		return err
	}
	s.sendBuf = buf
	return s.send(buf)
}

// Apply sends one command and records its effect on the tracked state.
// Only KeyOn and SetColors change tracked cells; everything else is
// pass-through.
func (s *Session) Apply(cmd Command) error {
	if err := s.transmit(cmd); err != nil {
		return err
	}
	switch c := cmd.(type) {
	case KeyOn:
		s.current[c.Key] = Color{Simple: c.Color}
	case SetColors:
		for _, kc := range c.Colors {
			s.current[kc.Key] = Color{IsComplex: true, Complex: kc.Color}
		}
	}
	return nil
}

// Reconcile walks the playable grid in raster order and transmits the
// difference between the tracked state and desired. Simple changes go
// out immediately as single key commands; complex changes accumulate
// and flush as one batch at the end. Reconciling the same frame twice
// sends nothing the second time. A failed per-cell send is logged and
// the walk continues; the first error is returned once the pass is
// complete.
func (s *Session) Reconcile(desired map[Key]Color) error {
	var firstErr error
	s.batch = s.batch[:0]
	for _, key := range Rect(11, 99) {
		want := desired[key]
		if want == s.current[key] {
			continue
		}
		if want.IsComplex {
			s.batch = append(s.batch, KeyColor{Key: key, Color: want.Complex})
			continue
		}
		if err := s.Apply(KeyOn{Key: key, Color: want.Simple}); err != nil {
			log.Error().Err(err).Uint8("key", uint8(key)).Msg("key update failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if len(s.batch) > 0 {
		if err := s.Apply(SetColors{Colors: s.batch}); err != nil {
			log.Error().Err(err).Int("cells", len(s.batch)).Msg("batch update failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Close leaves programmer mode and stops the listener. Safe to call
// from any exit path; only the first call does anything. A failure to
// send the mode switch is logged, not returned, so teardown always
// completes.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if err := s.transmit(SetProgrammerMode{Enabled: false}); err != nil {
			log.Warn().Err(err).Msg("could not leave programmer mode")
		}
		if s.stop != nil {
			s.stop()
		}
	})
}
