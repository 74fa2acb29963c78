// lptest is a probing tool for a Launchpad Mini MK3 on the desk:
// list ports, detect the device, poke it into programmer mode, and
// exercise LEDs and text through the real codec.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"github.com/sersorrel/lp/launchpad"
	"github.com/sersorrel/lp/theme"
)

func main() {
	defer gomidi.CloseDriver()

	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "detect":
		detect()
	case "sysex":
		testSysEx()
	case "leds":
		testLEDs()
	case "text":
		text := "hello"
		if len(os.Args) > 2 {
			text = strings.Join(os.Args[2:], " ")
		}
		testText(text)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Launchpad Mini MK3 test scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list           - List all MIDI ports")
	fmt.Println("  detect         - Find a Launchpad Mini MK3")
	fmt.Println("  sysex          - Switch to programmer mode and query versions")
	fmt.Println("  leds           - Test LED control")
	fmt.Println("  text [words]   - Scroll text across the grid")
}

func isMini(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "lpminimk3") ||
		(strings.Contains(name, "launchpad mini") && strings.Contains(name, "mk3"))
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	for i, p := range gomidi.GetInPorts() {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range gomidi.GetOutPorts() {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
}

func detect() {
	fmt.Println("Looking for a Launchpad Mini MK3...")

	found := false
	for i, p := range gomidi.GetInPorts() {
		if isMini(p.String()) {
			fmt.Printf("Found input: %d: %s\n", i, p.String())
			found = true
		}
	}
	for i, p := range gomidi.GetOutPorts() {
		if isMini(p.String()) {
			fmt.Printf("Found output: %d: %s\n", i, p.String())
			found = true
		}
	}

	if found {
		fmt.Println("\nLaunchpad Mini MK3 detected!")
	} else {
		fmt.Println("\nLaunchpad Mini MK3 not found")
	}
}

func openOut() func([]byte) error {
	var outPort drivers.Out
	for _, p := range gomidi.GetOutPorts() {
		if isMini(p.String()) {
			outPort = p
			break
		}
	}
	if outPort == nil {
		fmt.Println("No Launchpad found")
		return nil
	}
	fmt.Printf("Using output: %s\n", outPort.String())

	send, err := gomidi.SendTo(outPort)
	if err != nil {
		fmt.Printf("Error opening port: %v\n", err)
		return nil
	}
	return func(data []byte) error {
		return send(gomidi.Message(data))
	}
}

func sendCmd(send func([]byte) error, cmd launchpad.Command) {
	data, err := launchpad.Encode(cmd, nil)
	if err != nil {
		fmt.Printf("Encode error: %v\n", err)
		return
	}
	fmt.Printf("Sending: % x\n", data)
	if err := send(data); err != nil {
		fmt.Printf("Send error: %v\n", err)
	}
}

func testSysEx() {
	send := openOut()
	if send == nil {
		return
	}

	fmt.Println("Switching to programmer mode...")
	sendCmd(send, launchpad.SetProgrammerMode{Enabled: true})
	time.Sleep(100 * time.Millisecond)

	fmt.Println("Querying versions (watch the input port for replies)...")
	sendCmd(send, launchpad.GetVersions{})

	fmt.Println("Done!")
}

func testLEDs() {
	send := openOut()
	if send == nil {
		return
	}

	sendCmd(send, launchpad.SetProgrammerMode{Enabled: true})
	time.Sleep(100 * time.Millisecond)

	fmt.Println("Lighting up a diagonal...")
	for i := uint8(1); i <= 9; i++ {
		sendCmd(send, launchpad.KeyOn{
			Key:   launchpad.CoordsToKey(i, i),
			Color: launchpad.SimpleColor{Mode: launchpad.ModeStatic, Color: theme.TransBlue},
		})
		time.Sleep(100 * time.Millisecond)
	}

	fmt.Println("Batching a pink border...")
	var batch []launchpad.KeyColor
	for _, key := range launchpad.Rect(11, 99) {
		x, y := launchpad.KeyToCoords(key)
		if x == 1 || x == 9 || y == 1 || y == 9 {
			batch = append(batch, launchpad.KeyColor{
				Key:   key,
				Color: launchpad.ComplexColor{Mode: launchpad.ModeStatic, A: theme.TransPink},
			})
		}
	}
	sendCmd(send, launchpad.SetColors{Colors: batch})

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()

	for _, key := range launchpad.Rect(11, 99) {
		if err := send(mustEncode(launchpad.KeyOff{Key: key})); err != nil {
			fmt.Printf("Send error: %v\n", err)
			return
		}
	}
	fmt.Println("Done!")
}

func testText(text string) {
	send := openOut()
	if send == nil {
		return
	}

	sendCmd(send, launchpad.SetProgrammerMode{Enabled: true})
	time.Sleep(100 * time.Millisecond)

	loops := false
	speed := uint8(15)
	color := launchpad.PaletteText(theme.TransWhite)
	sendCmd(send, launchpad.ScrollText{Loops: &loops, Speed: &speed, Color: &color, Text: &text})
}

func mustEncode(cmd launchpad.Command) []byte {
	data, err := launchpad.Encode(cmd, nil)
	if err != nil {
		panic(err)
	}
	return data
}
