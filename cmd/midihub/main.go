// Package main is the entry point for the midihub CLI.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hotchk155/midihub/config"
	"github.com/hotchk155/midihub/debug"
	"github.com/hotchk155/midihub/eeprom"
	"github.com/hotchk155/midihub/hub"
	"github.com/hotchk155/midihub/midi"
	"github.com/hotchk155/midihub/theme"
	"github.com/hotchk155/midihub/tui"
)

var (
	debugFlag  bool
	serialDev  string
	midiInName string
	midiOut    string
	storePath  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "midihub",
	Short: "MIDI hub with beat clock metronome",
	Long: `midihub relays MIDI bytes between an input and output link and
generates a 24-PPQN beat clock at a user-settable tempo, with the
three-button/six-LED front panel simulated in the terminal.

Examples:
  midihub run --serial /dev/ttyUSB0
  midihub run --out "IAC Driver Bus 1"
  midihub ports`,
	Version: fmt.Sprintf("firmware %d", hub.FirmwareVersion),
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the hub with the terminal front panel",
	RunE:  runRun,
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List system MIDI ports",
	Run: func(cmd *cobra.Command, args []string) {
		ins, outs := midi.Ports()
		fmt.Println("inputs:")
		for _, n := range ins {
			fmt.Printf("  %s\n", n)
		}
		fmt.Println("outputs:")
		for _, n := range outs {
			fmt.Printf("  %s\n", n)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write a debug log to ~/.config/midihub/debug.log")
	runCmd.Flags().StringVar(&serialDev, "serial", "", "serial device for a raw DIN link (31250 baud)")
	runCmd.Flags().StringVar(&midiInName, "in", "", "MIDI input port name")
	runCmd.Flags().StringVar(&midiOut, "out", "", "MIDI output port name")
	runCmd.Flags().StringVar(&storePath, "store", "", "options store path (default ~/.config/midihub/eeprom.bin)")
	rootCmd.AddCommand(runCmd, portsCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if debugFlag {
		if err := debug.Enable(); err != nil {
			return err
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serialDev != "" {
		cfg.Link.SerialDevice = serialDev
	}
	if midiInName != "" {
		cfg.Link.MIDIIn = midiInName
	}
	if midiOut != "" {
		cfg.Link.MIDIOut = midiOut
	}
	if storePath != "" {
		cfg.StorePath = storePath
	}

	store, err := eeprom.OpenFile(cfg.Store())
	if err != nil {
		return err
	}

	panel := tui.NewPanel()
	var eng *hub.Engine
	timer := hub.NewSoftTimer(func() { eng.RaiseTick() })
	eng = hub.NewEngine(hub.Ports{
		Clock:  hub.NewWallClock(),
		Inputs: panel,
		LEDs:   panel,
		Timer:  timer,
		Store:  store,
	}, timings(cfg))

	switch {
	case cfg.Link.SerialDevice != "":
		l, err := midi.OpenSerial(cfg.Link.SerialDevice, eng.Feed)
		if err != nil {
			return err
		}
		defer l.Close()
		eng.SetLink(l)
	case cfg.Link.MIDIOut != "":
		l, err := midi.OpenPort(cfg.Link.MIDIIn, cfg.Link.MIDIOut, eng.Feed)
		if err != nil {
			return err
		}
		defer l.Close()
		eng.SetLink(l)
	default:
		// Panel-only dry run; clock and thru have nowhere to go.
		debug.Log("main", "no link configured")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go timer.Run(ctx)
	go eng.Run(ctx)

	p := tea.NewProgram(tui.NewModel(eng, panel, theme.New()), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// timings applies config overrides onto the firmware defaults.
func timings(cfg *config.Config) hub.Timings {
	t := hub.DefaultTimings()
	if cfg.Timing.DebounceMS > 0 {
		t.DebouncePeriod = uint32(cfg.Timing.DebounceMS)
	}
	if cfg.Timing.AutoRepeatDelayMS > 0 {
		t.AutoRepeatDelay = uint32(cfg.Timing.AutoRepeatDelayMS)
	}
	if cfg.Timing.AutoRepeatIntervalMS > 0 {
		t.AutoRepeatInterval = uint32(cfg.Timing.AutoRepeatIntervalMS)
	}
	if cfg.Timing.FadePeriodMS > 0 {
		t.FadePeriod = uint32(cfg.Timing.FadePeriodMS)
	}
	return t
}
