package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hotchk155/midihub/hub"
	"github.com/hotchk155/midihub/theme"
)

// Panel refresh rate.
const panelFPS = 30

type Model struct {
	Engine   *hub.Engine
	Panel    *Panel
	Theme    *theme.Theme
	quitting bool
}

type frameMsg time.Time

func NewModel(engine *hub.Engine, panel *Panel, th *theme.Theme) Model {
	return Model{Engine: engine, Panel: panel, Theme: th}
}

func nextFrame() tea.Cmd {
	return tea.Tick(time.Second/panelFPS, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return nextFrame()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "r":
			m.Panel.Press(hub.BtnRun)
		case "i", "+", "=":
			m.Panel.Press(hub.BtnInc)
		case "d", "-", "_":
			m.Panel.Press(hub.BtnDec)

		// Uppercase holds the button: long press on Run toggles the
		// run-lock, held Inc/Dec auto-repeats the tempo.
		case "R":
			m.Panel.Hold(hub.BtnRun)
		case "I":
			m.Panel.Hold(hub.BtnInc)
		case "D":
			m.Panel.Hold(hub.BtnDec)

		// Chord shortcuts.
		case "m":
			m.Panel.Press(hub.BtnRun | hub.BtnInc | hub.BtnDec)
		case "t":
			m.Panel.Press(hub.BtnRun | hub.BtnDec)
		case "n":
			m.Panel.Press(hub.BtnRun | hub.BtnInc)
		case "0":
			m.Panel.Press(hub.BtnInc | hub.BtnDec)
		}

	case frameMsg:
		return m, nextFrame()
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Engine.Snapshot()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	transport := "STOP"
	if snap.Running {
		transport = "RUN"
	}
	lock := ""
	if snap.RunLock {
		lock = " LOCK"
	}
	header := headerStyle.Render(fmt.Sprintf(
		"midihub fw%d  %-7s  %3dbpm  %s%s", hub.FirmwareVersion, snap.Mode, snap.BPM, transport, lock))

	// Six LEDs rendered from the duty snapshot.
	var leds strings.Builder
	max := uint8(50)
	for i := 0; i < hub.NumLEDs; i++ {
		style := lipgloss.NewStyle().Foreground(m.Theme.LED(snap.Duty[i], max))
		leds.WriteString(style.Render("⬤"))
		leds.WriteString("  ")
	}

	var status string
	switch snap.Mode {
	case hub.ModeMenu:
		status = fgStyle.Render(fmt.Sprintf("menu: option %d  options=%05b", snap.MenuCursor, snap.Options))
	case hub.ModeTap:
		status = fgStyle.Render(fmt.Sprintf("tap tempo: %d taps", snap.TapCount))
	case hub.ModeNoClock:
		status = fgStyle.Render("thru only, clock off")
	default:
		status = fgStyle.Render(fmt.Sprintf("phase %02d/23", snap.Phase))
	}

	help := dimStyle.Render("r:run i/+:inc d/-:dec  R/I/D:hold  m:menu t:tap n:noclock 0:default  q:quit")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n  ")
	out.WriteString(leds.String())
	out.WriteString("\n\n")
	out.WriteString(status)
	out.WriteString("\n\n")
	out.WriteString(help)

	return out.String()
}
