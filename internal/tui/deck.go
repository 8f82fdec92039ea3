// Package tui provides an interactive terminal flight deck. It polls
// the simulator on a fixed frame tick, draws basic instruments, and
// maps keys onto the supervisory controls so the pilot can pause,
// single-step, reset, and hand the aircraft to the autopilot.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mstram-flight/Huginn/internal/autopilot"
	"github.com/mstram-flight/Huginn/internal/fdm"
	"github.com/mstram-flight/Huginn/internal/sim"
)

var (
	cyanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	whiteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Flight is the instrument surface the deck reads every frame.
// [fdm.Exec] satisfies it.
type Flight interface {
	SimTime() float64
	Altitude() float64
	Airspeed() float64
	ClimbRate() float64
	Position() fdm.Position
	Attitude() fdm.Attitude
}

const historyLen = 120

type deck struct {
	sim      *sim.Simulator
	flight   Flight
	ap       *autopilot.Autopilot
	scenario string

	speed     float64
	history   []float64
	lastFrame time.Time
	fps       float64
	err       error

	width  int
	height int
}

func newDeck(s *sim.Simulator, scenario string) (deck, error) {
	flight, ok := s.Model().(Flight)
	if !ok {
		return deck{}, fmt.Errorf("flight model does not expose instrument readings")
	}
	return deck{
		sim:      s,
		flight:   flight,
		ap:       autopilot.New(flight, s.Aircraft()),
		scenario: scenario,
		speed:    1.0,
		history:  make([]float64, 0, historyLen),
	}, nil
}

func (d deck) Init() tea.Cmd {
	return tick()
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (d deck) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return d.handleKey(msg)

	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		return d, nil

	case tickMsg:
		if d.sim.State() == sim.StateRunning {
			now := time.Now()
			if !d.lastFrame.IsZero() {
				if dt := now.Sub(d.lastFrame).Seconds(); dt > 0 {
					d.fps = 1.0 / dt
				}
			}
			d.lastFrame = now

			steps := int(d.speed)
			if steps < 1 {
				steps = 1
			}
			for i := 0; i < steps && d.err == nil; i++ {
				d.advance()
			}
		}
		return d, tick()
	}
	return d, nil
}

// advance polls one frame. The autopilot writes its commands first so
// they are in effect for the frame it just observed.
func (d *deck) advance() {
	if d.ap.Engaged() {
		d.sim.SetAircraftControls(d.ap.Update())
	}
	if err := d.sim.Run(); err != nil {
		d.err = err
		return
	}
	d.history = append(d.history, d.flight.Altitude())
	if len(d.history) > historyLen {
		d.history = d.history[1:]
	}
}

func (d deck) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return d, tea.Quit

	case " ", "p":
		if d.sim.IsPaused() {
			d.sim.Resume()
		} else {
			d.sim.Pause()
		}

	case "s":
		if err := d.sim.Step(); err != nil {
			d.err = err
		}

	case "r":
		d.err = nil
		d.history = d.history[:0]
		if err := d.sim.Reset(); err != nil {
			d.err = err
		}

	case "a":
		if d.ap.Engaged() {
			d.ap.Disengage()
		} else {
			d.ap.Engage()
		}

	case "left":
		d.nudge(-0.1, 0, 0)
	case "right":
		d.nudge(0.1, 0, 0)
	case "up":
		d.nudge(0, 0.1, 0)
	case "down":
		d.nudge(0, -0.1, 0)
	case "t":
		d.nudge(0, 0, 0.05)
	case "g":
		d.nudge(0, 0, -0.05)

	case "+", "=":
		d.speed = math.Min(d.speed*2, 16)
	case "-", "_":
		d.speed = math.Max(d.speed/2, 0.25)
	case "0":
		d.speed = 1.0
	}
	return d, nil
}

// nudge adjusts the controls by hand, which takes the aircraft back
// from the autopilot.
func (d *deck) nudge(dAileron, dElevator, dThrottle float64) {
	if d.ap.Engaged() {
		d.ap.Disengage()
	}
	c := d.sim.Aircraft().Controls()
	d.sim.SetAircraftControls(
		clampRange(c.Aileron+dAileron, -1, 1),
		clampRange(c.Elevator+dElevator, -1, 1),
		c.Rudder,
		clampRange(c.Throttle+dThrottle, 0, 1),
	)
}

func (d deck) View() string {
	var b strings.Builder

	icon, state := greenStyle.Render("●"), greenStyle.Render("running")
	switch d.sim.State() {
	case sim.StatePaused:
		icon, state = yellowStyle.Render("○"), yellowStyle.Render("paused")
	case sim.StateCrashed:
		icon, state = redStyle.Render("✕"), redStyle.Render("crashed")
	}

	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s  %s\n",
		icon,
		cyanStyle.Render("huginn"),
		dimStyle.Render(d.scenario),
		state,
		dimStyle.Render(fmt.Sprintf("t=%.1fs  ×%.2g  %.0f fps", d.flight.SimTime(), d.speed, d.fps)),
	))
	b.WriteString(dimmerStyle.Render("   "+strings.Repeat("─", 58)) + "\n\n")

	pos := d.flight.Position()
	att := d.flight.Attitude()

	b.WriteString(instrumentRow(
		"altitude", fmt.Sprintf("%8.1f m", d.flight.Altitude()),
		"airspeed", fmt.Sprintf("%6.1f m/s", d.flight.Airspeed()),
		"heading", fmt.Sprintf("%6.1f°", pos.Heading),
	))
	b.WriteString(instrumentRow(
		"climb", fmt.Sprintf("%+8.1f m/s", d.flight.ClimbRate()),
		"pitch", fmt.Sprintf("%+6.1f°", att.Pitch),
		"roll", fmt.Sprintf("%+6.1f°", att.Roll),
	))
	b.WriteString("\n")

	c := d.sim.Aircraft().Controls()
	b.WriteString("   " + dimStyle.Render("controls  ") + whiteStyle.Render(fmt.Sprintf(
		"ail %+.2f  elev %+.2f  rud %+.2f  thr %.2f",
		c.Aileron, c.Elevator, c.Rudder, c.Throttle,
	)) + "\n")

	apLine := dimStyle.Render("autopilot off")
	if d.ap.Engaged() {
		alt, hdg, spd := d.ap.Targets()
		apLine = greenStyle.Render("autopilot ") + whiteStyle.Render(fmt.Sprintf(
			"alt %.0f m  hdg %.0f°  spd %.0f m/s", alt, hdg, spd,
		))
	}
	b.WriteString("   " + apLine + "\n\n")

	if len(d.history) > 1 {
		width := 48
		if d.width > 16 && d.width-10 < width {
			width = d.width - 10
		}
		b.WriteString(fmt.Sprintf("   %s %s\n\n",
			dimStyle.Render("alt"),
			cyanStyle.Render(sparkline(d.history, width)),
		))
	}

	if d.err != nil {
		b.WriteString("   " + redStyle.Render(d.err.Error()) + "\n\n")
	}
	if d.sim.Crashed() {
		b.WriteString("   " + redStyle.Render("down, r resets the flight") + "\n\n")
	}

	b.WriteString(dimStyle.Render("   space pause  s step  r reset  a autopilot  ←→↑↓ fly  t/g throttle  +/- speed  q quit") + "\n")
	return b.String()
}

func instrumentRow(l1, v1, l2, v2, l3, v3 string) string {
	return "   " +
		dimStyle.Render(fmt.Sprintf("%-9s", l1)) + whiteStyle.Render(v1) + "   " +
		dimStyle.Render(fmt.Sprintf("%-9s", l2)) + whiteStyle.Render(v2) + "   " +
		dimStyle.Render(fmt.Sprintf("%-8s", l3)) + whiteStyle.Render(v3) + "\n"
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	ramp := []rune("▁▂▃▄▅▆▇█")

	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	if span == 0 {
		span = 1
	}

	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var b strings.Builder
	for i := 0; i < len(data); i += step {
		idx := int((data[i] - min) / span * float64(len(ramp)-1))
		b.WriteRune(ramp[idx])
	}
	return b.String()
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Run opens the flight deck over a ready simulator and blocks until
// the pilot quits.
func Run(s *sim.Simulator, scenario string) error {
	d, err := newDeck(s, scenario)
	if err != nil {
		return err
	}
	p := tea.NewProgram(d, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
