package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"ringsim/internal/ring"
)

const (
	canvasWidth     = 72
	canvasHeight    = 26
	historyCapacity = 300
	frameRate       = 30
)

// TickMsg drives one animation frame.
type TickMsg time.Time

// Model owns the ring being driven and the render state.
type Model struct {
	ring    *ring.Ring
	method  ring.Method
	freqPol ring.FreqPolicy
	dt      float64
	speed   int // integration steps per frame
	t       float64
	paused  bool

	canvas  *Canvas
	history []float64
}

// NewModel wraps a ring for interactive driving. The caller keeps
// ownership; the view only calls engine methods once per frame.
func NewModel(r *ring.Ring, method ring.Method, freqPol ring.FreqPolicy, dt float64) Model {
	return Model{
		ring:    r,
		method:  method,
		freqPol: freqPol,
		dt:      dt,
		speed:   1,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		history: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.ring.SetInitialPhases(ring.PhaseRandom)
			m.history = m.history[:0]
		case "s":
			m.ring.SetInitialPhases(ring.PhaseQuasiSync)
			m.history = m.history[:0]
		case "1":
			m.ring.SetInitialPhases(ring.PhaseTwisted1)
			m.history = m.history[:0]
		case "2":
			m.ring.SetInitialPhases(ring.PhaseTwisted2)
			m.history = m.history[:0]
		case "p":
			m.ring.Perturb(0.1)
		case "f":
			m.freqPol = ring.FreqPolicy((int(m.freqPol) + 1) % 3)
			m.ring.SetFrequencies(m.freqPol)
		case "e":
			if m.method == ring.MethodEuler {
				m.method = ring.MethodRK4
			} else {
				m.method = ring.MethodEuler
			}
		case "up", "k":
			m.ring.SetCoupling(m.ring.Coupling() + 0.1)
		case "down", "j":
			m.ring.SetCoupling(m.ring.Coupling() - 0.1)
		case "right", "l":
			if m.speed < 20 {
				m.speed++
			}
		case "left", "h":
			if m.speed > 1 {
				m.speed--
			}
		}
	case TickMsg:
		if !m.paused {
			for i := 0; i < m.speed; i++ {
				m.ring.Advance(m.method, m.dt)
				m.t += m.dt
			}
			mag, _ := m.ring.OrderParameter()
			m.history = append(m.history, mag)
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	m.draw()

	mag, psi := m.ring.OrderParameter()
	cls := m.ring.Classify()

	var s strings.Builder
	s.WriteString(headerStyle.Render("KURAMOTO RING") + "\n")
	if m.paused {
		s.WriteString("PAUSED\n\n")
	} else {
		s.WriteString("RUNNING\n\n")
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("order parameter r"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs (x%d)", m.t, m.speed))
	row("Oscillators", fmt.Sprintf("%d", m.ring.N()))
	row("Coupling K", fmt.Sprintf("%.2f", m.ring.Coupling()))
	row("Integrator", m.method.String())
	row("Frequencies", m.freqPol.String())
	row("r", fmt.Sprintf("%.3f", mag))
	row("psi", fmt.Sprintf("%+.3f", psi))
	row("Winding q", fmt.Sprintf("%d", m.ring.WindingNumber()))
	row("Variance", fmt.Sprintf("%.3f", m.ring.PhaseVariance()))
	s.WriteString("\n" + labelStyle.Render("State") + stateStyle.Render(cls.String()) + "\n")

	s.WriteString(helpStyle.Render(strings.Join([]string{
		"─────────────────────",
		"SP:Pause  R:Random  S:QuasiSync",
		"1/2:Twist P:Perturb F:Freqs",
		"E:Integrator  ↑↓:K  ←→:Speed",
		"Q:Quit",
	}, "\n")))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(s.String()),
	)
}

// draw renders the lattice view (left) and phase circle (right).
func (m Model) draw() {
	m.canvas.Clear()

	phases := m.ring.Phases()
	n := len(phases)
	cw, ch := canvasWidth*2, canvasHeight*4

	// Lattice view: oscillators at their ring positions, each with a
	// needle pointing along its phase.
	lcx, lcy := cw/4, ch/2
	lr := float64(ch) * 0.32
	m.canvas.DrawCircle(lcx, lcy, lr)
	for i, th := range phases {
		pos := 2 * math.Pi * float64(i) / float64(n)
		x := lcx + int(2*lr*math.Cos(pos))
		y := lcy + int(lr*math.Sin(pos))
		m.canvas.Set(x, y)
		nx := x + int(8*math.Cos(th))
		ny := y + int(4*math.Sin(th))
		m.canvas.DrawLine(x, y, nx, ny)
	}

	// Phase circle: phases as points on the unit circle plus the mean
	// field arrow scaled by r.
	pcx, pcy := 3*cw/4, ch/2
	pr := float64(ch) * 0.32
	m.canvas.DrawCircle(pcx, pcy, pr)
	for _, th := range phases {
		m.canvas.DrawDot(pcx+int(2*pr*math.Cos(th)), pcy-int(pr*math.Sin(th)))
	}

	mag, psi := m.ring.OrderParameter()
	ax := pcx + int(2*pr*mag*math.Cos(psi))
	ay := pcy - int(pr*mag*math.Sin(psi))
	m.canvas.DrawLine(pcx, pcy, ax, ay)
	m.canvas.DrawDot(ax, ay)
}
