package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravsim/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives the interactive view: it owns a simulator, steps it on a
// frame tick, and renders bodies and trails through a camera.
type Model struct {
	newSim    func() *sim.Simulator
	simulator *sim.Simulator
	state     sim.RunState
	dt        float64
	sceneName string

	canvas *Canvas
	camera *Camera

	showTrails    bool
	showHelp      bool
	initialEnergy float64
	energyHistory []float64
}

// NewModel builds the live view. newSim must return a freshly built
// simulator; it is called once up front and again on reset.
func NewModel(newSim func() *sim.Simulator, sceneName string, dt, extent float64, state sim.RunState) Model {
	simulator := newSim()
	return Model{
		newSim:        newSim,
		simulator:     simulator,
		state:         state,
		dt:            dt,
		sceneName:     sceneName,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(extent),
		showTrails:    true,
		initialEnergy: simulator.Energy(),
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles key input and advances the simulation on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.state.Paused = !m.state.Paused
		case "b":
			m.state.UseBarnesHut = !m.state.UseBarnesHut
		case "t":
			m.showTrails = !m.showTrails
		case "w":
			m.state.TimeScale *= 1.1
			m.state = m.state.Clamp()
		case "s":
			m.state.TimeScale /= 1.1
			m.state = m.state.Clamp()
		case "a":
			m.camera.ZoomOut()
		case "d":
			m.camera.ZoomIn()
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "r":
			m.simulator = m.newSim()
			m.initialEnergy = m.simulator.Energy()
			m.energyHistory = m.energyHistory[:0]
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.state.Paused {
			m.simulator.Step(m.dt, m.state)
			m.energyHistory = append(m.energyHistory, m.simulator.Energy())
			if len(m.energyHistory) > historyCapacity {
				m.energyHistory = m.energyHistory[1:]
			}
		}
		m.draw()
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// draw repaints the canvas from the current body set.
func (m *Model) draw() {
	m.canvas.Clear()
	sw, sh := m.canvas.Width*2, m.canvas.Height*4

	if m.showTrails {
		for _, b := range m.simulator.Bodies() {
			if b.Fixed {
				continue
			}
			trail := b.Trajectory()
			for i := 1; i < len(trail); i++ {
				x0, y0, v0 := m.camera.Project(trail[i-1], sw, sh)
				x1, y1, v1 := m.camera.Project(trail[i], sw, sh)
				if v0 || v1 {
					m.canvas.DrawLine(x0, y0, x1, y1)
				}
			}
		}
	}

	for _, b := range m.simulator.Bodies() {
		x, y, visible := m.camera.Project(b.Position, sw, sh)
		if !visible {
			continue
		}
		if b.Radius >= 2 {
			m.canvas.Blob(x, y)
		} else {
			m.canvas.Set(x, y)
		}
	}
}

// View renders the canvas beside a stats panel.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sceneName)) + "\n")

	status := "RUNNING"
	if m.state.Paused {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	algorithm := "direct"
	if m.state.UseBarnesHut {
		algorithm = "barnes-hut"
	}
	trails := "off"
	if m.showTrails {
		trails = "on"
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.simulator.Elapsed())) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(m.simulator.Bodies()))) + "\n")
	s.WriteString(labelStyle.Render("Algorithm") + valueStyle.Render(algorithm) + "\n")
	s.WriteString(labelStyle.Render("Time scale") + valueStyle.Render(fmt.Sprintf("%.2fx", m.state.TimeScale)) + "\n")
	s.WriteString(labelStyle.Render("Trails") + valueStyle.Render(trails) + "\n")
	s.WriteString(labelStyle.Render("Drift") + valueStyle.Render(fmt.Sprintf("%.2e", m.energyDrift())) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause B:Algo T:Trails\nW/S:Speed A/D:Zoom R:Reset\nX/Y/Z:Rotate ?:Help Q:Quit"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  B        - Toggle force algorithm   ║
║  T        - Toggle trails            ║
║  W/S      - Time scale up/down       ║
║  A/D      - Zoom out/in              ║
║  X/Y/Z    - Rotate (shift reverses)  ║
║  R        - Rebuild the scene        ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// energyDrift reports relative deviation from the scene's starting energy.
func (m Model) energyDrift() float64 {
	if len(m.energyHistory) == 0 {
		return 0
	}
	current := m.energyHistory[len(m.energyHistory)-1]
	if m.initialEnergy == 0 {
		return current
	}
	drift := (current - m.initialEnergy) / m.initialEnergy
	if drift < 0 {
		return -drift
	}
	return drift
}
