package viz

import (
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/scisim/internal/control"
	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/export"
	"github.com/san-kum/scisim/internal/scene"
	"github.com/san-kum/scisim/internal/sim"
	"github.com/san-kum/scisim/internal/surface"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600

	speedStep = 0.25
	// seekFrames is how many base-rate ticks one [ or ] press moves.
	seekFrames = 50
	// dragPixels is the pointer distance one camera key stands for.
	dragPixels = 20
)

// TickMsg paces the frame host.
type TickMsg time.Time

// Options configure a live session.
type Options struct {
	FPS    int
	Speed  float64
	Theme  string
	Paused bool
	// RecordPath is where the g key writes its GIF.
	RecordPath string
	Logger     *slog.Logger
	// Configure, when set, fills the panel right after mount.
	Configure func(*control.Panel) error
}

// history collects per-frame quantities and, while recording, canvas
// snapshots. Model is copied by value, so it lives behind a pointer.
type history struct {
	names     []string
	series    map[string][]float64
	recording bool
	frames    []image.Image
}

func newHistory() *history {
	return &history{series: make(map[string][]float64)}
}

func (h *history) clear() {
	h.names = h.names[:0]
	clear(h.series)
}

func (h *history) observe(res dynamo.Result) {
	if res == nil {
		return
	}
	for _, q := range res.Quantities() {
		s, ok := h.series[q.Name]
		if !ok {
			h.names = append(h.names, q.Name)
		}
		s = append(s, q.Value)
		if len(s) > historyCapacity {
			s = s[1:]
		}
		h.series[q.Name] = s
	}
}

// Model is a bubbletea program around one mounted engine drawing into a
// braille canvas.
type Model struct {
	engine *sim.Engine
	host   *sim.LoopHost
	canvas *surface.Braille
	hist   *history
	logger *slog.Logger

	fps        int
	theme      Theme
	styles     Styles
	selected   int
	graph      int
	recordPath string
	showHelp   bool
	message    string
}

// NewModel mounts sim on a fresh engine and starts it unless opts.Paused.
func NewModel(s scene.Simulation, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.RecordPath == "" {
		opts.RecordPath = s.ID() + ".gif"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	theme := GetTheme(opts.Theme)

	m := Model{
		host:       sim.NewLoopHost(),
		canvas:     surface.NewBraille(width, height),
		hist:       newHistory(),
		logger:     opts.Logger,
		fps:        opts.FPS,
		theme:      theme,
		styles:     NewStyles(theme),
		recordPath: opts.RecordPath,
	}
	var engine *sim.Engine
	hist, canvas := m.hist, m.canvas
	engine = sim.NewEngine(s, m.host, m.canvas,
		sim.WithLogger(opts.Logger),
		sim.WithPalette(scene.GetPalette(theme.Name)),
		sim.WithObserver(sim.ObserverFunc(func(_ dynamo.Frame, res dynamo.Result) {
			hist.observe(res)
			if hist.recording {
				p := engine.Palette()
				hist.frames = append(hist.frames, export.BrailleToImage(canvas, 8, 16, p.Primary, p.Background))
			}
		})),
	)
	m.engine = engine
	m.engine.Mount()
	if opts.Configure != nil {
		if err := opts.Configure(m.engine.Panel()); err != nil {
			m.message = err.Error()
		}
		m.engine.Redraw()
	}
	if opts.Speed > 0 {
		m.engine.SetSpeed(opts.Speed)
	}
	if !opts.Paused {
		m.engine.Start()
	}
	return m
}

// Engine exposes the mounted engine.
func (m Model) Engine() *sim.Engine { return m.engine }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and pumps the frame host.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.message = ""
		switch msg.String() {
		case "q", "ctrl+c":
			m.stopRecording()
			m.engine.Unmount()
			return m, tea.Quit
		case " ":
			m.engine.Toggle()
		case "r":
			m.hist.clear()
			m.graph = 0
			m.engine.Reset()
		case "R":
			m.engine.Panel().Reset()
			m.engine.Redraw()
		case "tab", "down", "j":
			m.cycleControl(1)
		case "shift+tab", "up", "k":
			m.cycleControl(-1)
		case "right", "l":
			m.adjust(1)
		case "left", "h":
			m.adjust(-1)
		case "+", "=":
			m.engine.SetSpeed(m.engine.State().Speed + speedStep)
		case "-", "_":
			m.engine.SetSpeed(m.engine.State().Speed - speedStep)
		case "[":
			m.seek(-1)
		case "]":
			m.seek(1)
		case "t":
			m.setTheme(NextTheme(m.theme.Name))
		case "g":
			if m.hist.recording {
				m.stopRecording()
			} else {
				m.hist.recording = true
				m.hist.frames = m.hist.frames[:0]
				m.message = "recording"
			}
		case "w":
			m.drag(0, -dragPixels)
		case "s":
			m.drag(0, dragPixels)
		case "a":
			m.drag(-dragPixels, 0)
		case "d":
			m.drag(dragPixels, 0)
		case "z":
			m.engine.ZoomCamera(1)
			m.engine.Redraw()
		case "x":
			m.engine.ZoomCamera(-1)
			m.engine.Redraw()
		case "n":
			if n := len(m.hist.names); n > 0 {
				m.graph = (m.graph + 1) % n
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.host.Fire()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) cycleControl(dir int) {
	n := len(m.engine.Simulation().Schema())
	if n == 0 {
		return
	}
	m.selected = (m.selected + dir + n) % n
}

// adjust moves the selected control one step: floats and angles nudge,
// enums cycle and toggles flip.
func (m *Model) adjust(dir int) {
	schema := m.engine.Simulation().Schema()
	if len(schema) == 0 {
		return
	}
	spec := schema[m.selected]
	panel := m.engine.Panel()
	var err error
	switch spec.Kind {
	case dynamo.KindFloat, dynamo.KindAngle:
		_, err = panel.Nudge(spec.Name, dir)
	case dynamo.KindEnum:
		_, err = panel.CycleEnum(spec.Name, dir)
	case dynamo.KindToggle:
		_, err = panel.Flip(spec.Name)
	}
	if err != nil {
		m.message = err.Error()
		return
	}
	m.engine.Redraw()
}

func (m *Model) seek(dir int) {
	step := seekFrames * m.engine.Simulation().BaseRate()
	t := m.engine.State().ElapsedTime + float64(dir)*step
	m.engine.Seek(max(0, t))
}

func (m *Model) drag(dx, dy float64) {
	if !scene.Uses3D(m.engine.Simulation()) {
		return
	}
	m.engine.DragCamera(dx, dy)
	m.engine.Redraw()
}

func (m *Model) setTheme(name string) {
	m.theme = GetTheme(name)
	m.styles = NewStyles(m.theme)
	m.engine.SetPalette(scene.GetPalette(m.theme.Name))
	m.engine.Redraw()
}

// stopRecording writes the captured frames, if any.
func (m *Model) stopRecording() {
	if !m.hist.recording {
		return
	}
	m.hist.recording = false
	frames := m.hist.frames
	m.hist.frames = nil
	if len(frames) == 0 {
		return
	}
	if err := export.WriteGIF(m.recordPath, frames, export.DelayFor(float64(m.fps))); err != nil {
		m.logger.Error("gif export failed", "path", m.recordPath, "error", err)
		m.message = err.Error()
		return
	}
	m.logger.Info("gif saved", "path", m.recordPath, "frames", len(frames))
	m.message = fmt.Sprintf("saved %s (%d frames)", m.recordPath, len(frames))
}

func (m Model) status() string {
	switch {
	case m.hist.recording:
		return m.styles.Recording.Render("● REC")
	case m.engine.Running():
		return m.styles.Running.Render("RUNNING")
	}
	return m.styles.Paused.Render("PAUSED")
}

// View renders the canvas beside the stats panel.
func (m Model) View() string {
	st := m.styles
	canvasView := st.Canvas.Render(strings.TrimRight(m.canvas.String(), "\n"))

	var s strings.Builder
	current := m.engine.Simulation()
	s.WriteString(st.Header.Render(GradientText(strings.ToUpper(current.Title()), m.theme.Primary, m.theme.Secondary)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.hist.names) > 0 {
		name := m.hist.names[m.graph%len(m.hist.names)]
		if series := m.hist.series[name]; len(series) > 1 {
			chart := asciigraph.Plot(series, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption(name))
			s.WriteString(st.Graph.Render(chart) + "\n")
		}
	}

	state := m.engine.State()
	s.WriteString(st.Label.Render("Time") + st.Value.Render(fmt.Sprintf("%.2f", state.ElapsedTime)) + "\n")
	s.WriteString(st.Label.Render("Speed") + st.Value.Render(fmt.Sprintf("%.2f×", state.Speed)) + "\n")
	s.WriteString(st.Label.Render("Frames") + st.Value.Render(fmt.Sprintf("%d", m.engine.Frames())) + "\n")

	if res := m.engine.Result(); res != nil {
		s.WriteString("\n" + st.Separator(40) + "\n")
		if !res.Valid() {
			s.WriteString(st.Error.Render(scene.Status(res.Err())) + "\n")
		}
		for _, q := range res.Quantities() {
			s.WriteString(st.Value.Render(scene.FormatQuantity(q)) + "\n")
		}
	}

	s.WriteString("\n" + st.Separator(40) + "\n")
	if panel := m.engine.Panel(); panel != nil {
		for i, spec := range current.Schema() {
			label := spec.Label
			if label == "" {
				label = spec.Name
			}
			if i == m.selected {
				s.WriteString(st.Cursor.Render("▸ ") + st.Active.Render(fmt.Sprintf("%-16s %s", label, panel.Display(spec.Name))) + "\n")
			} else {
				s.WriteString("  " + st.Label.Render(label) + st.Value.Render(panel.Display(spec.Name)) + "\n")
			}
		}
	}
	if m.message != "" {
		s.WriteString("\n" + st.Subtle.Render(m.message) + "\n")
	}
	s.WriteString(st.Help.Render(st.KeyHints("space", "pause", "←→", "tune", "q", "quit", "?", "help")))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.Stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume animation   ║
║  r        - Reset elapsed time       ║
║  R        - Reset parameters         ║
║  Tab/↑↓   - Select control           ║
║  ←/→      - Adjust control           ║
║  +/-      - Animation speed          ║
║  [ / ]    - Seek back / forward      ║
║  w a s d  - Orbit camera (3D)        ║
║  z / x    - Zoom in / out (3D)       ║
║  n        - Next graphed quantity    ║
║  g        - Toggle GIF recording     ║
║  t        - Cycle themes             ║
║  q        - Quit                     ║
╚══════════════════════════════════════╝`

// RunLive runs a live session until the user quits.
func RunLive(s scene.Simulation, opts Options) error {
	p := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.engine.Mounted() {
		m.engine.Unmount()
	}
	return nil
}
