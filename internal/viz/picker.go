package viz

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/scisim/internal/catalog"
	"github.com/san-kum/scisim/internal/scene"
)

const (
	stateMenu = iota
	stateSim
)

var difficulties = []catalog.Difficulty{"", catalog.Easy, catalog.Medium, catalog.Hard}

// picker lists catalog entries and hands the chosen one to a live model.
type picker struct {
	state   int
	entries []catalog.Entry
	shown   []catalog.Entry
	cursor  int

	subjects   []string
	subject    int
	difficulty int

	opts      Options
	theme     Theme
	styles    Styles
	liveModel Model
	err       error
}

// NewPicker builds the menu over entries. Options are passed on to every
// live session it starts.
func NewPicker(entries []catalog.Entry, opts Options) *picker {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	theme := GetTheme(opts.Theme)
	p := &picker{
		state:    stateMenu,
		entries:  entries,
		subjects: append([]string{""}, catalog.Subjects(entries)...),
		opts:     opts,
		theme:    theme,
		styles:   NewStyles(theme),
	}
	p.refilter()
	return p
}

func (m *picker) refilter() {
	m.shown = catalog.Filter(m.entries, m.subjects[m.subject], difficulties[m.difficulty])
	if m.cursor >= len(m.shown) {
		m.cursor = max(0, len(m.shown)-1)
	}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateSim {
			return m.simKey(msg)
		}
		return m.menuKey(msg)
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m picker) menuKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.shown)-1 {
			m.cursor++
		}
	case "f":
		m.subject = (m.subject + 1) % len(m.subjects)
		m.refilter()
	case "d":
		m.difficulty = (m.difficulty + 1) % len(difficulties)
		m.refilter()
	case "t":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = NewStyles(m.theme)
		m.opts.Theme = m.theme.Name
	case "enter", " ":
		if len(m.shown) == 0 {
			return m, nil
		}
		return m.start(m.shown[m.cursor])
	}
	return m, nil
}

// simKey forwards keys to the live model; esc unmounts it and returns to
// the menu.
func (m picker) simKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	if msg.String() == "esc" {
		m.liveModel.stopRecording()
		m.liveModel.engine.Unmount()
		m.state = stateMenu
		return m, nil
	}
	newLive, cmd := m.liveModel.Update(msg)
	m.liveModel = newLive.(Model)
	return m, cmd
}

func (m picker) start(e catalog.Entry) (picker, tea.Cmd) {
	s, err := scene.Get(e.ID)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.liveModel = NewModel(s, m.opts)
	m.state = stateSim
	m.opts.Logger.Info("simulation selected", "simulation", e.ID, "chapter", e.Chapter)
	return m, m.liveModel.Init()
}

func (m picker) View() string {
	if m.state == stateSim {
		return m.liveModel.View()
	}
	return m.viewMenu()
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

func (m picker) viewMenu() string {
	st := m.styles
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("SCISIM", m.theme.Primary, m.theme.Secondary) + "\n")
	b.WriteString("    " + st.Subtitle.Render("science simulations") + "\n")
	b.WriteString("    " + st.Subtitle.Render("─────────────────────────") + "\n")
	b.WriteString(fmt.Sprintf("    %s %s   %s %s\n\n",
		st.Dim.Render("subject"), st.Value.Render(orAll(m.subjects[m.subject])),
		st.Dim.Render("difficulty"), st.Value.Render(orAll(string(difficulties[m.difficulty])))))

	if len(m.shown) == 0 {
		b.WriteString("    " + st.Dim.Render("nothing matches") + "\n")
	}
	chapter := ""
	for i, e := range m.shown {
		if e.Chapter != chapter {
			chapter = e.Chapter
			b.WriteString("    " + st.Subtitle.Render(chapter) + "\n")
		}
		desc := e.Description
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", st.Cursor.Render("▸"), st.Selected.Render(fmt.Sprintf("%-28s", e.Title)), st.Active.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", st.Dim.Render(fmt.Sprintf("%-28s", e.Title)), st.Subtle.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + st.Error.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + st.KeyHints("j/k", "navigate", "enter", "open", "f", "subject", "d", "difficulty", "t", "theme", "q", "quit") + "\n")
	b.WriteString("    " + st.Dim.Render("esc returns here from a simulation") + "\n")
	return b.String()
}

// RunInteractive opens the catalog menu.
func RunInteractive(entries []catalog.Entry, opts Options) error {
	final, err := tea.NewProgram(NewPicker(entries, opts), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(picker); ok && m.state == stateSim && m.liveModel.engine.Mounted() {
		m.liveModel.engine.Unmount()
	}
	return nil
}
