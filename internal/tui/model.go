// Package tui renders an interactive scrub view for a recorded session.
package tui

import (
	"context"
	"fmt"
	"image"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"roboreplay/internal/playback"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	playStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type keyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Begin  key.Binding
	End    key.Binding
	Play   key.Binding
	Export key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
	Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
	Begin:  key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "begin")),
	End:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "end")),
	Play:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/stop")),
	Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export gif")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// frameMsg signals that the controller committed a new frame.
type frameMsg struct{}

// exportDoneMsg reports a finished export run.
type exportDoneMsg struct {
	path string
	err  error
}

// Model is the bubbletea model for the replay view.
type Model struct {
	controller *playback.Controller
	exporter   *playback.Exporter
	exportBase string

	robots    table.Model
	width     int
	exporting bool
	lastNote  string
}

// New builds the replay model.
func New(c *playback.Controller, ex *playback.Exporter, exportBase string) Model {
	cols := []table.Column{
		{Title: "Robot", Width: 12},
		{Title: "X", Width: 8},
		{Title: "Y", Width: 8},
		{Title: "A", Width: 8},
		{Title: "Stalled", Width: 8},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(6))
	return Model{controller: c, exporter: ex, exportBase: exportBase, robots: t}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case frameMsg:
		m.refreshRows()
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.lastNote = errorStyle.Render("export failed: " + msg.err.Error())
		} else {
			m.lastNote = "exported " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Prev):
			m.controller.Prev()
		case key.Matches(msg, keys.Next):
			m.controller.Next()
		case key.Matches(msg, keys.Begin):
			m.controller.Begin()
		case key.Matches(msg, keys.End):
			m.controller.End()
		case key.Matches(msg, keys.Play):
			m.controller.TogglePlay()
		case key.Matches(msg, keys.Export):
			if m.exporter != nil && !m.exporting {
				m.exporting = true
				m.lastNote = "exporting..."
				return m, m.exportCmd()
			}
		}
		m.refreshRows()
		return m, nil
	}
	return m, nil
}

func (m *Model) exportCmd() tea.Cmd {
	log := m.controller.Scrubber().Log()
	opts := playback.ExportOptions{
		Start:    0,
		Stop:     log.Duration(),
		Step:     log.StepDuration(),
		BaseName: m.exportBase,
		DelayMS:  100,
	}
	return func() tea.Msg {
		res, err := m.exporter.Export(context.Background(), opts)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: res.GIFPath}
	}
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, 0)
	for _, r := range m.controller.Robots() {
		stalled := ""
		if r.Stalled {
			stalled = "yes"
		}
		rows = append(rows, table.Row{
			r.Name,
			fmt.Sprintf("%.1f", r.X),
			fmt.Sprintf("%.1f", r.Y),
			fmt.Sprintf("%.2f", r.A),
			stalled,
		})
	}
	m.robots.SetRows(rows)
}

// View implements tea.Model.
func (m Model) View() string {
	log := m.controller.Scrubber().Log()
	header := titleStyle.Render("roboreplay") + "  " +
		statusStyle.Render(fmt.Sprintf("step %d/%d  t=%.1fs of %.1fs",
			m.controller.Cursor(), maxInt(log.Len()-1, 0), m.controller.Time(), log.Duration()))
	if m.controller.Playing() {
		header += "  " + playStyle.Render("▶ playing")
	}

	help := "←/h prev · →/l next · home/g begin · end/G end · space play/stop · e export gif · q quit"
	if m.lastNote != "" {
		help = m.lastNote + "\n" + help
	}
	width := m.width
	if width <= 0 {
		width = 80
	}

	return header + "\n\n" + m.robots.View() + "\n\n" + statusStyle.Render(wordwrap.String(help, width))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the TUI program and subscribes it to controller frames.
func Run(ctx context.Context, c *playback.Controller, ex *playback.Exporter, exportBase string) error {
	m := New(c, ex, exportBase)
	m.refreshRows()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	c.SetSink(func(image.Image) {
		// sink runs with the controller lock held; hand off so the
		// program cannot re-enter the controller on this goroutine
		go p.Send(frameMsg{})
	})
	_, err := p.Run()
	return err
}
