package main

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timeline/controller"
	"timeline/internal/timecode"
	"timeline/models"
	"timeline/position"
)

// cellWidth is the number of ruler pixels one terminal column stands for.
const cellWidth = 8

// rulerRows is the number of screen rows a mouse click can seek on.
const rulerRows = 3

type keyMap struct {
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Back    key.Binding
	Forward key.Binding
	Start   key.Binding
	End     key.Binding
	Reset   key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.Back, k.Forward, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ZoomIn, k.ZoomOut, k.Reset},
		{k.Back, k.Forward, k.Start, k.End},
		{k.Quit},
	}
}

var keys = keyMap{
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "zoom out"),
	),
	Back: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "back one tick"),
	),
	Forward: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "forward one tick"),
	),
	Start: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home", "start"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end", "end"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "fit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
}

var (
	tickStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "7"})
	labelStyle  = lipgloss.NewStyle().Bold(true)
	seekerStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}).Bold(true)
	statusStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
)

// scrubber is the bubbletea model of the interactive ruler.
type scrubber struct {
	ctrl *controller.Controller
	help help.Model
	fit  bool // refit to the terminal on the first size message

	width  int     // terminal columns
	scroll float64 // ruler pixel shown in the first column
	sized  bool
	err    error
}

func newScrubber(ctrl *controller.Controller, fit bool) *scrubber {
	return &scrubber{
		ctrl: ctrl,
		help: help.New(),
		fit:  fit,
	}
}

// runScrubber launches the terminal scrubber and blocks until it quits. With
// fit set the zoom is refitted to the terminal width once it is known.
func runScrubber(ctx context.Context, ctrl *controller.Controller, fit bool) error {
	p := tea.NewProgram(newScrubber(ctrl, fit),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

func (m *scrubber) Init() tea.Cmd {
	return nil
}

func (m *scrubber) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.err = m.ctrl.SetViewportWidth(float64(msg.Width * cellWidth))
		if !m.sized && m.fit && m.err == nil {
			m.ctrl.ResetZoom()
		}
		m.sized = true
	case tea.KeyMsg:
		m.err = nil
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.ZoomIn):
			m.ctrl.ZoomIn()
		case key.Matches(msg, keys.ZoomOut):
			m.ctrl.ZoomOut()
		case key.Matches(msg, keys.Reset):
			m.ctrl.ResetZoom()
		case key.Matches(msg, keys.Back):
			m.seekBy(-m.minorTick())
		case key.Matches(msg, keys.Forward):
			m.seekBy(m.minorTick())
		case key.Matches(msg, keys.Start):
			m.ctrl.SetProgress(0)
		case key.Matches(msg, keys.End):
			m.ctrl.SetProgress(m.ctrl.State().Duration)
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y < rulerRows {
			m.err = m.ctrl.Tap(m.scroll + (float64(msg.X)+0.5)*cellWidth)
		}
	}

	m.keepSeekerVisible()
	return m, nil
}

// minorTick is the time between two adjacent ruler ticks.
func (m *scrubber) minorTick() time.Duration {
	zoom := m.ctrl.Zoom()
	ticks := zoom.LabelInterval * m.ctrl.Curve().UnitsPerLabelTick
	if ticks <= 0 || zoom.Span <= 0 {
		return time.Second
	}
	return zoom.Span / time.Duration(ticks)
}

func (m *scrubber) seekBy(d time.Duration) {
	m.ctrl.SetProgress(m.ctrl.State().Progress + d)
}

// seekerX is the content offset of the playback position.
func (m *scrubber) seekerX() (float64, bool) {
	state := m.ctrl.State()
	return position.TimeToOffset(state.Progress, state.Duration, state.TimelineWidth)
}

// keepSeekerVisible scrolls the ruler so the seeker stays on screen.
func (m *scrubber) keepSeekerVisible() {
	view := float64(m.width * cellWidth)
	x, ok := m.seekerX()
	if !ok || view <= 0 {
		m.scroll = 0
		return
	}

	switch {
	case x < m.scroll:
		m.scroll = x - view/4
	case x >= m.scroll+view:
		m.scroll = x - view*3/4
	}

	maxScroll := math.Max(0, m.ctrl.Geometry().TotalWidth-view)
	m.scroll = math.Max(0, math.Min(m.scroll, maxScroll))
}

func (m *scrubber) View() string {
	if m.width == 0 {
		return "loading..."
	}

	state := m.ctrl.State()
	if state.Idle() {
		return "No media loaded.\n\n" + m.help.View(keys)
	}

	geom := m.ctrl.Geometry()
	seeker := strings.Repeat(" ", m.width)
	if x, ok := m.seekerX(); ok {
		seeker = seekerRow(x, m.scroll, m.width)
	}

	zoom := m.ctrl.Zoom()
	status := fmt.Sprintf("%s / %s   zoom %.2f%%   scale %.1f px   span %s",
		timecode.Format(state.Progress, true),
		timecode.Format(state.Duration, true),
		state.ZoomPercent, zoom.Scale,
		timecode.Format(zoom.Span, false))

	view := lipgloss.JoinVertical(lipgloss.Left,
		tickStyle.Render(rulerRow(geom, m.scroll, m.width)),
		labelStyle.Render(labelRow(geom, m.scroll, m.width)),
		seekerStyle.Render(seeker),
		statusStyle.Render(status),
	)
	if m.err != nil {
		view = lipgloss.JoinVertical(lipgloss.Left, view, errStyle.Render("ERROR: "+m.err.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, view, m.help.View(keys))
}

// column maps a content offset to a terminal column.
func column(x, scroll float64) int {
	return int(math.Floor((x - scroll) / cellWidth))
}

func tickRune(h models.TickHeight) rune {
	switch h {
	case models.TickTall:
		return '|'
	case models.TickMedium:
		return ':'
	default:
		return '.'
	}
}

// rulerRow draws one character per column: the tallest tick falling in it.
func rulerRow(geom *models.Geometry, scroll float64, cols int) string {
	row := []rune(strings.Repeat(" ", cols))
	tallest := make([]models.TickHeight, cols)
	for i := range tallest {
		tallest[i] = -1
	}

	for _, tick := range geom.Ticks {
		col := column(tick.X, scroll)
		if col < 0 || col >= cols || tick.Height <= tallest[col] {
			continue
		}
		tallest[col] = tick.Height
		row[col] = tickRune(tick.Height)
	}
	return string(row)
}

// labelRow centres each label on its column, dropping labels that would
// touch the previous one.
func labelRow(geom *models.Geometry, scroll float64, cols int) string {
	row := []rune(strings.Repeat(" ", cols))
	lastEnd := math.MinInt

	for _, label := range geom.Labels {
		text := []rune(label.Text)
		start := column(label.X, scroll) - len(text)/2
		if start <= lastEnd {
			continue
		}
		for i, r := range text {
			if c := start + i; c >= 0 && c < cols {
				row[c] = r
			}
		}
		lastEnd = start + len(text)
	}
	return string(row)
}

func seekerRow(x, scroll float64, cols int) string {
	row := []rune(strings.Repeat(" ", cols))
	if col := column(x, scroll); col >= 0 && col < cols {
		row[col] = '▲'
	}
	return string(row)
}
