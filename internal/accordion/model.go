// Package accordion is a terminal accordion built on presencex: every
// section is a Collapsible whose Content animates its height with a
// spring, and whose body stays on screen until the collapse finishes.
package accordion

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/comalice/presencex"
	"github.com/comalice/presencex/dom"
	"github.com/comalice/presencex/realtime"
)

// frameMsg advances animations by one frame.
type frameMsg time.Time

// Options configures a Model.
type Options struct {
	Sections  []SectionConfig
	FrameRate int // frames per second (default: 60)
	WrapWidth int // markdown wrap width (default: 72)
	Logger    *slog.Logger
}

type section struct {
	title   string
	body    []string
	width   int
	root    *presencex.Collapsible
	content *presencex.Content

	node  *dom.Node
	panel *Panel
	dirty bool
	err   error
}

// Model is the root Bubble Tea model.
type Model struct {
	keys     KeyMap
	help     help.Model
	term     *Terminal
	frames   *realtime.FrameLoop
	interval time.Duration
	logger   *slog.Logger

	sections []*section
	selected int
	width    int
	height   int
}

// New creates the root model and renders every section once.
func New(opts Options) Model {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 60
	}
	if opts.WrapWidth <= 0 {
		opts.WrapWidth = 72
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	interval := time.Second / time.Duration(opts.FrameRate)
	m := Model{
		keys:     DefaultKeyMap(),
		help:     help.New(),
		term:     NewTerminal(TerminalConfig{FPS: opts.FrameRate, Logger: opts.Logger}),
		frames:   realtime.NewFrameLoop(realtime.Config{TickRate: interval, Logger: opts.Logger}),
		interval: interval,
		logger:   opts.Logger,
	}
	for i, cfg := range opts.Sections {
		m.sections = append(m.sections, m.newSection(i, cfg, opts.WrapWidth))
	}
	for _, sec := range m.sections {
		m.render(sec)
	}
	return m
}

func (m Model) newSection(i int, cfg SectionConfig, wrap int) *section {
	sec := &section{title: cfg.Title}
	body, err := cfg.Render(wrap)
	if err != nil {
		m.logger.Warn("Section body shown as text", "section", cfg.Title, "error", err)
		body = cfg.Lines()
	}
	sec.body = body
	for _, line := range sec.body {
		sec.width = max(sec.width, lipgloss.Width(line))
	}
	sec.root = presencex.NewCollapsible(presencex.CollapsibleOptions{
		DefaultOpen: cfg.Open,
		Disabled:    cfg.Disabled,
		ContentID:   fmt.Sprintf("section-%d", i),
		OnOpenChange: func(open bool) {
			m.logger.Debug("Section toggled", "section", cfg.Title, "open", open)
		},
	})
	sec.content = presencex.NewContent(sec.root, m.term, m.frames, presencex.ContentOptions{
		OnInvalidate: func() { sec.dirty = true },
		Options: []presencex.Option{
			presencex.WithID(sec.root.ContentID()),
			presencex.WithLogger(m.logger),
		},
	})
	return sec
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		m.Frame()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.sections)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Toggle):
		if sec := m.current(); sec != nil {
			m.click(sec)
		}
	case key.Matches(msg, m.keys.ExpandAll):
		m.setAll(true)
	case key.Matches(msg, m.keys.CollapseAll):
		m.setAll(false)
	case key.Matches(msg, m.keys.Disable):
		if sec := m.current(); sec != nil {
			sec.root.SetDisabled(!sec.root.Disabled())
			m.render(sec)
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) current() *section {
	if m.selected < 0 || m.selected >= len(m.sections) {
		return nil
	}
	return m.sections[m.selected]
}

// click delivers a click to the section's trigger, which toggles it unless
// disabled.
func (m Model) click(sec *section) {
	trigger := sec.root.Trigger(nil)
	trigger.OnClick(&dom.Event{Type: "click"})
	m.render(sec)
}

func (m Model) setAll(open bool) {
	for _, sec := range m.sections {
		if sec.root.Disabled() || sec.root.Open() == open {
			continue
		}
		sec.root.SetOpen(open)
		m.render(sec)
	}
}

// Frame runs one animation frame: queued frame callbacks, a spring step
// for every mounted panel, then delivery of the animation events it
// produced. Sections invalidated along the way render again.
func (m Model) Frame() {
	m.frames.Tick()
	panels := make([]*Panel, 0, len(m.sections))
	for _, sec := range m.sections {
		panels = append(panels, sec.panel)
	}
	m.term.Step(panels...)
	m.term.Drain()
	for _, sec := range m.sections {
		if sec.dirty {
			m.render(sec)
		}
	}
}

// render renders the section's content and commits it. The panel takes
// the new data-state before rendering so the tracker reads the animation
// the state change selects.
func (m Model) render(sec *section) {
	sec.dirty = false
	if sec.panel != nil {
		m.term.SetOpen(sec.panel, sec.root.Open())
	}
	children := make([]*dom.Node, len(sec.body))
	for i, line := range sec.body {
		children[i] = &dom.Node{Tag: "p", Text: line}
	}
	node, err := sec.content.Render(children...)
	if err != nil {
		sec.err = err
		m.logger.Error("Section render failed", "section", sec.title, "error", err)
		return
	}
	m.commit(sec, node)
}

// commit mounts, updates or removes the section's panel for node.
func (m Model) commit(sec *section, node *dom.Node) {
	prev := sec.node
	sec.node = node
	switch {
	case node == nil && prev != nil:
		if prev.Ref != nil {
			prev.Ref(nil)
		}
		sec.panel = nil
	case node != nil && prev == nil:
		sec.panel = m.term.NewPanel(sec.root.ContentID(), len(sec.body), sec.width)
		m.term.Apply(sec.panel, node)
		if node.Ref != nil {
			node.Ref(sec.panel)
		}
		// styles apply on insertion
		m.term.Step(sec.panel)
	case node != nil:
		m.term.Apply(sec.panel, node)
	}
}

// Close releases every section's tracker.
func (m Model) Close() {
	for _, sec := range m.sections {
		if err := sec.content.Close(); err != nil {
			m.logger.Warn("Section close failed", "section", sec.title, "error", err)
		}
	}
}

// Animating reports whether any panel is mid-animation or has undelivered
// animation events.
func (m Model) Animating() bool {
	for _, sec := range m.sections {
		if sec.panel != nil && sec.panel.Animating() {
			return true
		}
	}
	return m.term.Pending() > 0
}

var (
	colorAccent = lipgloss.Color("99")
	colorDim    = lipgloss.Color("243")
	colorWarn   = lipgloss.Color("214")

	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	disabledStyle = lipgloss.NewStyle().Foreground(colorDim)
	bodyStyle     = lipgloss.NewStyle().PaddingLeft(4)
	statusStyle   = lipgloss.NewStyle().Foreground(colorDim)
	errorStyle    = lipgloss.NewStyle().Foreground(colorWarn)
)

// View renders the accordion.
func (m Model) View() string {
	var b strings.Builder
	for i, sec := range m.sections {
		b.WriteString(m.header(i, sec))
		b.WriteByte('\n')
		if body := m.body(sec); body != "" {
			b.WriteString(bodyStyle.Render(body))
			b.WriteByte('\n')
		}
		if sec.err != nil {
			b.WriteString(errorStyle.Render("  " + sec.err.Error()))
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')
	if sec := m.current(); sec != nil {
		b.WriteString(statusStyle.Render(m.status(sec)))
		b.WriteByte('\n')
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) header(i int, sec *section) string {
	marker := "▸"
	if sec.root.Open() {
		marker = "▾"
	}
	line := marker + " " + sec.title
	switch {
	case sec.root.Disabled():
		line = disabledStyle.Render(line)
	case i == m.selected:
		line = selectedStyle.Render(line)
	default:
		line = titleStyle.Render(line)
	}
	if i == m.selected {
		return "> " + line
	}
	return "  " + line
}

// body returns the visible slice of the section's rendered children.
func (m Model) body(sec *section) string {
	if sec.node == nil || sec.panel == nil {
		return ""
	}
	n := max(0, min(sec.panel.Height(), len(sec.node.Children)))
	lines := make([]string, 0, n)
	for _, child := range sec.node.Children[:n] {
		lines = append(lines, child.Text)
	}
	return strings.Join(lines, "\n")
}

func (m Model) status(sec *section) string {
	dims := sec.content.Dimensions()
	height := 0
	if sec.panel != nil {
		height = sec.panel.Height()
	}
	return fmt.Sprintf("%s  %s  %d/%.0f lines",
		sec.root.ContentID(), sec.content.Tracker().State(), height, dims.Height)
}
