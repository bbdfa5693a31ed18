package accordion

import (
	"log/slog"
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/comalice/presencex/dom"
	"github.com/comalice/presencex/internal/extensibility"
)

// Stylesheet animation names, keyed by data-state.
const (
	ExpandAnimation   = "expand"
	CollapseAnimation = "collapse"
)

const settleThreshold = 0.01

// Panel is a terminal element holding a section body. Its height is
// measured in lines.
type Panel struct {
	id    string
	lines int
	width int

	open   bool
	hidden bool
	inline map[string]string

	applied string // computed animation-name last acted on
	running bool
	spring  harmonica.Spring
	height  float64
	vel     float64
	target  float64

	listeners map[dom.AnimationEventType]map[int]func(dom.AnimationEvent)
	layouts   int
}

// ElementID implements dom.Element.
func (p *Panel) ElementID() string { return p.id }

// Height returns the number of body lines currently shown.
func (p *Panel) Height() int {
	if p.hidden {
		return 0
	}
	if !p.running {
		return int(p.rest())
	}
	return int(math.Round(p.height))
}

// Animating reports whether a spring animation is in flight.
func (p *Panel) Animating() bool { return p.running }

// rest is the height once no animation is in flight. A finished collapse
// holds its final frame.
func (p *Panel) rest() float64 {
	if p.hidden || p.applied == CollapseAnimation {
		return 0
	}
	return float64(p.lines)
}

// Terminal implements dom.Platform for panels drawn to a terminal. An open
// panel's stylesheet animation is "expand", a closed one's "collapse".
// Animations are harmonica springs stepped by Step; their lifecycle events
// are queued and delivered by Drain.
type Terminal struct {
	fps          int
	frequency    float64
	damping      float64
	events       *extensibility.ChannelEventSource
	logger       *slog.Logger
	nextListener int
}

var _ dom.Platform = (*Terminal)(nil)

// TerminalConfig configures a Terminal.
type TerminalConfig struct {
	FPS       int     // steps per second (default: 60)
	Frequency float64 // spring angular frequency (default: 8)
	Damping   float64 // spring damping ratio (default: 1, critically damped)
	QueueSize int     // pending animation event capacity (default: 64)
	Logger    *slog.Logger
}

// NewTerminal creates a Terminal.
func NewTerminal(cfg TerminalConfig) *Terminal {
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if cfg.Frequency == 0 {
		cfg.Frequency = 8
	}
	if cfg.Damping == 0 {
		cfg.Damping = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Terminal{
		fps:       cfg.FPS,
		frequency: cfg.Frequency,
		damping:   cfg.Damping,
		events:    extensibility.NewChannelEventSource(cfg.QueueSize),
		logger:    cfg.Logger,
	}
}

// NewPanel creates a panel of the given natural size.
func (t *Terminal) NewPanel(id string, lines, width int) *Panel {
	return &Panel{
		id:        id,
		lines:     lines,
		width:     width,
		inline:    make(map[string]string),
		spring:    harmonica.NewSpring(harmonica.FPS(t.fps), t.frequency, t.damping),
		listeners: make(map[dom.AnimationEventType]map[int]func(dom.AnimationEvent)),
	}
}

// Apply copies the node's data-state and hidden attributes onto the
// panel, as a stylesheet would on the next style recalculation.
func (t *Terminal) Apply(p *Panel, node *dom.Node) {
	state, _ := node.Attr("data-state")
	p.open = state == "open"
	_, p.hidden = node.Attr("hidden")
}

// SetOpen sets the panel's data-state ahead of rendering. An opening panel
// is no longer hidden, so it measures at full size.
func (t *Terminal) SetOpen(p *Panel, open bool) {
	p.open = open
	if open {
		p.hidden = false
	}
}

// ComputedStyle implements dom.Platform.
func (t *Terminal) ComputedStyle(el dom.Element) dom.ComputedStyle {
	p := el.(*Panel)
	style := dom.ComputedStyle{AnimationName: CollapseAnimation, Display: "block"}
	if p.open {
		style.AnimationName = ExpandAnimation
	}
	if v, ok := p.inline[dom.PropAnimationName]; ok {
		style.AnimationName = v
	}
	if p.hidden {
		style.Display = dom.DisplayNone
	}
	return style
}

// BoundingRect implements dom.Platform. A panel with animations pinned off
// lays out at its natural size.
func (t *Terminal) BoundingRect(el dom.Element) dom.Rect {
	p := el.(*Panel)
	if p.hidden {
		return dom.Rect{}
	}
	if t.ComputedStyle(p).AnimationName == dom.AnimationNone {
		return dom.Rect{Width: float64(p.width), Height: float64(p.lines)}
	}
	return dom.Rect{Width: float64(p.width), Height: float64(p.Height())}
}

// AddAnimationListener implements dom.Platform.
func (t *Terminal) AddAnimationListener(el dom.Element, typ dom.AnimationEventType, fn func(dom.AnimationEvent)) func() {
	p := el.(*Panel)
	t.nextListener++
	id := t.nextListener
	if p.listeners[typ] == nil {
		p.listeners[typ] = make(map[int]func(dom.AnimationEvent))
	}
	p.listeners[typ][id] = fn
	return func() { delete(p.listeners[typ], id) }
}

// ForceLayout implements dom.Platform.
func (t *Terminal) ForceLayout(el dom.Element) {
	el.(*Panel).layouts++
}

// InlineStyle implements dom.Platform.
func (t *Terminal) InlineStyle(el dom.Element, prop string) string {
	return el.(*Panel).inline[prop]
}

// SetInlineStyle implements dom.Platform.
func (t *Terminal) SetInlineStyle(el dom.Element, prop, value string) {
	p := el.(*Panel)
	if value == "" {
		delete(p.inline, prop)
		return
	}
	p.inline[prop] = value
}

// Step advances every panel's animation by one frame. A changed computed
// animation-name cancels the running animation and starts the new one; a
// spring that reaches its target ends. Lifecycle events are queued for
// Drain.
func (t *Terminal) Step(panels ...*Panel) {
	for _, p := range panels {
		if p != nil {
			t.step(p)
		}
	}
}

func (t *Terminal) step(p *Panel) {
	name := t.ComputedStyle(p).AnimationName
	if p.hidden {
		name = dom.AnimationNone
	}
	if name != p.applied {
		if p.running {
			t.push(dom.AnimationCancel, p, p.applied)
		}
		fresh := p.applied == "" || p.applied == dom.AnimationNone
		p.applied, p.running = name, false
		if name == "" || name == dom.AnimationNone {
			p.height, p.vel = p.rest(), 0
			return
		}
		p.target = 0
		if name == ExpandAnimation {
			p.target = float64(p.lines)
		}
		if fresh {
			p.height, p.vel = float64(p.lines)-p.target, 0
		}
		p.running = true
		t.push(dom.AnimationStart, p, name)
	}
	if !p.running {
		return
	}
	p.height, p.vel = p.spring.Update(p.height, p.vel, p.target)
	if math.Abs(p.height-p.target) < settleThreshold && math.Abs(p.vel) < settleThreshold {
		p.height, p.vel, p.running = p.target, 0, false
		t.push(dom.AnimationEnd, p, name)
	}
}

// Drain delivers queued animation events to the target panel's listeners
// in the order they were produced, returning how many were delivered.
func (t *Terminal) Drain() int {
	return t.events.Drain(func(ev dom.AnimationEvent) {
		p := ev.Target.(*Panel)
		for _, fn := range p.listeners[ev.Type] {
			fn(ev)
		}
	})
}

// Pending returns the number of undelivered animation events.
func (t *Terminal) Pending() int {
	return t.events.Len()
}

func (t *Terminal) push(typ dom.AnimationEventType, p *Panel, name string) {
	ev := dom.AnimationEvent{Type: typ, Target: p, AnimationName: name}
	if err := t.events.Push(ev); err != nil {
		t.logger.Warn("Animation event dropped",
			"panel", p.id,
			"type", string(typ),
			"animation", name,
			"error", err,
		)
	}
}
