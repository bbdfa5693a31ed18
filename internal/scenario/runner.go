package scenario

import (
	"fmt"
	"strconv"

	"github.com/comalice/presencex"
	"github.com/comalice/presencex/dom"
	"github.com/comalice/presencex/realtime"
	"github.com/comalice/presencex/testutil"
)

// TraceEntry records the coordinator after one step.
type TraceEntry struct {
	Step     int
	Action   string
	State    presencex.State
	Visible  bool
	Rendered bool
	Height   string
	Width    string
}

// ExpectationError reports the first failed expectation.
type ExpectationError struct {
	Step  int
	Field string
	Want  string
	Got   string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("step %d: %s = %s, want %s", e.Step, e.Field, e.Got, e.Want)
}

// Result is the outcome of one replay.
type Result struct {
	Name  string
	Trace []TraceEntry
	// Failure is the first failed expectation, or nil.
	Failure *ExpectationError
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return r.Failure == nil }

// FinalState returns the state after the last step.
func (r *Result) FinalState() presencex.State {
	if len(r.Trace) == 0 {
		return ""
	}
	return r.Trace[len(r.Trace)-1].State
}

type runner struct {
	sc       *Scenario
	platform *testutil.FakePlatform
	host     *testutil.Host
	frames   *realtime.FrameLoop

	presence *presencex.Presence
	root     *presencex.Collapsible
	content  *presencex.Content
	child    *dom.Node

	present  bool
	style    Style
	rect     *Rect
	node     *dom.Node
	detached bool

	rendering bool
	dirty     bool
}

// Run replays sc. opts configure the coordinator's tracker. Errors are
// returned for scenarios that cannot be replayed; failed expectations are
// reported in the Result.
func Run(sc *Scenario, opts ...presencex.Option) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	r := &runner{
		sc:       sc,
		platform: testutil.NewFakePlatform(),
		frames:   realtime.NewFrameLoop(realtime.Config{}),
		present:  sc.Initial,
		child:    (&dom.Node{Tag: "div"}).SetAttr("data-scenario", sc.Name),
	}
	r.host = testutil.NewHost(r.platform, sc.Name)
	r.host.OnMount = r.applyStyles

	if sc.Kind == KindCollapsible {
		r.root = presencex.NewCollapsible(presencex.CollapsibleOptions{DefaultOpen: sc.Initial})
		r.content = presencex.NewContent(r.root, r.platform, r.frames, presencex.ContentOptions{
			OnInvalidate: r.invalidate,
			Options:      opts,
		})
		defer r.content.Close()
	} else {
		r.presence = presencex.New(r.platform, sc.Initial, opts...)
		r.tracker().OnChange(func(_, _ presencex.State) { r.invalidate() })
		defer r.tracker().Close()
	}

	res := &Result{Name: sc.Name}
	if err := r.render(); err != nil {
		return nil, err
	}
	for i, step := range sc.Steps {
		n := i + 1
		if err := r.apply(n, step); err != nil {
			return nil, fmt.Errorf("%s: step %d (%s): %w", sc.Name, n, step.Action(), err)
		}
		if r.dirty && !r.detached {
			if err := r.render(); err != nil {
				return nil, err
			}
		}
		res.Trace = append(res.Trace, r.entry(n, step.Action()))
		if step.Expect != nil && res.Failure == nil {
			res.Failure = r.check(n, *step.Expect)
		}
	}
	return res, nil
}

func (r *runner) tracker() *presencex.Tracker {
	if r.content != nil {
		return r.content.Tracker()
	}
	return r.presence.Tracker()
}

func (r *runner) invalidate() {
	if !r.rendering {
		r.dirty = true
	}
}

func (r *runner) apply(n int, step Step) error {
	switch {
	case step.Present != nil:
		r.present = *step.Present
		if r.root != nil {
			r.root.SetOpen(r.present)
		}
		return r.render()
	case step.Style != nil:
		if step.Style.Animation != "" {
			r.style.Animation = step.Style.Animation
		}
		if step.Style.Display != "" {
			r.style.Display = step.Style.Display
		}
		r.withElement(r.applyStyles)
	case step.Rect != nil:
		rect := *step.Rect
		r.rect = &rect
		r.withElement(r.applyStyles)
	case step.AnimationStart != "":
		return r.fire(dom.AnimationStart, step.AnimationStart)
	case step.AnimationEnd != "":
		return r.fire(dom.AnimationEnd, step.AnimationEnd)
	case step.AnimationCancel != "":
		return r.fire(dom.AnimationCancel, step.AnimationCancel)
	case step.Detach:
		r.host.Unmount()
		r.detached = true
	case step.Attach:
		r.detached = false
		return r.render()
	case step.Frame > 0:
		for i := 0; i < step.Frame; i++ {
			r.frames.Tick()
		}
	}
	return nil
}

func (r *runner) fire(typ dom.AnimationEventType, name string) error {
	if !r.host.Mounted() {
		return fmt.Errorf("no element mounted")
	}
	r.platform.Fire(typ, r.host.Element(), name)
	return nil
}

func (r *runner) withElement(fn func(*testutil.Element)) {
	if r.host.Mounted() {
		fn(r.host.Element())
	}
}

func (r *runner) applyStyles(el *testutil.Element) {
	if r.style.Animation != "" {
		r.platform.SetAnimationName(el, r.style.Animation)
	}
	if r.style.Display != "" {
		r.platform.SetDisplay(el, r.style.Display)
	}
	if r.rect != nil {
		r.platform.SetRect(el, r.rect.Width, r.rect.Height)
	}
}

func (r *runner) render() error {
	r.rendering = true
	defer func() { r.rendering = false }()
	r.dirty = false

	var (
		node *dom.Node
		err  error
	)
	if r.content != nil {
		node, err = r.content.Render(r.child)
	} else {
		node, err = r.presence.Render(r.present, r.child)
	}
	if err != nil {
		return err
	}
	r.node = node
	if !r.detached {
		r.host.Commit(node)
	}
	return nil
}

func (r *runner) entry(n int, action string) TraceEntry {
	e := TraceEntry{
		Step:     n,
		Action:   action,
		State:    r.tracker().State(),
		Visible:  r.tracker().Visible(),
		Rendered: r.host.Mounted(),
	}
	if r.node != nil {
		e.Height = r.node.Style[presencex.HeightProperty]
		e.Width = r.node.Style[presencex.WidthProperty]
	}
	return e
}

func (r *runner) check(n int, want Expect) *ExpectationError {
	got := r.entry(n, "")
	fail := func(field, w, g string) *ExpectationError {
		return &ExpectationError{Step: n, Field: field, Want: w, Got: g}
	}
	if want.State != "" && want.State != string(got.State) {
		return fail("state", want.State, string(got.State))
	}
	if want.Visible != nil && *want.Visible != got.Visible {
		return fail("visible", strconv.FormatBool(*want.Visible), strconv.FormatBool(got.Visible))
	}
	if want.Rendered != nil && *want.Rendered != got.Rendered {
		return fail("rendered", strconv.FormatBool(*want.Rendered), strconv.FormatBool(got.Rendered))
	}
	if want.Hidden != nil {
		hidden := false
		if r.node != nil {
			_, hidden = r.node.Attr("hidden")
		}
		if *want.Hidden != hidden {
			return fail("hidden", strconv.FormatBool(*want.Hidden), strconv.FormatBool(hidden))
		}
	}
	if want.Height != "" && want.Height != got.Height {
		return fail("height", want.Height, got.Height)
	}
	if want.Width != "" && want.Width != got.Width {
		return fail("width", want.Width, got.Width)
	}
	return nil
}
