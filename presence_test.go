package presencex_test

import (
	"errors"
	"testing"

	. "github.com/comalice/presencex"
	"github.com/comalice/presencex/dom"
	"github.com/comalice/presencex/testutil"
)

func TestPresenceRenderNode(t *testing.T) {
	p := testutil.NewFakePlatform()
	host := testutil.NewHost(p, "dialog")
	pr := New(p, true)

	var childSaw []dom.Element
	child := &dom.Node{Tag: "div", Ref: func(el dom.Element) { childSaw = append(childSaw, el) }}

	node, err := pr.Render(true, child)
	if err != nil {
		t.Fatal(err)
	}
	if node == nil || node == child {
		t.Fatal("expected a clone of the child")
	}
	el := host.Commit(node)

	if pr.Tracker().Element() != dom.Element(el) {
		t.Error("tracker not attached to the rendered element")
	}
	if len(childSaw) != 1 || childSaw[0] != dom.Element(el) {
		t.Errorf("child ref calls = %v", childSaw)
	}

	// exit animation keeps the node rendered
	p.SetAnimationName(el, "fade-out")
	node, err = pr.Render(false, child)
	if err != nil || node == nil {
		t.Fatalf("suspended render = %v, %v", node, err)
	}
	host.Commit(node)

	p.Fire(dom.AnimationEnd, el, "fade-out")
	node, err = pr.Render(false, child)
	if err != nil {
		t.Fatal(err)
	}
	if node != nil {
		t.Fatal("node rendered after exit finished")
	}
	host.Commit(node)

	if len(childSaw) != 2 || childSaw[1] != nil {
		t.Errorf("child ref not detached: %v", childSaw)
	}
	if pr.Tracker().State() != StateUnmounted {
		t.Errorf("state = %s", pr.Tracker().State())
	}
}

func TestPresenceRenderNodeWithoutAnimation(t *testing.T) {
	p := testutil.NewFakePlatform()
	pr := New(p, true)
	host := testutil.NewHost(p, "")
	child := &dom.Node{Tag: "div"}

	node, _ := pr.Render(true, child)
	host.Commit(node)

	node, err := pr.Render(false, child)
	if err != nil || node != nil {
		t.Fatalf("Render(false) = %v, %v; want nothing", node, err)
	}
}

func TestPresenceRenderFuncForceMount(t *testing.T) {
	p := testutil.NewFakePlatform()
	pr := New(p, false)
	host := testutil.NewHost(p, "")

	var seen []bool
	render := func(props Props) *dom.Node {
		seen = append(seen, props.Present)
		n := &dom.Node{Tag: "div"}
		if !props.Present {
			n.SetAttr("data-state", "closed")
		}
		return n
	}

	node, err := pr.Render(false, render)
	if err != nil || node == nil {
		t.Fatalf("force-mounted render = %v, %v", node, err)
	}
	if v, _ := node.Attr("data-state"); v != "closed" {
		t.Errorf("data-state = %q", v)
	}
	el := host.Commit(node)
	if pr.Tracker().Element() != dom.Element(el) {
		t.Error("tracker not attached in force-mount mode")
	}

	if _, err := pr.Render(true, RenderFunc(render)); err != nil {
		t.Fatal(err)
	}

	p.SetAnimationName(el, "collapse")
	if _, err := pr.Render(false, RenderFunc(render)); err != nil {
		t.Fatal(err)
	}

	want := []bool{false, true, true}
	if len(seen) != len(want) {
		t.Fatalf("render calls = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("call %d present=%v, want %v", i, seen[i], want[i])
		}
	}
}

func TestPresenceRenderDoesNotMutateChild(t *testing.T) {
	pr := New(testutil.NewFakePlatform(), true)
	child := (&dom.Node{Tag: "div"}).SetAttr("id", "x")

	node, _ := pr.Render(true, child)
	node.SetAttr("id", "y")
	if child.Ref != nil {
		t.Error("child ref overwritten")
	}
	if v, _ := child.Attr("id"); v != "x" {
		t.Errorf("child attrs shared with clone: %q", v)
	}
}

func TestPresenceRenderMisuse(t *testing.T) {
	var nilNode *dom.Node
	var nilFunc RenderFunc
	tests := []struct {
		name     string
		children []any
	}{
		{"no children", nil},
		{"two nodes", []any{&dom.Node{}, &dom.Node{}}},
		{"node and func", []any{&dom.Node{}, func(Props) *dom.Node { return nil }}},
		{"nil node", []any{nilNode}},
		{"nil render func", []any{nilFunc}},
		{"string", []any{"hello"}},
		{"untyped nil", []any{nil}},
		{"render func returns nil", []any{func(Props) *dom.Node { return nil }}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := New(testutil.NewFakePlatform(), true)
			node, err := pr.Render(true, tt.children...)
			if node != nil {
				t.Error("expected no node")
			}
			if !errors.Is(err, ErrInvalidChild) {
				t.Fatalf("error = %v, want ErrInvalidChild", err)
			}
			var ce *ChildError
			if !errors.As(err, &ce) || ce.Reason == "" {
				t.Errorf("expected descriptive *ChildError, got %#v", err)
			}
		})
	}
}

func TestPresenceMisuseLeavesStateAlone(t *testing.T) {
	pr := New(testutil.NewFakePlatform(), true)
	if _, err := pr.Render(false, 42); err == nil {
		t.Fatal("expected error")
	}
	if pr.Tracker().State() != StateMounted {
		t.Errorf("state changed on misuse: %s", pr.Tracker().State())
	}
}
