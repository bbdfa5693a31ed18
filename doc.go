// Package presencex coordinates presence and exit animations for rendered
// elements.
//
// A Tracker owns the mounted / unmount-suspended / unmounted lifecycle of
// one element. When the caller's present flag goes false it compares the
// element's animation-name before and after the change; if an exit
// animation began, removal is deferred until the platform reports that
// animation ending. Presence wraps a Tracker as a conditional-render
// boundary, and Collapsible / Content build a disclosure widget on top of
// it that captures the content's natural size just before each transition.
//
// Everything runs synchronously on the host's UI loop. The host applies a
// new present value to the element's styles first, then calls Render (or
// Tracker.SetPresent), and delivers animation events through its
// dom.Platform as they happen.
//
// # Example Usage
//
//	p := presencex.New(platform, true)
//	node, err := p.Render(open, panel)
//	if err != nil {
//		return err
//	}
//	host.Mount(node) // calls node.Ref with the element
package presencex
