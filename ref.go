package presencex

import "github.com/comalice/presencex/dom"

// ComposeRefs returns a Ref that calls each non-nil ref, in order, with the
// same element (or nil on detach).
func ComposeRefs(refs ...dom.Ref) dom.Ref {
	live := make([]dom.Ref, 0, len(refs))
	for _, r := range refs {
		if r != nil {
			live = append(live, r)
		}
	}
	switch len(live) {
	case 0:
		return func(dom.Element) {}
	case 1:
		return live[0]
	}
	return func(el dom.Element) {
		for _, r := range live {
			r(el)
		}
	}
}
