package realtime

import (
	"sort"
)

// FrameID identifies a requested frame callback. Zero is never issued.
type FrameID uint64

// frameRequest adds sequencing metadata for deterministic ordering
type frameRequest struct {
	ID       FrameID
	Callback func()
	Priority int
}

// sortRequests orders callbacks deterministically.
// IDs are issued in request order, so they double as sequence numbers.
func sortRequests(reqs []frameRequest) {
	sort.SliceStable(reqs, func(i, j int) bool {
		if reqs[i].Priority != reqs[j].Priority {
			return reqs[i].Priority > reqs[j].Priority
		}
		return reqs[i].ID < reqs[j].ID
	})
}
