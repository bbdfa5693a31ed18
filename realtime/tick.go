package realtime

// Tick runs one frame: every callback pending when the tick begins runs
// once, in priority then request order. It returns the number of callbacks
// run.
func (l *FrameLoop) Tick() int {
	l.tickMu.Lock()
	defer l.tickMu.Unlock()

	// Phase 1: Collect callbacks atomically
	reqs := l.collectRequests()

	// Phase 2: Sort for deterministic order
	sortRequests(reqs)

	// Phase 3: Run callbacks
	for _, req := range reqs {
		l.runCallback(req)
	}

	l.mu.Lock()
	l.tickNum++
	l.mu.Unlock()
	return len(reqs)
}

// collectRequests atomically retrieves and clears the pending batch
func (l *FrameLoop) collectRequests() []frameRequest {
	l.mu.Lock()
	defer l.mu.Unlock()

	reqs := l.pending
	l.pending = make([]frameRequest, 0, cap(reqs))
	return reqs
}

func (l *FrameLoop) runCallback(req frameRequest) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Frame callback panicked", "frame", req.ID, "panic", r)
		}
	}()
	req.Callback()
}
