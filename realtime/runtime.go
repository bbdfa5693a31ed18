package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrQueueFull is returned when a frame already holds MaxCallbacksPerTick
// pending callbacks.
var ErrQueueFull = errors.New("frame queue full")

// FrameLoop batches frame callbacks and runs them at fixed tick boundaries.
type FrameLoop struct {
	tickRate time.Duration
	ticker   *time.Ticker
	tickNum  uint64
	logger   *slog.Logger

	pending  []frameRequest
	maxBatch int
	mu       sync.Mutex
	nextID   FrameID

	// serializes Tick so callbacks never overlap
	tickMu sync.Mutex

	tickCtx    context.Context
	tickCancel context.CancelFunc
	stopped    chan struct{}
}

// Config configures the frame loop.
type Config struct {
	TickRate            time.Duration // Fixed tick rate (e.g., 16.67ms for 60 FPS)
	MaxCallbacksPerTick int           // Pending callback capacity (default: 1000)
	Logger              *slog.Logger  // Receives recovered callback panics (default: slog.Default)
}

// NewFrameLoop creates a frame loop. It does not tick until Start or Tick
// is called.
func NewFrameLoop(cfg Config) *FrameLoop {
	if cfg.MaxCallbacksPerTick == 0 {
		cfg.MaxCallbacksPerTick = 1000
	}
	if cfg.TickRate == 0 {
		cfg.TickRate = 16667 * time.Microsecond // Default 60 FPS
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &FrameLoop{
		tickRate: cfg.TickRate,
		logger:   cfg.Logger,
		maxBatch: cfg.MaxCallbacksPerTick,
		pending:  make([]frameRequest, 0, cfg.MaxCallbacksPerTick),
	}
}

// Start begins ticking on a background goroutine until ctx is done or
// Stop is called.
func (l *FrameLoop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped != nil {
		return errors.New("frame loop already started")
	}

	l.tickCtx, l.tickCancel = context.WithCancel(ctx)
	l.ticker = time.NewTicker(l.tickRate)
	l.stopped = make(chan struct{})

	go l.tickLoop(l.tickCtx, l.ticker.C, l.stopped)
	return nil
}

// Stop halts the background ticker and waits for the current tick to end.
// Pending callbacks stay queued.
func (l *FrameLoop) Stop() {
	l.mu.Lock()
	cancel, ticker, stopped := l.tickCancel, l.ticker, l.stopped
	l.tickCancel, l.ticker, l.stopped = nil, nil, nil
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	ticker.Stop()
	<-stopped
}

func (l *FrameLoop) tickLoop(ctx context.Context, ticks <-chan time.Time, stopped chan struct{}) {
	defer close(stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			l.Tick()
		}
	}
}

// RequestFrame queues fn for the next tick and returns its id.
func (l *FrameLoop) RequestFrame(fn func()) (FrameID, error) {
	return l.RequestFrameWithPriority(fn, 0)
}

// RequestFrameWithPriority queues fn for the next tick ahead of all
// callbacks with a lower priority.
func (l *FrameLoop) RequestFrameWithPriority(fn func(), priority int) (FrameID, error) {
	if fn == nil {
		return 0, errors.New("frame callback is nil")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.pending) >= l.maxBatch {
		return 0, ErrQueueFull
	}
	l.nextID++
	l.pending = append(l.pending, frameRequest{
		ID:       l.nextID,
		Callback: fn,
		Priority: priority,
	})
	return l.nextID, nil
}

// CancelFrame removes a pending callback. It reports whether the callback
// was still pending.
func (l *FrameLoop) CancelFrame(id FrameID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, req := range l.pending {
		if req.ID == id {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of callbacks waiting for the next tick.
func (l *FrameLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// TickNumber returns the number of completed ticks.
func (l *FrameLoop) TickNumber() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tickNum
}

// Interval returns the configured tick rate.
func (l *FrameLoop) Interval() time.Duration {
	return l.tickRate
}
