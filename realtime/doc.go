// Package realtime provides a tick-based deterministic frame loop.
//
// A FrameLoop plays the role a browser's animation-frame queue plays for a
// layout engine: callers request a callback for the next frame and the loop
// runs every pending callback once per tick, in a deterministic order.
//
// # Example Usage
//
//	loop := realtime.NewFrameLoop(realtime.Config{
//		TickRate: 16667 * time.Microsecond, // 60 FPS
//	})
//	loop.Start(ctx)
//	defer loop.Stop()
//	loop.RequestFrame(func() { content.Render() })
//
// Hosts that own their own clock (tests, a bubbletea program) skip Start
// and call Tick directly.
//
// # Ordering Guarantees
//
// Callbacks are ordered deterministically using:
//  1. Priority (higher priority runs first)
//  2. Sequence number (FIFO for same priority)
//
// Callbacks requested while a tick is running are deferred to the next
// tick, so a callback that re-requests itself runs once per frame.
//
// # Concurrency
//
// RequestFrame, CancelFrame and the accessors are safe to call from any
// goroutine. Callbacks themselves run on the ticking goroutine, one at a
// time.
package realtime
