// Package observability provides hooks for instrumenting layout runs.
//
// The layout engine stays free of hard dependencies on any metrics or
// tracing backend. Consumers register hooks at startup and receive events
// for every layout computation; the default implementation is a no-op.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myHooks{})
//	    // ... run application
//	}
//
// The engine emits events around each run:
//
//	observability.Layout().OnLayoutStart(mode, nodeCount)
//	// ... compute ...
//	observability.Layout().OnLayoutComplete(mode, nodeCount, duration)
package observability

import (
	"sync"
	"time"
)

// LayoutHooks receives events from the layout engine. The mode string is
// one of "incremental", "force", or "focus".
type LayoutHooks interface {
	OnLayoutStart(mode string, nodeCount int)
	OnLayoutComplete(mode string, nodeCount int, duration time.Duration)
}

// NoopLayoutHooks is a LayoutHooks implementation that does nothing.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(string, int)                   {}
func (NoopLayoutHooks) OnLayoutComplete(string, int, time.Duration) {}

var (
	mu          sync.RWMutex
	layoutHooks LayoutHooks = NoopLayoutHooks{}
)

// SetLayoutHooks registers the hooks invoked by the layout engine.
// Passing nil restores the no-op default. Intended to be called once at
// startup, before layouts run.
func SetLayoutHooks(h LayoutHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		layoutHooks = NoopLayoutHooks{}
		return
	}
	layoutHooks = h
}

// Layout returns the currently registered layout hooks.
func Layout() LayoutHooks {
	mu.RLock()
	defer mu.RUnlock()
	return layoutHooks
}
