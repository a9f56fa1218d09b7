// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about decomposition runs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not by
// libraries) and allows plugging in any backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnGraphBuilt(ctx, vertices, edges)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the decomposition pipeline.
type PipelineHooks interface {
	// OnGraphBuilt fires once the scaffold graph is constructed.
	OnGraphBuilt(ctx context.Context, vertices, edges int)

	// OnComponentStart fires before a connected component is decomposed.
	OnComponentStart(ctx context.Context, index, vertices int)

	// OnBlockDone fires after a block's separation pairs are extracted.
	// valid reports whether the block passed the SPQR validity filter.
	OnBlockDone(ctx context.Context, blockID, pairs int, valid bool)

	// OnRunComplete fires at the end of a run.
	OnRunComplete(ctx context.Context, pairs int, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGraphBuilt(context.Context, int, int)                   {}
func (NoopPipelineHooks) OnComponentStart(context.Context, int, int)               {}
func (NoopPipelineHooks) OnBlockDone(context.Context, int, int, bool)              {}
func (NoopPipelineHooks) OnRunComplete(context.Context, int, time.Duration, error) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores the hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
