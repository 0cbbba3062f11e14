package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// EnrichWorker runs collection enrichment in the background so the API can
// accept an enrich request and return immediately. A single worker services
// requests one at a time; the Scryfall client's limiter bounds the request
// rate either way.
type EnrichWorker struct {
	run      func(ctx context.Context) (EnrichResult, error)
	requests chan struct{}

	mu         sync.RWMutex
	running    bool
	lastRun    time.Time
	lastResult *EnrichResult
	lastErr    string
}

// EnrichStatus reports the worker's state for the status endpoint
type EnrichStatus struct {
	Running    bool          `json:"running"`
	Queued     bool          `json:"queued"`
	LastRun    time.Time     `json:"last_run,omitempty"`
	LastResult *EnrichResult `json:"last_result,omitempty"`
	LastError  string        `json:"last_error,omitempty"`
}

// NewEnrichWorker creates a worker around the given enrichment run function
func NewEnrichWorker(run func(ctx context.Context) (EnrichResult, error)) *EnrichWorker {
	return &EnrichWorker{
		run:      run,
		requests: make(chan struct{}, 1),
	}
}

// Queue requests a background enrichment pass. Returns false when a pass is
// already queued.
func (w *EnrichWorker) Queue() bool {
	select {
	case w.requests <- struct{}{}:
		return true
	default:
		return false
	}
}

// Status returns a snapshot of the worker's state
func (w *EnrichWorker) Status() EnrichStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return EnrichStatus{
		Running:    w.running,
		Queued:     len(w.requests) > 0,
		LastRun:    w.lastRun,
		LastResult: w.lastResult,
		LastError:  w.lastErr,
	}
}

// Start services enrichment requests until the context is canceled
func (w *EnrichWorker) Start(ctx context.Context) {
	log.Println("Enrichment worker started")
	for {
		select {
		case <-ctx.Done():
			log.Println("Enrichment worker stopping...")
			return
		case <-w.requests:
			w.runOnce(ctx)
		}
	}
}

func (w *EnrichWorker) runOnce(ctx context.Context) {
	w.mu.Lock()
	w.running = true
	w.mu.Unlock()

	result, err := w.run(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = false
	w.lastRun = time.Now()
	w.lastResult = &result
	if err != nil {
		w.lastErr = err.Error()
		log.Printf("Enrichment worker: run ended early: %v", err)
	} else {
		w.lastErr = ""
		log.Printf("Enrichment worker: enriched %d cards (%d cached, %d fetched, %d failed)",
			result.Enriched, result.FromCache, result.Fetched, result.Failed)
	}
}
