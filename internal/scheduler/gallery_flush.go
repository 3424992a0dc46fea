package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/codex/internal/logger"
)

// Flusher is the part of the gallery store the flusher drives.
type Flusher interface {
	Flush(ctx context.Context) (bool, error)
}

// GalleryFlusher retries slot writes that failed during Add, so entries kept
// in memory reach the slot once the backend recovers.
type GalleryFlusher struct {
	store    Flusher
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{} // closed when the loop exits; nil if never started
}

// NewGalleryFlusher creates a new flusher
func NewGalleryFlusher(store Flusher, log logger.Logger, interval time.Duration) *GalleryFlusher {
	return &GalleryFlusher{
		store:    store,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the flusher in the background until Stop or ctx cancellation.
// A non-positive interval disables the periodic retry.
func (gf *GalleryFlusher) Start(ctx context.Context) {
	if gf.interval <= 0 {
		gf.logger.Info("gallery flusher disabled")
		return
	}

	gf.done = make(chan struct{})
	ticker := time.NewTicker(gf.interval)
	go func() {
		defer close(gf.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				gf.FlushOnce(ctx)
			case <-gf.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// FlushOnce performs a single flush attempt and logs its outcome.
func (gf *GalleryFlusher) FlushOnce(ctx context.Context) {
	attempted, err := gf.store.Flush(ctx)
	switch {
	case err != nil:
		gf.logger.Warn("gallery flush failed, will retry",
			logger.Duration("retry_in", gf.interval),
			logger.Error(err))
	case attempted:
		gf.logger.Info("pending gallery entries persisted")
	}
}

// Stop waits for the background loop to exit, then makes a last flush
// attempt bounded by ctx. Safe to call more than once.
func (gf *GalleryFlusher) Stop(ctx context.Context) {
	gf.stopOnce.Do(func() {
		close(gf.stopCh)
		if gf.done != nil {
			<-gf.done
		}
		gf.FlushOnce(ctx)
	})
}
