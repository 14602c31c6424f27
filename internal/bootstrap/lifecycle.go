package bootstrap

import (
	"context"
	"sync"
	"time"

	redisclient "github.com/NIRMITI18/health-care-agent/internal/adapters/redis"
	"github.com/NIRMITI18/health-care-agent/internal/api"
	"github.com/NIRMITI18/health-care-agent/pkg/errors"
	"github.com/NIRMITI18/health-care-agent/pkg/logger"
)

// Lifecycle manages graceful shutdown of components
type Lifecycle struct {
	shutdownTimeout time.Duration
	httpTimeout     time.Duration
}

// NewLifecycle creates a new lifecycle manager
func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		shutdownTimeout: 5 * time.Minute,
		// In-flight full plans chain three model calls
		httpTimeout: 4 * time.Minute,
	}
}

// SetDrainTimeout bounds how long in-flight requests may finish during shutdown.
func (l *Lifecycle) SetDrainTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	l.httpTimeout = d
	if l.shutdownTimeout < d+time.Minute {
		l.shutdownTimeout = d + time.Minute
	}
}

// Shutdown performs coordinated cleanup of all components in order:
// 1. No new requests accepted, in-flight plans drain
// 2. Errors flushed
// 3. Redis closed
// 4. Logs synced
func (l *Lifecycle) Shutdown(
	wg *sync.WaitGroup,
	httpServer *api.Server,
	errorTracker errors.Tracker,
	redisClient *redisclient.Client,
	log *logger.Logger,
) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), l.shutdownTimeout)
	defer shutdownCancel()

	// ========================================
	// Step 1: Stop HTTP Server
	// ========================================
	log.Info("[1/4] Stopping HTTP server...")
	if httpServer != nil {
		httpCtx, httpCancel := context.WithTimeout(shutdownCtx, l.httpTimeout)
		if err := httpServer.Shutdown(httpCtx); err != nil {
			log.Errorw("HTTP server shutdown failed", "error", err)
		}
		httpCancel()
	}
	l.waitForGoroutines(wg, 5*time.Second, log)

	// ========================================
	// Step 2: Flush Error Tracker
	// ========================================
	log.Info("[2/4] Flushing error tracker...")
	l.flushErrorTracker(shutdownCtx, errorTracker, log)

	// ========================================
	// Step 3: Close Redis
	// ========================================
	log.Info("[3/4] Closing Redis connection...")
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Errorw("Redis close failed", "error", errors.Wrap(err, "redis"))
		} else {
			log.Info("✓ Redis connection closed")
		}
	}

	// ========================================
	// Step 4: Sync Logs
	// ========================================
	log.Info("[4/4] Syncing logs...")
	log.Info("✅ Graceful shutdown complete")
	// stderr/stdout sync fails with EINVAL on most terminals; nothing to act on
	_ = logger.Sync()
}

// waitForGoroutines waits for all goroutines with a timeout
func (l *Lifecycle) waitForGoroutines(wg *sync.WaitGroup, timeout time.Duration, log *logger.Logger) {
	if wg == nil {
		return
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("✓ All goroutines finished")
	case <-time.After(timeout):
		log.Warnw("⚠ Some goroutines did not finish within timeout", "timeout", timeout)
	}
}

// flushErrorTracker flushes the error tracker (Sentry, etc.)
func (l *Lifecycle) flushErrorTracker(ctx context.Context, tracker errors.Tracker, log *logger.Logger) {
	if tracker == nil {
		return
	}

	flushCtx, flushCancel := context.WithTimeout(ctx, 3*time.Second)
	defer flushCancel()

	if err := tracker.Flush(flushCtx); err != nil {
		log.Errorw("Error tracker flush failed", "error", err)
	} else {
		log.Info("✓ Error tracker flushed")
	}
}
