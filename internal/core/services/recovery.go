package services

import (
	"context"
	"sync"
	"time"

	"github.com/halcyon-labs/docq-cli/internal/core/ports/driving"
	"github.com/halcyon-labs/docq-cli/internal/logger"
)

// RecoveryInterval is how often the background sweep runs in long-lived
// modes (watch). One-shot commands run a single sweep at startup instead.
const RecoveryInterval = 5 * time.Minute

// Recovery periodically fails documents abandoned mid-processing, so a
// crash between "processing" and a terminal status self-heals without
// manual intervention.
type Recovery struct {
	ingestor driving.Ingestor

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewRecovery creates a recovery sweeper.
func NewRecovery(ingestor driving.Ingestor) *Recovery {
	return &Recovery{ingestor: ingestor}
}

// Sweep runs one recovery pass.
func (r *Recovery) Sweep(ctx context.Context) (int, error) {
	recovered, err := r.ingestor.RecoverStale(ctx)
	if recovered > 0 {
		logger.Info("Recovered %d stale documents", recovered)
	}
	return recovered, err
}

// Start begins the background sweep loop. This method blocks until Stop
// is called or the context is cancelled.
func (r *Recovery) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil // Already running
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.mu.Unlock()

	if _, err := r.Sweep(ctx); err != nil {
		logger.Warn("Recovery sweep failed: %v", err)
	}

	ticker := time.NewTicker(RecoveryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.stopCh:
			return nil
		case <-ticker.C:
			r.wg.Add(1)
			if _, err := r.Sweep(ctx); err != nil {
				logger.Warn("Recovery sweep failed: %v", err)
			}
			r.wg.Done()
		}
	}
}

// Stop gracefully shuts down the sweep loop.
func (r *Recovery) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	close(r.stopCh)
	r.mu.Unlock()

	r.wg.Wait()
	return nil
}
