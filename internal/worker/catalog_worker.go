package worker

import (
	"context"
	"time"

	"github.com/mohamedkhaled004/school-academy-backend/internal/service"
	"github.com/rs/zerolog"
)

// CatalogWorker periodically rebuilds the public class catalog cache in Redis
// so browsing traffic keeps being served from cache even across TTL expiry.
type CatalogWorker struct {
	classService *service.ClassService
	interval     time.Duration
	log          zerolog.Logger
}

// NewCatalogWorker creates a new CatalogWorker.
func NewCatalogWorker(classService *service.ClassService, interval time.Duration, log zerolog.Logger) *CatalogWorker {
	return &CatalogWorker{
		classService: classService,
		interval:     interval,
		log:          log.With().Str("component", "catalog_worker").Logger(),
	}
}

// Start begins the refresh loop. Call in a goroutine; returns when ctx ends.
func (w *CatalogWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			if _, err := w.classService.RefreshCatalog(ctx); err != nil {
				w.log.Error().Err(err).Msg("Catalog refresh failed")
			}
		}
	}
}
