package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/helpdeskops/perf-api/internal/models"
)

const pointTableCacheKey = "perf:subcat:points"

// pointTable serves the sub-category classifier to the reporting services.
// The raw table goes through the cache when caching is enabled; computed
// metrics never do.
type pointTable struct {
	store   pointTableStore
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

func newPointTable(store pointTableStore, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *pointTable {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &pointTable{store: store, cache: cache, metrics: metrics, logger: logger}
}

// Classifier builds a request-scoped classifier from the point table.
func (p *pointTable) Classifier(ctx context.Context) (*Classifier, error) {
	var categories []models.SubCategory

	if p.cache.Enabled() {
		if hit, err := p.cache.Get(ctx, pointTableCacheKey, &categories); err != nil {
			p.logger.Warn("point table cache read failed", zap.Error(err))
		} else if hit {
			return NewClassifier(categories), nil
		}
	}

	start := time.Now()
	categories, err := p.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if p.metrics != nil {
		p.metrics.ObserveDBQuery("subcategory_list", time.Since(start))
	}

	if p.cache.Enabled() {
		if err := p.cache.Set(ctx, pointTableCacheKey, categories, 0); err != nil {
			p.logger.Warn("point table cache write failed", zap.Error(err))
		}
	}
	return NewClassifier(categories), nil
}
