package goldprice

import (
	"context"
	"time"

	"gold-day-go/internal/metrics"
	"gold-day-go/pkg/logger"
)

type Service struct {
	source      Source
	cache       Cache
	windows     FetchWindows
	defaultGram int
	metrics     *metrics.Metrics
	log         logger.Logger
	now         func() time.Time
}

func NewService(source Source, cache Cache, windows FetchWindows, defaultGram int, m *metrics.Metrics, log logger.Logger) *Service {
	return &Service{
		source:      source,
		cache:       cache,
		windows:     windows,
		defaultGram: defaultGram,
		metrics:     m,
		log:         log,
		now:         time.Now,
	}
}

// GetPrice never fails: a fresh cache is served as-is, a live fetch is only
// attempted inside an allowed window, and every failure degrades through the
// last known cache down to the static default.
func (s *Service) GetPrice(ctx context.Context) Snapshot {
	now := s.now()

	cached := s.readCache(ctx)
	if cached != nil && sameDay(cached.StoredAt, now) {
		s.metrics.ObservePriceCacheHit()
		return cached.Snapshot
	}

	if !s.windows.Contains(now) {
		if cached != nil {
			s.metrics.ObservePriceCacheHit()
			return cached.Snapshot
		}
		s.metrics.ObservePriceDefault()
		return DefaultSnapshot(s.defaultGram, now)
	}

	snapshot, err := s.source.Fetch(ctx)
	if err != nil {
		s.metrics.ObservePriceFetch(false)
		s.log.BusinessError("goldprice: live fetch failed", err)
		if cached != nil {
			return cached.Snapshot
		}
		s.metrics.ObservePriceDefault()
		return DefaultSnapshot(s.defaultGram, now)
	}

	s.metrics.ObservePriceFetch(true)
	s.writeCache(ctx, snapshot, now)
	return snapshot
}

// ForceRefresh bypasses both the cache and the window policy. Unlike
// GetPrice it surfaces the fetch error, so operators can see why a manual
// refresh failed.
func (s *Service) ForceRefresh(ctx context.Context) (Snapshot, error) {
	snapshot, err := s.source.Fetch(ctx)
	if err != nil {
		s.metrics.ObservePriceFetch(false)
		return Snapshot{}, err
	}

	s.metrics.ObservePriceFetch(true)
	s.writeCache(ctx, snapshot, s.now())
	return snapshot, nil
}

func (s *Service) readCache(ctx context.Context) *CachedSnapshot {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.Get(ctx)
	if err != nil {
		s.log.BusinessError("goldprice: cache read failed", err)
		return nil
	}
	return cached
}

func (s *Service) writeCache(ctx context.Context, snapshot Snapshot, storedAt time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, CachedSnapshot{Snapshot: snapshot, StoredAt: storedAt}); err != nil {
		s.log.BusinessError("goldprice: cache write failed", err)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
