package goldprice

import (
	"context"
	"time"
)

// CachedSnapshot is a snapshot plus the moment it was written, used by the
// service to tell a same-day cache from one the date has rolled past.
type CachedSnapshot struct {
	Snapshot Snapshot  `json:"snapshot"`
	StoredAt time.Time `json:"stored_at"`
}

// Cache stores the single last-known snapshot. Get returns nil without error
// when nothing usable is cached.
type Cache interface {
	Get(ctx context.Context) (*CachedSnapshot, error)
	Set(ctx context.Context, cached CachedSnapshot) error
}
