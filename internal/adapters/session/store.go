// Package session keeps the per-browser-session country selection.
package session

import (
	"context"
	"time"
)

// DefaultTTL is how long a selection survives without being refreshed.
const DefaultTTL = 24 * time.Hour

// Store persists the selected country of each session.
type Store interface {
	// Get returns the stored country. Returns ErrNotFound if nothing is stored.
	Get(ctx context.Context, sessionID string) (string, error)
	// Set stores the country for the session, refreshing its TTL.
	Set(ctx context.Context, sessionID, noc string) error
	// Close releases resources held by the store.
	Close() error
}
