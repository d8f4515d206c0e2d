package store

import (
	"context"
	"errors"
	"time"

	"github.com/animeutils/animesched/pkg/idx"
)

var ErrNotFound = errors.New("store: not found")

// TokenRecord is one cached OAuth2 session, keyed by the client id it was
// issued to. Token values are sealed at rest by the driver.
type TokenRecord struct {
	ID           idx.ID
	ClientID     string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Scopes       []string
	UpdatedAt    time.Time
}

// Store is the root data access interface for the local token cache.
// Concrete drivers (sqlite) implement this.
type Store interface {
	Tokens() Tokens

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Tokens interface {
	// Get returns the cached session for a client id, or ErrNotFound.
	Get(ctx context.Context, clientID string) (TokenRecord, error)

	// Put inserts or replaces the cached session for the record's client id.
	Put(ctx context.Context, record TokenRecord) error

	// Delete removes the cached session for a client id. Deleting a missing
	// record is not an error.
	Delete(ctx context.Context, clientID string) error
}
