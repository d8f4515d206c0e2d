package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/animeutils/animesched/internal/cli/store"
	"github.com/animeutils/animesched/pkg/cryptox"

	_ "modernc.org/sqlite"
)

type Store struct {
	db     *sql.DB
	sealer *cryptox.Sealer
	dsn    string
}

// NewStore opens (creating if needed) the token cache database at dsn.
// sealer encrypts token values at rest.
func NewStore(dsn string, sealer *cryptox.Sealer) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		sealer: sealer,
		dsn:    dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Tokens() store.Tokens {
	return &tokensRepo{db: s.db, sealer: s.sealer}
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
