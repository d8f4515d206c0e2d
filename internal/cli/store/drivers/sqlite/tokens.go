package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/animeutils/animesched/internal/cli/store"
	"github.com/animeutils/animesched/pkg/cryptox"
	"github.com/animeutils/animesched/pkg/idx"
)

type tokensRepo struct {
	db     *sql.DB
	sealer *cryptox.Sealer
}

func (r *tokensRepo) Get(ctx context.Context, clientID string) (store.TokenRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, access_token, refresh_token, expires_at, scopes, updated_at
		FROM oauth_tokens
		WHERE client_id = ?`, clientID)

	var (
		record       store.TokenRecord
		id           string
		accessToken  []byte
		refreshToken []byte
		expiresAt    sql.NullTime
		scopes       string
	)
	err := row.Scan(&id, &record.ClientID, &accessToken, &refreshToken,
		&expiresAt, &scopes, &record.UpdatedAt)
	if err != nil {
		return store.TokenRecord{}, mapNotFound(err)
	}

	record.ID, err = idx.Parse(id)
	if err != nil {
		return store.TokenRecord{}, fmt.Errorf("parse token record id: %w", err)
	}

	access, err := r.sealer.Open(accessToken)
	if err != nil {
		return store.TokenRecord{}, fmt.Errorf("unseal access token: %w", err)
	}
	record.AccessToken = string(access)

	if len(refreshToken) > 0 {
		refresh, err := r.sealer.Open(refreshToken)
		if err != nil {
			return store.TokenRecord{}, fmt.Errorf("unseal refresh token: %w", err)
		}
		record.RefreshToken = string(refresh)
	}

	if expiresAt.Valid {
		record.ExpiresAt = expiresAt.Time
	}
	if scopes != "" {
		record.Scopes = strings.Fields(scopes)
	}

	return record, nil
}

func (r *tokensRepo) Put(ctx context.Context, record store.TokenRecord) error {
	accessToken, err := r.sealer.Seal([]byte(record.AccessToken))
	if err != nil {
		return fmt.Errorf("seal access token: %w", err)
	}

	var refreshToken []byte
	if record.RefreshToken != "" {
		refreshToken, err = r.sealer.Seal([]byte(record.RefreshToken))
		if err != nil {
			return fmt.Errorf("seal refresh token: %w", err)
		}
	}

	var expiresAt sql.NullTime
	if !record.ExpiresAt.IsZero() {
		expiresAt = sql.NullTime{Time: record.ExpiresAt.UTC(), Valid: true}
	}

	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO oauth_tokens (id, client_id, access_token, refresh_token, expires_at, scopes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (client_id) DO UPDATE SET
			access_token  = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at    = excluded.expires_at,
			scopes        = excluded.scopes,
			updated_at    = excluded.updated_at`,
		record.ID.String(), record.ClientID, accessToken, refreshToken,
		expiresAt, strings.Join(record.Scopes, " "), updatedAt)
	return err
}

func (r *tokensRepo) Delete(ctx context.Context, clientID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM oauth_tokens WHERE client_id = ?`, clientID)
	return err
}
