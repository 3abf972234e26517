package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avasilyev/cmskeeper/internal/cryptox"
	"github.com/avasilyev/cmskeeper/internal/dbx"
)

// SQLiteRepository keeps sealed values in the tokens table. Sealing and
// opening happen on the way in and out, so plaintext never touches disk.
type SQLiteRepository struct {
	db  *sql.DB
	box *cryptox.Box
}

func NewSQLiteRepository(db *sql.DB, box *cryptox.Box) *SQLiteRepository {
	return &SQLiteRepository{db: db, box: box}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value, nonce []byte
	err := r.db.QueryRowContext(ctx, `SELECT value, nonce FROM tokens WHERE key = ?`, key).Scan(&value, &nonce)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens[%s]: %w", key, err)
	}

	plaintext, err := r.box.Open(value, nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to open tokens[%s]: %w", key, err)
	}
	return plaintext, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	sealed, nonce, err := r.box.Seal(value)
	if err != nil {
		return fmt.Errorf("failed to seal tokens[%s]: %w", key, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tokens (key, value, nonce) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, nonce = excluded.nonce
	`, key, sealed, nonce)
	if err != nil {
		return fmt.Errorf("failed to set tokens[%s]: %w", key, err)
	}
	return nil
}

// Reset drops every stored entry and writes the given one in a single
// transaction, so a stale session token never outlives a new login.
func (r *SQLiteRepository) Reset(ctx context.Context, key string, value []byte) error {
	sealed, nonce, err := r.box.Seal(value)
	if err != nil {
		return fmt.Errorf("failed to seal tokens[%s]: %w", key, err)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tokens`); err != nil {
			return fmt.Errorf("failed to reset tokens: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tokens (key, value, nonce) VALUES (?, ?, ?)`, key, sealed, nonce); err != nil {
			return fmt.Errorf("failed to reset tokens[%s]: %w", key, err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete tokens[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tokens`)
	if err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}
