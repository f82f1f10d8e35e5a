package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lender/database"
)

// PostgresStore keeps each document as a JSONB row in the documents
// table (see database/migrations).
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load reads the document, bootstrapping an empty one if no row exists
// yet.
func (s *PostgresStore) Load(ctx context.Context, storeID string, out any) error {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT doc FROM documents WHERE store_id = $1`, storeID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		_, err = s.db.Exec(ctx,
			`INSERT INTO documents (store_id, doc) VALUES ($1, '{}') ON CONFLICT (store_id) DO NOTHING`,
			storeID)
		if err != nil {
			return fmt.Errorf("failed to bootstrap store %s: %w", storeID, err)
		}
		data = []byte("{}")
	} else if err != nil {
		return fmt.Errorf("failed to read store %s: %w", storeID, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &CorruptStoreError{StoreID: storeID, Err: err}
	}
	return nil
}

// Save replaces the document row.
func (s *PostgresStore) Save(ctx context.Context, storeID string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode store %s: %w", storeID, err)
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO documents (store_id, doc) VALUES ($1, $2)
		 ON CONFLICT (store_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		storeID, data)
	if err != nil {
		return fmt.Errorf("failed to write store %s: %w", storeID, err)
	}
	return nil
}
