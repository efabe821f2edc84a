package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/database"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/docstore"
)

const documentSchema = `
	CREATE TABLE IF NOT EXISTS document_relations (
		relation TEXT PRIMARY KEY,
		columns TEXT[] NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS document_rows (
		relation TEXT NOT NULL REFERENCES document_relations(relation) ON DELETE CASCADE,
		position INT NOT NULL,
		cells JSONB NOT NULL,
		PRIMARY KEY (relation, position)
	);
`

type documentStore struct {
	db *database.DB
}

// NewDocumentStore returns a docstore.Store keeping each relation as ordered
// JSONB rows. The schema is created if missing.
func NewDocumentStore(ctx context.Context, db *database.DB) (docstore.Store, error) {
	if _, err := db.Exec(ctx, documentSchema); err != nil {
		return nil, fmt.Errorf("failed to create document schema: %w", err)
	}
	return &documentStore{db: db}, nil
}

func (s *documentStore) Read(ctx context.Context, relation string) (docstore.Table, error) {
	var columns []string
	err := s.db.QueryRow(ctx, `SELECT columns FROM document_relations WHERE relation = $1`, relation).Scan(&columns)
	if err != nil {
		if err == pgx.ErrNoRows {
			return docstore.Table{}, nil
		}
		return docstore.Table{}, docstore.Unavailable("read", relation, err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT cells
		FROM document_rows
		WHERE relation = $1
		ORDER BY position
	`, relation)
	if err != nil {
		return docstore.Table{}, docstore.Unavailable("read", relation, err)
	}
	defer rows.Close()

	table := docstore.Table{Columns: columns}
	for rows.Next() {
		var cells map[string]string
		if err := rows.Scan(&cells); err != nil {
			return docstore.Table{}, docstore.Unavailable("read", relation, err)
		}
		table.Rows = append(table.Rows, docstore.Row(cells))
	}
	if err := rows.Err(); err != nil {
		return docstore.Table{}, docstore.Unavailable("read", relation, err)
	}

	return table, nil
}

func (s *documentStore) Write(ctx context.Context, relation string, table docstore.Table) error {
	err := WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO document_relations (relation, columns)
			VALUES ($1, $2)
			ON CONFLICT (relation) DO UPDATE SET
				columns = EXCLUDED.columns,
				updated_at = NOW()
		`, relation, table.Columns)
		if err != nil {
			return fmt.Errorf("failed to upsert relation: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM document_rows WHERE relation = $1`, relation); err != nil {
			return fmt.Errorf("failed to clear rows: %w", err)
		}

		batch := &pgx.Batch{}
		for i, row := range table.Rows {
			batch.Queue(`INSERT INTO document_rows (relation, position, cells) VALUES ($1, $2, $3)`,
				relation, i, map[string]string(row))
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return docstore.Unavailable("write", relation, err)
	}
	return nil
}

func (s *documentStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT relation FROM document_relations ORDER BY relation`)
	if err != nil {
		return nil, docstore.Unavailable("list", "", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, docstore.Unavailable("list", "", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, docstore.Unavailable("list", "", err)
	}
	return names, nil
}
