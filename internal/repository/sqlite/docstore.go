/*
Package sqlite provides a single-file document store for running the payroll
service on one machine without a spreadsheet or database server.

KEY TABLES:

	document_relations: relation name and its ordered column header (JSON array)
	document_rows:      one JSON object per row, ordered by position

Write replaces a relation inside one transaction, so readers never observe a
half-written sheet. The database is opened in WAL mode.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/docstore"
)

// Store implements docstore.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (and if needed creates) the database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS document_relations (
		relation TEXT PRIMARY KEY,
		columns TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS document_rows (
		relation TEXT NOT NULL REFERENCES document_relations(relation) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		cells TEXT NOT NULL,
		PRIMARY KEY (relation, position)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Read(ctx context.Context, relation string) (docstore.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var columnsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT columns FROM document_relations WHERE relation = ?`, relation,
	).Scan(&columnsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.Table{}, nil
	}
	if err != nil {
		return docstore.Table{}, docstore.Unavailable("read", relation, err)
	}

	var table docstore.Table
	if err := json.Unmarshal([]byte(columnsJSON), &table.Columns); err != nil {
		return docstore.Table{}, docstore.Unavailable("read", relation, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT cells FROM document_rows WHERE relation = ? ORDER BY position`, relation)
	if err != nil {
		return docstore.Table{}, docstore.Unavailable("read", relation, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cellsJSON string
		if err := rows.Scan(&cellsJSON); err != nil {
			return docstore.Table{}, docstore.Unavailable("read", relation, err)
		}
		row := docstore.Row{}
		if err := json.Unmarshal([]byte(cellsJSON), &row); err != nil {
			return docstore.Table{}, docstore.Unavailable("read", relation, err)
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return docstore.Table{}, docstore.Unavailable("read", relation, err)
	}

	return table, nil
}

func (s *Store) Write(ctx context.Context, relation string, table docstore.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(ctx, relation, table); err != nil {
		return docstore.Unavailable("write", relation, err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, relation string, table docstore.Table) error {
	columnsJSON, err := json.Marshal(table.Columns)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO document_relations (relation, columns, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(relation) DO UPDATE SET
			columns = excluded.columns,
			updated_at = excluded.updated_at
	`, relation, string(columnsJSON))
	if err != nil {
		return fmt.Errorf("failed to upsert relation: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM document_rows WHERE relation = ?`, relation); err != nil {
		return fmt.Errorf("failed to clear rows: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO document_rows (relation, position, cells) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, row := range table.Rows {
		cellsJSON, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, relation, i, string(cellsJSON)); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT relation FROM document_relations ORDER BY relation`)
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
