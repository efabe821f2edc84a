// Package memory provides an in-process document store for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sdgtech/payroll-backend-go/internal/pkg/docstore"
)

type Store struct {
	mu        sync.RWMutex
	relations map[string]docstore.Table
}

func NewStore() *Store {
	return &Store{relations: make(map[string]docstore.Table)}
}

func (s *Store) Read(_ context.Context, relation string) (docstore.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.relations[relation]
	if !ok {
		return docstore.Table{}, nil
	}
	return clone(t), nil
}

func (s *Store) Write(_ context.Context, relation string, table docstore.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.relations[relation] = clone(table)
	return nil
}

func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.relations))
	for name := range s.relations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func clone(t docstore.Table) docstore.Table {
	out := docstore.Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]docstore.Row, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		r := make(docstore.Row, len(row))
		for k, v := range row {
			r[k] = v
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}
