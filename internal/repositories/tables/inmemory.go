package tables

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

type inMemoryRepository struct {
	mu     sync.RWMutex
	tables map[string][]loot.Entry
}

// NewInMemory creates a store seeded with the given tables
func NewInMemory(seed map[string][]loot.Entry) Store {
	tables := make(map[string][]loot.Entry, len(seed))
	for name, entries := range seed {
		tables[name] = entries
	}
	return &inMemoryRepository{tables: tables}
}

var _ Store = (*inMemoryRepository)(nil)

func (r *inMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, ok := r.tables[input.Name]
	if !ok {
		return nil, errors.NotFoundf("table %s not found", input.Name)
	}

	return &GetOutput{Name: input.Name, Entries: entries}, nil
}

func (r *inMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	return &ListOutput{Names: names}, nil
}

func (r *inMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tables[input.Name] = input.Entries

	return &SaveOutput{Name: input.Name}, nil
}
