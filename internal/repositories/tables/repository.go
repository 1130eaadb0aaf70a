// Package tables provides lookup of loot tables by name
package tables

//go:generate mockgen -destination=mock/mock_repository.go -package=tablesmock github.com/KirkDiggler/rpg-loot/internal/repositories/tables Repository,Store

import (
	"context"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
)

// Repository is the read side the resolver consumes
type Repository interface {
	// Get returns the ordered entries of a table
	// Returns errors.InvalidArgument for empty or malformed names
	// Returns errors.NotFound if no table has that name
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns the names of all known tables, sorted
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// Store is a repository that can also be written to
type Store interface {
	Repository

	// Save creates or replaces a table
	// Returns errors.InvalidArgument for empty names
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}

// GetInput defines the input for getting a table
type GetInput struct {
	Name string
}

// GetOutput defines the output for getting a table
type GetOutput struct {
	Name    string
	Entries []loot.Entry
}

// ListInput defines the input for listing tables
type ListInput struct{}

// ListOutput defines the output for listing tables
type ListOutput struct {
	Names []string
}

// SaveInput defines the input for saving a table
type SaveInput struct {
	Name    string
	Entries []loot.Entry
}

// SaveOutput defines the output for saving a table
type SaveOutput struct {
	Name string
}
