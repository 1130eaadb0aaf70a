// Package rollhistory stores generated loot so a roll can be shown again
// after the command that produced it has exited
package rollhistory

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rollhistorymock github.com/KirkDiggler/rpg-loot/internal/repositories/roll_history Repository

// Record is one saved generation request and its output
type Record struct {
	ID string `json:"id"`

	// Settings the loot was generated with
	Settings loot.Settings `json:"settings"`

	Rolls    []loot.Roll    `json:"rolls"`
	Failures []loot.Failure `json:"failures,omitempty"`
	Total    float64        `json:"total"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateInput contains parameters for saving a roll
type CreateInput struct {
	Settings loot.Settings
	Rolls    []loot.Roll
	Failures []loot.Failure
	Total    float64
	TTL      time.Duration // How long the record should live
}

// CreateOutput contains the saved record
type CreateOutput struct {
	Record *Record
}

// GetInput contains parameters for retrieving a roll
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved record
type GetOutput struct {
	Record *Record
}

// DeleteInput contains parameters for deleting a roll
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting a roll
type DeleteOutput struct {
	Deleted bool
}

// Repository defines the interface for roll history storage
type Repository interface {
	// Create stores a new record under a generated ID
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a record by ID
	// Returns errors.NotFound if it never existed or has expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a record
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
