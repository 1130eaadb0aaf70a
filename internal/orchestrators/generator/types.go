package generator

import (
	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	rollhistory "github.com/KirkDiggler/rpg-loot/internal/repositories/roll_history"
)

// GenerateInput is one generation request
type GenerateInput struct {
	Settings *loot.Settings
	// Save stores the output in the roll history
	Save bool
}

// GenerateOutput is the accepted loot in set order plus any slots that
// could not be filled
type GenerateOutput struct {
	Rolls    []loot.Roll
	Failures []loot.Failure
	Total    float64
	// HistoryID is set when the output was saved
	HistoryID string
}

// GetRollInput identifies a saved roll
type GetRollInput struct {
	ID string
}

// GetRollOutput is a saved roll
type GetRollOutput struct {
	Record *rollhistory.Record
}

// DeleteRollInput identifies a saved roll to remove
type DeleteRollInput struct {
	ID string
}

// DeleteRollOutput names the removed roll
type DeleteRollOutput struct {
	ID string
}
