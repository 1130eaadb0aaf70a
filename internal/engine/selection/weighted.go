package selection

import (
	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

// Picker performs weight-proportional selection over table entries
type Picker interface {
	// Pick filters entries by eligible rarity and draws one by weight. A nil
	// eligible set disables the rarity filter.
	Pick(entries []loot.Entry, eligible RaritySet) (*loot.Entry, error)
}

// PickerConfig holds the dependencies for the picker
type PickerConfig struct {
	Roller toolkitdice.Roller
}

// Validate ensures all required dependencies are provided
func (c *PickerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	return vb.Build()
}

type picker struct {
	roller toolkitdice.Roller
}

// NewPicker creates a weighted picker
func NewPicker(cfg *PickerConfig) (Picker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &picker{roller: cfg.Roller}, nil
}

// Pick draws an integer in [0, totalWeight) and walks the cumulative weights
// left to right, so earlier entries win at interval boundaries.
func (p *picker) Pick(entries []loot.Entry, eligible RaritySet) (*loot.Entry, error) {
	if len(entries) == 0 {
		return nil, errors.FailedPrecondition("cannot pick from an empty table")
	}

	candidates := entries
	if eligible != nil {
		candidates = FilterByRarity(entries, eligible)
	}

	total := totalWeight(candidates)
	if total == 0 {
		// nothing matched the rolled band, or nothing that matched can be drawn
		candidates = entries
		total = totalWeight(candidates)
	}
	if total == 0 {
		return nil, errors.FailedPrecondition("table has no entry with a positive weight")
	}

	face, err := p.roller.Roll(total)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll entry")
	}
	draw := face - 1

	cumulative := 0
	for i := range candidates {
		cumulative += candidates[i].EffectiveWeight()
		if draw < cumulative {
			return &candidates[i], nil
		}
	}

	return nil, errors.Internalf("weighted draw %d fell outside total weight %d", draw, total)
}

// FilterByRarity keeps set entries unconditionally and leaves whose rarity
// is eligible.
func FilterByRarity(entries []loot.Entry, eligible RaritySet) []loot.Entry {
	out := make([]loot.Entry, 0, len(entries))
	for i := range entries {
		if entries[i].Kind() == loot.KindSet || eligible.Contains(entries[i].EffectiveRarity()) {
			out = append(out, entries[i])
		}
	}
	return out
}

func totalWeight(entries []loot.Entry) int {
	total := 0
	for i := range entries {
		total += entries[i].EffectiveWeight()
	}
	return total
}
