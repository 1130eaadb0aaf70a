// Package selection draws rarity tiers and weighted table entries.
package selection

import (
	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

// rarityResolution is the number of faces used to draw a value in [0, 100)
// at two decimal places.
const rarityResolution = 10000

// RaritySet is the set of rarities eligible for one draw
type RaritySet map[loot.Rarity]bool

// Contains reports whether r is eligible
func (s RaritySet) Contains(r loot.Rarity) bool {
	return s[r]
}

// RaritySelector decides which rarity tiers a table draw may use
type RaritySelector interface {
	Select(rareChance, uncommonChance float64, policy loot.RarityPolicy) (RaritySet, error)
}

// RarityConfig holds the dependencies for the rarity selector
type RarityConfig struct {
	Roller toolkitdice.Roller
}

// Validate ensures all required dependencies are provided
func (c *RarityConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	return vb.Build()
}

type raritySelector struct {
	roller toolkitdice.Roller
}

// NewRaritySelector creates a rarity selector
func NewRaritySelector(cfg *RarityConfig) (RaritySelector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &raritySelector{roller: cfg.Roller}, nil
}

// Select draws a value in [0, 100) and maps it onto the bands
// [0, rare), [rare, rare+uncommon) and the common remainder.
//
// Under the exclusive policy only the drawn tier is eligible. Under the
// cumulative policy a rarer band also admits every commoner tier.
func (s *raritySelector) Select(rareChance, uncommonChance float64, policy loot.RarityPolicy) (RaritySet, error) {
	face, err := s.roller.Roll(rarityResolution)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll rarity")
	}
	draw := float64(face-1) / (rarityResolution / 100)

	return Bands(draw, rareChance, uncommonChance, policy), nil
}

// Bands maps a draw in [0, 100) onto the eligible rarities
func Bands(draw, rareChance, uncommonChance float64, policy loot.RarityPolicy) RaritySet {
	cumulative := policy == loot.RarityPolicyCumulative

	switch {
	case draw < rareChance:
		if cumulative {
			return RaritySet{loot.RarityRare: true, loot.RarityUncommon: true, loot.RarityCommon: true}
		}
		return RaritySet{loot.RarityRare: true}
	case draw < rareChance+uncommonChance:
		if cumulative {
			return RaritySet{loot.RarityUncommon: true, loot.RarityCommon: true}
		}
		return RaritySet{loot.RarityUncommon: true}
	default:
		return RaritySet{loot.RarityCommon: true}
	}
}
