package loot

import (
	"math"

	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

// RarityPolicy decides how a rarity draw maps onto eligible tiers
type RarityPolicy string

const (
	// RarityPolicyExclusive makes exactly one tier eligible per draw
	RarityPolicyExclusive RarityPolicy = "exclusive"
	// RarityPolicyCumulative lets a rarer band also admit every commoner tier
	RarityPolicyCumulative RarityPolicy = "cumulative"
)

// Defaults for a generation request
const (
	DefaultOriginTable    = "armor"
	DefaultResultCount    = 1
	DefaultRareChance     = 10.0
	DefaultUncommonChance = 20.0
)

// Settings is the read-only configuration of one generation request. It is
// built once by the caller and passed down explicitly; nothing mutates it.
type Settings struct {
	// OriginTable is the table resolution starts from
	OriginTable string `json:"origin_table"`

	// ResultCount is the number of single-item results, or the target item
	// count of the aggregate set when a budget is configured
	ResultCount int `json:"result_count"`

	// MaxValue is the budget in gold; nil means unconstrained
	MaxValue *float64 `json:"max_value,omitempty"`

	// RareChance and UncommonChance are percentages; the remainder is common
	RareChance     float64 `json:"rare_chance"`
	UncommonChance float64 `json:"uncommon_chance"`

	// FilterByMax restricts the origin table to the tier closest to the budget
	FilterByMax bool `json:"filter_by_max"`

	RarityPolicy RarityPolicy `json:"rarity_policy"`

	// GateMinValue rejects entries whose min_value is above the budget
	GateMinValue bool `json:"gate_min_value"`

	// FillBudget keeps accumulating until the budget is spent instead of
	// stopping at ResultCount items
	FillBudget bool `json:"fill_budget"`
}

// DefaultSettings returns the settings used when nothing is overridden
func DefaultSettings() Settings {
	return Settings{
		OriginTable:    DefaultOriginTable,
		ResultCount:    DefaultResultCount,
		RareChance:     DefaultRareChance,
		UncommonChance: DefaultUncommonChance,
		RarityPolicy:   RarityPolicyExclusive,
		GateMinValue:   true,
	}
}

// HasBudget reports whether a monetary budget is configured
func (s *Settings) HasBudget() bool {
	return s.MaxValue != nil
}

// Validate checks the settings before any table is touched
func (s *Settings) Validate() error {
	if s == nil {
		return errors.InvalidArgument("settings are required")
	}

	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("origin_table", s.OriginTable, vb)
	errors.ValidateMin("result_count", s.ResultCount, 1, vb)
	errors.ValidatePercent("rare_chance", s.RareChance, vb)
	errors.ValidatePercent("uncommon_chance", s.UncommonChance, vb)
	if s.RareChance+s.UncommonChance > 100 {
		vb.Field("uncommon_chance", "rare and uncommon chances must not exceed 100 combined")
	}
	if s.MaxValue != nil {
		switch v := *s.MaxValue; {
		case math.IsNaN(v) || math.IsInf(v, 0):
			vb.Field("max_value", "must be a finite number")
		case v < 0:
			vb.Field("max_value", "must not be negative")
		}
	}
	if s.RarityPolicy != "" {
		errors.ValidateEnum("rarity_policy", string(s.RarityPolicy),
			[]string{string(RarityPolicyExclusive), string(RarityPolicyCumulative)}, vb)
	}
	if s.FilterByMax && s.MaxValue == nil {
		vb.Field("filter_by_max", "requires max_value")
	}

	return vb.Build()
}
