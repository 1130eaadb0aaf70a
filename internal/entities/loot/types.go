// Package loot holds the data model shared by the table repositories, the
// resolution engine and the sampling orchestrator.
package loot

import (
	"strings"
)

// Rarity tags a leaf entry for the rarity tier filter
type Rarity string

// Rarity tiers
const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

// TypeTable marks an entry as a reference to another table
const TypeTable = "table"

// SpecialMaterialsTag is the modifier tag that triggers material augmentation
const SpecialMaterialsTag = "special_materials"

// Kind classifies an entry
type Kind int

const (
	// KindLeaf is a terminal item
	KindLeaf Kind = iota
	// KindTable points at another table
	KindTable
	// KindSet expands into several independent items
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindSet:
		return "set"
	default:
		return "leaf"
	}
}

// Entry is one row of a table: a leaf item, a table reference or a set.
//
// A row whose value is an object is a special material; its per-table effects
// are held in Effects and Value stays nil.
type Entry struct {
	Type         string            `json:"type,omitempty"`
	Name         string            `json:"name,omitempty"`
	Weight       *int              `json:"weight,omitempty"`
	Value        *Amount           `json:"value,omitempty"`
	DisplayValue *Amount           `json:"display_value,omitempty"`
	DisplayUnit  string            `json:"display_unit,omitempty"`
	Rarity       Rarity            `json:"rarity,omitempty"`
	MinValue     *float64          `json:"min_value,omitempty"`
	MaxValue     *float64          `json:"max_value,omitempty"`
	Modifier     Tags              `json:"modifier,omitempty"`
	Items        []Entry           `json:"items,omitempty"`
	Effects      map[string]Effect `json:"-"`
}

// Kind reports whether the entry is a leaf, a table reference or a set
func (e *Entry) Kind() Kind {
	if e.Items != nil {
		return KindSet
	}
	if strings.EqualFold(e.Type, TypeTable) {
		return KindTable
	}
	return KindLeaf
}

// EffectiveWeight returns the selection weight, defaulting to 1 when absent
func (e *Entry) EffectiveWeight() int {
	if e.Weight == nil {
		return 1
	}
	if *e.Weight < 0 {
		return 0
	}
	return *e.Weight
}

// EffectiveRarity returns the rarity, defaulting to common
func (e *Entry) EffectiveRarity() Rarity {
	switch Rarity(strings.ToLower(string(e.Rarity))) {
	case RarityUncommon:
		return RarityUncommon
	case RarityRare:
		return RarityRare
	default:
		return RarityCommon
	}
}

// EffectFor returns the material effect this entry has on items from table
func (e *Entry) EffectFor(table string) (Effect, bool) {
	effect, ok := e.Effects[table]
	return effect, ok
}

// Tags is an ordered list of modifier tags. It decodes from either a single
// string or a list of strings.
type Tags []string

// Has reports whether tag is present
func (t Tags) Has(tag string) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}

// Effect is what a special material does to items drawn from one table:
// an additive bonus, or a multiplier applied after all bonuses.
type Effect struct {
	Bonus      float64
	Multiplier float64
}

// IsMultiplier reports whether the effect scales the final value
func (e Effect) IsMultiplier() bool {
	return e.Multiplier != 0
}

// Currency is a coin denomination
type Currency string

// Denominations. Gold is the canonical value unit.
const (
	CurrencyGold     Currency = "gp"
	CurrencySilver   Currency = "sp"
	CurrencyCopper   Currency = "cp"
	CurrencyPlatinum Currency = "pp"
)

// ParseDisplayUnit maps a leaf's display_unit onto a denomination. Anything
// unrecognised is treated as silver.
func ParseDisplayUnit(unit string) Currency {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "cp", "copper":
		return CurrencyCopper
	case "pp", "platinum":
		return CurrencyPlatinum
	default:
		return CurrencySilver
	}
}

// ToGold converts an amount in c into gold
func (c Currency) ToGold(amount float64) float64 {
	switch c {
	case CurrencyGold:
		return amount
	case CurrencyCopper:
		return amount / 100
	case CurrencyPlatinum:
		return amount * 10
	default:
		return amount / 10
	}
}

// Int returns a pointer to v, for optional weights in fixtures
func Int(v int) *int {
	return &v
}

// Float returns a pointer to v, for optional bounds and budgets
func Float(v float64) *float64 {
	return &v
}
