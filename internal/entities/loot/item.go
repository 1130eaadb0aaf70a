package loot

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// ItemEntityType is the rpg-toolkit entity type of generated items
const ItemEntityType = "loot_item"

// DisplayQuantity is a rolled amount shown in a coin other than gold
type DisplayQuantity struct {
	Amount float64  `json:"amount"`
	Unit   Currency `json:"unit"`
}

// Item is one fully resolved piece of loot
type Item struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Breadcrumb    []string         `json:"breadcrumb"`
	Modifiers     []string         `json:"modifiers,omitempty"`
	Value         float64          `json:"value"`
	Rarity        Rarity           `json:"rarity"`
	TerminalTable string           `json:"terminal_table,omitempty"`
	Display       *DisplayQuantity `json:"display,omitempty"`
}

// GetID implements core.Entity
func (i *Item) GetID() string {
	return i.ID
}

// GetType implements core.Entity
func (i *Item) GetType() string {
	return ItemEntityType
}

var _ core.Entity = (*Item)(nil)

// Result is what one resolver call produces: a single item, or the members
// of a set. An exceeded result carries no items.
type Result struct {
	Items    []Item  `json:"items"`
	Set      bool    `json:"set"`
	Total    float64 `json:"total"`
	Exceeded bool    `json:"exceeded"`
}

// ExceededResult is the rejection signal for budget and tier violations
func ExceededResult() *Result {
	return &Result{Exceeded: true}
}

// Roll is one accepted item in the output, grouped by set index for display
type Roll struct {
	SetIndex int  `json:"set_index"`
	Item     Item `json:"item"`
}

// Failure is the diagnostic emitted when a result slot could not be filled
type Failure struct {
	Slot     int    `json:"slot"`
	Attempts int    `json:"attempts"`
	Reason   string `json:"reason"`
}
