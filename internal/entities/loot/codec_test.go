package loot_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
)

func TestDecodeTable_EntryForms(t *testing.T) {
	data := []byte(`[
		{"type": "table", "name": "light_armor", "weight": 3, "modifier": "+1", "value": 1000, "max_value": 1500},
		{"name": "Leather Armor", "value": "2d6*10", "rarity": "uncommon", "min_value": 5},
		{"name": "Copper Ring", "display_value": "3d6", "display_unit": "cp"},
		[{"name": "Arrow"}, {"type": "table", "name": "potions"}],
		{"items": [{"name": "Rope"}], "max_value": 20, "weight": 2},
		{"type": "table", "name": "weapons", "modifier": ["masterwork", "special_materials"]}
	]`)

	entries, err := loot.DecodeTable(data)
	require.NoError(t, err)
	require.Len(t, entries, 6)

	ref := entries[0]
	assert.Equal(t, loot.KindTable, ref.Kind())
	assert.Equal(t, 3, ref.EffectiveWeight())
	assert.Equal(t, loot.Tags{"+1"}, ref.Modifier)
	require.NotNil(t, ref.Value)
	assert.Equal(t, 1000.0, ref.Value.Literal)
	assert.Equal(t, 1500.0, *ref.MaxValue)

	leaf := entries[1]
	assert.Equal(t, loot.KindLeaf, leaf.Kind())
	assert.Equal(t, 1, leaf.EffectiveWeight())
	assert.True(t, leaf.Value.IsExpr())
	assert.Equal(t, "2d6*10", leaf.Value.Expr)
	assert.Equal(t, loot.RarityUncommon, leaf.EffectiveRarity())

	display := entries[2]
	assert.Nil(t, display.Value)
	assert.Equal(t, "3d6", display.DisplayValue.Expr)
	assert.Equal(t, loot.CurrencyCopper, loot.ParseDisplayUnit(display.DisplayUnit))

	bare := entries[3]
	assert.Equal(t, loot.KindSet, bare.Kind())
	require.Len(t, bare.Items, 2)
	assert.Equal(t, loot.KindTable, bare.Items[1].Kind())

	wrapped := entries[4]
	assert.Equal(t, loot.KindSet, wrapped.Kind())
	assert.Equal(t, 2, wrapped.EffectiveWeight())
	assert.Equal(t, 20.0, *wrapped.MaxValue)

	assert.Equal(t, loot.Tags{"masterwork", "special_materials"}, entries[5].Modifier)
}

func TestDecodeTable_Materials(t *testing.T) {
	data := []byte(`[
		{"name": "Adamantine", "value": {"weapons": "2x", "armor": 5000}},
		{"name": "Mithral", "value": {"armor": "1.5x", "shields": "junk"}, "weight": 4}
	]`)

	entries, err := loot.DecodeTable(data)
	require.NoError(t, err)

	adamantine, ok := entries[0].EffectFor("weapons")
	require.True(t, ok)
	assert.True(t, adamantine.IsMultiplier())
	assert.Equal(t, 2.0, adamantine.Multiplier)

	bonus, ok := entries[0].EffectFor("armor")
	require.True(t, ok)
	assert.False(t, bonus.IsMultiplier())
	assert.Equal(t, 5000.0, bonus.Bonus)

	_, ok = entries[0].EffectFor("rings")
	assert.False(t, ok)

	mithral, _ := entries[1].EffectFor("armor")
	assert.Equal(t, 1.5, mithral.Multiplier)

	junk, ok := entries[1].EffectFor("shields")
	require.True(t, ok)
	assert.Equal(t, loot.Effect{}, junk)
}

func TestDecodeTable_Malformed(t *testing.T) {
	_, err := loot.DecodeTable([]byte(`{"name": "not a list"}`))
	require.Error(t, err)

	_, err = loot.DecodeTable([]byte(`[{"name": "x", "modifier": 12}]`))
	require.Error(t, err)
}

func TestEntry_MarshalKeepsShape(t *testing.T) {
	entries := []loot.Entry{
		{Name: "Adamantine", Effects: map[string]loot.Effect{"weapons": {Multiplier: 2}}},
		{Items: []loot.Entry{}},
		{Name: "Gem", Value: loot.Expr("1d4*50"), Weight: loot.Int(0)},
	}

	data, err := json.Marshal(entries)
	require.NoError(t, err)

	decoded, err := loot.DecodeTable(data)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	effect, ok := decoded[0].EffectFor("weapons")
	require.True(t, ok)
	assert.Equal(t, 2.0, effect.Multiplier)
	assert.Equal(t, loot.KindSet, decoded[1].Kind())
	assert.Equal(t, "1d4*50", decoded[2].Value.Expr)
	assert.Equal(t, 0, decoded[2].EffectiveWeight())
}

func TestCurrency_ToGold(t *testing.T) {
	assert.Equal(t, 3.5, loot.ParseDisplayUnit("sp").ToGold(35))
	assert.Equal(t, 0.35, loot.ParseDisplayUnit("copper").ToGold(35))
	assert.Equal(t, 350.0, loot.ParseDisplayUnit("PP").ToGold(35))
	assert.Equal(t, 3.5, loot.ParseDisplayUnit("doubloons").ToGold(35))
	assert.Equal(t, 35.0, loot.CurrencyGold.ToGold(35))
}
