package testutils

import (
	"strconv"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
)

// Table names used across fixtures
const (
	TableArmor            = "armor"
	TableLightArmor       = "light_armor"
	TableWeapons          = "weapons"
	TableSpecialMaterials = "special_materials"
)

// ArmorTables is the smallest two-level tree: armor points at light_armor,
// which holds a single 10 gp leaf.
func ArmorTables() map[string][]loot.Entry {
	return map[string][]loot.Entry{
		TableArmor: {
			{Type: loot.TypeTable, Name: TableLightArmor, Weight: loot.Int(1)},
		},
		TableLightArmor: {
			{Name: "Leather Armor", Value: loot.Number(10), Weight: loot.Int(1)},
		},
	}
}

// MaterialTables has an origin that tags its reference with the special
// materials sentinel, a 50 gp weapon and one material doubling weapons.
func MaterialTables() map[string][]loot.Entry {
	return map[string][]loot.Entry{
		"treasure": {
			{Type: loot.TypeTable, Name: TableWeapons, Modifier: loot.Tags{loot.SpecialMaterialsTag}},
		},
		TableWeapons: {
			{Name: "Longsword", Value: loot.Number(50)},
		},
		TableSpecialMaterials: {
			{Name: "Adamantine", Effects: map[string]loot.Effect{
				TableWeapons: {Multiplier: 2},
			}},
		},
	}
}

// ChainTables builds a linear chain of depth tables ending in a 1 gp leaf.
// The first table is named "t0".
func ChainTables(depth int) map[string][]loot.Entry {
	out := make(map[string][]loot.Entry, depth+1)
	for i := 0; i < depth; i++ {
		out[chainName(i)] = []loot.Entry{
			{Type: loot.TypeTable, Name: chainName(i + 1)},
		}
	}
	out[chainName(depth)] = []loot.Entry{
		{Name: "Copper Ring", Value: loot.Number(1)},
	}
	return out
}

// CycleTables holds two tables that reference each other
func CycleTables() map[string][]loot.Entry {
	return map[string][]loot.Entry{
		"ping": {{Type: loot.TypeTable, Name: "pong"}},
		"pong": {{Type: loot.TypeTable, Name: "ping"}},
	}
}

// ExpensiveTables holds only leaves priced above 100 gp
func ExpensiveTables() map[string][]loot.Entry {
	return map[string][]loot.Entry{
		"hoard": {
			{Name: "Crown", Value: loot.Number(500)},
			{Name: "Scepter", Value: loot.Number(250)},
		},
	}
}

func chainName(i int) string {
	return "t" + strconv.Itoa(i)
}
