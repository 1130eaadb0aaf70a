package loot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
)

func TestState_VisitSkipsRepeatedTable(t *testing.T) {
	s := loot.State{}.Visit("armor").Visit("armor").Visit("light_armor")
	assert.Equal(t, []string{"armor", "light_armor"}, s.Breadcrumb)
}

func TestState_BranchesDoNotAlias(t *testing.T) {
	base := loot.State{}.Visit("treasure")
	base.Breadcrumb = append(make([]string, 0, 8), base.Breadcrumb...)

	left := base.Visit("weapons")
	right := base.Visit("armor")

	assert.Equal(t, []string{"treasure", "weapons"}, left.Breadcrumb)
	assert.Equal(t, []string{"treasure", "armor"}, right.Breadcrumb)
	assert.Equal(t, []string{"treasure"}, base.Breadcrumb)
}

func TestState_WithModifiersRoutesMaterials(t *testing.T) {
	s := loot.State{}.WithModifiers(loot.Tags{"+1", loot.SpecialMaterialsTag, "flaming"})

	assert.Equal(t, []string{"+1", "flaming"}, s.Modifiers)
	assert.Equal(t, []string{loot.SpecialMaterialsTag}, s.PendingMaterials)
}

func TestState_WithCeilingOnlyTightens(t *testing.T) {
	s := loot.State{}.WithCeiling(500)
	assert.Equal(t, 500.0, *s.ActiveMaxValue)

	s = s.WithCeiling(800)
	assert.Equal(t, 500.0, *s.ActiveMaxValue)

	s = s.WithCeiling(200)
	assert.Equal(t, 200.0, *s.ActiveMaxValue)

	s = s.AddValue(150)
	assert.False(t, s.OverCeiling())
	assert.True(t, s.AddValue(51).OverCeiling())
}

func TestState_ForMemberResetsValue(t *testing.T) {
	s := loot.State{}.Visit("hoard").WithModifiers(loot.Tags{"cursed"}).AddValue(40).Descend()
	member := s.ForMember()

	assert.Zero(t, member.RunningValue)
	assert.Equal(t, s.Breadcrumb, member.Breadcrumb)
	assert.Equal(t, s.Modifiers, member.Modifiers)
	assert.Equal(t, 1, member.Depth)
	assert.Equal(t, 40.0, s.RunningValue)
}

func TestState_MaterialHelpers(t *testing.T) {
	s := loot.State{}.WithModifiers(loot.Tags{loot.SpecialMaterialsTag}).AddValue(33)

	s = s.WithMaterial("Mithral").Scale(1.5).ClearPending()

	assert.Equal(t, []string{"Mithral"}, s.Modifiers)
	assert.Equal(t, 49.0, s.RunningValue)
	assert.Empty(t, s.PendingMaterials)
}
