package tables_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/repositories/tables"
	"github.com/KirkDiggler/rpg-loot/internal/testutils"
)

func TestInMemory(t *testing.T) {
	ctx := context.Background()
	repo := tables.NewInMemory(testutils.ArmorTables())

	got, err := repo.Get(ctx, tables.GetInput{Name: testutils.TableLightArmor})
	require.NoError(t, err)
	assert.Equal(t, "Leather Armor", got.Entries[0].Name)

	_, err = repo.Get(ctx, tables.GetInput{Name: "potions"})
	assert.True(t, errors.IsNotFound(err))

	_, err = repo.Get(ctx, tables.GetInput{})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = repo.Save(ctx, tables.SaveInput{Name: "potions", Entries: []loot.Entry{{Name: "Healing"}}})
	require.NoError(t, err)

	list, err := repo.List(ctx, tables.ListInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"armor", "light_armor", "potions"}, list.Names)
}
