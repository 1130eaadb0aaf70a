package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

const leatherTable = `[{"name": "Leather Armor", "value": 10}]`

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("LOOT_TABLE_SOURCE", "file")
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTables(t *testing.T, tables map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range tables {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestRoll_JSON(t *testing.T) {
	dir := writeTables(t, map[string]string{"armor.json": leatherTable})

	stdout, _, err := execute(t, "--tables-dir", dir, "roll", "--json", "--count", "2")
	require.NoError(t, err)

	var view rollView
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	require.Len(t, view.Rolls, 2)
	assert.Equal(t, 20.0, view.Total)
	assert.Empty(t, view.Failures)
	for i, roll := range view.Rolls {
		assert.Equal(t, i+1, roll.SetIndex)
		assert.Equal(t, "Leather Armor", roll.Item.Name)
		assert.True(t, strings.HasPrefix(roll.Item.ID, "item_"), roll.Item.ID)
	}
}

func TestRoll_Text(t *testing.T) {
	dir := writeTables(t, map[string]string{"armor.json": leatherTable})

	stdout, stderr, err := execute(t, "--tables-dir", dir, "roll", "--table", "armor")
	require.NoError(t, err)
	assert.Equal(t, "1. armor: Leather Armor (10 gp)\nTotal: 10 gp\n", stdout)
	assert.Empty(t, stderr)
}

func TestRoll_BudgetTooSmall(t *testing.T) {
	dir := writeTables(t, map[string]string{"armor.json": leatherTable})

	stdout, stderr, err := execute(t, "--tables-dir", dir, "roll", "--max-value", "5")
	require.NoError(t, err)
	assert.Equal(t, "no loot generated\n", stdout)
	assert.Contains(t, stderr, "could not generate a valid result")
}

func TestRoll_MissingTable(t *testing.T) {
	dir := writeTables(t, map[string]string{"armor.json": leatherTable})

	_, _, err := execute(t, "--tables-dir", dir, "roll", "--table", "weapons")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, errors.CodeNotFound.ExitCode(), errors.GetCode(err).ExitCode())
}

func TestRoll_InvalidSettings(t *testing.T) {
	dir := writeTables(t, map[string]string{"armor.json": leatherTable})

	_, _, err := execute(t, "--tables-dir", dir, "roll", "--rare", "80", "--uncommon", "40")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRoll_SaveWithoutRedis(t *testing.T) {
	dir := writeTables(t, map[string]string{"armor.json": leatherTable})

	_, _, err := execute(t, "--tables-dir", dir, "--redis-addr", "127.0.0.1:1", "roll", "--save")
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnavailable, errors.GetCode(err))
}

func TestInvalidSource(t *testing.T) {
	_, _, err := execute(t, "--source", "s3", "tables", "list")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestTablesList(t *testing.T) {
	dir := writeTables(t, map[string]string{
		"armor.json":    leatherTable,
		"weapons.yaml":  "- name: Dagger\n  value: 2\n",
		"notes.txt":     "not a table",
		"armor.yml":     "- name: Duplicate\n",
		"treasure.json": `[{"type": "table", "name": "armor"}]`,
	})

	stdout, _, err := execute(t, "--tables-dir", dir, "tables", "list")
	require.NoError(t, err)
	assert.Equal(t, "armor\ntreasure\nweapons\n", stdout)
}

func TestTablesShow(t *testing.T) {
	dir := writeTables(t, map[string]string{"weapons.yaml": "- name: Dagger\n  value: 2\n  weight: 4\n"})

	stdout, _, err := execute(t, "--tables-dir", dir, "tables", "show", "weapons")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name": "Dagger", "value": 2, "weight": 4}]`, stdout)
}

func TestRollSettings(t *testing.T) {
	resetFlags(rollCmd)
	require.NoError(t, rollCmd.ParseFlags([]string{"--count", "3", "--rarity-policy", "cumulative"}))

	settings := rollSettings(rollCmd)
	assert.Equal(t, 3, settings.ResultCount)
	assert.Nil(t, settings.MaxValue)
	assert.True(t, settings.GateMinValue)
	assert.Equal(t, "cumulative", string(settings.RarityPolicy))

	resetFlags(rollCmd)
	require.NoError(t, rollCmd.ParseFlags([]string{"--max-value", "0", "--fill-budget"}))

	settings = rollSettings(rollCmd)
	require.NotNil(t, settings.MaxValue)
	assert.Equal(t, 0.0, *settings.MaxValue)
	assert.True(t, settings.FillBudget)
}

func TestRoll_NaNFlagsRejected(t *testing.T) {
	dir := writeTables(t, map[string]string{"armor.json": leatherTable})

	for _, args := range [][]string{
		{"--rare", "NaN"},
		{"--max-value", "NaN"},
		{"--max-value", "+Inf"},
	} {
		_, _, err := execute(t, append([]string{"--tables-dir", dir, "roll"}, args...)...)
		require.Error(t, err, args)
		assert.True(t, errors.IsInvalidArgument(err), args)
	}
}

func TestHistory_SaveShowDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := writeTables(t, map[string]string{"armor.json": leatherTable})
	base := []string{"--tables-dir", dir, "--redis-addr", mr.Addr()}

	stdout, _, err := execute(t, append(base, "roll", "--save")...)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	last := lines[len(lines)-1]
	require.True(t, strings.HasPrefix(last, "Saved as roll_"), stdout)
	id := strings.TrimPrefix(last, "Saved as ")

	stdout, _, err = execute(t, append(base, "history", id)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, id+" from armor at ")
	assert.Contains(t, stdout, "1. armor: Leather Armor (10 gp)\nTotal: 10 gp\n")

	stdout, _, err = execute(t, append(base, "history", "--delete", id)...)
	require.NoError(t, err)
	assert.Equal(t, "Deleted "+id+"\n", stdout)

	_, _, err = execute(t, append(base, "history", id)...)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, _, err = execute(t, append(base, "history", "--delete", id)...)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestRoll_SampleKitIsASet(t *testing.T) {
	dir := filepath.Join("..", "..", "tables")

	stdout, _, err := execute(t, "--tables-dir", dir, "roll", "--table", "adventurers_kit")
	require.NoError(t, err)
	assert.Equal(t, "1. set of 5 items (4.7 gp)\n"+
		"   - adventurers_kit: Backpack (2 gp)\n"+
		"   - adventurers_kit: Bedroll (1 gp)\n"+
		"   - adventurers_kit: Hempen Rope (50 feet) (1 gp)\n"+
		"   - adventurers_kit: Waterskin 2 sp (0.2 gp)\n"+
		"   - adventurers_kit: Rations (1 day) 5 sp (0.5 gp)\n"+
		"Total: 4.7 gp\n", stdout)
}

func TestSampleTablesDecode(t *testing.T) {
	dir := filepath.Join("..", "..", "tables")

	stdout, _, err := execute(t, "--tables-dir", dir, "tables", "list")
	require.NoError(t, err)
	names := strings.Fields(stdout)
	assert.Contains(t, names, "treasure")
	assert.Contains(t, names, "adventurers_kit")

	for _, name := range names {
		_, _, err := execute(t, "--tables-dir", dir, "tables", "show", name)
		assert.NoError(t, err, name)
	}
}
