package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/repositories/tables"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Inspect and load loot tables",
}

var tablesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tables in the configured source",
	Args:  cobra.NoArgs,
	RunE:  runTablesList,
}

var tablesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a table as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runTablesShow,
}

var tablesLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Copy every table from the tables directory into redis",
	Args:  cobra.NoArgs,
	RunE:  runTablesLoad,
}

func init() {
	tablesCmd.AddCommand(tablesListCmd)
	tablesCmd.AddCommand(tablesShowCmd)
	tablesCmd.AddCommand(tablesLoadCmd)
}

func runTablesList(cmd *cobra.Command, _ []string) error {
	d, err := wire(cmd.Context(), cfg, wiringOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = d.Close() }()

	out, err := d.tables.List(cmd.Context(), tables.ListInput{})
	if err != nil {
		return err
	}
	for _, name := range out.Names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func runTablesShow(cmd *cobra.Command, args []string) error {
	d, err := wire(cmd.Context(), cfg, wiringOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = d.Close() }()

	out, err := d.tables.Get(cmd.Context(), tables.GetInput{Name: args[0]})
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), out.Entries)
}

func runTablesLoad(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	files, err := tables.NewFile(&tables.FileConfig{Dir: cfg.TablesDir})
	if err != nil {
		return err
	}

	client, err := connectRedis(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	store, err := tables.NewRedis(&tables.RedisConfig{Client: client})
	if err != nil {
		return err
	}

	listed, err := files.List(ctx, tables.ListInput{})
	if err != nil {
		return err
	}

	for _, name := range listed.Names {
		table, err := files.Get(ctx, tables.GetInput{Name: name})
		if err != nil {
			return errors.Wrapf(err, "load table %s", name)
		}
		if _, err := store.Save(ctx, tables.SaveInput{Name: name, Entries: table.Entries}); err != nil {
			return err
		}
		slog.Debug("loaded table", "table", name, "entries", len(table.Entries))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d tables into %s\n", len(listed.Names), cfg.RedisAddr)
	return nil
}
