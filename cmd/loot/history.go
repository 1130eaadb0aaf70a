package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/generator"
	"github.com/KirkDiggler/rpg-loot/internal/render"
)

var (
	historyJSON   bool
	historyDelete bool
)

var historyCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show or delete a saved roll",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print JSON instead of text")
	historyCmd.Flags().BoolVar(&historyDelete, "delete", false, "remove the roll instead of showing it")
}

func runHistory(cmd *cobra.Command, args []string) error {
	d, err := wire(cmd.Context(), cfg, wiringOptions{withHistory: true})
	if err != nil {
		return err
	}
	defer func() { _ = d.Close() }()

	if historyDelete {
		deleted, err := d.generator.DeleteRoll(cmd.Context(), &generator.DeleteRollInput{ID: args[0]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", deleted.ID)
		return nil
	}

	out, err := d.generator.GetRoll(cmd.Context(), &generator.GetRollInput{ID: args[0]})
	if err != nil {
		return err
	}

	if historyJSON {
		return writeJSON(cmd.OutOrStdout(), out.Record)
	}

	record := out.Record
	f := render.New(render.Options{})
	fmt.Fprintf(cmd.OutOrStdout(), "%s from %s at %s\n",
		record.ID, record.Settings.OriginTable, record.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprint(cmd.OutOrStdout(), f.Output(record.Rolls, record.Total))
	for _, failure := range record.Failures {
		fmt.Fprintln(cmd.ErrOrStderr(), f.Failure(failure))
	}
	return nil
}
