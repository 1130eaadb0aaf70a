package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/generator"
	"github.com/KirkDiggler/rpg-loot/internal/render"
)

var rollFlags struct {
	table        string
	count        int
	maxValue     float64
	rare         float64
	uncommon     float64
	filterByMax  bool
	fillBudget   bool
	rarityPolicy string
	gateMinValue bool
	jsonOutput   bool
	save         bool
	color        bool
}

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Generate loot",
	Long: `Generate loot from an origin table. Without --max-value each result is an
independent roll; with it the results form one set that stays within the budget.`,
	Example: `  loot roll --table armor --count 3
  loot roll --table weapons --max-value 500 --count 4
  loot roll --max-value 200 --fill-budget --json`,
	Args: cobra.NoArgs,
	RunE: runRoll,
}

func init() {
	defaults := loot.DefaultSettings()

	flags := rollCmd.Flags()
	flags.StringVarP(&rollFlags.table, "table", "t", defaults.OriginTable, "origin table")
	flags.IntVarP(&rollFlags.count, "count", "n", defaults.ResultCount, "number of results, or target item count with a budget")
	flags.Float64VarP(&rollFlags.maxValue, "max-value", "m", 0, "budget in gold")
	flags.Float64Var(&rollFlags.rare, "rare", defaults.RareChance, "rare chance in percent")
	flags.Float64Var(&rollFlags.uncommon, "uncommon", defaults.UncommonChance, "uncommon chance in percent")
	flags.BoolVar(&rollFlags.filterByMax, "filter-by-max", false, "limit the origin table to the tier closest to the budget")
	flags.BoolVar(&rollFlags.fillBudget, "fill-budget", false, "keep adding items until the budget is spent")
	flags.StringVar(&rollFlags.rarityPolicy, "rarity-policy", string(defaults.RarityPolicy), "exclusive or cumulative")
	flags.BoolVar(&rollFlags.gateMinValue, "gate-min-value", defaults.GateMinValue, "reject entries whose min_value is above the budget")
	flags.BoolVar(&rollFlags.jsonOutput, "json", false, "print JSON instead of text")
	flags.BoolVar(&rollFlags.save, "save", false, "store the result in the roll history (needs redis)")
	flags.BoolVar(&rollFlags.color, "color", false, "color rarity tags")
}

func runRoll(cmd *cobra.Command, _ []string) error {
	settings := rollSettings(cmd)

	d, err := wire(cmd.Context(), cfg, wiringOptions{withHistory: rollFlags.save})
	if err != nil {
		return err
	}
	defer func() { _ = d.Close() }()

	out, err := d.generator.Generate(cmd.Context(), &generator.GenerateInput{
		Settings: settings,
		Save:     rollFlags.save,
	})
	if err != nil {
		return err
	}

	if rollFlags.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), newRollView(out))
	}
	writeText(cmd.OutOrStdout(), cmd.ErrOrStderr(), render.New(render.Options{Styled: rollFlags.color}), out)
	return nil
}

// rollSettings builds request settings from the flags; max-value is only a
// budget when it was given
func rollSettings(cmd *cobra.Command) *loot.Settings {
	settings := loot.DefaultSettings()
	settings.OriginTable = rollFlags.table
	settings.ResultCount = rollFlags.count
	settings.RareChance = rollFlags.rare
	settings.UncommonChance = rollFlags.uncommon
	settings.FilterByMax = rollFlags.filterByMax
	settings.FillBudget = rollFlags.fillBudget
	settings.RarityPolicy = loot.RarityPolicy(rollFlags.rarityPolicy)
	settings.GateMinValue = rollFlags.gateMinValue
	if cmd.Flags().Changed("max-value") {
		settings.MaxValue = loot.Float(rollFlags.maxValue)
	}
	return &settings
}

type rollView struct {
	Rolls     []loot.Roll    `json:"rolls"`
	Failures  []loot.Failure `json:"failures,omitempty"`
	Total     float64        `json:"total"`
	HistoryID string         `json:"history_id,omitempty"`
}

func newRollView(out *generator.GenerateOutput) rollView {
	rolls := out.Rolls
	if rolls == nil {
		rolls = []loot.Roll{}
	}
	return rollView{
		Rolls:     rolls,
		Failures:  out.Failures,
		Total:     out.Total,
		HistoryID: out.HistoryID,
	}
}

func writeText(stdout, stderr io.Writer, f *render.Formatter, out *generator.GenerateOutput) {
	fmt.Fprint(stdout, f.Output(out.Rolls, out.Total))
	for _, failure := range out.Failures {
		fmt.Fprintln(stderr, f.Failure(failure))
	}
	if out.HistoryID != "" {
		fmt.Fprintf(stdout, "Saved as %s\n", out.HistoryID)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
