// Package main is the entry point for the loot CLI
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-loot/internal/config"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

var (
	tablesDir   string
	tableSource string
	redisAddr   string
	logLevel    string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "loot",
	Short: "Weighted loot table generator",
	Long: `loot rolls items from weighted, nested loot tables. Tables are read from a
directory of JSON or YAML files or from Redis, and generation can be held to a
gold budget.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if path := errors.Breadcrumb(err); len(path) > 0 {
			fmt.Fprintf(os.Stderr, "Path: %s\n", strings.Join(path, " > "))
		}
		os.Exit(errors.GetCode(err).ExitCode())
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&tablesDir, "tables-dir", "", "directory holding table files (overrides LOOT_TABLES_DIR)")
	flags.StringVar(&tableSource, "source", "", "table source: file or redis (overrides LOOT_TABLE_SOURCE)")
	flags.StringVar(&redisAddr, "redis-addr", "", "redis address (overrides LOOT_REDIS_ADDR)")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides LOOT_LOG_LEVEL)")

	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(historyCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("tables-dir") {
		loaded.TablesDir = tablesDir
	}
	if flags.Changed("source") {
		loaded.TableSource = tableSource
	}
	if flags.Changed("redis-addr") {
		loaded.RedisAddr = redisAddr
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: loaded.SlogLevel(),
	})))

	cfg = loaded
	return nil
}
