package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/irgen/cmd/irgen/commands"
	"github.com/teranos/irgen/config"
	"github.com/teranos/irgen/logger"
	"github.com/teranos/irgen/version"
)

var rootCmd = &cobra.Command{
	Use:   "irgen",
	Short: "irgen - compile a functional IR into a target-language AST",
	Long: `irgen - compile a type-annotated functional IR distribution into
target-language compilation units.

Every module of the distribution becomes one compilation unit: custom types
become sealed traits and case classes, values become curried functions, and
partially applied constructors are saturated with synthesized lambdas.

Available commands:
  gen      - Compile an IR file and write the units
  watch    - Recompile whenever the IR file changes
  config   - Show, query, validate or create configuration
  targets  - List the available target backends
  version  - Show version information

Examples:
  irgen gen morphir-ir.json                 # Compile every module into ./gen
  irgen gen morphir-ir.json -m Shop -t scala3
  irgen watch morphir-ir.json --format yaml
  irgen config show --format json`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs := config.GetViper().GetBool("log.json")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.Version = version.Get().Short()
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	commands.BindFlag(rootCmd.PersistentFlags(), "log.json", "log-json")

	rootCmd.AddCommand(commands.GenCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.TargetsCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
