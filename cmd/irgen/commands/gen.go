package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// GenCmd compiles an IR file once.
var GenCmd = &cobra.Command{
	Use:   "gen <ir-file-or-url>",
	Short: "Compile an IR distribution into target compilation units",
	Long: `Compile every module of an IR distribution and write one AST document per
module under the output directory, plus a manifest.

The source is a local path or anything go-getter can fetch, e.g.
  https://example.com/morphir-ir.json
  git::https://github.com/acme/shop.git//morphir-ir.json

Modules that fail are reported with the declaration and IR path that
failed; the other modules are still written.`,
	Args: cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		bindCompileFlags(cmd.Flags())
	},
	RunE: runGen,
}

func init() {
	addCompileFlags(GenCmd.Flags())
}

func runGen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := compileAndWrite(ctx, cfg, args[0])
	if err != nil {
		return err
	}
	printReport(report)
	return reportErr(report)
}
