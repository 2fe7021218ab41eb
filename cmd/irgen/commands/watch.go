package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/irgen/loader"
)

// WatchCmd recompiles whenever the IR file changes.
var WatchCmd = &cobra.Command{
	Use:   "watch <ir-file>",
	Short: "Recompile whenever the IR file changes",
	Long: `Compile the IR file, then keep watching it and recompile after every
change. Bursts of writes are coalesced (500ms debounce). Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		bindCompileFlags(cmd.Flags())
	},
	RunE: runWatch,
}

func init() {
	addCompileFlags(WatchCmd.Flags())
	WatchCmd.Flags().Duration("debounce", loader.DefaultDebounce, "Quiet period before recompiling")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	source := args[0]
	debounce, _ := cmd.Flags().GetDuration("debounce")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recompile := func(ctx context.Context) error {
		report, err := compileAndWrite(ctx, cfg, source)
		if err != nil {
			pterm.Error.Println(err.Error())
			return err
		}
		printReport(report)
		return nil
	}

	w, err := loader.NewWatcher(source, debounce, recompile)
	if err != nil {
		return err
	}

	// A broken initial IR is reported and then watched until it is fixed.
	_ = recompile(ctx)
	pterm.Info.Printfln("Watching %s (Ctrl-C to stop)", source)
	return w.Run(ctx)
}
