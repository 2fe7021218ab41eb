package commands

import (
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/irgen/config"
	"github.com/teranos/irgen/errors"
)

// ConfigCmd groups the configuration subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and manage irgen configuration",
	Long: `Show and manage irgen configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (IRGEN_* prefix, e.g. IRGEN_COMPILE_WORKERS)
3. Project config (./irgen.toml, searched up directories)
4. User config (~/.irgen/irgen.toml)
5. Default values

Examples:
  irgen config show                  # Effective configuration as TOML
  irgen config show --format json
  irgen config show --sources        # Every key with the source that set it
  irgen config get compile.target
  irgen config validate
  irgen config init                  # Write a starter ./irgen.toml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value using dot notation (e.g. output.dir)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	RunE:  runConfigValidate,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter irgen.toml with the defaults",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var (
	configFormat  string
	configSources bool
	configForce   bool
)

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	configShowCmd.Flags().BoolVar(&configSources, "sources", false, "List every key with the source that set it")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file (keeps a .back1 backup)")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if configSources {
		rows := [][]string{{"Key", "Value", "Source", "From"}}
		for _, s := range config.Introspect(cmd.Flags(), boundFlags) {
			rows = append(rows, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	data, err := config.Encode(cfg, configFormat)
	if err != nil {
		return err
	}
	if configFormat != "json" {
		fmt.Fprintln(cmd.OutOrStdout(), "# irgen configuration")
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	v := config.GetViper()
	if !v.IsSet(key) {
		return errors.Mark(errors.Newf("configuration key %q not found", key), errors.ErrNotFound)
	}
	fmt.Fprintln(cmd.OutOrStdout(), v.Get(key))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	if file := config.ConfigFile(); file != "" {
		pterm.Info.Printfln("Config file: %s", file)
	}
	pterm.Success.Println("Configuration is valid")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.FileName
	if len(args) == 1 {
		path = args[0]
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, config.FileName)
		}
	}
	if err := config.WriteStarter(path, configForce); err != nil {
		return err
	}
	pterm.Success.Printfln("Wrote %s", path)
	return nil
}
