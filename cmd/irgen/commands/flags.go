// Package commands holds the irgen subcommands.
package commands

import (
	"github.com/spf13/pflag"

	"github.com/teranos/irgen/config"
)

// boundFlags maps viper keys to the flags bound to them, so config
// introspection can report flag-supplied values.
var boundFlags = map[string]string{}

// BindFlag binds a flag to a viper key. A flag set on the command line wins
// over every other configuration source.
func BindFlag(flags *pflag.FlagSet, key, name string) {
	_ = config.GetViper().BindPFlag(key, flags.Lookup(name))
	boundFlags[key] = name
}

// compileFlags pairs viper keys with the gen and watch flag names.
var compileFlags = [][2]string{
	{"compile.target", "target"},
	{"compile.modules", "module"},
	{"compile.workers", "workers"},
	{"compile.fail_fast", "fail-fast"},
	{"sdk.root", "sdk-root"},
	{"output.dir", "out"},
	{"output.format", "format"},
	{"output.manifest", "manifest"},
}

// addCompileFlags registers the flags shared by gen and watch.
func addCompileFlags(flags *pflag.FlagSet) {
	flags.StringP("target", "t", config.DefaultTarget, "Target backend (see 'irgen targets')")
	flags.StringSliceP("module", "m", nil, "Compile only these modules (dotted paths, repeatable)")
	flags.IntP("workers", "w", 0, "Modules compiled in parallel (0 = one per CPU)")
	flags.Bool("fail-fast", false, "Stop at the first module that fails")
	flags.String("sdk-root", config.DefaultSDKRoot, "Target namespace of the runtime support library")
	flags.StringP("out", "o", config.DefaultOutputDir, "Output directory")
	flags.String("format", config.DefaultOutputFormat, "Output format: json or yaml")
	flags.Bool("manifest", true, "Write manifest.json next to the units")
}

// bindCompileFlags binds the running command's compile flags. Binding
// happens at run time because gen and watch share the viper keys.
func bindCompileFlags(flags *pflag.FlagSet) {
	for _, kf := range compileFlags {
		BindFlag(flags, kf[0], kf[1])
	}
}
