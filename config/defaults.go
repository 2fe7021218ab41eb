package config

import (
	"github.com/spf13/viper"
)

// Default values.
const (
	DefaultTarget         = "scala"
	DefaultSDKRoot        = "morphir.sdk"
	DefaultFormatVersions = ">= 2, < 4"
	DefaultOutputDir      = "gen"
	DefaultOutputFormat   = "json"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("compile.target", DefaultTarget)
	v.SetDefault("compile.modules", []string{})
	v.SetDefault("compile.workers", 0) // GOMAXPROCS
	v.SetDefault("compile.fail_fast", false)

	v.SetDefault("sdk.root", DefaultSDKRoot)

	v.SetDefault("ir.format_versions", DefaultFormatVersions)

	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.format", DefaultOutputFormat)
	v.SetDefault("output.manifest", true)

	v.SetDefault("log.json", false)
}

// Defaults returns the configuration with nothing but defaults applied.
func Defaults() *Config {
	return &Config{
		Compile: CompileConfig{Target: DefaultTarget, Modules: []string{}},
		SDK:     SDKConfig{Root: DefaultSDKRoot},
		IR:      IRConfig{FormatVersions: DefaultFormatVersions},
		Output:  OutputConfig{Dir: DefaultOutputDir, Format: DefaultOutputFormat, Manifest: true},
	}
}
