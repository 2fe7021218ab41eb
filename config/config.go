// Package config loads irgen configuration with viper.
//
// Sources merge in precedence order, lowest first: built-in defaults, the
// user file (~/.irgen/irgen.toml), the project file (irgen.toml, searched
// upward from the working directory), IRGEN_* environment variables, and
// finally command-line flags bound by the CLI.
package config

// Config is the full irgen configuration.
type Config struct {
	Compile CompileConfig `mapstructure:"compile" toml:"compile" json:"compile" yaml:"compile"`
	SDK     SDKConfig     `mapstructure:"sdk" toml:"sdk" json:"sdk" yaml:"sdk"`
	IR      IRConfig      `mapstructure:"ir" toml:"ir" json:"ir" yaml:"ir"`
	Output  OutputConfig  `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
	Log     LogConfig     `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// CompileConfig configures the batch compiler.
type CompileConfig struct {
	Target   string   `mapstructure:"target" toml:"target" json:"target" yaml:"target"`
	Modules  []string `mapstructure:"modules" toml:"modules" json:"modules" yaml:"modules"` // empty = every module
	Workers  int      `mapstructure:"workers" toml:"workers" json:"workers" yaml:"workers"` // 0 = GOMAXPROCS
	FailFast bool     `mapstructure:"fail_fast" toml:"fail_fast" json:"fail_fast" yaml:"fail_fast"`
}

// SDKConfig locates the runtime support library in the target namespace.
type SDKConfig struct {
	Root string `mapstructure:"root" toml:"root" json:"root" yaml:"root"`
}

// IRConfig constrains accepted input.
type IRConfig struct {
	// FormatVersions is a semver constraint over the distribution's
	// formatVersion, e.g. ">= 2, < 4".
	FormatVersions string `mapstructure:"format_versions" toml:"format_versions" json:"format_versions" yaml:"format_versions"`
}

// OutputConfig configures where and how units are written.
type OutputConfig struct {
	Dir      string `mapstructure:"dir" toml:"dir" json:"dir" yaml:"dir"`
	Format   string `mapstructure:"format" toml:"format" json:"format" yaml:"format"` // json | yaml
	Manifest bool   `mapstructure:"manifest" toml:"manifest" json:"manifest" yaml:"manifest"`
}

// LogConfig configures the logger.
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
}

// File names and locations.
const (
	FileName  = "irgen.toml"
	UserDir   = ".irgen"
	EnvPrefix = "IRGEN"

	DefaultDirPermissions  = 0750
	DefaultFilePermissions = 0644
)
