package config

import (
	"sort"

	"github.com/spf13/pflag"
)

// Source is where a configuration value came from.
type Source string

const (
	SourceDefault     Source = "default"
	SourceUser        Source = "user"        // ~/.irgen/irgen.toml
	SourceProject     Source = "project"     // irgen.toml found upward from the working directory
	SourceEnvironment Source = "environment" // IRGEN_* env vars
	SourceFlag        Source = "flag"
)

// SourceInfo tracks where a configuration value originated.
type SourceInfo struct {
	Source Source
	Path   string // file path, env var or flag name
}

// SettingInfo is one effective setting and its origin.
type SettingInfo struct {
	Key        string      `json:"key" yaml:"key"`
	Value      interface{} `json:"value" yaml:"value"`
	Source     Source      `json:"source" yaml:"source"`
	SourcePath string      `json:"source_path,omitempty" yaml:"source_path,omitempty"`
}

// Introspect lists every effective setting, sorted by key, with the source
// that supplied it. Flags that were set on the command line and are bound to
// viper keys take precedence over the tracked file and env sources.
func Introspect(flags *pflag.FlagSet, bound map[string]string) []SettingInfo {
	v := GetViper()

	mu.Lock()
	tracked := make(map[string]SourceInfo, len(sources))
	for k, s := range sources {
		tracked[k] = s
	}
	mu.Unlock()

	if flags != nil {
		for key, flag := range bound {
			if f := flags.Lookup(flag); f != nil && f.Changed {
				tracked[key] = SourceInfo{Source: SourceFlag, Path: "--" + flag}
			}
		}
	}

	keys := v.AllKeys()
	sort.Strings(keys)
	settings := make([]SettingInfo, 0, len(keys))
	for _, key := range keys {
		src, ok := tracked[key]
		if !ok {
			src = SourceInfo{Source: SourceDefault}
		}
		settings = append(settings, SettingInfo{
			Key:        key,
			Value:      v.Get(key),
			Source:     src.Source,
			SourcePath: src.Path,
		})
	}
	return settings
}
