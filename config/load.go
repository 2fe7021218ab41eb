package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/irgen/errors"
)

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper
	sources       map[string]SourceInfo
	activeFile    string
)

// Load reads the configuration from every source, caching the result.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, err := LoadWithViper(initViperLocked())
	if err != nil {
		return nil, err
	}
	globalConfig = cfg
	return globalConfig, nil
}

// GetViper returns the shared viper instance, e.g. for binding CLI flags.
func GetViper() *viper.Viper {
	mu.Lock()
	defer mu.Unlock()
	return initViperLocked()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// LoadFromFile loads defaults plus one TOML file, ignoring every other source.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", configPath)
	}
	return cfg, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	sources = nil
	activeFile = ""
}

// ConfigFile returns the highest-precedence config file that was merged,
// or "" when only defaults and the environment apply.
func ConfigFile() string {
	GetViper()
	mu.Lock()
	defer mu.Unlock()
	return activeFile
}

func initViperLocked() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	sources = make(map[string]SourceInfo)
	for _, key := range v.AllKeys() {
		sources[key] = SourceInfo{Source: SourceDefault}
	}

	mergeConfigFiles(v, sources)
	trackEnvironment(v, sources)

	viperInstance = v
	return v
}

// UserConfigPath returns ~/.irgen/irgen.toml, or "" without a home directory.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserDir, FileName)
}

// FindProjectConfig walks up from dir looking for irgen.toml. It returns ""
// when no file is found before the filesystem root.
func FindProjectConfig(dir string) string {
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges config files in precedence order, lowest first:
// user < project. Environment variables still win over both.
func mergeConfigFiles(v *viper.Viper, tracked map[string]SourceInfo) {
	type candidate struct {
		path   string
		source Source
	}
	var files []candidate
	if user := UserConfigPath(); user != "" {
		files = append(files, candidate{user, SourceUser})
	}
	if wd, err := os.Getwd(); err == nil {
		if project := FindProjectConfig(wd); project != "" {
			files = append(files, candidate{project, SourceProject})
		}
	}

	for _, f := range files {
		if _, err := os.Stat(f.path); err != nil {
			continue
		}
		fileViper := viper.New()
		fileViper.SetConfigFile(f.path)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			continue
		}
		// MergeConfigMap keeps env vars and flags above file values.
		if err := v.MergeConfigMap(fileViper.AllSettings()); err != nil {
			continue
		}
		for _, key := range fileViper.AllKeys() {
			tracked[key] = SourceInfo{Source: f.source, Path: f.path}
		}
		activeFile = f.path
	}
}

func trackEnvironment(v *viper.Viper, tracked map[string]SourceInfo) {
	for _, key := range v.AllKeys() {
		name := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if _, ok := os.LookupEnv(name); ok {
			tracked[key] = SourceInfo{Source: SourceEnvironment, Path: name}
		}
	}
}
