package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/irgen/errors"
)

const starterHeader = `# irgen configuration
#
# Precedence, lowest first: defaults, ~/.irgen/irgen.toml, this file,
# IRGEN_* environment variables, command-line flags.

`

// WriteStarter writes a commented irgen.toml holding the defaults. An
// existing file is kept as path.back1 (rotating up to .back3) when force
// is set, and is an error otherwise.
func WriteStarter(path string, force bool) error {
	if _, err := os.Stat(path); err == nil {
		if !force {
			return errors.WithHint(
				errors.Newf("%s already exists", path),
				"pass --force to overwrite it; the old file is kept as a .back1 backup")
		}
		if err := createBackup(path); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	buf.WriteString(starterHeader)
	if err := toml.NewEncoder(&buf).Encode(Defaults()); err != nil {
		return errors.Wrap(err, "failed to encode starter config")
	}

	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, buf.Bytes(), DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// createBackup rotates .back1 -> .back2 -> .back3 and copies path to .back1.
func createBackup(path string) error {
	back1, back2, back3 := path+".back1", path+".back2", path+".back3"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete old backup %s", back3)
	}
	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

// Encode renders cfg as toml, json or yaml.
func Encode(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "toml", "":
		out, err := gotoml.Marshal(cfg)
		return out, errors.Wrap(err, "failed to encode config as toml")
	case "json":
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode config as json")
		}
		return append(out, '\n'), nil
	case "yaml":
		out, err := yaml.Marshal(cfg)
		return out, errors.Wrap(err, "failed to encode config as yaml")
	default:
		return nil, errors.NewInvalidConfigError("unknown format %q (want toml, json or yaml)", format)
	}
}
