package config

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/irgen/errors"
	"github.com/teranos/irgen/target"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := target.Lookup(c.Compile.Target); err != nil {
		return errors.Mark(errors.Wrap(err, "compile.target"), errors.ErrInvalidConfig)
	}

	// Workers: 0 = one per CPU, negative = invalid
	if c.Compile.Workers < 0 {
		return errors.NewInvalidConfigError("compile.workers must be >= 0, got %d", c.Compile.Workers)
	}

	for _, m := range c.Compile.Modules {
		if strings.TrimSpace(m) == "" {
			return errors.NewInvalidConfigError("compile.modules cannot contain an empty module path")
		}
	}

	if strings.TrimSpace(c.SDK.Root) == "" {
		return errors.NewInvalidConfigError("sdk.root cannot be empty")
	}

	if _, err := semver.NewConstraint(c.IR.FormatVersions); err != nil {
		return errors.WithHint(
			errors.NewInvalidConfigError("ir.format_versions %q is not a version constraint: %v", c.IR.FormatVersions, err),
			`use a constraint such as ">= 2, < 4"`)
	}

	if c.Output.Dir == "" {
		return errors.NewInvalidConfigError("output.dir cannot be empty")
	}
	switch c.Output.Format {
	case "json", "yaml":
	default:
		return errors.NewInvalidConfigError("output.format must be json or yaml, got %q", c.Output.Format)
	}

	return nil
}
