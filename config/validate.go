package config

import (
	"github.com/teranos/typeweaver/errors"
	"github.com/teranos/typeweaver/version"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if err := checkVersion(c.Version); err != nil {
		return err
	}

	if len(c.OutputFormats) == 0 {
		return errors.WithHint(
			errors.NewConfigError("output_formats cannot be empty"),
			`set output_formats = ["rbi", "rbs"]`)
	}
	if _, err := c.Formats(); err != nil {
		return err
	}
	if _, err := c.Sources(); err != nil {
		return err
	}

	if c.TypesDir == "" {
		return errors.NewConfigError("types_dir cannot be empty")
	}

	// Only validate the database when the reflector will run
	if c.Rails.Enabled && c.Rails.Database == "" {
		return errors.WithHint(
			errors.NewConfigError("rails.database cannot be empty when rails is enabled"),
			"set rails.database or rails.enabled = false")
	}

	return nil
}

func checkVersion(v string) error {
	hint := "this build reads config versions " + version.ConfigConstraint

	ok, err := version.ReadsConfig(v)
	if err != nil {
		return errors.WithHint(err, hint)
	}
	if !ok {
		return errors.WithHint(errors.Wrapf(errors.ErrUnsupportedVersion, "%s", v), hint)
	}
	return nil
}
