package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/typeweaver/errors"
)

// Load reads the configuration for the project at root: defaults, then
// <root>/.typeweaver/config.toml if present, then TYPEWEAVER_* environment
// variables. The result is validated.
func Load(root string) (*Config, error) {
	v, err := NewViper(root)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// NewViper builds the viper instance Load reads from. A missing config file
// is not an error; an unreadable or malformed one is.
func NewViper(root string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	path := Path(root)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return v, nil
		}
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WithHint(
			errors.NewConfigError("failed to read %s: %v", path, err),
			"fix the file or regenerate it with `typeweaver init`")
	}
	return v, nil
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.NewConfigError("failed to unmarshal config: %v", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
