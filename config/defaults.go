package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/typeweaver/version"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("version", version.ConfigVersion)
	v.SetDefault("output_formats", []string{"rbi", "rbs"})
	v.SetDefault("generation_sources", []string{"static", "yard", "rails"})
	v.SetDefault("exclude_paths", []string{"vendor/**", "tmp/**", "node_modules/**"})
	v.SetDefault("types_dir", ".typeweaver/types")

	// Rails reflection
	v.SetDefault("rails.enabled", true)
	v.SetDefault("rails.components", []string{"models", "routes", "controllers"})
	v.SetDefault("rails.database", "db/development.sqlite3")
}

// Default returns the configuration of a project with no config file.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	var c Config
	// Defaults always decode.
	_ = v.Unmarshal(&c)
	return &c
}
