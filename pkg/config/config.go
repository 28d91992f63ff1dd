package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is everything the game reads at startup
type Config struct {
	LogLevel    string              `mapstructure:"logLevel"`
	Development bool                `mapstructure:"development"`
	TPS         int                 `mapstructure:"tps"`
	Window      WindowConfig        `mapstructure:"window"`
	Audio       AudioConfig         `mapstructure:"audio"`
	World       WorldConfig         `mapstructure:"world"`
	PresetsFile string              `mapstructure:"presetsFile"`
	SavePath    string              `mapstructure:"savePath"`
	Bindings    map[string][]string `mapstructure:"bindings"`
}

type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// WorldConfig shapes the generated world
type WorldConfig struct {
	Seed      int64   `mapstructure:"seed"`
	Size      float64 `mapstructure:"size"`
	Platforms int     `mapstructure:"platforms"`
	Wanderers int     `mapstructure:"wanderers"`
}

// Load sets defaults and reads backroads.yaml from configDir. A missing file
// leaves the defaults; BACKROADS_* environment variables override both.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("development", false)
	viper.SetDefault("tps", 50)

	viper.SetDefault("window.width", 1024)
	viper.SetDefault("window.height", 600)
	viper.SetDefault("window.title", "Backroads")

	viper.SetDefault("audio.enabled", true)

	viper.SetDefault("world.seed", 1)
	viper.SetDefault("world.size", 240)
	viper.SetDefault("world.platforms", 40)
	viper.SetDefault("world.wanderers", 6)

	viper.SetDefault("presetsFile", "")
	viper.SetDefault("savePath", "backroads_save.json")

	viper.SetEnvPrefix("BACKROADS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("backroads")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Get decodes the loaded settings
func Get() (Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if c.TPS <= 0 {
		return Config{}, fmt.Errorf("decode config: tps must be positive, got %d", c.TPS)
	}
	return c, nil
}

// ConfigFile is the file Load read, or "" when it ran on defaults
func ConfigFile() string {
	return viper.ConfigFileUsed()
}
