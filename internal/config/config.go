package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = ".taskline"
	envPrefix  = "TASKLINE"
)

type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	History HistoryConfig `mapstructure:"history"`
	View    ViewConfig    `mapstructure:"view"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Verbose bool          `mapstructure:"verbose"`
}

type DataConfig struct {
	File   string `mapstructure:"file" validate:"required"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json yaml sqlite"`
}

type HistoryConfig struct {
	Limit int `mapstructure:"limit" validate:"min=1,max=1000"`
}

type ViewConfig struct {
	Default string `mapstructure:"default" validate:"required"`
}

type UIConfig struct {
	RefreshSeconds       int  `mapstructure:"refreshSeconds" validate:"min=1"`
	Alerts               bool `mapstructure:"alerts"`
	DesktopNotifications bool `mapstructure:"desktopNotifications"`
	PreviewLimit         int  `mapstructure:"previewLimit" validate:"min=0,max=50"`
	SchedulerBuffer      int  `mapstructure:"schedulerBuffer" validate:"min=1"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

var validate = validator.New()

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.file", defaultDataFile())
	v.SetDefault("data.format", "")
	v.SetDefault("history.limit", 10)
	v.SetDefault("view.default", "all")
	v.SetDefault("ui.refreshSeconds", 60)
	v.SetDefault("ui.alerts", true)
	v.SetDefault("ui.desktopNotifications", false)
	v.SetDefault("ui.previewLimit", 5)
	v.SetDefault("ui.schedulerBuffer", 64)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load reads .env, the environment and the config file into a Config.
// configFile may be empty, in which case .taskline.yaml is looked up in the
// home directory and the working directory. A missing config file is fine.
func Load(v *viper.Viper, configFile string) (Config, error) {
	_ = godotenv.Load()

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Data.File = expandHome(cfg.Data.File)
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func defaultDataFile() string {
	return filepath.Join("~", ".taskline", "tasks.json")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
