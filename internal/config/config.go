package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vancomm/tilesweeper/internal/board"
)

const envPrefix = "TILESWEEPER"

type Game struct {
	Width       int `mapstructure:"width"`
	Height      int `mapstructure:"height"`
	HazardCount int `mapstructure:"hazard_count"`
}

func (g Game) Board() board.Config {
	return board.Config(g)
}

type Log struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type Sessions struct {
	Max int `mapstructure:"max"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Config struct {
	Development bool     `mapstructure:"development"`
	Port        string   `mapstructure:"port"`
	BasePath    string   `mapstructure:"base_path"`
	Game        Game     `mapstructure:"game"`
	Log         Log      `mapstructure:"log"`
	Sessions    Sessions `mapstructure:"sessions"`
	Cors        Cors     `mapstructure:"cors"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("development", false)
	v.SetDefault("port", ":8080")
	v.SetDefault("base_path", "")
	v.SetDefault("game.width", 9)
	v.SetDefault("game.height", 9)
	v.SetDefault("game.hazard_count", 10)
	v.SetDefault("log.file", "tilesweeper.log")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("sessions.max", 1000)
	v.SetDefault("cors.allowed_origins", []string{})
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"development":  "development",
	"port":         "port",
	"base-path":    "base_path",
	"width":        "game.width",
	"height":       "game.height",
	"hazard-count": "game.hazard_count",
	"log-file":     "log.file",
}

// Flags returns the command-line flags understood by [Load].
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file path (json, yaml or toml)")
	fs.Bool("development", false, "development mode: debug logging, relaxed origin checks")
	fs.String("port", ":8080", "address to listen on")
	fs.String("base-path", "", "path prefix of every route")
	fs.IntP("width", "W", 9, "board width")
	fs.IntP("height", "H", 9, "board height")
	fs.IntP("hazard-count", "n", 10, "number of hazards")
	fs.String("log-file", "tilesweeper.log", "log file of the terminal client")
	return fs
}

// Load reads the configuration from, in increasing priority: defaults, the
// config file named by the --config flag, environment variables and flags
// set on the command line. fs may be nil.
//
// Environment variables are TILESWEEPER_<KEY> with dots replaced by
// underscores, e.g. TILESWEEPER_GAME_HAZARD_COUNT. DEVELOPMENT, APP_PORT
// and APP_BASE_PATH are honored as well.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range map[string]string{
		"development": "DEVELOPMENT",
		"port":        "APP_PORT",
		"base_path":   "APP_BASE_PATH",
	} {
		envKey := envPrefix + "_" + strings.ToUpper(key)
		if err := v.BindEnv(key, envKey, legacy); err != nil {
			return nil, fmt.Errorf("unable to bind env %s: %w", legacy, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("unable to bind flag %s: %w", name, err)
			}
		}

		if path, err := fs.GetString("config"); err == nil && path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("unable to read config %s: %w", path, err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if c.BasePath != "" && (!strings.HasPrefix(c.BasePath, "/") || strings.HasSuffix(c.BasePath, "/")) {
		return fmt.Errorf("base path %q must start with '/' and not end with one", c.BasePath)
	}
	if c.Sessions.Max <= 0 {
		return fmt.Errorf("sessions.max must be positive, got %d", c.Sessions.Max)
	}
	if err := c.Game.Board().Validate(); err != nil {
		return fmt.Errorf("invalid default game: %w", err)
	}
	return nil
}

// Fields flattens the config for logging.
func (c Config) Fields() map[string]any {
	return map[string]any{
		"development":       c.Development,
		"port":              c.Port,
		"base_path":         c.BasePath,
		"game":              c.Game.Board().String(),
		"log_file":          c.Log.File,
		"sessions_max":      c.Sessions.Max,
		"cors_allowed_from": c.Cors.AllowedOrigins,
	}
}
