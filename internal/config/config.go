// Package config loads settings from a YAML file, PREFLOP_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix   = "PREFLOP_"
	DefaultFile = "preflopdrill.yaml"
)

type Config struct {
	DB       string `koanf:"db" validate:"required"`
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`
	GameType string `koanf:"game_type" validate:"oneof=classic shortdeck"`
	ReposDir string `koanf:"repos_dir" validate:"required"`
	Drill    Drill  `koanf:"drill"`
}

type Drill struct {
	AutoAdvance  time.Duration `koanf:"auto_advance" validate:"gte=0"`
	RevealOnMiss bool          `koanf:"reveal_on_miss"`
	Seed         uint64        `koanf:"seed"`
}

var defaults = map[string]any{
	"db":                   "preflopdrill.db",
	"log_level":            "info",
	"game_type":            "classic",
	"repos_dir":            "repos",
	"drill.auto_advance":   time.Second,
	"drill.reveal_on_miss": false,
	"drill.seed":           uint64(0),
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"db":             "db",
	"log-level":      "log_level",
	"game-type":      "game_type",
	"repos-dir":      "repos_dir",
	"auto-advance":   "drill.auto_advance",
	"reveal-on-miss": "drill.reveal_on_miss",
	"seed":           "drill.seed",
}

// RegisterFlags adds the config flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file (default "+DefaultFile+" if present)")
	fs.String("db", "preflopdrill.db", "SQLite database file")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("game-type", "classic", "game type of new charts: classic or shortdeck")
	fs.String("repos-dir", "repos", "directory for cloned chart packs")
	fs.Duration("auto-advance", time.Second, "pause after a correct drill answer")
	fs.Bool("reveal-on-miss", false, "show the chart after a wrong drill answer")
	fs.Uint64("seed", 0, "shuffle seed for drills (0 picks one at random)")
}

var validate = validator.New()

// Load builds the configuration. fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")
	for key, v := range defaults {
		if err := k.Set(key, v); err != nil {
			return Config{}, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	path, explicit := "", false
	if fs != nil {
		if p, err := fs.GetString("config"); err == nil && p != "" {
			path, explicit = p, true
		}
	}
	if path == "" {
		path = DefaultFile
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	if fs != nil {
		provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(fs, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// envKey turns PREFLOP_DRILL__AUTO_ADVANCE into drill.auto_advance.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
