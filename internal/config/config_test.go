package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(newFlags(t))
	if err != nil {
		t.Fatalf("Load returned an unexpected error: %v", err)
	}
	if cfg.DB != "preflopdrill.db" || cfg.LogLevel != "info" || cfg.GameType != "classic" || cfg.ReposDir != "repos" {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if cfg.Drill.AutoAdvance != time.Second || cfg.Drill.RevealOnMiss || cfg.Drill.Seed != 0 {
		t.Errorf("Unexpected drill defaults %+v", cfg.Drill)
	}
}

func TestLayering(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
db: file.db
log_level: debug
game_type: shortdeck
drill:
  auto_advance: 3s
  seed: 11
`)

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := Load(newFlags(t, "--config", path))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.DB != "file.db" || cfg.GameType != "shortdeck" || cfg.Drill.AutoAdvance != 3*time.Second || cfg.Drill.Seed != 11 {
			t.Errorf("Unexpected config %+v", cfg)
		}
		if cfg.ReposDir != "repos" {
			t.Errorf("Expected untouched keys to keep defaults, but got %q", cfg.ReposDir)
		}
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("PREFLOP_DB", "env.db")
		t.Setenv("PREFLOP_DRILL__AUTO_ADVANCE", "500ms")
		cfg, err := Load(newFlags(t, "--config", path))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.DB != "env.db" || cfg.Drill.AutoAdvance != 500*time.Millisecond || cfg.LogLevel != "debug" {
			t.Errorf("Unexpected config %+v", cfg)
		}
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("PREFLOP_DB", "env.db")
		cfg, err := Load(newFlags(t, "--config", path, "--db", "flag.db", "--reveal-on-miss"))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.DB != "flag.db" || !cfg.Drill.RevealOnMiss {
			t.Errorf("Unexpected config %+v", cfg)
		}
		if cfg.Drill.Seed != 11 {
			t.Errorf("Expected unset flags to leave the file value, but got %d", cfg.Drill.Seed)
		}
	})
}

func TestValidation(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(newFlags(t, "--game-type", "omaha"))
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("Expected a validation error, but got %v", err)
	}
}

func TestMissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load(newFlags(t, "--config", "nope.yaml")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func TestNilFlagSet(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.WriteFile(DefaultFile, []byte("repos_dir: packs\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ReposDir != "packs" {
		t.Errorf("Expected the default file to be read, but got %q", cfg.ReposDir)
	}
}
