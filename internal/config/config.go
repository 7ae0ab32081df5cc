// Package config loads gesturegate configuration from TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ayusman/gesturegate/internal/classify"
)

// Config holds all gesturegate configuration.
type Config struct {
	ListenAddr   string `toml:"listen_addr"`
	DatabasePath string `toml:"database_path"`
	RecordingDir string `toml:"recording_dir"`

	Gate       GateConfig       `toml:"gate"`
	Classifier ClassifierConfig `toml:"classifier"`
}

// GateConfig holds defaults applied to new sessions.
type GateConfig struct {
	DefaultTarget  uint32 `toml:"default_target"`
	StableFrames   uint32 `toml:"stable_frames"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ClassifierConfig holds the extension heuristic thresholds.
type ClassifierConfig struct {
	YMargin    float64 `toml:"y_margin"`
	ThumbRatio float64 `toml:"thumb_ratio"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".gesturegate")

	return Config{
		ListenAddr:   ":8080",
		DatabasePath: filepath.Join(dataDir, "gesturegate.db"),
		RecordingDir: filepath.Join(dataDir, "recordings"),
		Gate: GateConfig{
			DefaultTarget:  3,
			StableFrames:   3,
			TimeoutSeconds: 30,
		},
		Classifier: ClassifierConfig{
			YMargin:    0.02,
			ThumbRatio: 1.1,
		},
	}
}

// Load reads config from path, falling back to the standard locations and
// finally to defaults when no file exists.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	paths := []string{path}
	if path == "" {
		paths = configPaths()
	}

	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "gesturegate", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "gesturegate", "config.toml"))
	}

	return paths
}

// ClassifierTuning converts the configured thresholds to a classifier config.
func (c Config) ClassifierTuning() classify.Config {
	tuning := classify.DefaultConfig()
	if c.Classifier.YMargin > 0 {
		tuning.YMargin = c.Classifier.YMargin
	}
	if c.Classifier.ThumbRatio > 0 {
		tuning.ThumbRatio = c.Classifier.ThumbRatio
	}
	return tuning
}
