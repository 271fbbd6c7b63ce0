package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config.yaml"

// Load resolves the YAML path from CONFIG_PATH and delegates to LoadFile.
// When CONFIG_PATH is unset and ./config.yaml is absent, only environment
// variables and env-default tags are used.
func Load() (*Config, error) {
	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || path == "" {
		if _, err := os.Stat(defaultConfigPath); errors.Is(err, fs.ErrNotExist) {
			return finish(cleanenv.ReadEnv, "read env")
		}
		path = defaultConfigPath
	}
	return LoadFile(path)
}

// LoadFile reads path, overlays environment variables and validates the
// result. Priority is ENV > YAML > env-default.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	}
	return finish(func(cfg any) error {
		return cleanenv.ReadConfig(path, cfg)
	}, "read "+path)
}

func finish(read func(cfg any) error, stage string) (*Config, error) {
	var cfg Config
	if err := read(&cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", stage, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
