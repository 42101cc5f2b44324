package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-gamedash/components/game"
)

type fileConfig struct {
	Addr      string              `yaml:"addr"`
	BasePath  string              `yaml:"base_path"`
	SeedPath  string              `yaml:"seed"`
	Buffer    int                 `yaml:"broadcast_buffer"`
	Journal   journalConfig       `yaml:"journal"`
	Analytics analyticsConfig     `yaml:"analytics"`
	Producers game.ProducerConfig `yaml:"producers"`
}

type journalConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Digest bool   `yaml:"digest"`
}

type analyticsConfig struct {
	BaseURL string  `yaml:"base_url"`
	APIKey  string  `yaml:"api_key"`
	Jitter  float64 `yaml:"jitter"`
}

func defaultConfig() fileConfig {
	return fileConfig{
		Addr:      ":9876",
		BasePath:  "/game",
		Buffer:    16,
		Producers: game.DefaultProducerConfig(),
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return cfg, fmt.Errorf("gamectl: open config: %w", err)
	}
	defer f.Close()
	return decodeConfig(f, cfg)
}

func decodeConfig(r io.Reader, cfg fileConfig) (fileConfig, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("gamectl: parse config: %w", err)
	}
	cfg.Producers = cfg.Producers.WithDefaults()
	if cfg.Buffer <= 0 {
		cfg.Buffer = 16
	}
	return cfg, nil
}

// loadSeed returns the snapshot at path, or the built-in seed.
func loadSeed(path string) (*game.State, error) {
	if path == "" {
		return game.DefaultSeed(), nil
	}
	doc, err := game.ReadSeed(path)
	if err != nil {
		return nil, err
	}
	return doc.Snapshot(), nil
}
