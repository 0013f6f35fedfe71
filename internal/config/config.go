package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds service configuration. Every collaborator is optional: an
// empty URL disables that collaborator and the pipeline falls back to its
// default (empty transcript, neutral emotion).
type Config struct {
	LogLevel string `yaml:"log_level"`

	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Transcription struct {
		URL            string        `yaml:"url"`
		TimeoutSeconds int           `yaml:"timeout_seconds"`
		Timeout        time.Duration `yaml:"-"`
	} `yaml:"transcription"`

	Emotion struct {
		URL            string        `yaml:"url"`
		TimeoutSeconds int           `yaml:"timeout_seconds"`
		Timeout        time.Duration `yaml:"-"`
	} `yaml:"emotion"`

	Paths struct {
		Exercises  string `yaml:"exercises"`
		Benchmarks string `yaml:"benchmarks"`
	} `yaml:"paths"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.LogLevel = "info"
	cfg.Server.Port = "8080"
	cfg.Transcription.TimeoutSeconds = 30
	cfg.Emotion.TimeoutSeconds = 15
	cfg.Paths.Exercises = "exercises.xlsx"
	cfg.Paths.Benchmarks = "benchmarks"
	return cfg
}

// Load reads the yaml file at path (skipped when path is empty or missing),
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.Transcription.TimeoutSeconds <= 0 {
		cfg.Transcription.TimeoutSeconds = 30
	}
	if cfg.Emotion.TimeoutSeconds <= 0 {
		cfg.Emotion.TimeoutSeconds = 15
	}
	cfg.Transcription.Timeout = time.Duration(cfg.Transcription.TimeoutSeconds) * time.Second
	cfg.Emotion.Timeout = time.Duration(cfg.Emotion.TimeoutSeconds) * time.Second

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("TRANSCRIBE_URL"); v != "" {
		c.Transcription.URL = v
	}
	if v := os.Getenv("EMOTION_URL"); v != "" {
		c.Emotion.URL = v
	}
	if v := os.Getenv("EXERCISES_PATH"); v != "" {
		c.Paths.Exercises = v
	}
	if v := os.Getenv("BENCHMARKS_PATH"); v != "" {
		c.Paths.Benchmarks = v
	}
	if v := os.Getenv("TRANSCRIBE_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Transcription.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("EMOTION_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Emotion.TimeoutSeconds = n
		}
	}
}
