package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvSummarizerURL  = "PAGELENS_SUMMARIZER_URL"
	EnvSummarizerType = "PAGELENS_SUMMARIZER_TYPE"
	EnvListenAddr     = "PAGELENS_LISTEN_ADDR"
	EnvLogLevel       = "PAGELENS_LOG_LEVEL"
)

// Summarizer types.
const (
	SummarizerRemote    = "remote"
	SummarizerFrequency = "frequency"
)

// AnalysisConfig tunes keyword extraction and chunking.
type AnalysisConfig struct {
	MaxKeywords         int `yaml:"max_keywords"`
	MinCount            int `yaml:"min_count"`
	ChunkWordSize       int `yaml:"chunk_word_size"`
	CandidatePoolFactor int `yaml:"candidate_pool_factor"`
}

// SummarizerConfig selects and configures the summarizer.
type SummarizerConfig struct {
	Type         string `yaml:"type"`
	URL          string `yaml:"url"`
	TimeoutSecs  int    `yaml:"timeout_secs"`
	MaxRetries   int    `yaml:"max_retries"`
	Concurrency  int    `yaml:"concurrency"`
	MaxSentences int    `yaml:"max_sentences"`
}

// Timeout returns the per-request timeout as a duration.
func (c SummarizerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	ListenAddr    string `yaml:"listen_addr"`
	MaxInputChars int    `yaml:"max_input_chars"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	// Keys absent from the file keep their default values.
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(cfg)
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/pagelens/config.yaml.
// If neither exists, it writes defaults to ~/.config/pagelens/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnv(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects values no component can work with.
func (c *AppConfig) Validate() error {
	switch c.Summarizer.Type {
	case SummarizerRemote, SummarizerFrequency:
	default:
		return fmt.Errorf("unknown summarizer type %q", c.Summarizer.Type)
	}
	if c.Analysis.MaxKeywords < 0 || c.Analysis.MinCount < 0 || c.Analysis.ChunkWordSize < 0 {
		return errors.New("analysis values must not be negative")
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pagelens", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Analysis: AnalysisConfig{MaxKeywords: 5, MinCount: 5, ChunkWordSize: 1000, CandidatePoolFactor: 5},
		Summarizer: SummarizerConfig{
			Type:         SummarizerRemote,
			URL:          "http://127.0.0.1:8000/analyze",
			TimeoutSecs:  60,
			MaxRetries:   2,
			Concurrency:  1,
			MaxSentences: 3,
		},
		Server:  ServerConfig{ListenAddr: "127.0.0.1:8000", MaxInputChars: 16000},
		Logging: LoggingConfig{Level: "info"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Analysis.MaxKeywords == 0 {
		cfg.Analysis.MaxKeywords = def.Analysis.MaxKeywords
	}
	if cfg.Analysis.MinCount == 0 {
		cfg.Analysis.MinCount = def.Analysis.MinCount
	}
	if cfg.Analysis.ChunkWordSize == 0 {
		cfg.Analysis.ChunkWordSize = def.Analysis.ChunkWordSize
	}
	if cfg.Analysis.CandidatePoolFactor <= 0 {
		cfg.Analysis.CandidatePoolFactor = def.Analysis.CandidatePoolFactor
	}
	if cfg.Summarizer.Type == "" {
		cfg.Summarizer.Type = def.Summarizer.Type
	}
	cfg.Summarizer.Type = strings.ToLower(cfg.Summarizer.Type)
	if cfg.Summarizer.URL == "" {
		cfg.Summarizer.URL = def.Summarizer.URL
	}
	if cfg.Summarizer.TimeoutSecs == 0 {
		cfg.Summarizer.TimeoutSecs = def.Summarizer.TimeoutSecs
	}
	if cfg.Summarizer.Concurrency <= 0 {
		cfg.Summarizer.Concurrency = def.Summarizer.Concurrency
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = def.Summarizer.MaxSentences
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = def.Server.ListenAddr
	}
	if cfg.Server.MaxInputChars == 0 {
		cfg.Server.MaxInputChars = def.Server.MaxInputChars
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv(EnvSummarizerURL); v != "" {
		cfg.Summarizer.URL = v
	}
	if v := os.Getenv(EnvSummarizerType); v != "" {
		cfg.Summarizer.Type = strings.ToLower(v)
	}
	if v := os.Getenv(EnvListenAddr); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
}
