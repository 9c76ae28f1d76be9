package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds all briefing configuration.
type Config struct {
	// WhatsApp number receiving the briefing, digits only.
	Destination string           `yaml:"destination"`
	Server      ServerConfig     `yaml:"server"`
	Summarizer  SummarizerConfig `yaml:"summarizer"`
	Logging     LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Addr       string   `yaml:"addr"`
	SessionTTL string   `yaml:"session_ttl"`
	Origins    []string `yaml:"allowed_origins"`
}

// SummarizerConfig configures the optional rewrite step. An empty APIKey
// keeps the step a pass-through even when Enabled is set.
type SummarizerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Provider string `yaml:"provider"` // gemini, openai
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func DefaultConfig() *Config {
	return &Config{
		Destination: "5511936200509",
		Server: ServerConfig{
			Addr:       ":8080",
			SessionTTL: "2h",
		},
		Summarizer: SummarizerConfig{
			Provider: ProviderGemini,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads an optional .env file, then the YAML file at path (a missing
// file is not an error), then applies environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("BRIEFING_DESTINATION"); ok && v != "" {
		c.Destination = v
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Server.Addr = ":" + v
	}
	if v, ok := lookup("BRIEFING_SUMMARIZE"); ok && v != "" {
		c.Summarizer.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v, ok := lookup("BRIEFING_SUMMARIZER_PROVIDER"); ok && v != "" {
		c.Summarizer.Provider = v
	}
	if c.Summarizer.APIKey == "" {
		keys := []string{"API_KEY", "GEMINI_API_KEY"}
		if c.Summarizer.Provider == ProviderOpenAI {
			keys = []string{"OPENAI_API_KEY", "API_KEY"}
		}
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				c.Summarizer.APIKey = v
				break
			}
		}
	}
	if v, ok := lookup("OPENAI_BASE_URL"); ok && v != "" && c.Summarizer.Provider == ProviderOpenAI && c.Summarizer.BaseURL == "" {
		c.Summarizer.BaseURL = v
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Destination) == "" {
		return errors.New("destination is required")
	}
	switch c.Summarizer.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown summarizer provider %q", c.Summarizer.Provider)
	}
	if _, err := c.Summarizer.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.Server.SessionTTLDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses Timeout. Empty means no timeout.
func (s SummarizerConfig) TimeoutDuration() (time.Duration, error) {
	return parseDuration("summarizer.timeout", s.Timeout)
}

func (s ServerConfig) SessionTTLDuration() (time.Duration, error) {
	return parseDuration("server.session_ttl", s.SessionTTL)
}

func parseDuration(name, v string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return d, nil
}
