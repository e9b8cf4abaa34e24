package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Port           string        `mapstructure:"port"`
	Provider       string        `mapstructure:"provider"`
	AIEndpoint     string        `mapstructure:"ai_endpoint"`
	ChatModel      string        `mapstructure:"chat_model"`
	EmbeddingModel string        `mapstructure:"embedding_model"`
	GoogleAPIKey   string        `mapstructure:"GOOGLE_API_KEY"`
	OpenAIAPIKey   string        `mapstructure:"OPENAI_API_KEY"`
	UploadDir      string        `mapstructure:"upload_dir"`
	MaxChunkSize   int           `mapstructure:"max_chunk_size"`
	OverlapSize    int           `mapstructure:"overlap_size"`
	TopK           int           `mapstructure:"top_k"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	MaxUploadSize  int64         `mapstructure:"max_upload_size"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("port", "8000")
	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("chat_model", "gemini-2.5-flash")
	v.SetDefault("embedding_model", "text-embedding-004")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("max_chunk_size", 1000)
	v.SetDefault("overlap_size", 200)
	v.SetDefault("top_k", 5)
	v.SetDefault("request_timeout", 60*time.Second)
	v.SetDefault("session_ttl", 2*time.Hour)
	v.SetDefault("max_upload_size", int64(20<<20))

	v.AutomaticEnv()
	v.BindEnv("GOOGLE_API_KEY")
	v.BindEnv("OPENAI_API_KEY")

	// Config file is optional: defaults plus environment are enough to run.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			if !strings.Contains(err.Error(), "no such file") {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// GoogleAPIKeys splits GOOGLE_API_KEY on commas so several keys can be
// rotated through when one hits its quota.
func (c *Config) GoogleAPIKeys() []string {
	if c.GoogleAPIKey == "" {
		return nil
	}
	parts := strings.Split(c.GoogleAPIKey, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}

// APIKeyConfigured reports whether the credential for the selected provider
// is present. Used by the health endpoint.
func (c *Config) APIKeyConfigured() bool {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIAPIKey != ""
	}
	return c.GoogleAPIKey != ""
}
