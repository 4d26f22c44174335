// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Defaults applied when neither the config file nor the environment sets a value.
const (
	DefaultEmbeddingModel      = "text-embedding-3-small"
	DefaultEmbeddingDimensions = 1536
	DefaultEmbeddingBaseURL    = "https://api.openai.com/v1"
	DefaultNLPWeight           = 0.4
	DefaultLLMWeight           = 0.6
	DefaultTopN                = 10
	DefaultCacheCapacity       = 256
	DefaultListenAddr          = ":8080"
)

// Config holds every tunable of the recommendation engine. Fields can be set
// in a JSON file, overridden by environment variables, and finally by CLI
// flags.
type Config struct {
	// API access
	GeminiAPIKey    string `json:"gemini_api_key,omitempty"`
	EmbeddingAPIKey string `json:"embedding_api_key,omitempty"`
	DatabaseURL     string `json:"database_url,omitempty"`

	// Embedding service
	EmbeddingBaseURL    string `json:"embedding_base_url,omitempty" validate:"omitempty,url"`
	EmbeddingModel      string `json:"embedding_model,omitempty"`
	EmbeddingDimensions int    `json:"embedding_dimensions,omitempty" validate:"gte=0"`

	// Ranking
	NLPWeight float64 `json:"nlp_weight,omitempty" validate:"gte=0"`
	LLMWeight float64 `json:"llm_weight,omitempty" validate:"gte=0"`
	TopN      int     `json:"top_n,omitempty" validate:"gte=0"`
	ModelTier string  `json:"model_tier,omitempty" validate:"omitempty,oneof=lite standard advanced"`

	// Evaluation
	CacheCapacity int `json:"cache_capacity,omitempty" validate:"gte=0"`

	// Server
	ListenAddr string `json:"listen_addr,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads a JSON config file, applies environment overrides, fills in
// defaults, and validates the result. An empty path skips the file and uses
// environment plus defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables when set.
func (c *Config) applyEnv() {
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.EmbeddingAPIKey, "EMBEDDING_API_KEY")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.EmbeddingBaseURL, "EMBEDDING_BASE_URL")
	setString(&c.EmbeddingModel, "EMBEDDING_MODEL")
	setString(&c.ModelTier, "MODEL_TIER")
	setString(&c.ListenAddr, "LISTEN_ADDR")
	setInt(&c.EmbeddingDimensions, "EMBEDDING_DIMENSIONS")
	setInt(&c.TopN, "TOP_N")
	setInt(&c.CacheCapacity, "CACHE_CAPACITY")
	setFloat(&c.NLPWeight, "NLP_WEIGHT")
	setFloat(&c.LLMWeight, "LLM_WEIGHT")
}

func (c *Config) applyDefaults() {
	if c.EmbeddingBaseURL == "" {
		c.EmbeddingBaseURL = DefaultEmbeddingBaseURL
	}
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = DefaultEmbeddingModel
	}
	if c.EmbeddingDimensions == 0 {
		c.EmbeddingDimensions = DefaultEmbeddingDimensions
	}
	if c.NLPWeight == 0 && c.LLMWeight == 0 {
		c.NLPWeight = DefaultNLPWeight
		c.LLMWeight = DefaultLLMWeight
	}
	if c.TopN == 0 {
		c.TopN = DefaultTopN
	}
	if c.CacheCapacity == 0 {
		c.CacheCapacity = DefaultCacheCapacity
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
}

// Validate checks value ranges. Missing credentials are not an error here;
// the engine degrades per component (no Gemini key means default verdicts).
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("config error: field %s failed %q validation", first.Field(), first.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

func setString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func setInt(target *int, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func setFloat(target *float64, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			*target = parsed
		}
	}
}
