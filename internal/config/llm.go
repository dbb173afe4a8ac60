package config

import "os"

// LLMConfig holds configuration for the LLM question generator
type LLMConfig struct {
	APIKey      string  `json:"-"` // Never serialize
	BaseURL     string  `json:"baseUrl"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
	TimeoutMS   int     `json:"timeoutMs"`
}

// DefaultLLMConfig returns the default LLM configuration
func DefaultLLMConfig() *LLMConfig {
	return &LLMConfig{
		APIKey:      os.Getenv("OPENAI_API_KEY"),
		BaseURL:     os.Getenv("OPENAI_BASE_URL"), // empty means the library default
		Model:       getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		Temperature: 0.7,
		MaxTokens:   2000,
		TimeoutMS:   30000,
	}
}

// IsEnabled returns true if the LLM API is configured
func (c *LLMConfig) IsEnabled() bool {
	return c.APIKey != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
