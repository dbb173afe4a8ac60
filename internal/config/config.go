package config

import "os"

// Config holds server configuration loaded from the environment
type Config struct {
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	HTTPPort    string
	QuizAPIKey  string
	QuizAPIBase string
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		MongoURI:    getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:     getEnv("MONGO_DB", "quizapp"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:    getEnv("PORT", "5000"),
		QuizAPIKey:  os.Getenv("QUIZAPI_KEY"),
		QuizAPIBase: getEnv("QUIZAPI_URL", "https://quizapi.io/api/v1"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
