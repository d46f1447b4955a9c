package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	GeminiAPIKey          string
	PrimaryModel          string
	FallbackModel         string
	DatabaseURL           string
	HTTPPort              string
	LogLevel              string
	MinResponseDelayMs    int
	MaxResponseJitterMs   int
	SuggestionSendDelayMs int
	DefaultTheme          string
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		PrimaryModel:          getEnv("GEMINI_PRIMARY_MODEL", "gemini-1.5-pro-latest"),
		FallbackModel:         getEnv("GEMINI_FALLBACK_MODEL", "gemini-1.5-flash-latest"),
		DatabaseURL:           getEnv("DATABASE_URL", "softshell.db"),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "INFO"),
		MinResponseDelayMs:    getEnvAsInt("MIN_RESPONSE_DELAY_MS", 1000),
		MaxResponseJitterMs:   getEnvAsInt("MAX_RESPONSE_JITTER_MS", 2000),
		SuggestionSendDelayMs: getEnvAsInt("SUGGESTION_SEND_DELAY_MS", 300),
		DefaultTheme:          getEnv("DEFAULT_THEME", "light"),
	}

	if AppConfig.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY is not set; the assistant will answer from canned responses only")
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
