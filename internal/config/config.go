package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	MaxWorkers   int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LogFormat    string
	LogLevel     string

	// Document extraction backend (structured path)
	UseDocScan        bool
	DocScanAPIKey     string
	DocScanAPIURL     string
	DocScanModelID    string
	DocScanTimeout    time.Duration
	DocScanCategories []string

	// Text recognition backend (raw-OCR path)
	OCRBaseURL string
	OCRTimeout time.Duration

	// Image storage for the raw-OCR path
	S3Endpoint        string
	S3AccessKeyID     string
	S3AccessKeySecret string
	S3Bucket          string
	S3Region          string

	// Pantry store
	PostgresDBURL string
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file. Using environment variables.")
	}

	config := &Config{
		// Server configuration
		Port:         getEnvInt("PORT", 8080),
		MaxWorkers:   getEnvInt("MAX_WORKERS", 5),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 120)) * time.Second,
		LogFormat:    getEnvString("LOG_FORMAT", "json"),
		LogLevel:     getEnvString("LOG_LEVEL", "info"),

		// Document extraction backend
		UseDocScan:        getEnvBool("USE_DOCSCAN", false),
		DocScanAPIKey:     os.Getenv("DOCSCAN_API_KEY"),
		DocScanAPIURL:     getEnvString("DOCSCAN_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		DocScanModelID:    getEnvString("DOCSCAN_MODEL_ID", "meta-llama/llama-3.2-11b-vision-instruct:free"),
		DocScanTimeout:    time.Duration(getEnvInt("DOCSCAN_TIMEOUT", 60)) * time.Second,
		DocScanCategories: getEnvStringSlice("DOCSCAN_CATEGORY_HINTS", []string{"grocery", "supermarket"}),

		// Text recognition backend
		OCRBaseURL: getEnvString("OCR_BASE_URL", "http://localhost:8090"),
		OCRTimeout: time.Duration(getEnvInt("OCR_TIMEOUT", 120)) * time.Second,

		// Image storage
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3AccessKeySecret: os.Getenv("S3_ACCESS_KEY_SECRET"),
		S3Bucket:          getEnvString("S3_BUCKET", "receipts"),
		S3Region:          getEnvString("S3_REGION", "us-east-1"),

		// Pantry store
		PostgresDBURL: os.Getenv("POSTGRES_DB_URL"),
	}

	validateConfig(config)

	return config, nil
}

// validateConfig checks if critical configuration values are set and logs warnings if they're missing
func validateConfig(config *Config) {
	if config.UseDocScan && config.DocScanAPIKey == "" {
		log.Println("Warning: USE_DOCSCAN is set but no document extraction API key provided. Scan requests will fail.")
	}

	if !config.UseDocScan && config.S3Endpoint == "" {
		log.Println("Warning: No S3 endpoint provided. Raw-OCR image uploads will fail.")
	}

	if config.PostgresDBURL == "" {
		log.Println("Warning: No Postgres URL provided. Falling back to the in-memory pantry store.")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean from an environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvStringSlice gets a string slice from a comma-separated environment variable
func getEnvStringSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	return strings.Split(valueStr, ",")
}
