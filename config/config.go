package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBUrl string
	// StoreDriver selects the entity store: postgres or memory
	StoreDriver      string
	DBConnectRetries int
	// Token verification
	JWTSecret string
	JWTIssuer string
	// Redis configuration
	RedisURL      string
	RedisPassword string
	// Kafka configuration, events are discarded when no brokers are set
	KafkaBrokers []string
	KafkaTopic   string
	// Logging
	LogLevel string
	LogJSON  bool
	LogFile  string
	// HTTP
	CORSAllowedOrigins    []string
	RequestTimeoutSeconds int
	MaxConcurrentRequests int
	// Rate limiting configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Business rules
	InterviewQuota int
}

func LoadConfig() (*Config, error) {
	// .env only exists locally; production relies on the environment
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DBUrl:            getEnv("DATABASE_URL", ""),
		StoreDriver:      strings.ToLower(getEnv("STORE_DRIVER", "postgres")),
		DBConnectRetries: getEnvInt("DB_CONNECT_RETRIES", 5),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTIssuer:        getEnv("JWT_ISSUER", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:     getEnvList("KAFKA_BROKERS", nil),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "interview-events"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogJSON:          getEnvBool("LOG_JSON", true),
		LogFile:          getEnv("LOG_FILE", ""),
		// HTTP limits (with sensible defaults)
		CORSAllowedOrigins:    getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RequestTimeoutSeconds: getEnvInt("REQUEST_TIMEOUT_SECONDS", 15),
		MaxConcurrentRequests: getEnvInt("MAX_CONCURRENT_REQUESTS", 200),
		// Rate limiting configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),    // 1 minute window
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100), // 100 requests per window
		InterviewQuota:           getEnvInt("INTERVIEW_QUOTA", 3),
	}

	cfg.RequestTimeoutSeconds = positive("REQUEST_TIMEOUT_SECONDS", cfg.RequestTimeoutSeconds, 15)
	cfg.MaxConcurrentRequests = positive("MAX_CONCURRENT_REQUESTS", cfg.MaxConcurrentRequests, 200)
	cfg.RateLimitWindowSeconds = positive("RATE_LIMIT_WINDOW_SECONDS", cfg.RateLimitWindowSeconds, 60)
	cfg.RateLimitGlobalThreshold = positive("RATE_LIMIT_GLOBAL_THRESHOLD", cfg.RateLimitGlobalThreshold, 100)
	cfg.InterviewQuota = positive("INTERVIEW_QUOTA", cfg.InterviewQuota, 3)

	if cfg.StoreDriver == "postgres" && cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Every authenticated route will answer 401.")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// positive returns value, or fallback with a warning when value is not above zero
func positive(key string, value, fallback int) int {
	if value > 0 {
		return value
	}
	log.Printf("WARNING: %s must be greater than 0, got %d. Using %d.", key, value, fallback)
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blank entries
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
