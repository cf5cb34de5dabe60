package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For cache TTL

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	JWTSecret      string        // JWT secret key
	RedisAddr      string        // Redis server address, empty disables caching
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	IsProd         bool          // Is production environment
	ToursPerPage   int           // Page size of the tour listing
	TravelsPerPage int           // Page size of the travel listing
	CacheTTL       time.Duration // Lifetime of cached listing responses
	RabbitMQURL    string        // Broker URL, empty disables event publishing
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:        envOr("APP_PORT", "8080"),           // Application port
		DBUser:         os.Getenv("DB_USER"),                // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),            // Database password
		DBHost:         envOr("DB_HOST", "127.0.0.1"),       // Database host
		DBPort:         envOr("DB_PORT", "3306"),            // Database port
		DBName:         os.Getenv("DB_NAME"),                // Database name
		JWTSecret:      os.Getenv("JWT_SECRET"),             // JWT secret key
		RedisAddr:      os.Getenv("REDIS_ADDR"),             // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),             // Redis password
		RedisDB:        redisDB,                             // Redis database number
		IsProd:         os.Getenv("IS_PROD") == "true",      // Is production environment
		ToursPerPage:   positiveInt("TOURS_PER_PAGE", 15),   // Tours per page
		TravelsPerPage: positiveInt("TRAVELS_PER_PAGE", 15), // Travels per page
		CacheTTL:       time.Duration(positiveInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"), // Broker URL
	}
}

// DSN builds the MySQL data source name used by gorm
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&loc=UTC"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// positiveInt reads an integer variable, falling back when it is unset or not positive
func positiveInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
