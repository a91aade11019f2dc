package config

import (
	"log"
	"os"
	"strconv"

	"github.com/farhanm/taxilink/internal/pkg/models"
	"github.com/joho/godotenv"
)

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "taxilink")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Backend services config
	configs.Services.AuthServiceURL = GetEnv("AUTH_SERVICE_URL", "http://localhost:9990")
	configs.Services.OrderServiceURL = GetEnv("ORDER_SERVICE_URL", "http://localhost:9991")
	configs.Services.DriverServiceURL = GetEnv("DRIVER_SERVICE_URL", "http://localhost:9992")
	configs.Services.Timeout = GetEnvAsInt("SERVICES_TIMEOUT", 10)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 10)
	configs.Redis.Prefix = GetEnv("REDIS_PREFIX", "taxilink")

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// Channel config
	configs.Channel.AttachDelayMs = GetEnvAsInt("CHANNEL_ATTACH_DELAY_MS", 1500)
	configs.Channel.ReconnectDelaySec = GetEnvAsInt("CHANNEL_RECONNECT_DELAY_SEC", 5)

	// Session config
	configs.Session.SnapshotTTLHours = GetEnvAsInt("SESSION_SNAPSHOT_TTL_HOURS", 24)
	configs.Session.OfferCountdownSec = GetEnvAsInt("SESSION_OFFER_COUNTDOWN_SEC", 30)

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "")

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
