package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Persistence: "memory" keeps records in process, "mongo" writes through to MongoDB.
	Persistence  string `mapstructure:"PERSISTENCE"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB      int           `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB      int           `mapstructure:"REDIS_QUEUE_DB"`
	ReasoningCacheTTL time.Duration `mapstructure:"REASONING_CACHE_TTL"`
	ReasoningCache    bool          `mapstructure:"REASONING_CACHE_ENABLED"`

	FollowUpQueueEnabled bool `mapstructure:"FOLLOW_UP_QUEUE_ENABLED"`

	// Shared secret of the auth service that signs console role tokens.
	RoleTokenSecret string `mapstructure:"ROLE_TOKEN_SECRET"`

	SLADigestSchedule string `mapstructure:"SLA_DIGEST_SCHEDULE"`
	RecentAuditLimit  int    `mapstructure:"RECENT_AUDIT_LIMIT"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("PERSISTENCE", "memory")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "bookingops")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("REASONING_CACHE_TTL", "24h")
	viper.SetDefault("REASONING_CACHE_ENABLED", false)
	viper.SetDefault("FOLLOW_UP_QUEUE_ENABLED", false)
	viper.SetDefault("ROLE_TOKEN_SECRET", "")
	viper.SetDefault("SLA_DIGEST_SCHEDULE", "@every 15m")
	viper.SetDefault("RECENT_AUDIT_LIMIT", 40)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

func UsesMongo() bool {
	return AppConfig.Persistence == "mongo"
}
