package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Store backend names accepted in STORE_BACKEND.
const (
	StoreBackendFile     = "file"
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string

	// Store configuration
	StoreBackend  string // "file", "redis" or "postgres"
	DataDir       string // file backend
	DatabaseURL   string // postgres backend
	RedisAddr     string // redis backend
	RedisPassword string
	RedisDB       int

	// Bot configuration
	ProfileBotID        string
	SetupTimeoutSeconds int

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),

		// Store
		StoreBackend:  os.Getenv("STORE_BACKEND"),
		DataDir:       os.Getenv("DATA_DIR"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		// Bot settings with defaults
		ProfileBotID:        "270904126974590976", // Dank Memer
		SetupTimeoutSeconds: 120,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if botID := os.Getenv("PROFILE_BOT_ID"); botID != "" {
		config.ProfileBotID = botID
	}
	if timeout := os.Getenv("SETUP_TIMEOUT_SECONDS"); timeout != "" {
		if parsed, err := strconv.Atoi(timeout); err == nil && parsed > 0 {
			config.SetupTimeoutSeconds = parsed
		}
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if parsed, err := strconv.Atoi(db); err == nil {
			config.RedisDB = parsed
		}
	}

	if config.StoreBackend == "" {
		config.StoreBackend = StoreBackendFile
	}
	if config.DataDir == "" {
		config.DataDir = "./data"
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		switch config.StoreBackend {
		case StoreBackendFile:
		case StoreBackendRedis:
			if config.RedisAddr == "" {
				return nil, fmt.Errorf("REDIS_ADDR is required for the redis store backend")
			}
		case StoreBackendPostgres:
			if config.DatabaseURL == "" {
				return nil, fmt.Errorf("DATABASE_URL is required for the postgres store backend")
			}
		default:
			return nil, fmt.Errorf("unknown store backend: %s", config.StoreBackend)
		}
	}

	return config, nil
}
