package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"sound-rewind/internal/analytics"
)

// Config holds all application configuration loaded from environment variables
type Config struct {
	// Database configuration
	DatabasePath string

	// Upstream music platform API
	PlatformAPIBaseURL   string
	PlatformClientID     string
	PlatformClientSecret string
	PlatformTokenURL     string
	PlatformRateLimit    float64 // requests per second
	PlatformRateBurst    int

	// Server configuration
	ServerPort string

	// Wrapped summary serving
	SummaryCacheTTL time.Duration
	RefreshInterval time.Duration

	// Engine tunables
	Engine analytics.Config
}

// Load reads configuration from environment variables and returns a Config instance
func Load() (*Config, error) {
	cfg := &Config{
		DatabasePath: getEnvOrDefault("DATABASE_PATH", "./data/sound-rewind.db"),

		PlatformAPIBaseURL:   getEnvOrDefault("PLATFORM_API_BASE_URL", "https://api.soundcloud.com"),
		PlatformClientID:     os.Getenv("PLATFORM_CLIENT_ID"),
		PlatformClientSecret: os.Getenv("PLATFORM_CLIENT_SECRET"),
		PlatformTokenURL:     getEnvOrDefault("PLATFORM_TOKEN_URL", "https://secure.soundcloud.com/oauth/token"),

		ServerPort: getEnvOrDefault("SERVER_PORT", "8080"),

		Engine: analytics.DefaultConfig(),
	}

	rateLimit, err := strconv.ParseFloat(getEnvOrDefault("PLATFORM_RATE_LIMIT", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PLATFORM_RATE_LIMIT format: %w", err)
	}
	cfg.PlatformRateLimit = rateLimit

	rateBurst, err := strconv.Atoi(getEnvOrDefault("PLATFORM_RATE_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid PLATFORM_RATE_BURST format: %w", err)
	}
	cfg.PlatformRateBurst = rateBurst

	cacheTTL, err := time.ParseDuration(getEnvOrDefault("SUMMARY_CACHE_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUMMARY_CACHE_TTL format: %w", err)
	}
	cfg.SummaryCacheTTL = cacheTTL

	refreshInterval, err := time.ParseDuration(getEnvOrDefault("REFRESH_INTERVAL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL format: %w", err)
	}
	cfg.RefreshInterval = refreshInterval

	// Engine tunables, all optional with engine defaults
	if err := loadEngineOverrides(&cfg.Engine); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEngineOverrides applies environment overrides for the engine's
// tunable thresholds. Badge ladders stay code-defined; only scalar
// thresholds are operator-tunable.
func loadEngineOverrides(engine *analytics.Config) error {
	if v := os.Getenv("UNDERGROUND_FOLLOWER_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid UNDERGROUND_FOLLOWER_THRESHOLD format: %w", err)
		}
		engine.UndergroundFollowerThreshold = n
	}
	if v := os.Getenv("BREAKOUT_PLAYBACK_THRESHOLD"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid BREAKOUT_PLAYBACK_THRESHOLD format: %w", err)
		}
		engine.BreakoutPlaybackThreshold = n
	}
	if v := os.Getenv("TRENDING_REPOST_THRESHOLD"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TRENDING_REPOST_THRESHOLD format: %w", err)
		}
		engine.TrendingRepostThreshold = n
	}
	if v := os.Getenv("EARLY_ADOPTER_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid EARLY_ADOPTER_WINDOW format: %w", err)
		}
		engine.EarlyAdopterWindow = d
	}
	if v := os.Getenv("VISIONARY_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid VISIONARY_WINDOW format: %w", err)
		}
		engine.VisionaryWindow = d
	}
	return nil
}

// Validate checks that all required configuration values are present and valid
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH cannot be empty")
	}
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}
	if c.PlatformRateLimit <= 0 {
		return fmt.Errorf("PLATFORM_RATE_LIMIT must be positive, got %f", c.PlatformRateLimit)
	}
	if c.PlatformRateBurst <= 0 {
		return fmt.Errorf("PLATFORM_RATE_BURST must be positive, got %d", c.PlatformRateBurst)
	}
	if c.SummaryCacheTTL <= 0 {
		return fmt.Errorf("SUMMARY_CACHE_TTL must be positive, got %s", c.SummaryCacheTTL)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL must be positive, got %s", c.RefreshInterval)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine config: %w", err)
	}
	return nil
}

// LogConfiguration logs all loaded configuration values, excluding secrets
func (c *Config) LogConfiguration() {
	log.Println("=== Application Configuration ===")
	log.Printf("Database Path: %s", c.DatabasePath)
	log.Printf("Platform API: %s", c.PlatformAPIBaseURL)
	log.Printf("Platform Client ID: %s", maskSecret(c.PlatformClientID))
	log.Printf("Server Port: %s", c.ServerPort)
	log.Printf("Summary Cache TTL: %s", c.SummaryCacheTTL)
	log.Printf("Refresh Interval: %s", c.RefreshInterval)
	log.Printf("Underground Threshold: %d followers", c.Engine.UndergroundFollowerThreshold)
	log.Printf("Breakout Threshold: %d plays", c.Engine.BreakoutPlaybackThreshold)
	log.Printf("Trending Threshold: %d reposts", c.Engine.TrendingRepostThreshold)

	if c.PlatformClientID == "" || c.PlatformClientSecret == "" {
		log.Println("WARNING: PLATFORM_CLIENT_ID or PLATFORM_CLIENT_SECRET not set - upstream sync will be unavailable")
	}

	log.Println("=================================")
}

// getEnvOrDefault returns the environment variable value or a default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// maskSecret masks a secret string for logging, showing only first 4 characters
func maskSecret(secret string) string {
	if secret == "" {
		return "[not set]"
	}
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:4] + "****"
}
