package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/bilgisen/gamenews/internal/newsapi"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port" validate:"required,numeric"`
	Env             string        `json:"env" validate:"oneof=development production test"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`
	HTTPTimeout     time.Duration `json:"http_timeout" validate:"gt=0"`
	SiteURL         string        `json:"site_url" validate:"omitempty,url"`

	// NewsAPI configuration
	NewsAPIURL      string        `json:"news_api_url" validate:"required,url"`
	NewsAPIKey      string        `json:"-"`
	NewsQuery       string        `json:"news_query" validate:"required"`
	NewsFrom        string        `json:"news_from"`
	NewsSortBy      string        `json:"news_sort_by" validate:"oneof=relevancy popularity publishedAt"`
	NewsLanguage    string        `json:"news_language" validate:"omitempty,len=2"`
	NewsPageSize    int           `json:"news_page_size" validate:"min=1,max=100"`
	NewsHTTPTimeout time.Duration `json:"news_http_timeout" validate:"gt=0"`

	// Presentation
	ItemsPerPage  int    `json:"items_per_page" validate:"min=1,max=100"`
	SearchEnabled bool   `json:"search_enabled"`
	TimeZone      string `json:"timezone" validate:"required"`

	// Redis configuration. Empty RedisURL selects the in-memory cache.
	RedisURL    string        `json:"redis_url" validate:"omitempty,url"`
	RedisPrefix string        `json:"redis_prefix"`
	CacheTTL    time.Duration `json:"cache_ttl" validate:"gte=0"`

	// Static export
	OutputPath string `json:"output_path" validate:"required"`

	// CloudFlare R2 Configuration
	R2Endpoint  string `json:"r2_endpoint" validate:"omitempty,url"`
	R2AccessKey string `json:"-"`
	R2SecretKey string `json:"-"`
	R2Bucket    string `json:"r2_bucket"`
	R2AccountID string `json:"r2_account_id"`
	R2Prefix    string `json:"r2_prefix"`

	// Logging
	LogLevel  string `json:"log_level" validate:"oneof=debug info warn error fatal panic disabled"`
	LogFile   string `json:"log_file"`
	LogPretty bool   `json:"log_pretty"`

	// Security
	AdminAPIKey string `json:"-"`
}

// Load loads configuration from environment variables and validates it
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		SiteURL:         getEnv("SITE_URL", "http://localhost:8080"),

		// NewsAPI configuration
		NewsAPIURL:      getEnv("NEWS_API_URL", "https://newsapi.org"),
		NewsAPIKey:      getEnv("NEWS_API_KEY", ""),
		NewsQuery:       getEnv("NEWS_QUERY", "Elden ring"),
		NewsFrom:        getEnv("NEWS_FROM", "2023"),
		NewsSortBy:      getEnv("NEWS_SORT_BY", "popularity"),
		NewsLanguage:    getEnv("NEWS_LANGUAGE", "pt"),
		NewsPageSize:    getEnvAsInt("NEWS_PAGE_SIZE", 100),
		NewsHTTPTimeout: getEnvAsDuration("NEWS_HTTP_TIMEOUT", 15*time.Second),

		// Presentation
		ItemsPerPage:  getEnvAsInt("ITEMS_PER_PAGE", 5),
		SearchEnabled: getEnvAsBool("SEARCH_ENABLED", true),
		TimeZone:      getEnv("TIMEZONE", "America/Sao_Paulo"),

		// Redis configuration
		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_PREFIX", "game-news:"),
		CacheTTL:    getEnvAsDuration("CACHE_TTL", time.Hour),

		// Static export
		OutputPath: getEnv("OUTPUT_PATH", "./out"),

		// CloudFlare R2 Configuration
		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "game-news"),
		R2AccountID: getEnv("CLOUDFLARE_ACCOUNT_ID", ""),
		R2Prefix:    getEnv("R2_PREFIX", ""),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFile:   getEnv("LOG_FILE", ""),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),

		// Security
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the struct tags and the settings that depend on each other
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.TimeZone, err)
	}
	if c.R2Enabled() && c.R2Endpoint == "" && c.R2AccountID == "" {
		return fmt.Errorf("R2 credentials set but neither R2_ENDPOINT nor CLOUDFLARE_ACCOUNT_ID is configured")
	}
	return nil
}

// NewsAPI returns the settings for the NewsAPI client
func (c *Config) NewsAPI() newsapi.Config {
	return newsapi.Config{
		BaseURL:  c.NewsAPIURL,
		APIKey:   c.NewsAPIKey,
		Query:    c.NewsQuery,
		From:     c.NewsFrom,
		SortBy:   c.NewsSortBy,
		Language: c.NewsLanguage,
		PageSize: c.NewsPageSize,
		Timeout:  c.NewsHTTPTimeout,
	}
}

// Location returns the time zone used to render publication dates
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// R2Enabled reports whether uploads to R2 are configured
func (c *Config) R2Enabled() bool {
	return c.R2AccessKey != "" && c.R2SecretKey != "" && c.R2Bucket != ""
}

// R2EndpointURL returns the S3-compatible endpoint for the bucket
func (c *Config) R2EndpointURL() string {
	if c.R2Endpoint != "" {
		return c.R2Endpoint
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.R2AccountID)
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %t", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
