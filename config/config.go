package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	crawlerrors "sjsage522/licitacaoworker/pkg/errors"
)

// DefaultRootURL is the first page of the SUPEL procurement listing
const DefaultRootURL = "https://rondonia.ro.gov.br/supel/licitacoes/page/1/"

// Config represents the application configuration
type Config struct {
	// Crawl configuration
	RootURL           string
	HTTPTimeout       time.Duration
	SkipFailedDetails bool
	Location          *time.Location
	SelectorsFile     string

	// Output configuration
	OutputFormat string
	OutputFile   string

	// Memcache configuration, empty address disables the rate limit guard
	MemcacheAddr   string
	RateLimitBlock time.Duration

	// Redis configuration
	PublishEnabled       bool
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Environment
	Environment string

	locationErr error
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	timeout, _ := strconv.Atoi(getEnv("HTTP_TIMEOUT_SECONDS", "10"))
	block, _ := strconv.Atoi(getEnv("RATE_LIMIT_BLOCK_SECONDS", "300"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	maxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "10000"))

	locName := getEnv("LOCATION", "America/Porto_Velho")
	loc, locErr := time.LoadLocation(locName)
	if locErr != nil {
		locErr = crawlerrors.NewConfiguration(fmt.Sprintf("invalid LOCATION %q", locName), locErr)
	}

	return &Config{
		RootURL:              getEnv("ROOT_URL", DefaultRootURL),
		HTTPTimeout:          time.Duration(timeout) * time.Second,
		SkipFailedDetails:    getBool("SKIP_FAILED_DETAILS", false),
		Location:             loc,
		SelectorsFile:        os.Getenv("SELECTORS_FILE"),
		OutputFormat:         strings.ToLower(getEnv("OUTPUT_FORMAT", "json")),
		OutputFile:           os.Getenv("OUTPUT_FILE"),
		MemcacheAddr:         os.Getenv("MEMCACHE_ADDR"),
		RateLimitBlock:       time.Duration(block) * time.Second,
		PublishEnabled:       getBool("PUBLISH_ENABLED", false),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "licitacoes"),
		RedisStreamMaxLength: maxLen,
		Environment:          getEnv("LICITACAO_ENVIRONMENT", "development"),
		locationErr:          locErr,
	}
}

// Validate checks the configuration for values the crawl cannot run with
func (c *Config) Validate() error {
	if c.locationErr != nil {
		return c.locationErr
	}
	if c.Location == nil {
		return crawlerrors.NewConfiguration("LOCATION must be set", nil)
	}
	u, err := url.Parse(c.RootURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return crawlerrors.NewConfiguration(fmt.Sprintf("invalid ROOT_URL %q", c.RootURL), err)
	}
	if c.HTTPTimeout <= 0 {
		return crawlerrors.NewConfiguration("HTTP_TIMEOUT_SECONDS must be positive", nil)
	}
	switch c.OutputFormat {
	case "json", "yaml", "table":
	default:
		return crawlerrors.NewConfiguration(fmt.Sprintf("unknown OUTPUT_FORMAT %q", c.OutputFormat), nil)
	}
	if c.MemcacheAddr != "" && c.RateLimitBlock <= 0 {
		return crawlerrors.NewConfiguration("RATE_LIMIT_BLOCK_SECONDS must be positive", nil)
	}
	if c.PublishEnabled {
		if c.RedisAddr == "" || c.RedisStream == "" {
			return crawlerrors.NewConfiguration("publishing requires REDIS_ADDR and REDIS_STREAM", nil)
		}
		if c.RedisStreamMaxLength <= 0 {
			return crawlerrors.NewConfiguration("REDIS_STREAM_MAX_LENGTH must be positive", nil)
		}
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}
