package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultAPIURL = "https://nelai-lala-backend.vercel.app/api"

type Config struct {
	App    AppConfig
	API    APIConfig
	Logger LoggerConfig
}

type AppConfig struct {
	Env   string
	Theme string
	// ResyncCategories re-fetches the category list after every
	// successful category write instead of trusting the local merge.
	ResyncCategories bool
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	File              string
	DisableCaller     bool
	DisableStacktrace bool
}

// Load reads envFile (if present) into the environment, then builds the
// config from it. A missing env file is not an error.
func Load(envFile string) *Config {
	if envFile == "" {
		_ = godotenv.Load()
	} else {
		_ = godotenv.Load(envFile)
	}
	return LoadEnv()
}

func LoadEnv() *Config {
	return &Config{
		App: AppConfig{
			Env:              getEnv("APP_ENV", "dev"),
			Theme:            getEnv("MENUADMIN_THEME", "classic"),
			ResyncCategories: getEnvBool("MENUADMIN_RESYNC_CATEGORIES", false),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("MENUADMIN_API_URL", DefaultAPIURL), "/"),
			Timeout: getEnvDuration("MENUADMIN_HTTP_TIMEOUT", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			File:              getEnv("MENUADMIN_LOG_FILE", ""),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.App.Env) {
	case "dev", "development", "local":
		return true
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("30s") or a plain number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if i, err := strconv.Atoi(value); err == nil {
		return time.Duration(i) * time.Second
	}
	return fallback
}
