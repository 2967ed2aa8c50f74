package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/km-arc/go-container/framework/validation"
)

// Config is the central typed configuration struct.
type Config struct {
	App     AppConfig
	Log     LogConfig
	Inspect InspectConfig
}

type AppConfig struct {
	Name            string
	Env             string // local | production | testing
	Debug           bool
	Port            string
	ShutdownTimeout time.Duration
}

// LogConfig drives framework/logging.
type LogConfig struct {
	Level     string // trace | debug | info | warn | error
	Format    string // json | console
	Timestamp bool
}

// InspectConfig controls the read-only registry endpoints.
type InspectConfig struct {
	Enabled bool
	Prefix  string
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:            Get("APP_NAME", "go-container"),
			Env:             Get("APP_ENV", "local"),
			Debug:           GetBool("APP_DEBUG", true),
			Port:            Get("APP_PORT", "8000"),
			ShutdownTimeout: time.Duration(GetInt("APP_SHUTDOWN_TIMEOUT", 10)) * time.Second,
		},
		Log: LogConfig{
			Level:     Get("LOG_LEVEL", "info"),
			Format:    Get("LOG_FORMAT", "console"),
			Timestamp: GetBool("LOG_TIMESTAMP", true),
		},
		Inspect: InspectConfig{
			Enabled: GetBool("INSPECT_ENABLED", true),
			Prefix:  Get("INSPECT_PREFIX", "/_container"),
		},
	}
}

// rules validated by Validate, keyed like the env sections.
var rules = validation.Rules{
	"app.name":       "required",
	"app.port":       "required|integer",
	"log.level":      "in:trace,debug,info,warn,error",
	"log.format":     "in:json,console",
	"inspect.prefix": "required|regex:^/",
}

// Validate checks values Load can not reject on its own, e.g. a typo in
// LOG_LEVEL. All failures are joined into one error.
func (c *Config) Validate() error {
	v := validation.Make(map[string]string{
		"app.name":       c.App.Name,
		"app.port":       c.App.Port,
		"log.level":      c.Log.Level,
		"log.format":     c.Log.Format,
		"inspect.prefix": c.Inspect.Prefix,
	}, rules)
	return v.Errors().Err()
}

// IsProduction reports whether App.Env is "production".
func (c *Config) IsProduction() bool { return c.App.Env == "production" }

// Addr is the listen address built from App.Port.
func (c *Config) Addr() string { return ":" + c.App.Port }

// Get returns the value of key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt is Get parsed as an int; unparsable values yield fallback.
func GetInt(key string, fallback int) int {
	i, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return i
}

// GetBool is Get parsed with strconv.ParseBool; unparsable values yield
// fallback.
func GetBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}
