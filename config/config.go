package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds environment driven configuration values. Sensitive data
// (SMTP credentials, redis password) must come from the environment or a
// local config file, never from code.
type AppConfig struct {
	AppPort            string
	GinMode            string
	AllowedOrigins     []string
	RateLimitPerMinute int

	// Record store
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	// Password hashing
	BcryptCost int

	// Referral code gate
	RefCodeFile string

	// Operator error notification
	OperatorEmail string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPFrom      string
	SMTPFromName  string
	SMTPTLS       bool

	// Logging
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool

	// Shutdown: grace period for draining connections, and the hard ceiling
	// after which the process force-exits.
	ShutdownGraceSec int
	ShutdownKillSec  int
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once during
// boot. Precedence: config/config.json -> defaults -> environment overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	// A local .env file feeds the environment before overrides are read.
	_ = godotenv.Load()

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// jsonConfig mirrors AppConfig with the keys accepted in config/config.json.
type jsonConfig struct {
	AppPort            string   `json:"app_port"`
	GinMode            string   `json:"gin_mode"`
	AllowedOrigins     []string `json:"allowed_origins"`
	RateLimitPerMinute int      `json:"rate_limit_per_minute"`
	RedisHost          string   `json:"redis_host"`
	RedisPort          int      `json:"redis_port"`
	RedisDB            int      `json:"redis_db"`
	RedisPassword      string   `json:"redis_password"`
	BcryptCost         int      `json:"bcrypt_cost"`
	RefCodeFile        string   `json:"refcode_file"`
	OperatorEmail      string   `json:"operator_email"`
	SMTPHost           string   `json:"smtp_host"`
	SMTPPort           int      `json:"smtp_port"`
	SMTPUsername       string   `json:"smtp_username"`
	SMTPPassword       string   `json:"smtp_password"`
	SMTPFrom           string   `json:"smtp_from"`
	SMTPFromName       string   `json:"smtp_from_name"`
	SMTPTLS            bool     `json:"smtp_tls"`
	LogLevel           string   `json:"log_level"`
	LogPath            string   `json:"log_path"`
	LogMaxSizeMB       int      `json:"log_max_size_mb"`
	LogMaxBackups      int      `json:"log_max_backups"`
	LogMaxAgeDays      int      `json:"log_max_age_days"`
	LogCompress        bool     `json:"log_compress"`
	ShutdownGraceSec   int      `json:"shutdown_grace_sec"`
	ShutdownKillSec    int      `json:"shutdown_kill_sec"`
}

// loadJSONConfig reads a JSON file into out if present. A missing file is not
// an error; invalid JSON is.
func loadJSONConfig(path string, out *AppConfig) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var jc jsonConfig
	if err := json.Unmarshal(b, &jc); err != nil {
		return err
	}

	out.AppPort = jc.AppPort
	out.GinMode = jc.GinMode
	out.AllowedOrigins = jc.AllowedOrigins
	out.RateLimitPerMinute = jc.RateLimitPerMinute
	out.RedisHost = jc.RedisHost
	out.RedisPort = jc.RedisPort
	out.RedisDB = jc.RedisDB
	out.RedisPassword = jc.RedisPassword
	out.BcryptCost = jc.BcryptCost
	out.RefCodeFile = jc.RefCodeFile
	out.OperatorEmail = jc.OperatorEmail
	out.SMTPHost = jc.SMTPHost
	out.SMTPPort = jc.SMTPPort
	out.SMTPUsername = jc.SMTPUsername
	out.SMTPPassword = jc.SMTPPassword
	out.SMTPFrom = jc.SMTPFrom
	out.SMTPFromName = jc.SMTPFromName
	out.SMTPTLS = jc.SMTPTLS
	out.LogLevel = jc.LogLevel
	out.LogPath = jc.LogPath
	out.LogMaxSizeMB = jc.LogMaxSizeMB
	out.LogMaxBackups = jc.LogMaxBackups
	out.LogMaxAgeDays = jc.LogMaxAgeDays
	out.LogCompress = jc.LogCompress
	out.ShutdownGraceSec = jc.ShutdownGraceSec
	out.ShutdownKillSec = jc.ShutdownKillSec
	return nil
}

func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "3000"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 120
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = 10
	}
	if c.RefCodeFile == "" {
		c.RefCodeFile = "refcodes.txt"
	}
	if c.SMTPPort == 0 {
		c.SMTPPort = 587
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ShutdownGraceSec == 0 {
		c.ShutdownGraceSec = 5
	}
	if c.ShutdownKillSec == 0 {
		c.ShutdownKillSec = 10
	}
}

func applyEnvOverrides(c *AppConfig) {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setBool := func(dst *bool, key string) {
		if v := os.Getenv(key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	setStr(&c.AppPort, "APP_PORT")
	setStr(&c.GinMode, "GIN_MODE")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		if len(origins) > 0 {
			c.AllowedOrigins = origins
		}
	}
	setInt(&c.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE")

	setStr(&c.RedisHost, "REDIS_HOST")
	setInt(&c.RedisPort, "REDIS_PORT")
	setInt(&c.RedisDB, "REDIS_DB")
	setStr(&c.RedisPassword, "REDIS_PASSWORD")

	setInt(&c.BcryptCost, "BCRYPT_COST")
	setStr(&c.RefCodeFile, "REFCODE_FILE")

	setStr(&c.OperatorEmail, "OPERATOR_EMAIL")
	setStr(&c.SMTPHost, "SMTP_HOST")
	setInt(&c.SMTPPort, "SMTP_PORT")
	setStr(&c.SMTPUsername, "SMTP_USERNAME")
	setStr(&c.SMTPPassword, "SMTP_PASSWORD")
	setStr(&c.SMTPFrom, "SMTP_FROM")
	setStr(&c.SMTPFromName, "SMTP_FROM_NAME")
	setBool(&c.SMTPTLS, "SMTP_TLS")

	setStr(&c.LogLevel, "LOG_LEVEL")
	setStr(&c.LogPath, "LOG_PATH")
	setInt(&c.LogMaxSizeMB, "LOG_MAX_SIZE_MB")
	setInt(&c.LogMaxBackups, "LOG_MAX_BACKUPS")
	setInt(&c.LogMaxAgeDays, "LOG_MAX_AGE_DAYS")
	setBool(&c.LogCompress, "LOG_COMPRESS")

	setInt(&c.ShutdownGraceSec, "SHUTDOWN_GRACE_SEC")
	setInt(&c.ShutdownKillSec, "SHUTDOWN_KILL_SEC")
}
