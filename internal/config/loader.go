package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. KBS_STORE_URL.
const EnvPrefix = "KBS"

var defaults = map[string]any{
	"app.env":                  "development",
	"http.addr":                ":8080",
	"http.csrf_key":            "",
	"http.secure_cookies":      false,
	"http.slow_request_ms":     200,
	"store.url":                "",
	"store.public_key":         "",
	"store.service_key":        "",
	"store.public_role":        "anon",
	"store.service_role":       "service_role",
	"store.max_open_conns":     10,
	"store.slow_query_ms":      50,
	"store.timeout":            "10s",
	"store.migrate":            false,
	"local.path":               "kbs-local.db",
	"session.backend":          "memory",
	"redis.addr":               "localhost:6379",
	"redis.password":           "",
	"redis.db":                 0,
	"mail.transport":           "noop",
	"mail.from":                "Kingdom Business Studio <noreply@kingdombusinessstudio.com>",
	"mail.resend_key":          "",
	"mail.aws_region":          "eu-west-1",
	"admin.bootstrap_password": "",
	"log.level":                "info",
	"log.format":               "console",
}

// Load reads configuration from an optional YAML file, .env and the
// environment, in increasing precedence.
// PRE: configFile is "" (search ./configs and .) or a readable path
// POST: Returns a validated Config or an error; *ConfigurationError for missing keys
func Load(configFile string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Store.URL) == "" {
		return &ConfigurationError{Key: "store.url", Reason: "is required"}
	}
	if strings.TrimSpace(cfg.Store.PublicKey) == "" {
		return &ConfigurationError{Key: "store.public_key", Reason: "is required"}
	}
	if cfg.Store.Timeout <= 0 {
		return &ConfigurationError{Key: "store.timeout", Reason: "must be positive"}
	}
	if cfg.HTTP.CSRFKey != "" {
		if b, err := hex.DecodeString(cfg.HTTP.CSRFKey); err != nil || len(b) != 32 {
			return &ConfigurationError{Key: "http.csrf_key", Reason: "must be 64 hex characters"}
		}
	} else if cfg.App.IsProduction() {
		return &ConfigurationError{Key: "http.csrf_key", Reason: "is required in production"}
	}
	switch cfg.Session.Backend {
	case "memory", "redis":
	default:
		return &ConfigurationError{Key: "session.backend", Reason: "must be memory or redis"}
	}
	switch cfg.Mail.Transport {
	case "noop", "ses":
	case "resend":
		if cfg.Mail.ResendKey == "" {
			return &ConfigurationError{Key: "mail.resend_key", Reason: "is required for the resend transport"}
		}
	default:
		return &ConfigurationError{Key: "mail.transport", Reason: "must be noop, resend or ses"}
	}
	return nil
}

// loadEnvFile loads .env from the working directory when present.
// Variables already set in the environment win.
func loadEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}
