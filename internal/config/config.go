package config

import (
	"fmt"
	"time"
)

// Config is the process configuration.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Store   StoreConfig   `mapstructure:"store"`
	Local   LocalConfig   `mapstructure:"local"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Mail    MailConfig    `mapstructure:"mail"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Log     LogConfig     `mapstructure:"log"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

// IsProduction reports whether app.env is "production".
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

type HTTPConfig struct {
	Addr          string `mapstructure:"addr"`
	CSRFKey       string `mapstructure:"csrf_key"` // 64 hex chars
	SecureCookies bool   `mapstructure:"secure_cookies"`
	SlowRequestMs int    `mapstructure:"slow_request_ms"`
}

// StoreConfig describes the hosted Postgres store. URL carries host and
// database only; the keys are the passwords of the two roles.
type StoreConfig struct {
	URL          string        `mapstructure:"url"`
	PublicKey    string        `mapstructure:"public_key"`
	ServiceKey   string        `mapstructure:"service_key"`
	PublicRole   string        `mapstructure:"public_role"`
	ServiceRole  string        `mapstructure:"service_role"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	SlowQueryMs  int           `mapstructure:"slow_query_ms"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Migrate      bool          `mapstructure:"migrate"`
}

// HasServiceKey reports whether a privileged key was configured.
func (s StoreConfig) HasServiceKey() bool {
	return s.ServiceKey != ""
}

type LocalConfig struct {
	Path string `mapstructure:"path"`
}

type SessionConfig struct {
	Backend string `mapstructure:"backend"` // memory | redis
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MailConfig struct {
	Transport string `mapstructure:"transport"` // noop | resend | ses
	From      string `mapstructure:"from"`
	ResendKey string `mapstructure:"resend_key"`
	AWSRegion string `mapstructure:"aws_region"`
}

type AdminConfig struct {
	BootstrapPassword string `mapstructure:"bootstrap_password"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ConfigurationError reports a missing or unusable setting.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Key, e.Reason)
}
