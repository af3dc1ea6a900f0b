package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "TableOrderDevSecret"

type Config struct {
	Port            string        `mapstructure:"port"`
	GinMode         string        `mapstructure:"gin_mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	DBDriver string `mapstructure:"db_driver"`
	DBDSN    string `mapstructure:"db_dsn"`
	SeedData bool   `mapstructure:"seed_data"`

	StrictTransitions bool `mapstructure:"strict_transitions"`

	AuthRequired  bool          `mapstructure:"auth_required"`
	AdminUsername string        `mapstructure:"admin_username"`
	AdminPassword string        `mapstructure:"admin_password"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`

	CORSOrigin         string        `mapstructure:"cors_origin"`
	RateLimit          int           `mapstructure:"rate_limit"`
	RateWindow         time.Duration `mapstructure:"rate_window"`
	LoginRatePerMinute int           `mapstructure:"login_rate_per_minute"`

	KafkaBrokers []string `mapstructure:"-"`
	KafkaTopic   string   `mapstructure:"kafka_topic"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("shutdown_timeout", "5s")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "file::memory:?cache=shared")
	v.SetDefault("seed_data", true)
	v.SetDefault("strict_transitions", false)
	v.SetDefault("auth_required", false)
	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password", "password")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", "24h")
	v.SetDefault("cors_origin", "*")
	v.SetDefault("rate_limit", 50)
	v.SetDefault("rate_window", "1s")
	v.SetDefault("login_rate_per_minute", 5)
	v.SetDefault("kafka_brokers", "")
	v.SetDefault("kafka_topic", "order-events")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Load reads an optional .env file and then the process environment.
// Variables use the upper-case key names, e.g. DB_DRIVER or KAFKA_BROKERS.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.KafkaBrokers = splitList(v.GetString("kafka_brokers"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AdminUsername == "" || c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.RateLimit <= 0 || c.RateWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT and RATE_WINDOW must be positive")
	}
	return nil
}

// EnsureJWTSecret fills in the development secret when JWT_SECRET is unset
// and reports whether the development secret is in use.
func (c *Config) EnsureJWTSecret() bool {
	if c.JWTSecret == "" {
		c.JWTSecret = defaultJWTSecret
		return true
	}
	return c.JWTSecret == defaultJWTSecret
}

func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
