// Package config загружает настройки сервера из значений по умолчанию,
// необязательного YAML файла и переменных окружения JOBTRACKER_*.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iudanet/jobtracker/internal/validation"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "JOBTRACKER"

// Config holds the server settings.
type Config struct {
	Log      LogSettings               `mapstructure:"log"`
	Metrics  MetricsSettings           `mapstructure:"metrics"`
	Database DatabaseSettings          `mapstructure:"database"`
	Server   ServerSettings            `mapstructure:"server"`
	Session  SessionSettings           `mapstructure:"session"`
	Password validation.PasswordPolicy `mapstructure:"password"`
}

type ServerSettings struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseSettings struct {
	Path string `mapstructure:"path"`
}

// SessionSettings configures session lifetime and the expired session reaper.
// ReapInterval 0 disables the reaper.
type SessionSettings struct {
	TTL          time.Duration `mapstructure:"ttl"`
	ReapInterval time.Duration `mapstructure:"reap_interval"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | text
}

type MetricsSettings struct {
	Namespace string `mapstructure:"namespace"`
	Enabled   bool   `mapstructure:"enabled"`
}

var keys = []string{
	"server.host",
	"server.port",
	"server.read_timeout",
	"server.write_timeout",
	"server.shutdown_timeout",
	"database.path",
	"session.ttl",
	"session.reap_interval",
	"log.level",
	"log.format",
	"metrics.enabled",
	"metrics.namespace",
	"password.min_length",
	"password.max_length",
	"password.min_score",
}

// Load читает конфигурацию. configFile может быть пустым,
// тогда используются только значения по умолчанию и окружение
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(EnvPrefix)

	setDefaults(v)

	if err := bindEnvs(v, keys); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "15s")

	v.SetDefault("database.path", "job_tracker.db")

	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.reap_interval", "1h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "jobtracker")

	policy := validation.DefaultPasswordPolicy()
	v.SetDefault("password.min_length", policy.MinLength)
	v.SetDefault("password.max_length", policy.MaxLength)
	v.SetDefault("password.min_score", policy.MinScore)
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, EnvPrefix+"_"+envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server timeouts must be positive"))
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL))
	}
	if c.Session.ReapInterval < 0 {
		errs = append(errs, errors.New("session.reap_interval must not be negative"))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("log.format must be json or text, got %q", c.Log.Format))
	}
	if c.Password.MinLength <= 0 || c.Password.MaxLength < c.Password.MinLength {
		errs = append(errs, fmt.Errorf("invalid password length bounds %d..%d", c.Password.MinLength, c.Password.MaxLength))
	}
	if c.Password.MinScore < 0 || c.Password.MinScore > 4 {
		errs = append(errs, fmt.Errorf("password.min_score must be in 0..4, got %d", c.Password.MinScore))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Addr returns host:port for http.Server.
func (s ServerSettings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SlogLevel переводит строковый уровень (debug, info, warn, error) в slog.Level
func (l LogSettings) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", l.Level, err)
	}
	return level, nil
}
