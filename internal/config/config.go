// Package config loads airdesk settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/airdesk/pkg/dialogue"
	"github.com/aretw0/airdesk/pkg/fare"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AIRDESK_"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	Server       Server                   `mapstructure:"server"`
	Store        Store                    `mapstructure:"store"`
	Data         Data                     `mapstructure:"data"`
	Policy       dialogue.Policy          `mapstructure:"policy"`
	Fares        map[string]fare.Override `mapstructure:"fares"`
	Integrations dialogue.Integrations    `mapstructure:"integrations"`
	Log          Log                      `mapstructure:"log"`
}

// Server configures the webhook listener.
type Server struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	MaxInputSize      int           `mapstructure:"max_input_size"`
}

// Store selects and configures the session store.
type Store struct {
	Driver        string        `mapstructure:"driver"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	Prefix        string        `mapstructure:"prefix"`
	TTL           time.Duration `mapstructure:"ttl"`
	LockTTL       time.Duration `mapstructure:"lock_ttl"`
	// EncryptionKey is a base64 AES-256 key. Empty disables encryption at rest.
	EncryptionKey string `mapstructure:"encryption_key"`
}

// Data points at the airline fixtures. An empty path uses the embedded demo data.
type Data struct {
	Fixtures  string            `mapstructure:"fixtures"`
	Locations map[string]string `mapstructure:"locations"`
}

// Log configures the application logger.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Store: Store{
			Driver:    DriverMemory,
			RedisAddr: "localhost:6379",
			TTL:       24 * time.Hour,
			LockTTL:   30 * time.Second,
		},
		Integrations: dialogue.DefaultIntegrations(),
		Log:          Log{Level: "info", Format: "text"},
	}
}

// Load reads path (when non-empty) over the defaults, then applies AIRDESK_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := Decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	cfg.Policy = cfg.Policy.WithDefaults()
	return cfg, cfg.Validate()
}

// Decode merges YAML data into cfg. Keys absent from data keep their current value.
func Decode(data []byte, cfg *Config) error {
	var generic map[string]any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if generic == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(generic); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate reports configuration values that cannot work.
func (c Config) Validate() error {
	var errs []error
	switch c.Store.Driver {
	case DriverMemory, DriverRedis:
	default:
		errs = append(errs, fmt.Errorf("store.driver: unknown driver %q", c.Store.Driver))
	}
	if c.Store.Driver == DriverRedis && c.Store.RedisAddr == "" {
		errs = append(errs, errors.New("store.redis_addr: required for the redis driver"))
	}
	if c.Store.LockTTL < 0 || c.Store.TTL < 0 {
		errs = append(errs, errors.New("store: ttl values must not be negative"))
	}
	if _, err := c.FareSchedules(); err != nil {
		errs = append(errs, fmt.Errorf("fares: %w", err))
	}
	return errors.Join(errs...)
}

// FareSchedules returns the default fee table with the fares section applied over it.
func (c Config) FareSchedules() (map[string]fare.Schedule, error) {
	return fare.Merge(fare.DefaultSchedules(), c.Fares)
}

// applyEnv overrides scalar settings from the environment.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"ADDR":           &cfg.Server.Addr,
		"STORE_DRIVER":   &cfg.Store.Driver,
		"REDIS_ADDR":     &cfg.Store.RedisAddr,
		"REDIS_PASSWORD": &cfg.Store.RedisPassword,
		"STORE_PREFIX":   &cfg.Store.Prefix,
		"ENCRYPTION_KEY": &cfg.Store.EncryptionKey,
		"FIXTURES":       &cfg.Data.Fixtures,
		"LOG_LEVEL":      &cfg.Log.Level,
		"LOG_FORMAT":     &cfg.Log.Format,
		"EMAIL_TARGET":   &cfg.Integrations.Email,
		"SMS_TARGET":     &cfg.Integrations.SMS,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"STORE_TTL": &cfg.Store.TTL,
		"LOCK_TTL":  &cfg.Store.LockTTL,
	}
	for key, dst := range durations {
		if v, ok := lookup(EnvPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = d
		}
	}

	ints := map[string]*int{
		"REDIS_DB":       &cfg.Store.RedisDB,
		"MAX_INPUT_SIZE": &cfg.Server.MaxInputSize,
	}
	for key, dst := range ints {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = n
		}
	}
	return nil
}
