// Package config loads CLI settings from ~/.devmarket/config.yaml and DEVMARKET_*
// environment variables using Viper. Variables may also come from a dotenv
// file. Command line flags override all of them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to setting names to form environment variables.
	EnvPrefix = "DEVMARKET"

	// ConfigEnv selects a settings file when --config is not given.
	ConfigEnv = EnvPrefix + "_CONFIG"

	// EnvFileEnv names a dotenv file, .env in the working directory by default.
	EnvFileEnv = EnvPrefix + "_ENV_FILE"
)

// Session backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds the client configuration.
type Settings struct {
	// APIURL is the base URL of the marketplace API.
	APIURL string `mapstructure:"api_url"`
	// SessionBackend is where the session is persisted, file or redis.
	SessionBackend string `mapstructure:"session_backend"`
	// SessionDir holds session.json for the file backend, default ~/.devmarket.
	SessionDir    string `mapstructure:"session_dir"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	// SessionTTL is how long after login a persisted session can be restored.
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	// PollInterval is the refresh period of --watch views.
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RetryMaxTries  uint          `mapstructure:"retry_max_tries"`
	// CacheDir enables the on disk HTTP cache.
	CacheDir string `mapstructure:"cache_dir"`
	// Tracing exports OpenTelemetry traces and metrics over OTLP.
	Tracing bool `mapstructure:"tracing"`
}

// Defaults returns the built in settings.
func Defaults() Settings {
	return Settings{
		APIURL:         "http://localhost:5555",
		SessionBackend: BackendFile,
		SessionTTL:     10 * time.Minute,
		PollInterval:   10 * time.Second,
		RequestTimeout: 30 * time.Second,
		RetryMaxTries:  3,
	}
}

// DefaultPath returns ~/.devmarket/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".devmarket", "config.yaml"), nil
}

// Load reads settings from path, or the default location when path is empty,
// then applies DEVMARKET_* environment overrides. A missing default file is
// ignored, a missing explicit file is an error.
func Load(path string) (*Settings, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	d := Defaults()
	v.SetDefault("api_url", d.APIURL)
	v.SetDefault("session_backend", d.SessionBackend)
	v.SetDefault("session_dir", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("session_ttl", d.SessionTTL)
	v.SetDefault("poll_interval", d.PollInterval)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("retry_max_tries", d.RetryMaxTries)
	v.SetDefault("cache_dir", "")
	v.SetDefault("tracing", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// loadEnvFile exports the variables of the dotenv file without overriding
// ones already set. Only an explicitly named file has to exist.
func loadEnvFile() error {
	path, explicit := os.LookupEnv(EnvFileEnv)
	if !explicit || path == "" {
		path, explicit = ".env", false
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Validate checks the settings are usable.
func (s *Settings) Validate() error {
	switch s.SessionBackend {
	case BackendFile:
	case BackendRedis:
		if s.RedisAddr == "" {
			return fmt.Errorf("%w: redis_addr is required for the redis session backend", ErrInvalidSettings)
		}
	default:
		return fmt.Errorf("%w: unknown session_backend %q", ErrInvalidSettings, s.SessionBackend)
	}

	if s.APIURL == "" {
		return fmt.Errorf("%w: api_url must be set", ErrInvalidSettings)
	}
	if s.SessionTTL <= 0 {
		return fmt.Errorf("%w: session_ttl must be positive", ErrInvalidSettings)
	}
	if s.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval must be positive", ErrInvalidSettings)
	}

	return nil
}

// Vars exposes the settings as kong variables so flag defaults come from the
// settings file.
func (s *Settings) Vars() kong.Vars {
	return kong.Vars{
		"api_url":         s.APIURL,
		"session_backend": s.SessionBackend,
		"session_dir":     s.SessionDir,
		"redis_addr":      s.RedisAddr,
		"redis_password":  s.RedisPassword,
		"session_ttl":     s.SessionTTL.String(),
		"poll_interval":   s.PollInterval.String(),
		"request_timeout": s.RequestTimeout.String(),
		"retry_max_tries": strconv.FormatUint(uint64(s.RetryMaxTries), 10),
		"cache_dir":       s.CacheDir,
		"tracing":         strconv.FormatBool(s.Tracing),
	}
}

// PathFromArgs finds the --config value in args before kong parses them,
// falling back to DEVMARKET_CONFIG.
func PathFromArgs(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(ConfigEnv)
}
