package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environments accepted in server.env.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// CacheProfileStaticFiles names the cache profile applied to static files.
const CacheProfileStaticFiles = "static_files"

// Config holds all configuration for the application
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Server        ServerConfig            `mapstructure:"server"`
	Log           LogConfig               `mapstructure:"log"`
	CORS          CORSConfig              `mapstructure:"cors"`
	Static        StaticConfig            `mapstructure:"static"`
	Swagger       SwaggerConfig           `mapstructure:"swagger"`
	CacheProfiles map[string]CacheProfile `mapstructure:"cache_profiles"`

	v *viper.Viper
}

// AppConfig describes the product shown in the API documentation.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Env             string        `mapstructure:"env"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// RateLimit is the number of requests allowed per client IP per minute. 0 disables limiting.
	RateLimit int `mapstructure:"rate_limit"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig lists the allowed origins. Empty allows all origins.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StaticConfig controls static file serving
type StaticConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Dir       string `mapstructure:"dir"`
	URLPrefix string `mapstructure:"url_prefix"`
}

// Prefix returns URLPrefix without trailing slashes. An empty prefix mounts
// static files at the site root.
func (s StaticConfig) Prefix() string {
	return strings.TrimRight(s.URLPrefix, "/")
}

// SwaggerConfig controls the OpenAPI document and UI
type SwaggerConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// IsDevelopment reports whether diagnostic output is allowed.
func (s ServerConfig) IsDevelopment() bool {
	return s.Env == EnvDevelopment
}

// IsProduction reports whether the server runs in production.
func (s ServerConfig) IsProduction() bool {
	return s.Env == EnvProduction
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "ApiTemplate")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", EnvDevelopment)
	v.SetDefault("server.max_body_bytes", 10<<20)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("server.rate_limit", 300)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("cors.allowed_origins", []string{})

	v.SetDefault("static.enabled", true)
	v.SetDefault("static.dir", "wwwroot")
	v.SetDefault("static.url_prefix", "/static")

	v.SetDefault("swagger.enabled", true)

	v.SetDefault("cache_profiles."+CacheProfileStaticFiles+".duration", 31536000)
	v.SetDefault("cache_profiles."+CacheProfileStaticFiles+".location", LocationAny)
}

// Load reads configuration from a .env file, environment variables and an
// optional config.yaml in . or ./config.
func Load() (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APITEMPLATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("server.port", "APITEMPLATE_SERVER_PORT", "PORT")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	config.v = v
	config.Static.URLPrefix = config.Static.Prefix()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that all configuration values are usable
func (c *Config) Validate() error {
	switch c.Server.Env {
	case EnvDevelopment, EnvTest, EnvProduction:
	default:
		return fmt.Errorf("server.env must be one of %s, %s, %s: got %q",
			EnvDevelopment, EnvTest, EnvProduction, c.Server.Env)
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("server.max_body_bytes must not be negative: got %d", c.Server.MaxBodyBytes)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative: got %d", c.Server.RateLimit)
	}
	if c.Static.Enabled {
		prefix := c.Static.URLPrefix
		if prefix != "" && !strings.HasPrefix(prefix, "/") {
			return fmt.Errorf("static.url_prefix must start with /: got %q", prefix)
		}
		if strings.ContainsAny(prefix, ":*") {
			return fmt.Errorf("static.url_prefix must not contain route parameters: got %q", prefix)
		}
	}
	for name, profile := range c.CacheProfiles {
		if err := profile.Validate(); err != nil {
			return fmt.Errorf("cache_profiles.%s: %w", name, err)
		}
	}
	return nil
}

// CacheProfile returns the named cache profile.
func (c *Config) CacheProfile(name string) (CacheProfile, bool) {
	profile, ok := c.CacheProfiles[name]
	return profile, ok
}

// OnChange calls fn whenever the loaded config file changes. It does nothing
// when no config file was read.
func (c *Config) OnChange(fn func(fsnotify.Event)) bool {
	if c.v == nil || c.v.ConfigFileUsed() == "" {
		return false
	}
	c.v.OnConfigChange(fn)
	c.v.WatchConfig()
	return true
}
