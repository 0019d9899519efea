package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	Themeparks ThemeparksConfig `mapstructure:"themeparks" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache"      validate:"required"`
	Poller     PollerConfig     `mapstructure:"poller"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"gte=0,lte=31"`
}

// ThemeparksConfig configures the upstream live-data API client.
// TTLs control how long fetched responses are served from cache.
type ThemeparksConfig struct {
	BaseURL            string `mapstructure:"base_url"             validate:"required,url"`
	RequestTimeoutSec  int    `mapstructure:"request_timeout_sec"  validate:"required,gt=0"`
	LiveTTLSeconds     int    `mapstructure:"live_ttl_seconds"     validate:"required,gt=0"`
	ScheduleTTLSeconds int    `mapstructure:"schedule_ttl_seconds" validate:"required,gt=0"`
	EntityTTLSeconds   int    `mapstructure:"entity_ttl_seconds"   validate:"required,gt=0"`
}

// PollerConfig configures the background wait-time sampler.
type PollerConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	IntervalSec int  `mapstructure:"interval_sec" validate:"gte=0"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `mapstructure:"backend" validate:"required,oneof=memory redis"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" validate:"gte=0"`
}
