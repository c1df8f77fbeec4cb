// internal/common/config/config.go
package config

import "fmt"

// Config is the main client configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	API      APIConfig      `mapstructure:"api"`
	Session  SessionConfig  `mapstructure:"session"`
	Database DatabaseConfig `mapstructure:"database"`
	Roles    RolesConfig    `mapstructure:"roles"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig points the client at the remote matching service.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`  // milliseconds
	PerPage int    `mapstructure:"per_page"` // listing browser page size
	// AdminPerPage is left at 0 to use the service default.
	AdminPerPage int `mapstructure:"admin_per_page"`
}

// SessionConfig selects where the durable client state lives.
type SessionConfig struct {
	Store     string `mapstructure:"store"` // "redis" or "file"
	FilePath  string `mapstructure:"file_path"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RolesConfig holds the static operator credentials. These are a placeholder
// for a server-verified operator session and are compared client-side only.
type RolesConfig struct {
	Admin    StaticRole `mapstructure:"admin"`
	Company  StaticRole `mapstructure:"company"`
	Redirect string     `mapstructure:"redirect"`
}

type StaticRole struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	Marker   string `mapstructure:"marker"`
	Token    string `mapstructure:"token"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	ListenAddress string `mapstructure:"listen_address"`
}

// Describe returns address/db for log lines.
func (r RedisConfig) Describe() string {
	return fmt.Sprintf("%s/%d", r.Address, r.DB)
}
