// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SessionStoreRedis = "redis"
	SessionStoreFile  = "file"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on top
// and lets INTERNMATCH_* environment variables override any key.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("INTERNMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it even when
// the yaml file omits the key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "internmatch")
	v.SetDefault("app.environment", "development")
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.timeout", 15000)
	v.SetDefault("api.per_page", 100)
	v.SetDefault("api.admin_per_page", 0)
	v.SetDefault("session.store", SessionStoreFile)
	v.SetDefault("session.file_path", "")
	v.SetDefault("session.key_prefix", "internmatch:client:")
	v.SetDefault("database.redis.address", "")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.db", 0)
	v.SetDefault("roles.admin.email", "admin@internmatch.com")
	v.SetDefault("roles.admin.password", "admin123")
	v.SetDefault("roles.admin.marker", "admin")
	v.SetDefault("roles.admin.token", "admin-access-granted")
	v.SetDefault("roles.company.email", "company@internmatch.com")
	v.SetDefault("roles.company.password", "company123")
	v.SetDefault("roles.company.marker", "company")
	v.SetDefault("roles.company.token", "company-access-granted")
	v.SetDefault("roles.redirect", "/")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("metrics.listen_address", "")
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// Direct override for the few values commonly provided by deployment tooling
// under their conventional names.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDRESS"); val != "" {
			cfg.Database.Redis.Address = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
}

// applyDefaults sets values that depend on other values or that a yaml file
// may have explicitly zeroed.
func applyDefaults(cfg *Config) {
	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 15000
	}
	if cfg.API.PerPage <= 0 {
		cfg.API.PerPage = 100
	}
	if cfg.Session.Store == "" {
		cfg.Session.Store = SessionStoreFile
	}
	if cfg.Session.Store == SessionStoreFile && cfg.Session.FilePath == "" {
		cfg.Session.FilePath = defaultStatePath()
	}
	if cfg.Roles.Redirect == "" {
		cfg.Roles.Redirect = "/"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".internmatch-session.json"
	}
	return filepath.Join(dir, "internmatch", "session.json")
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if !strings.HasPrefix(cfg.API.BaseURL, "http://") && !strings.HasPrefix(cfg.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL")
	}

	switch cfg.Session.Store {
	case SessionStoreRedis:
		if cfg.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required when session.store is redis")
		}
	case SessionStoreFile:
		if cfg.Session.FilePath == "" {
			return fmt.Errorf("session.file_path is required when session.store is file")
		}
	default:
		return fmt.Errorf("session.store must be %q or %q", SessionStoreRedis, SessionStoreFile)
	}

	for name, role := range map[string]StaticRole{"admin": cfg.Roles.Admin, "company": cfg.Roles.Company} {
		if role.Marker == "" || role.Token == "" {
			return fmt.Errorf("roles.%s.marker and roles.%s.token are required", name, name)
		}
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// RequestTimeout is the bounded timeout applied to every remote call.
func (c *Config) RequestTimeout() time.Duration {
	return GetDuration(c.API.Timeout)
}
