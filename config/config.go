package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	lc "github.com/ncobase/taskdesk/logging/logger/config"
	"github.com/spf13/viper"
)

// EnvPrefix prefix of environment overrides, e.g. TASKDESK_API_BASE_URL
const EnvPrefix = "TASKDESK"

// Config represents the configuration implementation.
//
// Commands read the exported sections once at startup, before Watch is
// started. Reload swaps the sections under mu, so code that runs while a
// watch is active reads them through the getters.
type Config struct {
	AppName string
	RunMode string
	API     *API
	Paging  *Paging
	Session *Session
	Cache   *Cache
	Tracing *Tracing
	Logger  *lc.Config
	Viper   *viper.Viper

	mu sync.RWMutex
}

// LoadConfig loads the configuration from configPath. An empty path searches
// the default locations; a missing file there is not an error, defaults and
// environment overrides apply.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".taskdesk"))
		}
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/taskdesk")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !asNotFound(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	return build(v), nil
}

func asNotFound(err error, target *viper.ConfigFileNotFoundError) bool {
	nf, ok := err.(viper.ConfigFileNotFoundError)
	if ok {
		*target = nf
	}
	return ok
}

func build(v *viper.Viper) *Config {
	return &Config{
		AppName: v.GetString("app_name"),
		RunMode: v.GetString("run_mode"),
		API:     getAPIConfig(v),
		Paging:  getPagingConfig(v),
		Session: getSessionConfig(v),
		Cache:   getCacheConfig(v),
		Tracing: getTracingConfig(v),
		Logger:  lc.GetConfig(v),
		Viper:   v,
	}
}

// Reload re-reads the configuration file into c.
func (c *Config) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Viper.ConfigFileUsed() != "" {
		if err := c.Viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to reload config: %w", err)
		}
	}
	next := build(c.Viper)
	c.AppName, c.RunMode = next.AppName, next.RunMode
	c.API, c.Paging, c.Session, c.Cache = next.API, next.Paging, next.Session, next.Cache
	c.Tracing, c.Logger = next.Tracing, next.Logger
	return nil
}

// LoggerConfig returns the current logger section.
func (c *Config) LoggerConfig() *lc.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Logger
}

// Watch watches the configuration file and reloads it when it changes.
func (c *Config) Watch(callback func(*Config), onError func(error)) {
	if c.Viper.ConfigFileUsed() == "" {
		return
	}
	c.Viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		if err := c.Reload(); err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		callback(c)
	})
	c.Viper.WatchConfig()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "taskdesk")
	v.SetDefault("run_mode", "release")
	v.SetDefault("api.base_url", "http://localhost:8000/api/")
	v.SetDefault("api.timeout", defaultTimeout)
	v.SetDefault("api.query_dialect", DialectFilter)
	v.SetDefault("paging.limit", defaultLimit)
}
