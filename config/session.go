package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultLimit = 10

// Paging list view settings
type Paging struct {
	// Limit page size, fixed for a session
	Limit int
}

// Session credential storage settings
type Session struct {
	CredentialsFile string
}

// Cache optional assignee cache
type Cache struct {
	Redis       *Redis
	AssigneeTTL time.Duration
}

// Redis connection settings; an empty Addr disables the cache
type Redis struct {
	Addr     string
	Password string
	DB       int
}

func getPagingConfig(v *viper.Viper) *Paging {
	limit := setting(v, "paging.limit", defaultLimit, v.GetInt)
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Paging{Limit: limit}
}

func getSessionConfig(v *viper.Viper) *Session {
	return &Session{
		CredentialsFile: expandHome(text(v, "session.credentials_file", "~/.taskdesk/credentials.json")),
	}
}

func getCacheConfig(v *viper.Viper) *Cache {
	return &Cache{
		Redis: &Redis{
			Addr:     v.GetString("cache.redis.addr"),
			Password: v.GetString("cache.redis.password"),
			DB:       v.GetInt("cache.redis.db"),
		},
		AssigneeTTL: setting(v, "cache.assignee_ttl", 5*time.Minute, v.GetDuration),
	}
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
