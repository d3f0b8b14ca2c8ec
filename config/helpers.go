package config

import (
	"strings"

	"github.com/spf13/viper"
)

// setting reads key with get when the key is present in any source and
// returns fallback otherwise. Zero values set explicitly are kept.
func setting[T any](v *viper.Viper, key string, fallback T, get func(string) T) T {
	if !v.IsSet(key) {
		return fallback
	}
	return get(key)
}

// text is setting for strings, where a blank value counts as unset.
func text(v *viper.Viper, key, fallback string) string {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		return s
	}
	return fallback
}
