package config

import (
	"errors"
	"strings"

	"github.com/joeshaw/envdecode"
)

// Config is read from the environment
type Config struct {
	Addr           string `env:"TRAY_ADDR,default=:8000"`
	LevelDir       string `env:"TRAY_LEVEL_DIR,default=levels"`
	DefaultLevel   int    `env:"TRAY_DEFAULT_LEVEL,default=1"`
	AwaitSettle    bool   `env:"TRAY_AWAIT_SETTLE,default=false"`
	AllowedOrigins string `env:"TRAY_ALLOWED_ORIGINS,default=*"`
}

// Load decodes the configuration, using defaults for anything unset
func Load() (Config, error) {
	var cfg Config
	err := envdecode.Decode(&cfg)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, err
	}
	return cfg, nil
}

// Origins splits AllowedOrigins on semicolons
func (c Config) Origins() []string {
	origins := []string{}
	for _, o := range strings.Split(c.AllowedOrigins, ";") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
