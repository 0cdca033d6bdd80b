package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CatalogConfig controls list windows for the catalog resources.
type CatalogConfig struct {
	DefaultPageSize int `mapstructure:"defaultPageSize"`
	MaxPageSize     int `mapstructure:"maxPageSize"`
}

func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		DefaultPageSize: 10,
		MaxPageSize:     250,
	}
}

type CatalogConfigHolder struct {
	current atomic.Value // holds CatalogConfig
}

// NewStaticCatalogConfigHolder returns a holder that never reloads.
func NewStaticCatalogConfigHolder(cfg CatalogConfig) *CatalogConfigHolder {
	holder := &CatalogConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewCatalogConfigHolder() (*CatalogConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("backoffice")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/backoffice")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultCatalogConfig()
	v.SetDefault("catalog.defaultPageSize", defaults.DefaultPageSize)
	v.SetDefault("catalog.maxPageSize", defaults.MaxPageSize)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	var cfg CatalogConfig
	if err := v.UnmarshalKey("catalog", &cfg); err != nil {
		return nil, err
	}
	if err := validateCatalogConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticCatalogConfigHolder(cfg)
	if !fileFound {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CatalogConfig
		if err := v.UnmarshalKey("catalog", &updated); err != nil {
			log.Printf("[catalog-config] reload failed: %v", err)
			return
		}
		if err := validateCatalogConfig(updated); err != nil {
			log.Printf("[catalog-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[catalog-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *CatalogConfigHolder) Get() CatalogConfig {
	return h.current.Load().(CatalogConfig)
}

func validateCatalogConfig(cfg CatalogConfig) error {
	if cfg.DefaultPageSize < 1 {
		return errors.New("catalog.defaultPageSize must be at least 1")
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		return errors.New("catalog.maxPageSize cannot be below catalog.defaultPageSize")
	}
	return nil
}
