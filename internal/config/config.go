package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := &Config{}
	if err = toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns a config with every tunable set to its production value.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	DB     DBConfig     `toml:"db"`
	Engine EngineConfig `toml:"engine"`
	Search SearchConfig `toml:"search"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type EngineConfig struct {
	BatchSize          int      `toml:"batch_size"`
	Workers            int      `toml:"workers"`
	VolumeFloor        int      `toml:"volume_floor"`
	ReconcileInterval  Duration `toml:"reconcile_interval"`
	CriteriaPerTick    int      `toml:"criteria_per_tick"`
	ListingSourceTypes []string `toml:"listing_source_types"`
	MatcherCacheSize   int      `toml:"matcher_cache_size"`
}

type SearchConfig struct {
	BaseURL string `toml:"base_url"`
}

// Duration decodes TOML strings such as "15m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (c *Config) applyDefaults() {
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.DB.PoolSize == 0 {
		c.DB.PoolSize = 10
	}
	if c.Engine.BatchSize <= 0 {
		c.Engine.BatchSize = DefaultBatchSize
	}
	if c.Engine.Workers <= 0 {
		c.Engine.Workers = DefaultWorkers
	}
	if c.Engine.VolumeFloor <= 0 {
		c.Engine.VolumeFloor = DefaultVolumeFloor
	}
	if c.Engine.ReconcileInterval.Duration <= 0 {
		c.Engine.ReconcileInterval.Duration = DefaultReconcileInterval
	}
	if c.Engine.CriteriaPerTick <= 0 {
		c.Engine.CriteriaPerTick = DefaultCriteriaPerTick
	}
	if len(c.Engine.ListingSourceTypes) == 0 {
		c.Engine.ListingSourceTypes = []string{DefaultListingSourceType}
	}
	if c.Engine.MatcherCacheSize <= 0 {
		c.Engine.MatcherCacheSize = CacheSize
	}
	if c.Search.BaseURL == "" {
		c.Search.BaseURL = DefaultSearchBaseURL
	}
}
