// Package config loads isograph settings from a TOML file and the
// environment.
//
// # Sources
//
// Settings are layered, lowest priority first:
//
//  1. Defaults ([Default])
//  2. The TOML file, by default $XDG_CONFIG_HOME/isograph/config.toml
//  3. ISOGRAPH_* environment variables
//
// A missing config file is not an error. The merged result is validated
// with struct tags; failures carry INVALID_CONFIG.
//
// # File Format
//
//	data_dir = "data"
//	output_dir = "generated"
//
//	[retention]
//	capacity = 15
//	backend = "file"      # file, redis or mongo
//	lock_timeout = "10s"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[uniprot]
//	timeout = "30s"
//	cache_ttl = "24h"
//
//	[protgraph]
//	binary = "protgraph"
//	timeout = "10m"
package config

import (
	"path/filepath"
	"time"

	"github.com/matzehuels/isograph/pkg/integrations/uniprot"
	"github.com/matzehuels/isograph/pkg/pipeline"
	"github.com/matzehuels/isograph/pkg/protgraph"
	"github.com/matzehuels/isograph/pkg/retention"
)

// Retention backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// LedgerFile is the default ledger file name inside the data directory.
const LedgerFile = "last_n_protein_ids.json"

// Config is the complete isograph configuration.
type Config struct {
	DataDir     string `toml:"data_dir" validate:"required"`
	OutputDir   string `toml:"output_dir" validate:"required"`
	UploadDir   string `toml:"upload_dir" validate:"required"`
	DownloadDir string `toml:"download_dir" validate:"required"`

	Retention RetentionConfig `toml:"retention"`
	Redis     RedisConfig     `toml:"redis"`
	Mongo     MongoConfig     `toml:"mongo"`
	Cache     CacheConfig     `toml:"cache"`
	UniProt   UniProtConfig   `toml:"uniprot"`
	Protgraph ProtgraphConfig `toml:"protgraph"`
	Metrics   MetricsConfig   `toml:"metrics"`

	// Source is the file the config was read from, empty if none.
	Source string `toml:"-"`
}

// RetentionConfig selects and sizes the retention ledger.
type RetentionConfig struct {
	Capacity    int           `toml:"capacity" validate:"min=1,max=10000"`
	Backend     string        `toml:"backend" validate:"oneof=file redis mongo none"`
	LedgerPath  string        `toml:"ledger_path"`
	LockTimeout time.Duration `toml:"lock_timeout" validate:"min=0"`
}

// RedisConfig is shared by the redis ledger and the redis response cache.
type RedisConfig struct {
	Addr     string `toml:"addr" validate:"required_if=Enabled true"`
	Password string `toml:"password"`
	DB       int    `toml:"db" validate:"min=0"`
	Key      string `toml:"key"`

	// Enabled is derived from the selected backends, not read from the file.
	Enabled bool `toml:"-"`
}

// MongoConfig configures the mongo ledger.
type MongoConfig struct {
	URI        string `toml:"uri" validate:"required_if=Enabled true"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`

	Enabled bool `toml:"-"`
}

// CacheConfig configures the HTTP response cache.
type CacheConfig struct {
	Backend string `toml:"backend" validate:"oneof=file redis none"`
	Dir     string `toml:"dir"`
}

// UniProtConfig configures identifier resolution.
type UniProtConfig struct {
	BaseURL  string        `toml:"base_url" validate:"required,http_url"`
	Timeout  time.Duration `toml:"timeout" validate:"gt=0"`
	CacheTTL time.Duration `toml:"cache_ttl" validate:"min=0"`
	Retries  int           `toml:"retries" validate:"min=1,max=10"`
}

// ProtgraphConfig configures the external graph generator.
type ProtgraphConfig struct {
	Binary  string        `toml:"binary" validate:"required"`
	Timeout time.Duration `toml:"timeout" validate:"gt=0"`
}

// MetricsConfig configures metrics export.
type MetricsConfig struct {
	// Textfile, when set, receives Prometheus metrics after each command.
	Textfile string `toml:"textfile"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:     pipeline.DefaultDataDir,
		OutputDir:   pipeline.DefaultOutputDir,
		UploadDir:   pipeline.DefaultUploadDir,
		DownloadDir: pipeline.DefaultDownloadDir,
		Retention: RetentionConfig{
			Capacity:    retention.DefaultCapacity,
			Backend:     BackendFile,
			LockTimeout: retention.DefaultLockTimeout,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			Key:  retention.DefaultRedisKey,
		},
		Mongo: MongoConfig{
			Database:   retention.DefaultMongoDatabase,
			Collection: retention.DefaultMongoCollection,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
		},
		UniProt: UniProtConfig{
			BaseURL:  uniprot.DefaultBaseURL,
			Timeout:  30 * time.Second,
			CacheTTL: 24 * time.Hour,
			Retries:  1,
		},
		Protgraph: ProtgraphConfig{
			Binary:  protgraph.DefaultBinary,
			Timeout: protgraph.DefaultTimeout,
		},
	}
}

// LedgerPath returns the ledger file location for the file backend.
func (c *Config) LedgerPath() string {
	if c.Retention.LedgerPath != "" {
		return c.Retention.LedgerPath
	}
	return filepath.Join(c.DataDir, LedgerFile)
}

// Dirs returns the working directories for a pipeline runner.
func (c *Config) Dirs() pipeline.Dirs {
	return pipeline.Dirs{
		Data:     c.DataDir,
		Output:   c.OutputDir,
		Upload:   c.UploadDir,
		Download: c.DownloadDir,
	}
}
