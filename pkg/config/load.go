package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ISOGRAPH_"

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultPath returns $XDG_CONFIG_HOME/isograph/config.toml (or the
// platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "isograph", "config.toml"), nil
}

// Load reads the config file at path, applies environment overrides and
// validates the result. An empty path uses [DefaultPath]; a missing default
// file is skipped, but an explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		_, err := toml.DecodeFile(path, cfg)
		switch {
		case err == nil:
			cfg.Source = path
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		case errors.Is(err, fs.ErrNotExist):
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "config file %s", path)
		default:
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	c.Redis.Enabled = c.Retention.Backend == BackendRedis || c.Cache.Backend == BackendRedis
	c.Mongo.Enabled = c.Retention.Backend == BackendMongo

	if err := validate.Struct(c); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, formatValidationError(err), "invalid configuration")
	}
	if c.Mongo.Enabled && !strings.HasPrefix(c.Mongo.URI, "mongodb://") && !strings.HasPrefix(c.Mongo.URI, "mongodb+srv://") {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "mongo.uri must start with mongodb:// or mongodb+srv://")
	}
	for _, p := range []string{c.DataDir, c.OutputDir, c.UploadDir, c.DownloadDir} {
		if err := apperrors.ValidatePath(p); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "invalid directory")
		}
	}
	return nil
}

// envVar binds one environment variable to a config field.
type envVar struct {
	name string
	set  func(*Config, string) error
}

var envVars = []envVar{
	{"DATA_DIR", func(c *Config, v string) error { c.DataDir = v; return nil }},
	{"OUTPUT_DIR", func(c *Config, v string) error { c.OutputDir = v; return nil }},
	{"UPLOAD_DIR", func(c *Config, v string) error { c.UploadDir = v; return nil }},
	{"DOWNLOAD_DIR", func(c *Config, v string) error { c.DownloadDir = v; return nil }},
	{"RETENTION_BACKEND", func(c *Config, v string) error { c.Retention.Backend = strings.ToLower(v); return nil }},
	{"RETENTION_CAPACITY", func(c *Config, v string) error { return setInt(&c.Retention.Capacity, v) }},
	{"LEDGER_PATH", func(c *Config, v string) error { c.Retention.LedgerPath = v; return nil }},
	{"REDIS_ADDR", func(c *Config, v string) error { c.Redis.Addr = v; return nil }},
	{"REDIS_PASSWORD", func(c *Config, v string) error { c.Redis.Password = v; return nil }},
	{"REDIS_DB", func(c *Config, v string) error { return setInt(&c.Redis.DB, v) }},
	{"MONGO_URI", func(c *Config, v string) error { c.Mongo.URI = v; return nil }},
	{"CACHE_BACKEND", func(c *Config, v string) error { c.Cache.Backend = strings.ToLower(v); return nil }},
	{"UNIPROT_URL", func(c *Config, v string) error { c.UniProt.BaseURL = v; return nil }},
	{"UNIPROT_TIMEOUT", func(c *Config, v string) error { return setDuration(&c.UniProt.Timeout, v) }},
	{"PROTGRAPH_BIN", func(c *Config, v string) error { c.Protgraph.Binary = v; return nil }},
	{"PROTGRAPH_TIMEOUT", func(c *Config, v string) error { return setDuration(&c.Protgraph.Timeout, v) }},
	{"METRICS_TEXTFILE", func(c *Config, v string) error { c.Metrics.Textfile = v; return nil }},
}

// EnvNames lists the supported environment variables.
func EnvNames() []string {
	names := make([]string, len(envVars))
	for i, e := range envVars {
		names[i] = EnvPrefix + e.name
	}
	return names
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	for _, e := range envVars {
		v, ok := lookup(EnvPrefix + e.name)
		if !ok || v == "" {
			continue
		}
		if err := e.set(c, v); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, e.name)
		}
	}
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("not an integer: %q", v)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("not a duration: %q", v)
	}
	*dst = d
	return nil
}

// formatValidationError turns validator errors into one readable line.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(strings.TrimPrefix(e.Namespace(), "Config."))
	switch e.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "http_url":
		return fmt.Sprintf("%s must be an http(s) URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
