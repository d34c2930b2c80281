// Package cli implements the isograph command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isograph/pkg/buildinfo"
	"github.com/matzehuels/isograph/pkg/cache"
	"github.com/matzehuels/isograph/pkg/config"
	"github.com/matzehuels/isograph/pkg/integrations"
	"github.com/matzehuels/isograph/pkg/integrations/uniprot"
	"github.com/matzehuels/isograph/pkg/observability/prom"
	"github.com/matzehuels/isograph/pkg/pipeline"
	"github.com/matzehuels/isograph/pkg/protgraph"
	"github.com/matzehuels/isograph/pkg/resolver"
	"github.com/matzehuels/isograph/pkg/retention"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "isograph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
	metrics    *prom.Metrics
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "isograph converts protein isoform graphs for visualization",
		Long: `isograph turns GraphML protein-isoform graphs into the nodes.json and
edges.json documents the isoform viewer loads, keeps a bounded ledger of
recently generated graphs, and resolves protein names to UniProt accessions.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return c.setup() },
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.flushMetrics()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/isograph/config.toml)")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.filesCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.ledgerCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Setup
// =============================================================================

// setup loads the configuration and, if a metrics textfile is configured,
// installs the Prometheus hooks.
func (c *CLI) setup() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "path", cfg.Source)
	}
	if cfg.Metrics.Textfile != "" {
		c.metrics = prom.New()
		c.metrics.Register()
	}
	return nil
}

func (c *CLI) flushMetrics() error {
	if c.metrics == nil {
		return nil
	}
	if err := c.metrics.WriteTextfile(c.cfg.Metrics.Textfile); err != nil {
		c.Logger.Warn("could not write metrics", "path", c.cfg.Metrics.Textfile, "error", err)
		return nil
	}
	c.Logger.Debug("wrote metrics", "path", c.cfg.Metrics.Textfile)
	return nil
}

// settings returns the loaded configuration, loading defaults if setup has
// not run.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		if err := c.setup(); err != nil {
			c.cfg = config.Default()
		}
	}
	return c.cfg
}

// =============================================================================
// Factories
// =============================================================================

// openLedger opens the configured retention ledger. It returns nil when
// retention is disabled.
func (c *CLI) openLedger(ctx context.Context) (*retention.Cache, error) {
	cfg := c.settings()
	var (
		store retention.Store
		err   error
	)
	switch cfg.Retention.Backend {
	case config.BackendNone:
		return nil, nil
	case config.BackendRedis:
		store, err = retention.NewRedisStore(ctx, retention.RedisConfig{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			Key:         cfg.Redis.Key,
			LockTimeout: cfg.Retention.LockTimeout,
		})
	case config.BackendMongo:
		store, err = retention.NewMongoStore(ctx, retention.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		store, err = retention.NewFileStore(cfg.LedgerPath(), cfg.Retention.LockTimeout)
	}
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opened retention ledger", "backend", cfg.Retention.Backend, "capacity", cfg.Retention.Capacity)
	return retention.New(store, cfg.Retention.Capacity), nil
}

// openCache opens the HTTP response cache. noCache disables it.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.settings()
	if noCache || cfg.Cache.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == config.BackendRedis {
		return cache.DialRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}
	fc, err := cache.NewFileCache(cfg.Cache.Dir)
	if err != nil {
		c.Logger.Warn("response cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// newUniProt creates a UniProt client backed by the response cache.
func (c *CLI) newUniProt(backend cache.Cache) *uniprot.Client {
	cfg := c.settings()
	return uniprot.NewClientWithBaseURL(cfg.UniProt.BaseURL, backend, cfg.UniProt.CacheTTL,
		integrations.WithHTTPClient(integrations.NewHTTPClient(cfg.UniProt.Timeout)),
		integrations.WithRetryAttempts(cfg.UniProt.Retries),
		integrations.WithBreaker(integrations.NewBreaker(integrations.DefaultBreakerConfig("uniprot"), c.Logger)),
	)
}

// newResolver creates a resolver over a UniProt client.
func (c *CLI) newResolver(client *uniprot.Client) *resolver.Resolver {
	return resolver.New(client, client, resolver.Options{
		Timeout: c.settings().UniProt.Timeout,
		Logger:  c.Logger,
	})
}

// newRunner creates a pipeline runner with the configured ledger. The
// caller must Close it.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	ledger, err := c.openLedger(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ledger, c.settings().Dirs(), c.Logger), nil
}

// newGenerator creates the external graph generator runner.
func (c *CLI) newGenerator() *protgraph.Runner {
	cfg := c.settings()
	return protgraph.NewRunner(cfg.Protgraph.Binary, cfg.Protgraph.Timeout, c.Logger)
}
