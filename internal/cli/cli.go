package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cabledraw/pkg/assembly"
	"github.com/matzehuels/cabledraw/pkg/buildinfo"
	"github.com/matzehuels/cabledraw/pkg/cache"
	"github.com/matzehuels/cabledraw/pkg/config"
	"github.com/matzehuels/cabledraw/pkg/drawing"
	"github.com/matzehuels/cabledraw/pkg/pipeline"
	"github.com/matzehuels/cabledraw/pkg/render"
	"github.com/matzehuels/cabledraw/pkg/render/worker"
	"github.com/matzehuels/cabledraw/pkg/templatepack"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "cabledraw"

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
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. A debug level set here (from
// --verbose) wins over the configured level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.verbose = level == log.DebugLevel
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Cabledraw renders cable assembly drawings",
		Long:         `Cabledraw turns cable assembly schemas into manufacturing drawings and serves them from a content-addressed drawing store.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultPath(), "config file (TOML)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.netlistCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.workerCommand())
	root.AddCommand(c.templatesCommand())
	root.AddCommand(c.drawingsCommand())
	root.AddCommand(c.assembliesCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies its log level unless
// --verbose was given.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if !c.verbose {
		if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
			c.Logger.SetLevel(level)
		}
	}
	c.Logger.Debug("config loaded", "path", c.configPath)
	return cfg, nil
}

// =============================================================================
// Services
// =============================================================================

// services bundles everything built from a Config.
type services struct {
	loader   *templatepack.Loader
	drawings *drawing.FileStore
	runner   *pipeline.Runner
	closers  []func(context.Context) error
}

// newServices wires the configured storage, renderer, lock and assembly
// store into a pipeline runner.
func (c *CLI) newServices(ctx context.Context, cfg *config.Config) (*services, error) {
	loader := templatepack.NewDefaultLoader(templatepack.NewMemoCache(), cfg.Storage.TemplatePacksDir)
	loader.Logger = c.Logger

	store, err := drawing.NewFileStore(cfg.Storage.DrawingsDir)
	if err != nil {
		return nil, err
	}

	renderer, err := c.newRenderer(cfg, loader)
	if err != nil {
		return nil, err
	}

	svc := &services{loader: loader, drawings: store}
	runner := pipeline.NewRunner(loader, store, renderer, c.Logger)
	runner.LockTTL = cfg.LockTTL()

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		runner.Locker = cache.NewRedisLocker(client)
		svc.closers = append(svc.closers, func(context.Context) error { return client.Close() })
		c.Logger.Debug("render lock", "backend", "redis", "addr", cfg.Redis.Addr)
	}

	switch {
	case cfg.Mongo.URI != "":
		ms, err := assembly.DialMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			svc.Close(ctx)
			return nil, fmt.Errorf("connect assembly store: %w", err)
		}
		runner.Assemblies = ms
		svc.closers = append(svc.closers, ms.Close)
		c.Logger.Debug("assembly store", "backend", "mongo", "database", cfg.Mongo.Database)
	case cfg.Storage.AssembliesDir != "":
		fs, err := assembly.NewFileStore(cfg.Storage.AssembliesDir)
		if err != nil {
			svc.Close(ctx)
			return nil, err
		}
		runner.Assemblies = fs
		c.Logger.Debug("assembly store", "backend", "file", "dir", cfg.Storage.AssembliesDir)
	}

	svc.runner = runner
	return svc, nil
}

// newRenderer returns the remote worker client when a service URL is
// configured, otherwise the in-process renderer.
func (c *CLI) newRenderer(cfg *config.Config, loader *templatepack.Loader) (render.Renderer, error) {
	if cfg.Renderer.ServiceURL == "" {
		return render.NewLocal(loader, c.Logger), nil
	}
	client, err := worker.NewClient(cfg.Renderer.ServiceURL,
		worker.WithTimeout(cfg.RendererTimeout()),
		worker.WithBackoff(cache.Backoff{Attempts: cfg.Renderer.Retries + 1, Delay: cache.DefaultBackoff.Delay}),
		worker.WithLogger(c.Logger),
	)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("renderer", "backend", "worker", "url", client.BaseURL())
	return client, nil
}

// Close releases external connections.
func (s *services) Close(ctx context.Context) error {
	var errs []error
	for _, fn := range s.closers {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
