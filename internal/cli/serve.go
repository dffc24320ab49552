package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cabledraw/pkg/api"
	"github.com/matzehuels/cabledraw/pkg/render"
	"github.com/matzehuels/cabledraw/pkg/templatepack"
)

// serveCommand creates the serve command, which runs the HTTP render API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		Long: `Run the HTTP render API.

Routes:
  POST /v1/render                          render or serve a cached drawing
  GET  /v1/template-packs                  list template packs
  GET  /drawings/{assemblyId}/{rev}/{file} stored drawings
  GET  /health                             liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, watch)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	cmd.Flags().BoolVar(&watch, "watch-templates", false, "reload template packs when storage.template_packs_dir changes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, watch bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}
	svc, err := c.newServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close(context.WithoutCancel(ctx))

	g, ctx := errgroup.WithContext(ctx)
	if watch {
		if cfg.Storage.TemplatePacksDir == "" {
			printWarning("--watch-templates ignored: storage.template_packs_dir is not set")
		} else {
			w, err := templatepack.NewWatcher(svc.loader, c.Logger, cfg.Storage.TemplatePacksDir)
			if err != nil {
				return err
			}
			g.Go(func() error { return w.Run(ctx) })
		}
	}

	c.Logger.Info("render API",
		"drawings", svc.drawings.Root(),
		"renderer", rendererName(svc.runner.Renderer))
	handler := api.NewServer(svc.runner, c.Logger).Handler()
	g.Go(func() error {
		return api.ListenAndServe(ctx, addr, handler, cfg.ReadTimeout(), cfg.WriteTimeout(), c.Logger)
	})
	return g.Wait()
}

// workerCommand creates the worker command, which runs the rendering worker
// the API reaches through renderer.service_url.
func (c *CLI) workerCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the rendering worker (POST /render)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWorker(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.worker_addr)")

	return cmd
}

func (c *CLI) runWorker(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.WorkerAddr
	}
	loader := templatepack.NewDefaultLoader(templatepack.NewMemoCache(), cfg.Storage.TemplatePacksDir)
	loader.Logger = c.Logger

	handler := api.NewWorker(render.NewLocal(loader, c.Logger), c.Logger).Handler()
	return api.ListenAndServe(ctx, addr, handler, cfg.ReadTimeout(), cfg.WriteTimeout(), c.Logger)
}

func rendererName(r render.Renderer) string {
	if _, ok := r.(*render.Local); ok {
		return "local"
	}
	return "worker"
}
