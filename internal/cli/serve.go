package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/internal/server"
	"github.com/matzehuels/mindmap/pkg/observability"
)

type serveOpts struct {
	addr            string
	allowAllOrigins bool
	store           string
	noCache         bool
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render API over HTTP",
		Long: `Serve the layout and render API over HTTP.

Endpoints:
  POST /api/layout            mind map → layout JSON
  POST /api/render            mind map → artifact (?format=svg|json|png|pdf|dot)
  POST /api/outline           text → mind map
  POST /api/maps              store a mind map, returns its id
  GET  /api/maps/{id}         stored mind map
  PUT  /api/maps/{id}         store a mind map under id
  DELETE /api/maps/{id}       remove a stored mind map
  GET  /api/maps/{id}/layout  layout of a stored mind map
  GET  /api/maps/{id}/render  artifact of a stored mind map
  GET  /healthz, /api/version, /metrics

The cache and map store backends come from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.addr != "" {
				c.Config.Server.Addr = opts.addr
			}
			if opts.allowAllOrigins {
				c.Config.Server.AllowAllOrigins = true
			}
			if opts.store != "" {
				c.Config.Store.Backend = opts.store
			}
			if err := c.Config.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), opts.noCache)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&opts.allowAllOrigins, "allow-all-origins", false, "allow CORS requests from any origin")
	cmd.Flags().StringVar(&opts.store, "store", "", "map store backend: memory, file, mongo")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	store, err := c.Config.Store.Open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewPrometheus(reg)
	observability.SetPipelineHooks(prom)
	observability.SetCacheHooks(prom)
	observability.SetHTTPHooks(prom)
	defer observability.Reset()

	srv := server.New(server.Config{
		Addr:            c.Config.Server.Addr,
		AllowAllOrigins: c.Config.Server.AllowAllOrigins,
	}, runner, store, c.Logger, reg)

	c.Logger.Info("starting server",
		"addr", srv.Addr(),
		"cache", c.Config.Cache.Backend,
		"store", c.Config.Store.Backend)
	return srv.Run(ctx)
}
