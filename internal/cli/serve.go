package cli

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ifscope/pkg/observability"
	"github.com/matzehuels/ifscope/pkg/observability/prom"
	"github.com/matzehuels/ifscope/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		maxPoints int
		metrics   bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and renderer over HTTP",
		Example: `  ifscope serve --addr :8080
  curl -o fern.png 'http://localhost:8080/api/render/fern.png?points=200000&seed=7'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Serve
			flags := cmd.Flags()
			if !flags.Changed("addr") {
				addr = cfg.Addr
			}
			if !flags.Changed("max-points") {
				maxPoints = cfg.MaxPoints
			}
			if !flags.Changed("metrics") {
				metrics = cfg.Metrics
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			var metricsHandler http.Handler
			if metrics {
				m := prom.New(prometheus.DefaultRegisterer)
				observability.SetGenerateHooks(m)
				observability.SetRenderHooks(m)
				observability.SetCacheHooks(m)
				observability.SetHTTPHooks(m)
				defer observability.Reset()
				metricsHandler = promhttp.Handler()
			}

			srv := server.New(server.Config{
				Addr:          addr,
				MaxPoints:     maxPoints,
				DefaultPoints: c.Config.Render.Points,
				Metrics:       metricsHandler,
			}, runner, c.Logger)

			out := newPrinter(cmd.OutOrStdout())
			out.info("Listening on %s", styleAccent.Render("http://"+addr))
			if metrics {
				out.detail("Metrics at /metrics")
			}
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&maxPoints, "max-points", server.DefaultMaxPoints, "largest point count a request may ask for")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "expose Prometheus metrics at /metrics")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	return cmd
}
