package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/lbcode/internal/api"
	"github.com/matzehuels/lbcode/pkg/cache"
)

// apiKeyPrefix scopes the server's cache entries apart from CLI entries.
const apiKeyPrefix = "api:"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion API",
		Long: `Run the HTTP conversion API.

Routes:
  GET  /healthz          liveness and build information
  POST /convert          JSON {"fileContent": base64, "fileName": "model.ldr"}
  POST /api/v1/convert   raw LDraw body (gzip or zstd encoded), LBCode response
  POST /api/v1/inspect   raw LBCode body, decoded JSON response

The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := c.newRunner(ctx, noCache, cache.NewScopedKeyer(nil, apiKeyPrefix))
			if err != nil {
				return err
			}
			defer runner.Close()

			sc := c.Config.Server
			if addr != "" {
				sc.Addr = addr
			}
			srv := api.New(api.Config{
				Addr:            sc.Addr,
				MaxUploadBytes:  sc.MaxUploadBytes,
				ReadTimeout:     sc.ReadTimeout.Duration,
				WriteTimeout:    sc.WriteTimeout.Duration,
				ShutdownTimeout: sc.ShutdownTimeout.Duration,
			}, runner, logger)

			w := cmd.OutOrStdout()
			printInfo(w, "Serving on %s", sc.Addr)
			printDetail(w, "cache backend: %s", c.Config.Cache.Backend)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the conversion cache")

	return cmd
}
