package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bitbucket.org/kleinnic74/lsgmap/app"
	"bitbucket.org/kleinnic74/lsgmap/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	defaults := app.DefaultOptions()
	var flags app.Options
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server. Options default to the LSGMAP_* environment variables
(LSGMAP_PORT, LSGMAP_DATA_DIR, LSGMAP_GEOJSON, LSGMAP_LINK_TTL, LSGMAP_RESOLVE_TIMEOUT),
which may also be set in a .env file. Flags take precedence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := app.OptionsFromEnv()
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("port") {
				o.Port = flags.Port
			}
			if fs.Changed("data-dir") {
				o.DataDir = flags.DataDir
			}
			if fs.Changed("geojson") {
				o.GeoJSON = flags.GeoJSON
			}
			if fs.Changed("link-ttl") {
				o.LinkTTL = flags.LinkTTL
			}
			if fs.Changed("resolve-timeout") {
				o.ResolveTimeout = flags.ResolveTimeout
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger, ctx := logging.SubFrom(ctx, "main")

			a, err := app.NewApp(ctx, o)
			if err != nil {
				logger.Error("Failed to initialize application", zap.Error(err))
				return err
			}
			a.Run(ctx)
			return nil
		},
	}
	cmd.Flags().UintVarP(&flags.Port, "port", "p", defaults.Port, "HTTP port to listen on")
	cmd.Flags().StringVarP(&flags.DataDir, "data-dir", "d", defaults.DataDir, "Directory for persistent data")
	cmd.Flags().StringVar(&flags.GeoJSON, "geojson", "", "LSG boundaries GeoJSON, enables search and locate")
	cmd.Flags().DurationVar(&flags.LinkTTL, "link-ttl", defaults.LinkTTL, "How long resolved short links are cached, 0 for ever")
	cmd.Flags().DurationVar(&flags.ResolveTimeout, "resolve-timeout", defaults.ResolveTimeout, "Timeout for resolving a short link, 0 for none")
	return cmd
}
