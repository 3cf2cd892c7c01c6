// lsgmap serves the map back-end and offers command line access to its tools.
package main

import (
	"context"
	"os"
	"time"

	"bitbucket.org/kleinnic74/lsgmap/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "lsgmap",
		Short: "Back-end and tools for the Kerala LSG map",
		Long: `lsgmap serves the REST API used by the LSG map front-end and exposes the
same functionality on the command line:

  serve       - run the HTTP server
  extract     - print the coordinates found in map links
  resolve     - print the final target of a short link
  searchindex - generate the search index from the LSG GeoJSON
  locate      - print the LSG containing a coordinate`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logging.SetLevel(zapcore.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newServeCmd(),
		newExtractCmd(),
		newResolveCmd(),
		newSearchIndexCmd(),
		newLocateCmd(),
	)
	return root
}

func main() {
	log := logging.From(context.Background())
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found (using environment variables)", zap.Error(err))
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func commandContext(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
