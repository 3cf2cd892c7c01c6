package main

import (
	"fmt"
	"strconv"
	"time"

	"bitbucket.org/kleinnic74/lsgmap/domain/gps"
	"bitbucket.org/kleinnic74/lsgmap/mapslink"
	"bitbucket.org/kleinnic74/lsgmap/resolver"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var resolve bool
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "extract <url>...",
		Short: "Print the coordinates found in map links",
		Long: `Print "lat,lon" for each map link, or "not found" when the link carries no
coordinates. With --resolve short links are followed first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, 0)
			defer cancel()
			r := resolver.NewHTTPResolver(resolver.WithTimeout(timeout))
			out := cmd.OutOrStdout()
			for _, link := range args {
				if resolve {
					final, err := r.Resolve(ctx, link)
					if err != nil {
						return err
					}
					link = final
				}
				if c, found := mapslink.ExtractContext(ctx, link); found {
					fmt.Fprintln(out, formatCoordinates(c))
				} else {
					fmt.Fprintln(out, "not found")
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&resolve, "resolve", "r", false, "Resolve short links before extracting")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Timeout per short link, 0 for none")
	return cmd
}

func newResolveCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "resolve <url>",
		Short: "Print the final target of a short link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, timeout)
			defer cancel()
			final, err := resolver.NewHTTPResolver().Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), final)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Timeout for the whole redirect chain, 0 for none")
	return cmd
}

func formatCoordinates(c gps.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}
