package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"bitbucket.org/kleinnic74/lsgmap/domain/gps"
	"bitbucket.org/kleinnic74/lsgmap/lsg"
	"github.com/spf13/cobra"
)

func newSearchIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "searchindex <lsg.geojson> <search_index.json>",
		Short: "Generate the search index from the LSG GeoJSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, outPath := args[0], args[1]
			fc, err := lsg.LoadFeatureCollection(in)
			if err != nil {
				return err
			}
			entries, skipped := lsg.BuildEntries(fc)

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := lsg.WriteEntries(f, entries); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), lsg.Summarize(entries, skipped), in, outPath)
		},
	}
}

func printSummary(w io.Writer, s lsg.Summary, in, out string) error {
	inInfo, err := os.Stat(in)
	if err != nil {
		return err
	}
	outInfo, err := os.Stat(out)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Total entries: %d\n", s.Total)
	fmt.Fprintf(w, "Skipped (no geometry): %d\n", s.Skipped)
	fmt.Fprintln(w, "\nEntries by type:")
	for _, c := range s.ByType {
		fmt.Fprintf(w, "  %s: %d\n", capitalize(c.Key), c.Count)
	}
	fmt.Fprintln(w, "\nEntries by district:")
	for _, c := range s.ByDistrict {
		fmt.Fprintf(w, "  %s: %d\n", c.Key, c.Count)
	}
	inKB, outKB := float64(inInfo.Size())/1024, float64(outInfo.Size())/1024
	fmt.Fprintln(w, "\nFile sizes:")
	fmt.Fprintf(w, "  Original GeoJSON: %.2f KB\n", inKB)
	fmt.Fprintf(w, "  Search index: %.2f KB\n", outKB)
	if inKB > 0 {
		fmt.Fprintf(w, "  Reduction: %.1f%%\n", 100*(1-outKB/inKB))
	}
	return nil
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[n:])
}

func newLocateCmd() *cobra.Command {
	var geojson string
	cmd := &cobra.Command{
		Use:   "locate <lat> <lon>",
		Short: "Print the LSG containing a coordinate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q: %w", args[0], err)
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q: %w", args[1], err)
			}
			fc, err := lsg.LoadFeatureCollection(geojson)
			if err != nil {
				return err
			}
			idx := lsg.NewIndex(cmd.Context(), fc)
			e, found := idx.Locate(gps.NewCoordinates(lat, lon))
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), "not found")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n", e.Name, e.Type, e.District)
			return nil
		},
	}
	cmd.Flags().StringVar(&geojson, "geojson", "", "LSG boundaries GeoJSON")
	cmd.MarkFlagRequired("geojson")
	return cmd
}
