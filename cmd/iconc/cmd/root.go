package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"iconc"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "iconc",
	Short: "Offline compiler for SVG icon sets",
	Long: `iconc scans a tree of SVG icon sources, flattens each icon's
geometry (group transforms, opacity, visibility), selects the largest
size per icon, and emits a static Go table of directly renderable
shapes keyed by stable identifiers.

Sources using features outside the supported subset (strokes,
gradients, clip paths, masks, filters, arcs) fail the build rather
than rendering wrong.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			iconc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline diagnostics to stderr")
}
